package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/custodia-labs/octopus/internal/core/domain"
)

// reportPrinter renders install reports, styled on a terminal and plain otherwise.
type reportPrinter struct {
	out    io.Writer
	styled bool

	title   lipgloss.Style
	muted   lipgloss.Style
	success lipgloss.Style
	warning lipgloss.Style
	failure lipgloss.Style
}

func newReportPrinter(out io.Writer) *reportPrinter {
	return &reportPrinter{
		out:     out,
		styled:  isTerminal(out),
		title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED")),
		muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086")),
		success: lipgloss.NewStyle().Foreground(lipgloss.Color("#A6E3A1")),
		warning: lipgloss.NewStyle().Foreground(lipgloss.Color("#F9E2AF")),
		failure: lipgloss.NewStyle().Foreground(lipgloss.Color("#F38BA8")),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func (p *reportPrinter) render(style lipgloss.Style, s string) string {
	if !p.styled {
		return s
	}
	return style.Render(s)
}

// statusStyle picks the colour for an install status.
func (p *reportPrinter) statusStyle(status domain.InstallStatus) lipgloss.Style {
	switch status {
	case domain.StatusInstalled:
		return p.success
	case domain.StatusUnconverted, domain.StatusSkippedUnknownFormat:
		return p.warning
	case domain.StatusFailed:
		return p.failure
	default:
		return p.muted
	}
}

func (p *reportPrinter) printReport(project string, report *domain.InstallReport) {
	fmt.Fprintln(p.out, p.render(p.title, fmt.Sprintf("Installed knowledge for %s", project)))

	for _, result := range report.Results {
		status := fmt.Sprintf("%-22s", result.Status)
		line := fmt.Sprintf("  %s %s", p.render(p.statusStyle(result.Status), status), result.Name)
		if result.Path != "" {
			line += " " + p.render(p.muted, "-> "+result.Path)
		}
		fmt.Fprintln(p.out, line)
		if result.Message != "" {
			fmt.Fprintf(p.out, "  %-22s %s\n", "", p.render(p.muted, result.Message))
		}
	}

	summary := report.Summary()
	switch {
	case report.Failed() > 0 || report.Partial:
		summary = p.render(p.failure, summary)
	default:
		summary = p.render(p.success, summary)
	}
	fmt.Fprintln(p.out, summary)
}

func (p *reportPrinter) printResolved(project string, resolved []domain.ResolvedRequirement) {
	fmt.Fprintln(p.out, p.render(p.title, fmt.Sprintf("%s requires %d artifacts", project, len(resolved))))

	for _, req := range resolved {
		format := req.Format.Canonical().String()
		if format == "" {
			format = "unknown"
		}
		fmt.Fprintf(p.out, "  %-30s %-10s %s\n", req.Name, format, p.render(p.muted, req.File))
	}
}

func (p *reportPrinter) printRecords(records []domain.InstallRecord) {
	for _, record := range records {
		status := fmt.Sprintf("%-22s", record.Status)
		fmt.Fprintf(p.out, "  %s %-30s %s\n",
			p.render(p.statusStyle(record.Status), status),
			record.Name,
			p.render(p.muted, record.InstalledAt.Local().Format("2006-01-02 15:04:05")),
		)
		if record.Path != "" {
			fmt.Fprintf(p.out, "  %-22s %s\n", "", record.Path)
		}
		if record.Message != "" {
			fmt.Fprintf(p.out, "  %-22s %s\n", "", p.render(p.muted, record.Message))
		}
	}
}
