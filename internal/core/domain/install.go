package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ResolvedRequirement is one artifact of the requirement closure.
type ResolvedRequirement struct {
	// Name is the vendor/project reference.
	Name string `json:"name"`

	// File is a local path or a URL.
	File string `json:"file"`

	// PrefixURI is the namespace IRI of the vocabulary.
	PrefixURI string `json:"prefix-uri,omitempty"`

	// Format is the declared file-format, or the one inferred from File.
	Format Format `json:"file-format,omitempty"`
}

// NewResolvedRequirement records the selected version of name.
func NewResolvedRequirement(name string, spec VersionSpec) ResolvedRequirement {
	format := spec.FileFormat
	if format == FormatUnknown {
		format = FormatFromPath(spec.File)
	}
	return ResolvedRequirement{
		Name:      name,
		File:      spec.File,
		PrefixURI: spec.PrefixURI,
		Format:    format,
	}
}

// LocalArtifact is a materialised artifact inside the knowledge directory.
type LocalArtifact struct {
	// Name is the vendor/project reference.
	Name string

	// Path is the installed file.
	Path string

	// Format is the serialization of the file at Path.
	Format Format

	// Downloaded is true when the file came from a URL rather than a local copy.
	Downloaded bool
}

// InstallStatus is the outcome of installing one artifact.
type InstallStatus string

// Install outcomes.
const (
	// StatusInstalled means the artifact is on disk in its final format.
	StatusInstalled InstallStatus = "installed"

	// StatusSkipped means the file is neither a local path nor a URI.
	StatusSkipped InstallStatus = "skipped"

	// StatusSkippedUnknownFormat means no format could be determined, so nothing was fetched.
	StatusSkippedUnknownFormat InstallStatus = "skipped-unknown-format"

	// StatusUnconverted means the artifact was fetched but could not be
	// transcoded; it is left in its original format.
	StatusUnconverted InstallStatus = "unconverted"

	// StatusFailed means fetching or converting failed.
	StatusFailed InstallStatus = "failed"
)

// InstallResult reports the outcome for one artifact.
type InstallResult struct {
	Name    string        `json:"name"`
	Status  InstallStatus `json:"status"`
	Path    string        `json:"path,omitempty"`
	Format  Format        `json:"format,omitempty"`
	Hash    string        `json:"hash,omitempty"`
	Message string        `json:"message,omitempty"`
}

// InstallReport aggregates the results of one install run, in name order.
type InstallReport struct {
	RunID      string          `json:"run_id"`
	Results    []InstallResult `json:"results"`
	Partial    bool            `json:"partial,omitempty"`
	StartedAt  time.Time       `json:"started_at"`
	FinishedAt time.Time       `json:"finished_at"`
}

// Count returns the number of results with the given status.
func (r *InstallReport) Count(status InstallStatus) int {
	n := 0
	for _, result := range r.Results {
		if result.Status == status {
			n++
		}
	}
	return n
}

// Installed returns the number of artifacts installed, converted or not.
func (r *InstallReport) Installed() int {
	return r.Count(StatusInstalled) + r.Count(StatusUnconverted)
}

// Skipped returns the number of artifacts skipped.
func (r *InstallReport) Skipped() int {
	return r.Count(StatusSkipped) + r.Count(StatusSkippedUnknownFormat)
}

// Failed returns the number of artifacts that failed.
func (r *InstallReport) Failed() int {
	return r.Count(StatusFailed)
}

// Summary returns a one-line tally of the run.
func (r *InstallReport) Summary() string {
	parts := []string{
		fmt.Sprintf("%d installed", r.Installed()),
		fmt.Sprintf("%d skipped", r.Skipped()),
		fmt.Sprintf("%d failed", r.Failed()),
	}
	summary := strings.Join(parts, ", ")
	if r.Partial {
		summary += " (interrupted)"
	}
	return summary
}

// Err joins one error per failed artifact, or returns nil when none failed.
func (r *InstallReport) Err() error {
	var errs []error
	for _, result := range r.Results {
		if result.Status == StatusFailed {
			errs = append(errs, fmt.Errorf("%s: %s", result.Name, result.Message))
		}
	}
	return errors.Join(errs...)
}

// InstallRecord is one row of install history.
type InstallRecord struct {
	RunID       string
	Name        string
	Status      InstallStatus
	Path        string
	Format      Format
	Hash        string
	Message     string
	InstalledAt time.Time
}

// Records converts a report into history rows.
func (r *InstallReport) Records() []InstallRecord {
	records := make([]InstallRecord, len(r.Results))
	for i, result := range r.Results {
		records[i] = InstallRecord{
			RunID:       r.RunID,
			Name:        result.Name,
			Status:      result.Status,
			Path:        result.Path,
			Format:      result.Format,
			Hash:        result.Hash,
			Message:     result.Message,
			InstalledAt: r.FinishedAt,
		}
	}
	return records
}
