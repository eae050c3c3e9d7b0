package services

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/zeebo/blake3"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/octopus/internal/core/domain"
	"github.com/custodia-labs/octopus/internal/core/ports/driven"
	"github.com/custodia-labs/octopus/internal/core/ports/driving"
	"github.com/custodia-labs/octopus/internal/logger"
)

// Ensure Installer implements the interface.
var _ driving.Installer = (*Installer)(nil)

// Installer resolves configurations and installs the resulting artifacts.
type Installer struct {
	resolver    *Resolver
	fetcher     driven.Fetcher
	converter   *Converter
	history     driven.InstallHistoryStore
	concurrency int
}

// NewInstaller creates a new installer.
// The history store is optional - if nil, runs are not recorded.
// Concurrency below one installs one artifact at a time.
func NewInstaller(
	fetcher driven.Fetcher,
	converter *Converter,
	history driven.InstallHistoryStore,
	concurrency int,
) *Installer {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Installer{
		resolver:    NewResolver(),
		fetcher:     fetcher,
		converter:   converter,
		history:     history,
		concurrency: concurrency,
	}
}

// Resolve returns the requirement closure of cfg, sorted by name.
func (i *Installer) Resolve(_ context.Context, cfg *domain.Configuration, catalog *domain.Catalog) ([]domain.ResolvedRequirement, error) {
	if err := validateConfiguration(cfg); err != nil {
		return nil, err
	}

	resolved, err := i.resolver.ResolveConfiguration(cfg, catalog)
	if err != nil {
		return nil, err
	}
	return sortedResolved(resolved), nil
}

// Install resolves cfg and installs every artifact of the closure.
//
// Resolution errors abort before anything touches the disk. After that,
// each artifact succeeds or fails on its own. If ctx ends mid-run, the
// report is marked partial and returned together with ctx.Err().
func (i *Installer) Install(ctx context.Context, cfg *domain.Configuration, catalog *domain.Catalog) (*domain.InstallReport, error) {
	reqs, err := i.Resolve(ctx, cfg, catalog)
	if err != nil {
		return nil, err
	}

	report := &domain.InstallReport{
		RunID:     uuid.NewString(),
		StartedAt: time.Now(),
	}

	knowledgeDir := cfg.KnowledgeDir(cfg.Root)
	if len(reqs) > 0 {
		if err := os.MkdirAll(knowledgeDir, 0755); err != nil {
			return nil, fmt.Errorf("create knowledge directory: %w", err)
		}
	}

	logger.Section("Installing %d artifacts into %s", len(reqs), knowledgeDir)

	results := make([]domain.InstallResult, len(reqs))

	var g errgroup.Group
	g.SetLimit(i.concurrency)
	for idx, req := range reqs {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			results[idx] = i.installOne(ctx, cfg, req, knowledgeDir)
			return nil
		})
	}
	_ = g.Wait()

	report.FinishedAt = time.Now()
	for _, result := range results {
		// Unscheduled slots are left empty when the run is cancelled.
		if result.Name != "" {
			report.Results = append(report.Results, result)
		}
	}

	ctxErr := ctx.Err()
	if ctxErr != nil {
		report.Partial = true
	}

	i.record(report)

	logger.Info("Install complete: %s", report.Summary())
	return report, ctxErr
}

// installOne fetches, converts and hashes a single artifact.
func (i *Installer) installOne(ctx context.Context, cfg *domain.Configuration, req domain.ResolvedRequirement, knowledgeDir string) domain.InstallResult {
	result := domain.InstallResult{Name: req.Name}

	artifact, err := i.fetcher.Fetch(ctx, req, knowledgeDir)
	switch {
	case errors.Is(err, domain.ErrUnsupportedFormat):
		logger.Warn("%s: %v", req.Name, err)
		result.Status = domain.StatusSkippedUnknownFormat
		result.Message = err.Error()
		return result
	case err != nil:
		logger.Warn("%s: %v", req.Name, err)
		result.Status = domain.StatusFailed
		result.Message = err.Error()
		return result
	case artifact == nil:
		logger.Debug("%s: %q is neither a local file nor a URI, skipping", req.Name, req.File)
		result.Status = domain.StatusSkipped
		result.Message = fmt.Sprintf("%q is neither a local file nor a URI", req.File)
		return result
	}

	result.Status = domain.StatusInstalled
	result.Path = artifact.Path
	result.Format = artifact.Format.Canonical()

	target := cfg.TargetFileFormat
	if target != domain.FormatUnknown && i.converter != nil && !domain.SameSerialization(artifact.Format, target) {
		path, err := i.converter.Convert(ctx, *artifact, target, req.PrefixURI)
		switch {
		case errors.Is(err, domain.ErrUnsupportedFormat):
			logger.Warn("%s: %v", req.Name, err)
			result.Status = domain.StatusUnconverted
			result.Message = err.Error()
		case err != nil:
			logger.Warn("%s: %v", req.Name, err)
			result.Status = domain.StatusFailed
			result.Message = err.Error()
		default:
			result.Path = path
			result.Format = target.Canonical()
		}
	}

	hash, err := hashFile(result.Path)
	if err != nil {
		logger.Debug("hash %s: %v", result.Path, err)
	}
	result.Hash = hash

	return result
}

// record appends the report to the history store. Failures are logged only.
func (i *Installer) record(report *domain.InstallReport) {
	if i.history == nil || len(report.Results) == 0 {
		return
	}
	// The run may have been cancelled, history is still written.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := i.history.Append(ctx, report.Records()); err != nil {
		logger.Warn("Failed to record install history: %v", err)
	}
}

// validateConfiguration rejects a missing or incomplete configuration.
func validateConfiguration(cfg *domain.Configuration) error {
	if cfg == nil {
		return &domain.InvalidConfigurationError{Err: errors.New("no configuration")}
	}
	return cfg.Validate()
}

// hashFile returns the BLAKE3 digest of the file at path as "blake3:<hex>".
func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	hasher := blake3.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return "", err
	}
	return "blake3:" + hex.EncodeToString(hasher.Sum(nil)), nil
}
