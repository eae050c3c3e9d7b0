// Package fetch materialises artifact files in the knowledge directory,
// copying local files and downloading remote ones.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/gzhttp"

	"github.com/custodia-labs/octopus/internal/core/domain"
	"github.com/custodia-labs/octopus/internal/core/ports/driven"
	"github.com/custodia-labs/octopus/internal/logger"
)

const (
	// DefaultTimeout bounds a single download, body included.
	DefaultTimeout = 60 * time.Second

	// maxRedirects matches what browsers and curl -L allow.
	maxRedirects = 10

	// acceptHeader prefers the serializations the codec can parse.
	acceptHeader = "text/turtle, application/n-triples;q=0.9, application/rdf+xml;q=0.9, */*;q=0.1"
)

// Ensure Fetcher implements the interface.
var _ driven.Fetcher = (*Fetcher)(nil)

// Options configures a Fetcher.
type Options struct {
	// Timeout bounds each download. Zero uses DefaultTimeout.
	Timeout time.Duration

	// RequestsPerSecond throttles downloads per host. Zero disables throttling.
	RequestsPerSecond float64

	// Transport overrides the base HTTP transport. Compression negotiation
	// is layered on top of it.
	Transport http.RoundTripper

	// UserAgent is sent with every request.
	UserAgent string
}

// Fetcher copies local artifact files and downloads remote ones.
// It is safe for concurrent use; each artifact writes only its own path.
type Fetcher struct {
	client    *http.Client
	limiter   *hostLimiter
	timeout   time.Duration
	userAgent string
}

// NewFetcher creates a fetcher.
func NewFetcher(opts Options) *Fetcher {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	base := opts.Transport
	if base == nil {
		base = http.DefaultTransport
	}

	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = "octopus"
	}

	return &Fetcher{
		client: &http.Client{
			Transport: gzhttp.Transport(base, gzhttp.TransportEnableZstd(true)),
			CheckRedirect: func(_ *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return fmt.Errorf("stopped after %d redirects", maxRedirects)
				}
				return nil
			},
		},
		limiter:   newHostLimiter(opts.RequestsPerSecond),
		timeout:   timeout,
		userAgent: userAgent,
	}
}

// Fetch materialises req.File at <knowledgeDir>/<vendor>/<project>.<ext>.
func (f *Fetcher) Fetch(ctx context.Context, req domain.ResolvedRequirement, knowledgeDir string) (*domain.LocalArtifact, error) {
	vendor, project, err := domain.SplitReference(req.Name)
	if err != nil {
		return nil, &domain.FetchError{Name: req.Name, Source: req.File, Err: err}
	}

	local := isLocalFile(req.File)
	if !local && !IsURI(req.File) {
		return nil, nil
	}

	format := req.Format
	if format == domain.FormatUnknown {
		format = domain.FormatFromPath(req.File)
	}
	if format == domain.FormatUnknown {
		return nil, fmt.Errorf("%w: cannot determine the format of %s, set file-format", domain.ErrUnsupportedFormat, req.File)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dir := filepath.Join(knowledgeDir, vendor)
	dest := filepath.Join(dir, project+"."+format.Extension())

	if err := removeStale(dir, project, dest); err != nil {
		return nil, &domain.FetchError{Name: req.Name, Source: req.File, Err: err}
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, &domain.FetchError{Name: req.Name, Source: req.File, Err: err}
	}

	if local {
		logger.Debug("Copy %s from %s", req.Name, req.File)
		err = copyFile(req.File, dest)
	} else {
		logger.Debug("Download %s from %s", req.Name, req.File)
		err = f.download(ctx, req.File, dest)
	}
	if err != nil {
		return nil, &domain.FetchError{Name: req.Name, Source: req.File, Err: err}
	}

	return &domain.LocalArtifact{
		Name:       req.Name,
		Path:       dest,
		Format:     format,
		Downloaded: !local,
	}, nil
}

// download streams rawURL into dest.
func (f *Fetcher) download(ctx context.Context, rawURL, dest string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return err
	}
	if u.Scheme == "file" {
		return copyFile(u.Path, dest)
	}

	if err := f.limiter.Wait(ctx, u.Host); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	httpReq.Header.Set("Accept", acceptHeader)
	httpReq.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode == http.StatusServiceUnavailable {
		f.limiter.RecordRetryAfter(u.Host, resp.Header.Get("Retry-After"))
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}

	return writeFile(dest, resp.Body)
}

// isLocalFile reports whether path names an existing regular file.
func isLocalFile(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// removeStale deletes files a previous install left for project under any
// other known extension, so a format change does not leave duplicates.
func removeStale(dir, project, keep string) error {
	for _, ext := range domain.Extensions() {
		path := filepath.Join(dir, project+"."+ext)
		if path == keep {
			continue
		}
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("remove stale %s: %w", path, err)
		}
	}
	return nil
}

// copyFile copies src to dest.
func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	return writeFile(dest, in)
}

// writeFile writes r to a temp file beside dest and renames it into place,
// so dest is either complete or untouched.
func writeFile(dest string, r io.Reader) error {
	tmp, err := os.CreateTemp(filepath.Dir(dest), "."+filepath.Base(dest)+".*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	_, err = io.Copy(tmp, r)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(tmpPath)
		return err
	}

	if err := os.Chmod(tmpPath, 0644); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}
