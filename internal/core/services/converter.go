package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/octopus/internal/core/domain"
	"github.com/custodia-labs/octopus/internal/core/ports/driven"
	"github.com/custodia-labs/octopus/internal/logger"
)

// Converter transcodes installed artifacts into another RDF serialization.
type Converter struct {
	codec driven.TripleCodec
}

// NewConverter creates a converter backed by codec.
func NewConverter(codec driven.TripleCodec) *Converter {
	return &Converter{codec: codec}
}

// Convert rewrites artifact in the target format next to the original and
// returns the new path. The original is deleted once the new file is in place.
//
// A missing parser or serializer yields domain.ErrUnsupportedFormat and leaves
// the original untouched. Parse or write failures yield domain.ErrConversion,
// also leaving the original untouched and no partial output behind.
func (c *Converter) Convert(ctx context.Context, artifact domain.LocalArtifact, target domain.Format, base string) (string, error) {
	source := artifact.Format.Canonical()
	target = target.Canonical()

	if domain.SameSerialization(source, target) {
		return artifact.Path, nil
	}
	if !c.codec.CanParse(source) {
		return "", fmt.Errorf("%w: no parser for %q, leaving %s", domain.ErrUnsupportedFormat, source, artifact.Path)
	}
	if !c.codec.CanSerialize(target) {
		return "", fmt.Errorf("%w: no serializer for %q, leaving %s", domain.ErrUnsupportedFormat, target, artifact.Path)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	dest := strings.TrimSuffix(artifact.Path, filepath.Ext(artifact.Path)) + "." + target.Extension()

	count, err := c.transcode(ctx, artifact.Path, source, dest, target, base)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", domain.ErrConversion, artifact.Name, err)
	}

	if err := os.Remove(artifact.Path); err != nil && !os.IsNotExist(err) {
		return "", fmt.Errorf("%w: remove %s: %w", domain.ErrConversion, artifact.Path, err)
	}

	logger.Debug("Converted %s from %s to %s (%d statements)", artifact.Name, source, target, count)
	return dest, nil
}

// transcode streams statements from src into a temp file and renames it to dest.
func (c *Converter) transcode(ctx context.Context, src string, from domain.Format, dest string, to domain.Format, base string) (int, error) {
	in, err := os.Open(src)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	seq, err := c.codec.Parse(in, from, base)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", src, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dest), "."+filepath.Base(dest)+".*.tmp")
	if err != nil {
		return 0, err
	}
	tmpPath := tmp.Name()

	count, err := c.codec.Serialize(tmp, &contextSequence{ctx: ctx, seq: seq}, to)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(tmpPath)
		return 0, err
	}

	if err := os.Rename(tmpPath, dest); err != nil {
		_ = os.Remove(tmpPath)
		return 0, err
	}
	return count, nil
}

// contextSequence stops a statement sequence when ctx is cancelled.
type contextSequence struct {
	ctx context.Context
	seq driven.StatementSequence
}

func (s *contextSequence) Next() (domain.Statement, error) {
	if err := s.ctx.Err(); err != nil {
		return "", err
	}
	return s.seq.Next()
}
