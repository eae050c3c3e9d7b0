// Package file loads the artifact catalog from a repository directory laid
// out as <repository>/<vendor>/<project>.json, one descriptor per artifact.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/tidwall/jsonc"

	"github.com/custodia-labs/octopus/internal/core/domain"
	"github.com/custodia-labs/octopus/internal/core/ports/driven"
	"github.com/custodia-labs/octopus/internal/logger"
)

// descriptorPattern matches descriptors one level below the repository root.
const descriptorPattern = "*/*.{json,jsonc}"

// Ensure Loader implements the interface.
var _ driven.CatalogLoader = (*Loader)(nil)

// Loader reads catalog descriptors from a repository directory.
type Loader struct {
	root string
}

// NewLoader creates a loader for the repository at root.
func NewLoader(root string) *Loader {
	return &Loader{root: root}
}

// Root returns the repository directory.
func (l *Loader) Root() string {
	return l.root
}

// Load reads every descriptor and builds the catalog.
func (l *Loader) Load(ctx context.Context) (*domain.Catalog, error) {
	info, err := os.Stat(l.root)
	if os.IsNotExist(err) {
		logger.Debug("Repository %s does not exist, catalog is empty", l.root)
		return domain.NewCatalog()
	}
	if err != nil {
		return nil, fmt.Errorf("stat repository: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("repository %s is not a directory", l.root)
	}

	// Globbing inside an os.DirFS keeps metacharacters in the root literal.
	matches, err := doublestar.Glob(os.DirFS(l.root), descriptorPattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("glob descriptors: %w", err)
	}

	entries := make([]domain.CatalogEntry, 0, len(matches))
	seen := make(map[string]string, len(matches))
	for _, match := range matches {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		path := filepath.Join(l.root, filepath.FromSlash(match))
		entry, err := readDescriptor(path)
		if err != nil {
			return nil, err
		}
		if first, dup := seen[entry.Name]; dup {
			return nil, fmt.Errorf("%w: %s declared in %s and %s", domain.ErrDuplicateReference, entry.Name, first, path)
		}
		seen[entry.Name] = path
		entries = append(entries, *entry)
	}

	logger.Debug("Loaded %d catalog descriptors from %s", len(entries), l.root)
	return domain.NewCatalog(entries...)
}

// readDescriptor parses one descriptor file. JSONC comments and trailing
// commas are accepted.
func readDescriptor(path string) (*domain.CatalogEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var entry domain.CatalogEntry
	if err := json.Unmarshal(jsonc.ToJSON(data), &entry); err != nil {
		return nil, fmt.Errorf("parsing descriptor %s: %w", path, err)
	}
	if _, _, err := domain.SplitReference(entry.Name); err != nil {
		return nil, fmt.Errorf("descriptor %s: %w", path, err)
	}
	return &entry, nil
}
