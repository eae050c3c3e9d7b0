package file

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/jsonc"

	"github.com/custodia-labs/octopus/internal/core/domain"
	"github.com/custodia-labs/octopus/internal/core/ports/driven"
)

// DefaultProjectFile is the configuration file looked up in the working
// directory when no path is given.
const DefaultProjectFile = "octopus.json"

// Ensure ProjectLoader implements the interface.
var _ driven.ConfigurationLoader = (*ProjectLoader)(nil)

// ProjectLoader reads octopus.json project files. Comments and trailing
// commas are accepted.
type ProjectLoader struct{}

// NewProjectLoader creates a new project configuration loader.
func NewProjectLoader() *ProjectLoader {
	return &ProjectLoader{}
}

// Load reads, parses and validates the configuration at path.
// The returned configuration's Root is the absolute directory of path.
func (l *ProjectLoader) Load(path string) (*domain.Configuration, error) {
	if path == "" {
		path = DefaultProjectFile
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &domain.InvalidConfigurationError{Path: path, Err: errors.New("file does not exist")}
		}
		return nil, &domain.InvalidConfigurationError{Path: path, Err: err}
	}
	if info.IsDir() {
		return nil, &domain.InvalidConfigurationError{Path: path, Err: errors.New("is a directory")}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &domain.InvalidConfigurationError{Path: path, Err: fmt.Errorf("not readable: %w", err)}
	}

	cfg, err := ParseConfiguration(data)
	if err != nil {
		return nil, &domain.InvalidConfigurationError{Path: path, Err: err}
	}

	root, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, &domain.InvalidConfigurationError{Path: path, Err: err}
	}
	cfg.Root = root

	if err := cfg.Validate(); err != nil {
		var invalid *domain.InvalidConfigurationError
		if errors.As(err, &invalid) {
			invalid.Path = path
		}
		return nil, err
	}
	return cfg, nil
}

// ParseConfiguration strips JSONC comments and trailing commas from data,
// then unmarshals the result. It does not validate.
func ParseConfiguration(data []byte) (*domain.Configuration, error) {
	stripped := jsonc.ToJSON(data)

	var cfg domain.Configuration
	if err := json.Unmarshal(stripped, &cfg); err != nil {
		return nil, fmt.Errorf("contains invalid JSON: %w", err)
	}
	return &cfg, nil
}
