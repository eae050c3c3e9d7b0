package domain

import (
	"errors"
	"path/filepath"
)

// DefaultKnowledgeDirectory is where artifacts land when the configuration
// does not name a knowledge directory.
const DefaultKnowledgeDirectory = "knowledge"

// Configuration is a project's octopus.json.
type Configuration struct {
	// Name is the project's own vendor/project name.
	Name string `json:"name"`

	// KnowledgeDirectory is the output directory, relative to the project root.
	KnowledgeDirectory string `json:"knowledge-directory,omitempty"`

	// TargetFileFormat, if set, is the serialization every artifact is converted to.
	TargetFileFormat Format `json:"target-file-format,omitempty"`

	// Versions holds the top-level requirement blocks.
	Versions VersionSet `json:"version"`

	// Root is the directory the configuration was loaded from. The knowledge
	// directory is resolved against it. Set by the loader, never serialized.
	Root string `json:"-"`
}

// Validate checks the fields an install cannot do without.
func (c *Configuration) Validate() error {
	if c.Name == "" {
		return &InvalidConfigurationError{Err: errors.New("missing required field \"name\"")}
	}
	return nil
}

// KnowledgeDir returns the absolute or root-relative output directory.
func (c *Configuration) KnowledgeDir(root string) string {
	dir := c.KnowledgeDirectory
	if dir == "" {
		dir = DefaultKnowledgeDirectory
	}
	if filepath.IsAbs(dir) {
		return filepath.Clean(dir)
	}
	return filepath.Join(root, dir)
}

// Requirements merges the require sections of every version block in
// declaration order. The first block that names a reference decides its label.
func (c *Configuration) Requirements() Requirements {
	var merged Requirements
	for _, version := range c.Versions {
		merged = merged.Merge(version.Spec.Require)
	}
	return merged
}
