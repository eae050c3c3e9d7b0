package domain

import (
	"encoding/json"
	"fmt"
	"sort"
)

// VersionSpec describes one version of an artifact: where its file lives and
// which other artifacts it needs.
type VersionSpec struct {
	// Require lists the artifacts this version depends on.
	Require Requirements `json:"require"`

	// File is a local path or a URL.
	File string `json:"file,omitempty"`

	// PrefixURI is the namespace IRI of the vocabulary.
	PrefixURI string `json:"prefix-uri,omitempty"`

	// FileFormat overrides the format inferred from File's extension.
	FileFormat Format `json:"file-format,omitempty"`
}

// Version pairs a version label with its spec.
type Version struct {
	Label string
	Spec  VersionSpec
}

// VersionSet is a version object in declaration order.
type VersionSet []Version

// Get returns the spec declared under label.
func (v VersionSet) Get(label string) (VersionSpec, bool) {
	for _, version := range v {
		if version.Label == label {
			return version.Spec, true
		}
	}
	return VersionSpec{}, false
}

// First returns the first declared version.
func (v VersionSet) First() (Version, bool) {
	if len(v) == 0 {
		return Version{}, false
	}
	return v[0], true
}

// Labels returns the version labels in declaration order.
func (v VersionSet) Labels() []string {
	labels := make([]string, len(v))
	for i, version := range v {
		labels[i] = version.Label
	}
	return labels
}

// UnmarshalJSON decodes a version object preserving member order.
func (v *VersionSet) UnmarshalJSON(data []byte) error {
	var out VersionSet
	index := make(map[string]int)
	err := decodeObject(data, func(key string, value json.RawMessage) error {
		var spec VersionSpec
		if err := json.Unmarshal(value, &spec); err != nil {
			return fmt.Errorf("version %q: %w", key, err)
		}
		if i, ok := index[key]; ok {
			out[i].Spec = spec
			return nil
		}
		index[key] = len(out)
		out = append(out, Version{Label: key, Spec: spec})
		return nil
	})
	if err != nil {
		return err
	}
	*v = out
	return nil
}

// MarshalJSON encodes the versions as an ordered JSON object.
func (v VersionSet) MarshalJSON() ([]byte, error) {
	return encodeObject(len(v), func(i int) (string, any) {
		return v[i].Label, v[i].Spec
	})
}

// CatalogEntry is everything the catalog knows about one artifact.
type CatalogEntry struct {
	// Name is the vendor/project reference.
	Name string `json:"name"`

	// Versions are the known versions in declaration order.
	Versions VersionSet `json:"version"`
}

// Catalog is the read-only set of known artifacts. It is built once by a
// loader and shared by the resolver and any number of install workers.
type Catalog struct {
	entries map[string]CatalogEntry
	names   []string
}

// NewCatalog builds a catalog from entries. Every name must be a valid
// vendor/project reference and appear only once.
func NewCatalog(entries ...CatalogEntry) (*Catalog, error) {
	c := &Catalog{
		entries: make(map[string]CatalogEntry, len(entries)),
		names:   make([]string, 0, len(entries)),
	}

	for _, entry := range entries {
		if _, _, err := SplitReference(entry.Name); err != nil {
			return nil, err
		}
		if _, exists := c.entries[entry.Name]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateReference, entry.Name)
		}
		c.entries[entry.Name] = entry
		c.names = append(c.names, entry.Name)
	}

	sort.Strings(c.names)
	return c, nil
}

// Lookup returns the entry for name.
func (c *Catalog) Lookup(name string) (CatalogEntry, bool) {
	if c == nil {
		return CatalogEntry{}, false
	}
	entry, ok := c.entries[name]
	return entry, ok
}

// Names returns all reference names, sorted.
func (c *Catalog) Names() []string {
	if c == nil {
		return nil
	}
	names := make([]string, len(c.names))
	copy(names, c.names)
	return names
}

// Len returns the number of known artifacts.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.names)
}
