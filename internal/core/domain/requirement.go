package domain

import (
	"encoding/json"
	"fmt"
)

// WildcardVersion requests whichever version the catalog offers.
const WildcardVersion = "*"

// Requirement is a single reference name with the version label it asks for.
type Requirement struct {
	// Name is the vendor/project reference.
	Name string

	// Version is the requested label, "*" or an explicit version.
	Version string
}

// Requirements is a require section in declaration order.
// It decodes from a JSON object such as {"w3c/rdf": "*", "w3c/owl": "*"}.
type Requirements []Requirement

// Get returns the version label requested for name.
func (r Requirements) Get(name string) (string, bool) {
	for _, req := range r {
		if req.Name == name {
			return req.Version, true
		}
	}
	return "", false
}

// Names returns the required reference names in declaration order.
func (r Requirements) Names() []string {
	names := make([]string, len(r))
	for i, req := range r {
		names[i] = req.Name
	}
	return names
}

// Merge appends the requirements of other whose names are not yet present.
// The first declaration of a name wins.
func (r Requirements) Merge(other Requirements) Requirements {
	seen := make(map[string]bool, len(r)+len(other))
	merged := make(Requirements, 0, len(r)+len(other))
	for _, req := range append(append(Requirements{}, r...), other...) {
		if seen[req.Name] {
			continue
		}
		seen[req.Name] = true
		merged = append(merged, req)
	}
	return merged
}

// UnmarshalJSON decodes a require object preserving member order.
// A repeated key keeps its first position and its last value, matching
// what a JSON object decoder would keep.
func (r *Requirements) UnmarshalJSON(data []byte) error {
	var out Requirements
	index := make(map[string]int)
	err := decodeObject(data, func(key string, value json.RawMessage) error {
		var version string
		if err := json.Unmarshal(value, &version); err != nil {
			return fmt.Errorf("version of %q must be a string: %w", key, err)
		}
		if i, ok := index[key]; ok {
			out[i].Version = version
			return nil
		}
		index[key] = len(out)
		out = append(out, Requirement{Name: key, Version: version})
		return nil
	})
	if err != nil {
		return err
	}
	*r = out
	return nil
}

// MarshalJSON encodes the requirements as an ordered JSON object.
func (r Requirements) MarshalJSON() ([]byte, error) {
	return encodeObject(len(r), func(i int) (string, any) {
		return r[i].Name, r[i].Version
	})
}
