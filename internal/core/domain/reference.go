package domain

import (
	"fmt"
	"strings"
)

// SplitReference splits a vendor/project reference name into its two halves.
// The halves are used as directory and file name under the knowledge directory.
func SplitReference(name string) (vendor, project string, err error) {
	vendor, project, ok := strings.Cut(name, "/")
	if !ok || vendor == "" || project == "" || strings.Contains(project, "/") {
		return "", "", fmt.Errorf("%w: %q is not of the form vendor/project", ErrInvalidReference, name)
	}
	if vendor == "." || vendor == ".." || project == "." || project == ".." {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidReference, name)
	}
	if strings.ContainsAny(name, `\`) {
		return "", "", fmt.Errorf("%w: %q contains a backslash", ErrInvalidReference, name)
	}
	return vendor, project, nil
}
