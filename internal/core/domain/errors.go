package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Resolution Errors. These are fatal: the install aborts before
	// anything is written to disk.

	// ErrUnknownReference indicates a requirement names an artifact the catalog does not know.
	ErrUnknownReference = errors.New("unknown reference")

	// ErrUnknownVersion indicates a requested version label has no match in the catalog entry.
	ErrUnknownVersion = errors.New("unknown version")

	// ErrInvalidConfiguration indicates the project configuration is unreadable or incomplete.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrEmptyVersionSet indicates the configuration declares no version entries.
	ErrEmptyVersionSet = errors.New("no version information found, did you add elements to the version object?")

	// ErrInvalidReference indicates a name that is not of the form vendor/project.
	ErrInvalidReference = errors.New("invalid reference")

	// ErrDuplicateReference indicates two catalog descriptors declare the same name.
	ErrDuplicateReference = errors.New("duplicate reference")

	// Artifact Errors. These are recorded per artifact and never stop
	// the rest of the install.

	// ErrUnsupportedFormat indicates no parser or serializer exists for a format.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrFetch indicates an artifact could not be copied or downloaded.
	ErrFetch = errors.New("fetch failed")

	// ErrConversion indicates an artifact could not be transcoded.
	ErrConversion = errors.New("conversion failed")
)

// UnknownReferenceError names the reference that is missing from the catalog.
type UnknownReferenceError struct {
	Name string
}

func (e *UnknownReferenceError) Error() string {
	return fmt.Sprintf("unknown reference in use: %s", e.Name)
}

// Unwrap allows errors.Is(err, ErrUnknownReference).
func (e *UnknownReferenceError) Unwrap() error {
	return ErrUnknownReference
}

// UnknownVersionError names a reference and the label that could not be matched.
type UnknownVersionError struct {
	Name    string
	Version string
}

func (e *UnknownVersionError) Error() string {
	return fmt.Sprintf("no version %q declared for %s", e.Version, e.Name)
}

// Unwrap allows errors.Is(err, ErrUnknownVersion).
func (e *UnknownVersionError) Unwrap() error {
	return ErrUnknownVersion
}

// InvalidConfigurationError wraps the reason a configuration file was rejected.
type InvalidConfigurationError struct {
	Path string
	Err  error
}

func (e *InvalidConfigurationError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("invalid configuration: %v", e.Err)
	}
	return fmt.Sprintf("invalid configuration %s: %v", e.Path, e.Err)
}

// Is reports ErrInvalidConfiguration as a match.
func (e *InvalidConfigurationError) Is(target error) bool {
	return target == ErrInvalidConfiguration
}

// Unwrap returns the underlying cause.
func (e *InvalidConfigurationError) Unwrap() error {
	return e.Err
}

// FetchError records why an artifact could not be materialised.
type FetchError struct {
	Name   string
	Source string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s from %s: %v", e.Name, e.Source, e.Err)
}

// Is reports ErrFetch as a match.
func (e *FetchError) Is(target error) bool {
	return target == ErrFetch
}

// Unwrap returns the underlying cause.
func (e *FetchError) Unwrap() error {
	return e.Err
}
