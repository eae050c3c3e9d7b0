// Package domain defines the core business entities for Octopus.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Catalog: The immutable set of known artifacts and their versions
//   - Configuration: A project's declared requirements
//   - ResolvedRequirement: One artifact of the requirement closure
//   - Format: RDF serialization labels and their shared lookup table
//   - InstallReport: The per-artifact outcome of an install run
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
