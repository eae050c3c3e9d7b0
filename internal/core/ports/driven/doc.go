// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - CatalogLoader: Builds the catalog from the repository directory
//   - ConfigurationLoader: Reads a project's octopus.json
//   - Fetcher: Copies or downloads artifact files
//   - TripleCodec: Parses and serializes RDF (Turtle, N-Triples, RDF/XML)
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - InstallHistoryStore: Install run history. Without it, `octopus status` has nothing to show.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
