// Package file provides file-based implementations of driven port interfaces.
// These adapters read and persist data on the local filesystem.
//
// Adapters:
//   - ConfigStore: TOML-based application settings (~/.octopus/config.toml)
//   - ProjectLoader: JSONC project configuration (octopus.json)
package file
