// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The Resolver computes requirement closures, the Converter transcodes
// artifacts through a driven.TripleCodec and the Installer ties both to a
// driven.Fetcher. Services never touch the network or a parser directly.
package services
