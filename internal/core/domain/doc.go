// Package domain defines the core business entities for Maildeck's
// configuration subsystem.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Entry: A typed configuration value (tagged union)
//   - Kind: The type tag of an Entry
//   - ChangeEvent: A notification describing a store mutation
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
