// Package domain defines the core business entities for Emsal.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Decision: A judicial decision record after normalisation
//   - StorageObject: The blob-side shape of a decision (with full text)
//   - IndexEntry: The index-side shape of a decision (metadata only)
//   - RawRecord: A heterogeneous input item before classification
//   - SearchFilters: Index search criteria
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
