// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - MetadataIndex: Searchable decision metadata persistence
//   - BlobStore: Full-content batch persistence behind an opaque locator
//   - DecisionFetcher: The upstream search and document APIs
//   - Extractor: Pattern-based bibliographic field extraction
//
// Exactly one MetadataIndex and one BlobStore implementation is chosen
// at construction time from the configured mode (remote or local).
// All call sites depend only on the interface.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or connector package
package driven
