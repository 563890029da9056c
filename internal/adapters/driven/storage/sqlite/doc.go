// Package sqlite provides the embedded implementation of the
// MetadataIndex port.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation
// that requires no CGO, enabling easy cross-compilation. It mirrors the
// decisions table of the PostgreSQL variant in a single local file, so
// local mode needs no credentials and no network.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in
// the migrations/ directory.
//
// # Search Semantics
//
// SQLite has no ILIKE; LIKE is case-insensitive for ASCII only, which
// is accepted as an emulation of the PostgreSQL behaviour. Keyword
// search matches the summary OR the chamber name, a proxy for the full
// text search that is unavailable in a metadata-only file.
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking
// provided by SQLite in WAL mode.
package sqlite
