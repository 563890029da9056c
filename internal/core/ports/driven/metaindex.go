package driven

import (
	"context"

	"github.com/emsal-labs/emsal-cli/internal/core/domain"
)

// MetadataIndex is durable, searchable storage for decision metadata.
// Two implementations share this contract: a PostgreSQL variant
// (network connection, native case-insensitive matching) and an
// embedded SQLite variant (local file, emulated case folding).
type MetadataIndex interface {
	// UpsertMetadata inserts each entry or, on id conflict, fully
	// replaces the existing row. There is no field-level merge: a
	// conflicting write with nil fields overwrites previously non-nil
	// values. Empty input is a no-op returning 0.
	// Returns the number of entries written.
	UpsertMetadata(ctx context.Context, entries []domain.IndexEntry) (int, error)

	// SearchDecisions returns up to domain.SearchLimit rows matching
	// all supplied filters. No filters means up to SearchLimit
	// arbitrary rows in backend default ordering.
	SearchDecisions(ctx context.Context, filters domain.SearchFilters) ([]domain.IndexEntry, error)

	// Close releases the underlying connection or file handle.
	Close() error
}
