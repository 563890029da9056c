package driving

import (
	"context"

	"github.com/emsal-labs/emsal-cli/internal/core/domain"
)

// ReadService resolves search hits and lazily fetches full text.
type ReadService interface {
	// Search delegates to the metadata index and returns the raw rows.
	Search(ctx context.Context, filters domain.SearchFilters) ([]domain.IndexEntry, error)

	// ReadDecision resolves the locator for id (from the optional
	// cache of prior search rows, else a fresh index query) and scans
	// the fetched batch for the record. Returns domain.ErrNotFound
	// when no locator exists and domain.ErrInconsistentData when the
	// batch does not contain the id.
	ReadDecision(ctx context.Context, id int64, cache []domain.IndexEntry) (*domain.StorageObject, error)
}
