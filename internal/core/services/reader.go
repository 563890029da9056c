package services

import (
	"context"
	"fmt"
	"strconv"

	"github.com/emsal-labs/emsal-cli/internal/core/domain"
	"github.com/emsal-labs/emsal-cli/internal/core/ports/driven"
	"github.com/emsal-labs/emsal-cli/internal/core/ports/driving"
	"github.com/emsal-labs/emsal-cli/internal/logger"
)

// Ensure Reader implements the interface.
var _ driving.ReadService = (*Reader)(nil)

// Reader joins the metadata index with the blob store: searches hit
// only the index, full text is resolved lazily per decision.
type Reader struct {
	index driven.MetadataIndex
	blobs driven.BlobStore
}

// NewReader creates a reader over the configured backends.
func NewReader(index driven.MetadataIndex, blobs driven.BlobStore) *Reader {
	return &Reader{index: index, blobs: blobs}
}

// Search delegates to the index and returns the raw rows for display.
func (r *Reader) Search(ctx context.Context, filters domain.SearchFilters) ([]domain.IndexEntry, error) {
	rows, err := r.index.SearchDecisions(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("searching index: %w", err)
	}
	logger.Debug("Search returned %d rows", len(rows))
	return rows, nil
}

// ReadDecision resolves the full text for id. The locator comes from
// the supplied cache of prior search rows when possible, else from a
// fresh index query. The fetched batch is scanned linearly for the id;
// a batch that does not contain it means the index and the blob store
// have drifted, reported as ErrInconsistentData rather than a panic.
func (r *Reader) ReadDecision(ctx context.Context, id int64, cache []domain.IndexEntry) (*domain.StorageObject, error) {
	locator := locatorFromCache(cache, id)

	if locator == "" {
		rows, err := r.index.SearchDecisions(ctx, domain.SearchFilters{ID: id})
		if err != nil {
			return nil, fmt.Errorf("resolving locator for %d: %w", id, err)
		}
		if len(rows) > 0 {
			locator = rows[0].FullTextURL
		}
	}

	if locator == "" {
		return nil, fmt.Errorf("decision %d: %w", id, domain.ErrNotFound)
	}

	logger.Info("Fetching full text batch from %s", locator)
	batch := r.blobs.FetchFullText(ctx, locator)

	for i := range batch {
		if domain.IDMatches(batch[i].ID, id) {
			return &batch[i], nil
		}
	}

	return nil, fmt.Errorf("decision %d at %s: %w", id, locator, domain.ErrInconsistentData)
}

// locatorFromCache scans prior search rows for the id, comparing ids
// in string-normalised form.
func locatorFromCache(cache []domain.IndexEntry, id int64) string {
	want := strconv.FormatInt(id, 10)
	for i := range cache {
		if strconv.FormatInt(cache[i].ID, 10) == want {
			return cache[i].FullTextURL
		}
	}
	return ""
}
