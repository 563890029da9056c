package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/emsal-labs/emsal-cli/internal/core/domain"
	"github.com/emsal-labs/emsal-cli/internal/core/ports/driven"
)

// --- Shared in-memory fakes for service tests ---

// fakeIndex implements driven.MetadataIndex over a map.
type fakeIndex struct {
	rows       map[int64]domain.IndexEntry
	upsertErr  error
	searchErr  error
	upserts    int
	lastUpsert []domain.IndexEntry
}

var _ driven.MetadataIndex = (*fakeIndex)(nil)

func newFakeIndex() *fakeIndex {
	return &fakeIndex{rows: make(map[int64]domain.IndexEntry)}
}

func (f *fakeIndex) UpsertMetadata(_ context.Context, entries []domain.IndexEntry) (int, error) {
	if f.upsertErr != nil {
		return 0, f.upsertErr
	}
	if len(entries) == 0 {
		return 0, nil
	}
	f.upserts++
	f.lastUpsert = entries
	for _, e := range entries {
		f.rows[e.ID] = e // full replace
	}
	return len(entries), nil
}

func (f *fakeIndex) SearchDecisions(_ context.Context, filters domain.SearchFilters) ([]domain.IndexEntry, error) {
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	var out []domain.IndexEntry
	for _, e := range f.rows {
		if filters.ID != 0 && e.ID != filters.ID {
			continue
		}
		if filters.Daire != "" {
			if e.Daire == nil || !strings.Contains(strings.ToLower(*e.Daire), strings.ToLower(filters.Daire)) {
				continue
			}
		}
		out = append(out, e)
		if len(out) >= domain.SearchLimit {
			break
		}
	}
	return out, nil
}

func (f *fakeIndex) Close() error { return nil }

// fakeBlobStore implements driven.BlobStore, one stored batch per locator.
type fakeBlobStore struct {
	batches   map[string][]domain.StorageObject
	uploadErr error
	uploads   int
}

var _ driven.BlobStore = (*fakeBlobStore)(nil)

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{batches: make(map[string][]domain.StorageObject)}
}

func (f *fakeBlobStore) UploadBatch(_ context.Context, batch []domain.StorageObject) (string, error) {
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	if len(batch) == 0 {
		return "", nil
	}
	f.uploads++
	locator := fmt.Sprintf("mem://batch_%d", f.uploads)
	stored := make([]domain.StorageObject, len(batch))
	copy(stored, batch)
	f.batches[locator] = stored
	return locator, nil
}

func (f *fakeBlobStore) FetchFullText(_ context.Context, locator string) []domain.StorageObject {
	return f.batches[locator]
}

// fakeExtractor implements driven.Extractor with canned fields.
type fakeExtractor struct {
	fields domain.ExtractedFields
	calls  int
}

var _ driven.Extractor = (*fakeExtractor)(nil)

func (f *fakeExtractor) Extract(_ string) domain.ExtractedFields {
	f.calls++
	return f.fields
}

// fakeFetcher implements driven.DecisionFetcher over canned pages.
type fakeFetcher struct {
	pages     [][]domain.RawRecord
	searchErr error
	texts     map[int64]string
	textErr   error
	searches  int
}

var _ driven.DecisionFetcher = (*fakeFetcher)(nil)

func (f *fakeFetcher) Search(_ context.Context, q domain.FetchQuery) ([]domain.RawRecord, error) {
	f.searches++
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	if q.Page-1 >= len(f.pages) {
		return nil, nil
	}
	return f.pages[q.Page-1], nil
}

func (f *fakeFetcher) FullText(_ context.Context, id int64) (string, error) {
	if f.textErr != nil {
		return "", f.textErr
	}
	return f.texts[id], nil
}

// strptr is a test helper for nullable string fields.
func strptr(s string) *string { return &s }
