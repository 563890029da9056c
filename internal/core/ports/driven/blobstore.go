package driven

import (
	"context"

	"github.com/emsal-labs/emsal-cli/internal/core/domain"
)

// BlobStore persists full-content batches as single JSON documents.
// Two implementations share this contract: a remote dataset-hub store
// (network call, requires an auth token) and a local filesystem store
// (the locator is a file path).
//
// Callers must treat the returned locator as opaque. It is resolvable
// only by the FetchFullText of the backend that produced it.
type BlobStore interface {
	// UploadBatch serialises the batch as one JSON document and writes
	// it under a name derived from a timestamp and a short random
	// suffix. Returns the locator for the whole batch.
	// An empty batch returns an empty locator without writing.
	UploadBatch(ctx context.Context, batch []domain.StorageObject) (string, error)

	// FetchFullText retrieves and deserialises the batch addressed by
	// locator. Any I/O or parse failure yields an empty slice; the
	// read path treats that as "not found", never as a crash.
	FetchFullText(ctx context.Context, locator string) []domain.StorageObject
}
