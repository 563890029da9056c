// Package local provides the filesystem implementation of the
// BlobStore port. Each batch becomes one JSON document in the storage
// directory; the locator is the file's absolute path.
package local

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/emsal-labs/emsal-cli/internal/core/domain"
	"github.com/emsal-labs/emsal-cli/internal/core/ports/driven"
	"github.com/emsal-labs/emsal-cli/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.BlobStore = (*Store)(nil)

// Store writes batches under a single directory.
type Store struct {
	dir string
}

// NewStore creates the storage directory if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("creating blob directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// UploadBatch writes the batch as one JSON file named by timestamp and
// a short random suffix, so concurrent runs cannot collide. Returns
// the absolute path as the locator. An empty batch writes nothing.
func (s *Store) UploadBatch(_ context.Context, batch []domain.StorageObject) (string, error) {
	if len(batch) == 0 {
		return "", nil
	}

	data, err := json.MarshalIndent(batch, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding batch: %w", err)
	}

	name := fmt.Sprintf("batch_%d_%s.json", time.Now().Unix(), uuid.NewString()[:8])
	path := filepath.Join(s.dir, name)

	if err := os.WriteFile(path, data, 0600); err != nil {
		return "", fmt.Errorf("writing batch file: %w", err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving batch path: %w", err)
	}

	logger.Info("Saved batch of %d to %s", len(batch), abs)
	return abs, nil
}

// FetchFullText reads the batch file back. Any failure, including a
// locator that points nowhere, yields an empty slice.
func (s *Store) FetchFullText(_ context.Context, locator string) []domain.StorageObject {
	data, err := os.ReadFile(locator)
	if err != nil {
		logger.Warn("Reading batch %s failed: %v", locator, err)
		return nil
	}

	var batch []domain.StorageObject
	if err := json.Unmarshal(data, &batch); err != nil {
		logger.Warn("Decoding batch %s failed: %v", locator, err)
		return nil
	}
	return batch
}
