// Package hub provides the remote implementation of the BlobStore
// port, backed by a dataset repository on a Hugging Face style hub.
// Batches are committed as JSON files under data/ in the repository;
// the locator is the raw resolve URL of the committed file.
package hub

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/emsal-labs/emsal-cli/internal/core/domain"
	"github.com/emsal-labs/emsal-cli/internal/core/ports/driven"
	"github.com/emsal-labs/emsal-cli/internal/logger"
)

// DefaultTimeout is the HTTP request timeout for hub calls.
const DefaultTimeout = 60 * time.Second

// Ensure Store implements the interface.
var _ driven.BlobStore = (*Store)(nil)

// Store talks to one dataset repository with one token.
type Store struct {
	baseURL string
	repoID  string
	client  *http.Client
}

// NewStore creates a hub store. The token authenticates both the
// commit call and fetches from private repositories.
func NewStore(baseURL, repoID, token string) *Store {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	client := oauth2.NewClient(context.Background(), ts)
	client.Timeout = DefaultTimeout

	return &Store{
		baseURL: baseURL,
		repoID:  repoID,
		client:  client,
	}
}

// commitOperation is one line of the NDJSON commit payload.
type commitOperation struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
}

// UploadBatch commits the batch as one JSON file and returns its
// resolve URL. The path mixes a timestamp with a random suffix so
// concurrent runs never collide. An empty batch performs no call.
func (s *Store) UploadBatch(ctx context.Context, batch []domain.StorageObject) (string, error) {
	if len(batch) == 0 {
		return "", nil
	}

	content, err := json.MarshalIndent(batch, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding batch: %w", err)
	}

	path := fmt.Sprintf("data/batch_%d_%s.json", time.Now().Unix(), uuid.NewString()[:8])

	var payload bytes.Buffer
	enc := json.NewEncoder(&payload)
	ops := []commitOperation{
		{Key: "header", Value: map[string]string{"summary": "Upload " + path}},
		{Key: "file", Value: map[string]string{
			"path":     path,
			"content":  base64.StdEncoding.EncodeToString(content),
			"encoding": "base64",
		}},
	}
	for _, op := range ops {
		if err := enc.Encode(op); err != nil {
			return "", fmt.Errorf("encoding commit payload: %w", err)
		}
	}

	url := fmt.Sprintf("%s/api/datasets/%s/commit/main", s.baseURL, s.repoID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &payload)
	if err != nil {
		return "", fmt.Errorf("building commit request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-ndjson")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("committing batch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("committing batch: hub returned %d: %s", resp.StatusCode, body)
	}

	locator := fmt.Sprintf("%s/datasets/%s/resolve/main/%s", s.baseURL, s.repoID, path)
	logger.Info("Uploaded batch of %d to %s", len(batch), path)
	return locator, nil
}

// FetchFullText downloads and decodes a committed batch file.
// Any transport, status or parse failure yields an empty slice.
func (s *Store) FetchFullText(ctx context.Context, locator string) []domain.StorageObject {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, locator, nil)
	if err != nil {
		logger.Warn("Building fetch request for %s failed: %v", locator, err)
		return nil
	}

	resp, err := s.client.Do(req)
	if err != nil {
		logger.Warn("Fetching %s failed: %v", locator, err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Warn("Fetching %s returned %d", locator, resp.StatusCode)
		return nil
	}

	var batch []domain.StorageObject
	if err := json.NewDecoder(resp.Body).Decode(&batch); err != nil {
		logger.Warn("Decoding %s failed: %v", locator, err)
		return nil
	}
	return batch
}
