package mcp

import (
	"context"

	"github.com/emsal-labs/emsal-cli/internal/core/domain"
	"github.com/emsal-labs/emsal-cli/internal/core/ports/driving"
)

// mockReadService is a mock implementation of driving.ReadService.
type mockReadService struct {
	entries     []domain.IndexEntry
	object      *domain.StorageObject
	lastFilters domain.SearchFilters
	lastID      int64
	err         error
}

func (m *mockReadService) Search(_ context.Context, filters domain.SearchFilters) ([]domain.IndexEntry, error) {
	m.lastFilters = filters
	return m.entries, m.err
}

func (m *mockReadService) ReadDecision(_ context.Context, id int64, _ []domain.IndexEntry) (*domain.StorageObject, error) {
	m.lastID = id
	return m.object, m.err
}

// mockHarvestService is a mock implementation of driving.HarvestService.
type mockHarvestService struct {
	stats       *driving.HarvestStats
	lastQueries []string
	lastLimit   int
	err         error
}

func (m *mockHarvestService) Harvest(_ context.Context, queries []string, limit int) (*driving.HarvestStats, error) {
	m.lastQueries = queries
	m.lastLimit = limit
	return m.stats, m.err
}
