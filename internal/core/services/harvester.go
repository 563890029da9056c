package services

import (
	"context"
	"strings"

	"github.com/emsal-labs/emsal-cli/internal/core/domain"
	"github.com/emsal-labs/emsal-cli/internal/core/ports/driven"
	"github.com/emsal-labs/emsal-cli/internal/core/ports/driving"
	"github.com/emsal-labs/emsal-cli/internal/logger"
)

// Ensure Harvester implements the interface.
var _ driving.HarvestService = (*Harvester)(nil)

// Harvester pages through the upstream search API, enriches each hit
// with its full text and hands every page to the uploader. The whole
// run is strictly sequential: one page is fetched, enriched and
// ingested before the next page is requested. Politeness pacing
// between API calls lives in the connector.
type Harvester struct {
	fetcher  driven.DecisionFetcher
	ingester driving.IngestService
	pageSize int
}

// NewHarvester creates a harvester. pageSize <= 0 selects 50.
func NewHarvester(fetcher driven.DecisionFetcher, ingester driving.IngestService, pageSize int) *Harvester {
	if pageSize <= 0 {
		pageSize = 50
	}
	return &Harvester{
		fetcher:  fetcher,
		ingester: ingester,
		pageSize: pageSize,
	}
}

// Harvest fetches up to limit records for each query. Queries may be
// given as separate arguments or comma-separated; both forms are
// flattened. A search failure stops the affected query only; a full
// text failure keeps the record with empty content, since structured
// hits still carry their bibliographic fields.
func (h *Harvester) Harvest(ctx context.Context, queries []string, limit int) (*driving.HarvestStats, error) {
	stats := &driving.HarvestStats{}

	for _, query := range flattenQueries(queries) {
		logger.Section("Harvest: " + query)

		fetched := 0
		for page := 1; fetched < limit; page++ {
			select {
			case <-ctx.Done():
				return stats, ctx.Err()
			default:
			}

			records, err := h.fetcher.Search(ctx, domain.FetchQuery{
				Keyword:  query,
				PageSize: h.pageSize,
				Page:     page,
			})
			if err != nil {
				logger.Warn("Search for %q page %d failed, stopping this query: %v", query, page, err)
				break
			}
			if len(records) == 0 {
				logger.Info("No more results for %q", query)
				break
			}

			h.enrich(ctx, records, query)

			pageStats, err := h.ingester.Ingest(ctx, records)
			if err != nil {
				return stats, err
			}
			stats.Ingest.Processed += pageStats.Processed
			stats.Ingest.Dropped += pageStats.Dropped
			stats.Ingest.FailedBatches += pageStats.FailedBatches

			fetched += len(records)
			stats.Fetched += len(records)
		}
	}

	return stats, nil
}

// enrich downloads the full text for every record on a page.
func (h *Harvester) enrich(ctx context.Context, records []domain.RawRecord, query string) {
	for i := range records {
		records[i].SearchedTerm = query

		id, ok := records[i].NumericID()
		if !ok {
			continue
		}

		text, err := h.fetcher.FullText(ctx, id)
		if err != nil {
			logger.Warn("Full text for %d failed, keeping metadata only: %v", id, err)
			continue
		}
		records[i].Content = text
	}
}

// flattenQueries splits comma-separated terms and drops blanks.
func flattenQueries(queries []string) []string {
	var out []string
	for _, q := range queries {
		for _, part := range strings.Split(q, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
