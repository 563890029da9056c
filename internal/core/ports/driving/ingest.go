package driving

import (
	"context"

	"github.com/emsal-labs/emsal-cli/internal/core/domain"
)

// IngestService normalises raw records and writes them across the
// metadata index and the blob store in fixed-size batches.
type IngestService interface {
	// Ingest processes a slice of raw records, flushing full batches
	// as they accumulate and the remainder at the end.
	Ingest(ctx context.Context, records []domain.RawRecord) (*IngestStats, error)

	// IngestFile decodes a JSON array of raw records from a file and
	// ingests it. An undecodable file is fatal for the run.
	IngestFile(ctx context.Context, path string) (*IngestStats, error)
}

// IngestStats reports what one ingestion run did.
type IngestStats struct {
	// Processed is the number of records written to the index.
	Processed int

	// Dropped is the number of records skipped for missing ids or
	// empty legacy content. Not counted as errors.
	Dropped int

	// FailedBatches is the number of batches abandoned after a
	// storage or index write failure.
	FailedBatches int
}

// HarvestService pages through the upstream search API and feeds the
// results into ingestion.
type HarvestService interface {
	// Harvest fetches up to limit records for each query, enriching
	// each hit with full text before ingestion. Queries may be given
	// as separate arguments or comma-separated.
	Harvest(ctx context.Context, queries []string, limit int) (*HarvestStats, error)
}

// HarvestStats reports what one harvest run did.
type HarvestStats struct {
	// Fetched is the total number of records returned by the API.
	Fetched int

	// Ingest aggregates the ingestion stats across all pages.
	Ingest IngestStats
}
