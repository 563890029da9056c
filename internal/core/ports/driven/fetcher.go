package driven

import (
	"context"

	"github.com/emsal-labs/emsal-cli/internal/core/domain"
)

// DecisionFetcher is the upstream search API behind a narrow port.
// The HTTP details (payload nesting, headers, politeness pacing) live
// entirely in the connector; core only sees records and text.
type DecisionFetcher interface {
	// Search fetches one page of decision records for a query.
	// An empty page means the result set is exhausted.
	Search(ctx context.Context, query domain.FetchQuery) ([]domain.RawRecord, error)

	// FullText fetches the full decision text by id, with markup
	// stripped and whitespace normalised.
	FullText(ctx context.Context, id int64) (string, error)
}
