package driven

import "github.com/emsal-labs/emsal-cli/internal/core/domain"

// Extractor pulls bibliographic fields out of raw decision text.
// Extraction is best-effort: unmatched fields stay nil and extraction
// never fails the pipeline.
type Extractor interface {
	Extract(text string) domain.ExtractedFields
}
