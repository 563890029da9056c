// Package extract recovers bibliographic fields from raw decision text.
//
// Decision bodies open with a header line naming the chamber and the
// case and decision numbers, and close with a dated ruling formula:
//
//	"14. Hukuk Dairesi  2011/2628  E., 2011/3698  K."
//	"23.03.2011 tarihinde oybirliği ile karar verildi"
//
// Extraction is pattern-based and best-effort. Only the first match of
// each pattern is used: when a body concatenates several decisions,
// only the leading header is captured. That is a known limitation of
// the source material, not something to paper over with heuristics.
package extract

import (
	"regexp"
	"strings"
	"time"

	"github.com/emsal-labs/emsal-cli/internal/core/domain"
	"github.com/emsal-labs/emsal-cli/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Pre-compiled patterns. The header pattern tolerates arbitrary
// whitespace and newlines between the chamber name and the numbers.
var (
	headerPattern = regexp.MustCompile(`(?is)([0-9]+\.\s+[a-zA-Z\s]+Dairesi).*?(\d{4}/\d+)\s*E\..*?(\d{4}/\d+)\s*K\.`)
	datePattern   = regexp.MustCompile(`(\d{2}\.\d{2}\.\d{4})\s+tarihinde`)
	markupTags    = regexp.MustCompile(`<[^>]+>`)
)

// Extractor is the pattern-based field extractor.
type Extractor struct{}

// New creates a new extractor.
func New() *Extractor {
	return &Extractor{}
}

// Extract pulls chamber, case numbers and decision date out of text.
// Unmatched fields stay nil; Extract never fails.
func (e *Extractor) Extract(text string) domain.ExtractedFields {
	clean := Normalise(text)

	var fields domain.ExtractedFields

	if m := headerPattern.FindStringSubmatch(clean); m != nil {
		daire := strings.TrimSpace(m[1])
		esas := strings.TrimSpace(m[2])
		karar := strings.TrimSpace(m[3])
		fields.Daire = &daire
		fields.EsasNo = &esas
		fields.KararNo = &karar
	}

	if m := datePattern.FindStringSubmatch(clean); m != nil {
		// DD.MM.YYYY to ISO. An impossible calendar date leaves the
		// field nil rather than propagating an error.
		if t, err := time.Parse("02.01.2006", m[1]); err == nil {
			iso := t.Format("2006-01-02")
			fields.KararTarihi = &iso
		}
	}

	return fields
}

// Normalise strips markup tags and collapses exotic whitespace so the
// patterns see one flat line of text. Applying it to already-normalised
// text is a no-op, which keeps Extract idempotent.
func Normalise(text string) string {
	clean := strings.ReplaceAll(text, " ", " ")
	clean = strings.ReplaceAll(clean, "&nbsp;", " ")
	clean = markupTags.ReplaceAllString(clean, " ")
	return clean
}
