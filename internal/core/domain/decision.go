package domain

import (
	"strconv"
	"strings"
)

// OzetMaxLen is the maximum summary length in runes before truncation.
const OzetMaxLen = 250

// Decision represents a judicial decision record after normalisation.
// It is the canonical form flowing through the ingestion pipeline.
type Decision struct {
	// ID is the unique record identifier assigned by the upstream API.
	ID int64

	// Daire is the chamber that issued the decision.
	Daire *string

	// EsasNo is the case filing number in YYYY/NNN form.
	EsasNo *string

	// KararNo is the decision number in YYYY/NNN form.
	KararNo *string

	// KararTarihi is the decision date in ISO YYYY-MM-DD form.
	KararTarihi *string

	// Ozet is the summary, truncated to OzetMaxLen runes.
	Ozet string

	// FullTextURL is the locator of the blob batch holding the full text.
	// Set only after a successful batch upload.
	FullTextURL string

	// Content is the full decision text. Stored in the blob only,
	// never in the metadata index.
	Content string
}

// StorageObject is the blob-side representation of a decision.
// One batch upload serialises a slice of these as a single JSON document.
// JSON field names match the upstream API wire shape.
type StorageObject struct {
	ID           string  `json:"id"`
	Daire        *string `json:"daire"`
	EsasNo       *string `json:"esasNo"`
	KararNo      *string `json:"kararNo"`
	KararTarihi  *string `json:"kararTarihi"`
	Content      string  `json:"icerik_ham"`
	Ozet         string  `json:"ai_ozet"`
	SearchedTerm string  `json:"arananKelime,omitempty"`
}

// IndexEntry is the index-side representation of a decision.
// It carries no content; full text is reached through FullTextURL.
type IndexEntry struct {
	ID          int64   `json:"id"`
	Daire       *string `json:"daire"`
	EsasNo      *string `json:"esas_no"`
	KararNo     *string `json:"karar_no"`
	KararTarihi *string `json:"karar_tarihi"`
	Ozet        string  `json:"ozet"`
	FullTextURL string  `json:"full_text_url"`
}

// TruncateOzet shortens a summary to OzetMaxLen runes, appending an
// ellipsis marker when truncation occurred.
func TruncateOzet(s string) string {
	runes := []rune(s)
	if len(runes) <= OzetMaxLen {
		return s
	}
	return string(runes[:OzetMaxLen]) + "..."
}

// IDMatches compares a record id against a requested id using
// string normalisation, so "42" matches 42 regardless of source type.
func IDMatches(recordID string, want int64) bool {
	return strings.TrimSpace(recordID) == strconv.FormatInt(want, 10)
}
