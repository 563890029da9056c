package domain

import (
	"encoding/json"
	"strconv"
	"strings"
)

// RecordKind classifies a raw input record once at the ingestion boundary.
type RecordKind int

const (
	// KindInvalid marks a record with no usable id. Dropped silently.
	KindInvalid RecordKind = iota

	// KindStructured marks a record that already carries bibliographic
	// fields, typically fetched from the live search API.
	KindStructured

	// KindLegacy marks a record carrying only raw content, requiring
	// pattern-based metadata extraction.
	KindLegacy
)

// RawRecord is a heterogeneous input item before normalisation.
// It can come from the live API (structured) or from a legacy dump
// (content only). Field presence decides the kind, once, in Classify.
type RawRecord struct {
	ID           json.Number `json:"id"`
	Daire        *string     `json:"daire,omitempty"`
	EsasNo       *string     `json:"esasNo,omitempty"`
	KararNo      *string     `json:"kararNo,omitempty"`
	KararTarihi  *string     `json:"kararTarihi,omitempty"`
	Content      string      `json:"icerik_ham,omitempty"`
	Ozet         string      `json:"ai_ozet,omitempty"`
	SearchedTerm string      `json:"arananKelime,omitempty"`
}

// NumericID returns the record id as a positive integer.
// The second return is false when the id is missing or non-numeric.
func (r *RawRecord) NumericID() (int64, bool) {
	s := strings.TrimSpace(r.ID.String())
	if s == "" {
		return 0, false
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// Classify tags the record as structured, legacy or invalid.
// Structured records carry at least a chamber and a case number;
// everything else with content falls through to legacy extraction.
func (r *RawRecord) Classify() RecordKind {
	if _, ok := r.NumericID(); !ok {
		return KindInvalid
	}
	if r.Daire != nil && r.EsasNo != nil {
		return KindStructured
	}
	return KindLegacy
}
