package domain

// ExtractedFields holds the bibliographic fields recovered from raw
// decision text. Every field is independently nullable; a nil field
// means the corresponding pattern did not match.
type ExtractedFields struct {
	Daire       *string
	EsasNo      *string
	KararNo     *string
	KararTarihi *string
}
