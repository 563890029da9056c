package domain

// SearchLimit is the maximum number of rows any index search returns.
// There is no pagination beyond this cap.
const SearchLimit = 20

// SearchFilters narrows an index search. All filters are optional and
// combined with AND when present; the zero value matches everything
// (up to SearchLimit rows in backend default ordering).
type SearchFilters struct {
	// ID matches a record exactly.
	ID int64

	// Daire is a case-insensitive substring match on the chamber name.
	Daire string

	// EsasNo is an exact match on the case filing number.
	EsasNo string

	// KararNo is an exact match on the decision number.
	KararNo string

	// Keyword is a case-insensitive substring match against the summary.
	Keyword string

	// Year bounds the decision date to [Year-01-01, Year-12-31].
	Year int

	// StartDate is an inclusive lower bound on the decision date (ISO form).
	StartDate string

	// EndDate is an inclusive upper bound on the decision date (ISO form).
	EndDate string
}

// IsZero reports whether no filter is set.
func (f SearchFilters) IsZero() bool {
	return f == SearchFilters{}
}
