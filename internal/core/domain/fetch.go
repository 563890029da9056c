package domain

// FetchQuery describes one page request against the upstream search API.
type FetchQuery struct {
	// Keyword is the free-text search term.
	Keyword string

	// Daire filters by chamber. Empty means all chambers.
	Daire string

	// Year filters by decision year (as the API expects it, a string).
	Year string

	// StartDate and EndDate bound the decision date, ISO form.
	StartDate string
	EndDate   string

	// PageSize is the number of records per page.
	PageSize int

	// Page is the 1-based page number.
	Page int
}
