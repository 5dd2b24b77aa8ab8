package normalize

import (
	"strconv"
)

const (
	// MaxTotalResults is the largest total_results a listing reports.
	MaxTotalResults = 10000
	// MaxTotalPages is the largest total_pages a listing reports.
	MaxTotalPages = 500
)

// Listing is a single page of light records.
type Listing struct {
	Results      []*MediaSummary `json:"results"`
	Page         string          `json:"page"`
	TotalResults int             `json:"total_results"`
	TotalPages   int             `json:"total_pages"`
}

// Bound clamps the totals reported by TMDb. The page contents are left untouched.
func Bound(totalResults, totalPages int) (int, int) {
	return min(totalResults, MaxTotalResults), min(totalPages, MaxTotalPages)
}

// NewListing builds a listing page with bounded totals.
func NewListing(results []*MediaSummary, page, totalResults, totalPages int) *Listing {
	totalResults, totalPages = Bound(totalResults, totalPages)
	if results == nil {
		results = []*MediaSummary{}
	}
	return &Listing{
		Results:      results,
		Page:         pageLabel(page, totalPages),
		TotalResults: totalResults,
		TotalPages:   totalPages,
	}
}

// EmptyListing is returned when TMDb has nothing to list.
func EmptyListing(page int) *Listing {
	return NewListing(nil, page, 0, 1)
}

func pageLabel(page, totalPages int) string {
	return strconv.Itoa(page) + " of " + strconv.Itoa(totalPages)
}
