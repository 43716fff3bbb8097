package models

// DefaultMaxPrice is the price slider's upper bound; a ceiling at or above it
// is not reported as an active filter.
const DefaultMaxPrice int64 = 1000000

// SortKey selects an optional ordering of filter results.
type SortKey string

const (
	SortNone        SortKey = ""
	SortPriceAsc    SortKey = "price_asc"
	SortPriceDesc   SortKey = "price_desc"
	SortRatingDesc  SortKey = "rating_desc"
	SortDistanceAsc SortKey = "distance_asc"
)

// Valid reports whether k is a known sort key.
func (k SortKey) Valid() bool {
	switch k {
	case SortNone, SortPriceAsc, SortPriceDesc, SortRatingDesc, SortDistanceAsc:
		return true
	}
	return false
}

// FilterCriteria is the set of predicates applied to the venue catalogue.
// Empty string fields and zero numbers mean the predicate is inactive.
type FilterCriteria struct {
	SelectedDate string       `json:"selected_date"`
	MaxPrice     *int64       `json:"max_price,omitempty"`
	VenueType    string       `json:"venue_type,omitempty"`
	Location     string       `json:"location,omitempty"`
	Amenities    []string     `json:"amenities,omitempty"`
	MinRating    float64      `json:"min_rating,omitempty"`
	Search       string       `json:"search,omitempty"`
	Time         TimeSelector `json:"time"`
	SortBy       SortKey      `json:"sort_by,omitempty"`
}

// ActiveCount counts the refining filters currently set. The date, the
// free-text search and the sort order are not counted.
func (c FilterCriteria) ActiveCount() int {
	n := 0
	if c.VenueType != "" {
		n++
	}
	if c.Location != "" {
		n++
	}
	if !c.Time.IsAny() {
		n++
	}
	if len(c.Amenities) > 0 {
		n++
	}
	if c.MinRating > 0 {
		n++
	}
	if c.MaxPrice != nil && *c.MaxPrice < DefaultMaxPrice {
		n++
	}
	return n
}

// Cleared resets every filter and the search term but keeps the selected date.
func (c FilterCriteria) Cleared() FilterCriteria {
	return FilterCriteria{SelectedDate: c.SelectedDate}
}
