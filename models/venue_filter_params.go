package models

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Query args understood by FromValues and produced by ToValues.
const (
	DATE_QUERY_ARG       = "date"
	SEARCH_QUERY_ARG     = "search"
	TYPE_QUERY_ARG       = "type"
	LOCATION_QUERY_ARG   = "location"
	AMENITIES_QUERY_ARG  = "amenities"
	MIN_RATING_QUERY_ARG = "min_rating"
	MAX_PRICE_QUERY_ARG  = "max_price"
	TIME_QUERY_ARG       = "time"
	SORT_QUERY_ARG       = "sort"
	CLEAR_QUERY_ARG      = "clear"
)

var ErrInvalidFilter = errors.New("invalid filter")

// Legacy "filter inactive" labels still sent by older clients. They are
// folded into the empty value here and nowhere else.
var inactiveLabels = map[string]struct{}{
	"tất cả thể loại": {},
	"tất cả khu vực":  {},
	"mọi khung giờ":   {},
	"all":             {},
	"any":             {},
}

func normalize(raw string) string {
	v := strings.TrimSpace(raw)
	if _, ok := inactiveLabels[strings.ToLower(v)]; ok {
		return ""
	}
	return v
}

// FromValues decodes FilterCriteria from query args. A missing date is left
// empty for the caller to default. With clear=true every filter is dropped
// and only the date is kept.
func FromValues(q url.Values) (FilterCriteria, error) {
	c := FilterCriteria{
		SelectedDate: strings.TrimSpace(q.Get(DATE_QUERY_ARG)),
		Search:       strings.TrimSpace(q.Get(SEARCH_QUERY_ARG)),
		VenueType:    normalize(q.Get(TYPE_QUERY_ARG)),
		Location:     normalize(q.Get(LOCATION_QUERY_ARG)),
		SortBy:       SortKey(strings.TrimSpace(q.Get(SORT_QUERY_ARG))),
	}
	if clear, _ := strconv.ParseBool(q.Get(CLEAR_QUERY_ARG)); clear {
		return c.Cleared(), nil
	}

	for _, raw := range q[AMENITIES_QUERY_ARG] {
		for _, a := range strings.Split(raw, ",") {
			if a = strings.TrimSpace(a); a != "" {
				c.Amenities = append(c.Amenities, a)
			}
		}
	}

	if s := q.Get(MIN_RATING_QUERY_ARG); s != "" {
		r, err := strconv.ParseFloat(s, 64)
		if err != nil || r < 0 || r > 5 {
			return FilterCriteria{}, fmt.Errorf("%w: %s=%q", ErrInvalidFilter, MIN_RATING_QUERY_ARG, s)
		}
		c.MinRating = r
	}

	if s := q.Get(MAX_PRICE_QUERY_ARG); s != "" {
		p, err := strconv.ParseInt(s, 10, 64)
		if err != nil || p < 0 {
			return FilterCriteria{}, fmt.Errorf("%w: %s=%q", ErrInvalidFilter, MAX_PRICE_QUERY_ARG, s)
		}
		c.MaxPrice = &p
	}

	ts, err := ParseTimeSelector(normalize(q.Get(TIME_QUERY_ARG)))
	if err != nil {
		return FilterCriteria{}, err
	}
	c.Time = ts

	if !c.SortBy.Valid() {
		return FilterCriteria{}, fmt.Errorf("%w: %s=%q", ErrInvalidFilter, SORT_QUERY_ARG, c.SortBy)
	}
	return c, nil
}

// ToValues encodes the active parts of c as query args.
func (c FilterCriteria) ToValues() url.Values {
	q := url.Values{}

	if c.SelectedDate != "" {
		q.Set(DATE_QUERY_ARG, c.SelectedDate)
	}
	if c.Search != "" {
		q.Set(SEARCH_QUERY_ARG, c.Search)
	}
	if c.VenueType != "" {
		q.Set(TYPE_QUERY_ARG, c.VenueType)
	}
	if c.Location != "" {
		q.Set(LOCATION_QUERY_ARG, c.Location)
	}
	if len(c.Amenities) > 0 {
		q.Set(AMENITIES_QUERY_ARG, strings.Join(c.Amenities, ","))
	}
	if c.MinRating > 0 {
		q.Set(MIN_RATING_QUERY_ARG, ftoa(c.MinRating))
	}
	if c.MaxPrice != nil {
		q.Set(MAX_PRICE_QUERY_ARG, strconv.FormatInt(*c.MaxPrice, 10))
	}
	if !c.Time.IsAny() {
		q.Set(TIME_QUERY_ARG, c.Time.String())
	}
	if c.SortBy != SortNone {
		q.Set(SORT_QUERY_ARG, string(c.SortBy))
	}
	return q
}

func ftoa(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }
