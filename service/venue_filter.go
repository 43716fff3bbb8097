package services

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"xnova-server/models"
	"xnova-server/models/venue"
)

// FilterVenues reduces venues to those passing every active predicate of c,
// each paired with its matching slots. Catalogue order is kept unless c asks
// for a sort, which is stable. When nothing matches the result is an empty slice.
func FilterVenues(venues []venue.Venue, c models.FilterCriteria) []models.VenueMatch {
	search := strings.ToLower(strings.TrimSpace(c.Search))
	matches := make([]models.VenueMatch, 0, len(venues))

	for _, v := range venues {
		if !matchesAttributes(v, c, search) {
			continue
		}

		// the date gate runs before the time and price predicates
		open := v.AvailableSlots(c.SelectedDate)
		if len(open) == 0 {
			continue
		}

		slots := make([]venue.TimeSlot, 0, len(open))
		for _, s := range open {
			if c.Time.Matches(s.Time) {
				slots = append(slots, s)
			}
		}
		if len(slots) == 0 {
			continue
		}

		if c.MaxPrice != nil && !anyWithin(v, slots, *c.MaxPrice) {
			continue
		}

		matches = append(matches, models.VenueMatch{Venue: v, Slots: slots})
	}

	sortMatches(matches, c.SortBy)
	return matches
}

func matchesAttributes(v venue.Venue, c models.FilterCriteria, search string) bool {
	if search != "" &&
		!strings.Contains(strings.ToLower(v.VenueName), search) &&
		!strings.Contains(strings.ToLower(v.VenueLocation), search) &&
		!strings.Contains(strings.ToLower(v.VenueType), search) {
		return false
	}
	if c.VenueType != "" && v.VenueType != c.VenueType {
		return false
	}
	if c.Location != "" && !strings.Contains(v.VenueLocation, c.Location) {
		return false
	}
	if !v.HasAmenities(c.Amenities) {
		return false
	}
	return v.Rating >= c.MinRating
}

// anyWithin reports whether at least one slot is priced at or under ceiling.
func anyWithin(v venue.Venue, slots []venue.TimeSlot, ceiling int64) bool {
	for _, s := range slots {
		if v.EffectivePrice(s) <= ceiling {
			return true
		}
	}
	return false
}

func sortMatches(matches []models.VenueMatch, key models.SortKey) {
	var less func(a, b models.VenueMatch) bool
	switch key {
	case models.SortPriceAsc:
		less = func(a, b models.VenueMatch) bool { return a.MinPrice() < b.MinPrice() }
	case models.SortPriceDesc:
		less = func(a, b models.VenueMatch) bool { return a.MinPrice() > b.MinPrice() }
	case models.SortRatingDesc:
		less = func(a, b models.VenueMatch) bool { return a.Venue.Rating > b.Venue.Rating }
	case models.SortDistanceAsc:
		less = func(a, b models.VenueMatch) bool {
			return ParseDistance(a.Venue.VenueDistance) < ParseDistance(b.Venue.VenueDistance)
		}
	default:
		return
	}
	sort.SliceStable(matches, func(i, j int) bool { return less(matches[i], matches[j]) })
}

// ParseDistance reads the leading number of a distance label such as
// "1.2 km". Labels without one sort last.
func ParseDistance(label string) float64 {
	label = strings.TrimSpace(label)
	end := strings.IndexFunc(label, func(r rune) bool {
		return !unicode.IsDigit(r) && r != '.' && r != ','
	})
	if end == -1 {
		end = len(label)
	}
	num := strings.ReplaceAll(label[:end], ",", ".")
	d, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return math.Inf(1)
	}
	return d
}

// AvailableTimes is the sorted union of open slot times across venues on date.
func AvailableTimes(venues []venue.Venue, date string) []string {
	seen := make(map[string]struct{})
	for _, v := range venues {
		for _, s := range v.AvailableSlots(date) {
			seen[s.Time] = struct{}{}
		}
	}
	times := make([]string, 0, len(seen))
	for t := range seen {
		times = append(times, t)
	}
	sort.Strings(times)
	return times
}
