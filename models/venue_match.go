package models

import "xnova-server/models/venue"

// VenueMatch pairs a venue with the slots that survived filtering.
type VenueMatch struct {
	Venue venue.Venue
	Slots []venue.TimeSlot
}

// PriceRange summarises the effective prices of the matched slots.
func (m VenueMatch) PriceRange() (venue.PriceRange, bool) {
	return m.Venue.PriceRangeOf(m.Slots)
}

// MinPrice is the cheapest effective price among the matched slots.
func (m VenueMatch) MinPrice() int64 {
	pr, _ := m.PriceRange()
	return pr.Min
}

// Times lists the "HH:MM" marks of the matched slots.
func (m VenueMatch) Times() []string {
	times := make([]string, len(m.Slots))
	for i, s := range m.Slots {
		times[i] = s.Time
	}
	return times
}
