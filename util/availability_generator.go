package util

import (
	"math/rand"

	"xnova-server/models/venue"
)

// CanonicalSlotTimes are the hourly marks every availability entry carries.
var CanonicalSlotTimes = []string{
	"06:00", "07:00", "08:00", "09:00", "10:00", "11:00",
	"12:00", "13:00", "14:00", "15:00", "16:00", "17:00",
	"18:00", "19:00", "20:00", "21:00", "22:00",
}

// PeakPricing raises the slot price inside [Start, End) by Multiplier.
// A Multiplier <= 1 leaves every slot at the venue base price.
type PeakPricing struct {
	Start      string
	End        string
	Multiplier float64
}

// AvailabilityGenerator fills venues with mock availability. The random source
// is injected so a fixed seed reproduces the same catalogue.
type AvailabilityGenerator struct {
	rng         *rand.Rand
	probability float64
	peak        PeakPricing
}

// NewAvailabilityGenerator builds a generator where each slot is open with the
// given probability.
func NewAvailabilityGenerator(seed int64, probability float64, peak PeakPricing) *AvailabilityGenerator {
	return &AvailabilityGenerator{
		rng:         rand.New(rand.NewSource(seed)),
		probability: probability,
		peak:        peak,
	}
}

// Generate returns one entry per date, each with the canonical slots.
func (g *AvailabilityGenerator) Generate(v venue.Venue, dates []string) []venue.Availability {
	out := make([]venue.Availability, 0, len(dates))
	for _, date := range dates {
		slots := make([]venue.TimeSlot, 0, len(CanonicalSlotTimes))
		for _, t := range CanonicalSlotTimes {
			slots = append(slots, venue.TimeSlot{
				Time:        t,
				IsAvailable: g.rng.Float64() < g.probability,
				Price:       g.priceFor(v, t),
			})
		}
		out = append(out, venue.Availability{Date: date, TimeSlots: slots})
	}
	return out
}

func (g *AvailabilityGenerator) priceFor(v venue.Venue, t string) *int64 {
	if g.peak.Multiplier <= 1 || t < g.peak.Start || t >= g.peak.End {
		return nil
	}
	// round to the nearest thousand dong
	p := int64(float64(v.BasePrice)*g.peak.Multiplier/1000+0.5) * 1000
	return &p
}

// DefaultResources are assigned to venues whose seed lists no resources.
func DefaultResources(venueType string) []venue.Resource {
	return []venue.Resource{
		{ResourceID: "field-1", Name: "Sân 1", Type: venueType},
		{ResourceID: "field-2", Name: "Sân 2", Type: venueType},
		{ResourceID: "field-3", Name: "Sân 3", Type: venueType},
	}
}
