package services

import (
	"math"
	"testing"

	"xnova-server/models"
	"xnova-server/models/venue"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const day = "2026-10-15"

func price(p int64) *int64 { return &p }

func slots(open ...string) []venue.TimeSlot {
	isOpen := make(map[string]bool, len(open))
	for _, t := range open {
		isOpen[t] = true
	}
	out := make([]venue.TimeSlot, 0, 17)
	for h := 6; h <= 22; h++ {
		t := []byte("00:00")
		t[0], t[1] = byte('0'+h/10), byte('0'+h%10)
		out = append(out, venue.TimeSlot{Time: string(t), IsAvailable: isOpen[string(t)]})
	}
	return out
}

func catalogue() []venue.Venue {
	return []venue.Venue{
		{
			VenueID: "1", VenueName: "Sân Cầu Lông Premium Quận 1", VenueLocation: "Quận 1, TP.HCM",
			VenueDistance: "1.2 km", VenueType: "Cầu lông", Rating: 4.8, BasePrice: 200000,
			Amenities:    []string{"wifi", "parking", "camera", "ac"},
			Availability: []venue.Availability{{Date: day, TimeSlots: slots("06:00", "08:00", "09:00", "10:00")}},
		},
		{
			VenueID: "2", VenueName: "Sân Bóng Đá Mini Phú Mỹ Hưng", VenueLocation: "Quận 7, TP.HCM",
			VenueDistance: "2.5 km", VenueType: "Bóng đá", Rating: 4.6, BasePrice: 350000,
			Amenities:    []string{"wifi", "parking", "free-water"},
			Availability: []venue.Availability{{Date: day, TimeSlots: slots("18:00", "19:00")}},
		},
		{
			VenueID: "3", VenueName: "Sân Tennis Landmark 81", VenueLocation: "Quận 2, TP.HCM",
			VenueDistance: "3.1 km", VenueType: "Tennis", Rating: 4.9, BasePrice: 180000,
			Amenities:    []string{"wifi", "parking", "camera", "ac", "free-water"},
			Availability: []venue.Availability{{Date: day, TimeSlots: slots("07:00", "20:00")}},
		},
		{
			// every slot closed on the day
			VenueID: "4", VenueName: "Sân Bóng Rổ Thảo Điền", VenueLocation: "Quận 2, TP.HCM",
			VenueDistance: "4.2 km", VenueType: "Bóng rổ", Rating: 4.7, BasePrice: 220000,
			Amenities:    []string{"wifi", "parking", "ac"},
			Availability: []venue.Availability{{Date: day, TimeSlots: slots()}},
		},
		{
			// no entry for the day at all
			VenueID: "5", VenueName: "Sân Cầu Lông Bình Thạnh", VenueLocation: "Quận Bình Thạnh, TP.HCM",
			VenueDistance: "3.8 km", VenueType: "Cầu lông", Rating: 4.5, BasePrice: 160000,
			Amenities:    []string{"parking", "camera", "free-water"},
			Availability: []venue.Availability{{Date: "2026-10-16", TimeSlots: slots("06:00")}},
		},
		{
			VenueID: "8", VenueName: "Sân Tennis Quận 1 Premium", VenueLocation: "Quận 1, TP.HCM",
			VenueDistance: "", VenueType: "Tennis", Rating: 4.9, BasePrice: 250000,
			Amenities: []string{"wifi", "parking", "camera", "ac", "free-water"},
			Availability: []venue.Availability{{Date: day, TimeSlots: []venue.TimeSlot{
				{Time: "06:00", IsAvailable: true, Price: price(150000)},
				{Time: "18:00", IsAvailable: true, Price: price(300000)},
			}}},
		},
	}
}

func ids(matches []models.VenueMatch) []string {
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.Venue.VenueID
	}
	return out
}

func TestFilterVenues_Predicates(t *testing.T) {
	ceiling := int64(190000)
	tight := int64(100000)

	tests := []struct {
		name     string
		criteria models.FilterCriteria
		want     []string
	}{
		{
			name:     "no refinements keeps venues with an open slot on the date",
			criteria: models.FilterCriteria{SelectedDate: day},
			want:     []string{"1", "2", "3", "8"},
		},
		{
			name:     "search ignores case",
			criteria: models.FilterCriteria{SelectedDate: day, Search: "tennis"},
			want:     []string{"3", "8"},
		},
		{
			name:     "search hits location",
			criteria: models.FilterCriteria{SelectedDate: day, Search: "quận 7"},
			want:     []string{"2"},
		},
		{
			name:     "type is exact",
			criteria: models.FilterCriteria{SelectedDate: day, VenueType: "Cầu lông"},
			want:     []string{"1"},
		},
		{
			name:     "location is a substring",
			criteria: models.FilterCriteria{SelectedDate: day, Location: "Quận 1"},
			want:     []string{"1", "8"},
		},
		{
			name:     "all amenities required",
			criteria: models.FilterCriteria{SelectedDate: day, Amenities: []string{"ac", "free-water"}},
			want:     []string{"3", "8"},
		},
		{
			name:     "rating floor",
			criteria: models.FilterCriteria{SelectedDate: day, MinRating: 4.8},
			want:     []string{"1", "3", "8"},
		},
		{
			name:     "exact time",
			criteria: models.FilterCriteria{SelectedDate: day, Time: models.ExactTime("18:00")},
			want:     []string{"2", "8"},
		},
		{
			name:     "price ceiling uses effective price",
			criteria: models.FilterCriteria{SelectedDate: day, MaxPrice: &ceiling},
			want:     []string{"3", "8"},
		},
		{
			name:     "price checked after time narrowing",
			criteria: models.FilterCriteria{SelectedDate: day, MaxPrice: &ceiling, Time: models.ExactTime("18:00")},
			want:     []string{},
		},
		{
			name:     "nothing cheap enough",
			criteria: models.FilterCriteria{SelectedDate: day, MaxPrice: &tight},
			want:     []string{},
		},
		{
			name:     "date without entries",
			criteria: models.FilterCriteria{SelectedDate: "2026-11-30"},
			want:     []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterVenues(catalogue(), tt.criteria)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestFilterVenues_RangeEndIsExclusive(t *testing.T) {
	c := models.FilterCriteria{SelectedDate: day, Time: models.TimeBetween("06:00", "09:00"), VenueType: "Cầu lông"}

	got := FilterVenues(catalogue(), c)

	require.Len(t, got, 1)
	assert.Equal(t, []string{"06:00", "08:00"}, got[0].Times())
}

func TestFilterVenues_DateGateExcludesMissingAndClosedDays(t *testing.T) {
	got := FilterVenues(catalogue(), models.FilterCriteria{SelectedDate: day})

	for _, m := range got {
		assert.NotEqual(t, "4", m.Venue.VenueID)
		assert.NotEqual(t, "5", m.Venue.VenueID)
		assert.NotEmpty(t, m.Slots)
		for _, s := range m.Slots {
			assert.True(t, s.IsAvailable)
		}
	}

	next := FilterVenues(catalogue(), models.FilterCriteria{SelectedDate: "2026-10-16"})
	assert.Equal(t, []string{"5"}, ids(next))
}

func TestFilterVenues_Idempotent(t *testing.T) {
	c := models.FilterCriteria{SelectedDate: day, SortBy: models.SortRatingDesc}
	venues := catalogue()

	assert.Equal(t, FilterVenues(venues, c), FilterVenues(venues, c))
}

func TestFilterVenues_Sorting(t *testing.T) {
	tests := []struct {
		key  models.SortKey
		want []string
	}{
		{models.SortNone, []string{"1", "2", "3", "8"}},
		// min prices: 1=200k 2=350k 3=180k 8=150k
		{models.SortPriceAsc, []string{"8", "3", "1", "2"}},
		{models.SortPriceDesc, []string{"2", "1", "3", "8"}},
		// 3 and 8 tie on 4.9 and keep catalogue order
		{models.SortRatingDesc, []string{"3", "8", "1", "2"}},
		// 8 has no distance label and goes last
		{models.SortDistanceAsc, []string{"1", "2", "3", "8"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			got := FilterVenues(catalogue(), models.FilterCriteria{SelectedDate: day, SortBy: tt.key})
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestVenueMatch_PriceRange(t *testing.T) {
	got := FilterVenues(catalogue(), models.FilterCriteria{SelectedDate: day})

	byID := make(map[string]models.VenueMatch)
	for _, m := range got {
		byID[m.Venue.VenueID] = m
	}

	single, ok := byID["1"].PriceRange()
	require.True(t, ok)
	assert.True(t, single.Single())
	assert.Equal(t, int64(200000), single.Min)

	spread, ok := byID["8"].PriceRange()
	require.True(t, ok)
	assert.False(t, spread.Single())
	assert.Equal(t, venue.PriceRange{Min: 150000, Max: 300000}, spread)
}

func TestFilterVenues_EffectivePriceOfLoneSlot(t *testing.T) {
	v := venue.Venue{
		VenueID: "x", BasePrice: 200000,
		Availability: []venue.Availability{{Date: day, TimeSlots: slots("09:00")}},
	}

	got := FilterVenues([]venue.Venue{v}, models.FilterCriteria{SelectedDate: day})

	require.Len(t, got, 1)
	require.Len(t, got[0].Slots, 1)
	assert.Equal(t, int64(200000), got[0].Venue.EffectivePrice(got[0].Slots[0]))
}

func TestParseDistance(t *testing.T) {
	assert.Equal(t, 1.2, ParseDistance("1.2 km"))
	assert.Equal(t, 2.5, ParseDistance(" 2,5km"))
	assert.Equal(t, 800.0, ParseDistance("800 m"))
	assert.True(t, math.IsInf(ParseDistance("gần đây"), 1))
	assert.True(t, math.IsInf(ParseDistance(""), 1))
}

func TestAvailableTimes(t *testing.T) {
	got := AvailableTimes(catalogue(), day)

	assert.Equal(t, []string{"06:00", "07:00", "08:00", "09:00", "10:00", "18:00", "19:00", "20:00"}, got)
	assert.Empty(t, AvailableTimes(catalogue(), "2026-11-30"))
}
