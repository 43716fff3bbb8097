package venue

// Venue represents a bookable sports facility with its availability snapshot.
type Venue struct {
    VenueID          string   `json:"venue_id"`
    VenueName        string   `json:"venue_name"`
    VenueLocation    string   `json:"venue_location"`
    VenueDistance    string   `json:"venue_distance"`
    VenueLat         float64  `json:"venue_lat"`
    VenueLon         float64  `json:"venue_lng"`
    VenueImage       string   `json:"venue_image,omitempty"`
    VenueType        string   `json:"venue_type"`
    Description      string   `json:"description,omitempty"`
    Rating           float64  `json:"rating"`
    Reviews          int      `json:"reviews"`
    BasePrice        int64    `json:"base_price"`
    Amenities        []string `json:"amenities"`

    Resources    []Resource     `json:"resources,omitempty"`
    Availability []Availability `json:"availability,omitempty"`
}

// Availability holds every slot of a venue for one calendar day (YYYY-MM-DD).
type Availability struct {
    Date      string     `json:"date"`
    TimeSlots []TimeSlot `json:"time_slots"`
}

// TimeSlot is one hourly bookable unit. A nil Price means the venue base price.
type TimeSlot struct {
    Time        string `json:"time"`
    IsAvailable bool   `json:"is_available"`
    Price       *int64 `json:"price,omitempty"`
}

// Resource is a bookable unit inside a venue (a court or a pitch).
type Resource struct {
    ResourceID string `json:"resource_id"`
    Name       string `json:"name"`
    Type       string `json:"type,omitempty"`
}

// AvailabilityFor returns the slots recorded for date, or nil when the venue has no entry.
func (v *Venue) AvailabilityFor(date string) []TimeSlot {
    for _, a := range v.Availability {
        if a.Date == date {
            return a.TimeSlots
        }
    }
    return nil
}

// AvailableSlots returns the open slots for date in their recorded order.
func (v *Venue) AvailableSlots(date string) []TimeSlot {
    var out []TimeSlot
    for _, s := range v.AvailabilityFor(date) {
        if s.IsAvailable {
            out = append(out, s)
        }
    }
    return out
}

// SlotAt looks up a single slot by its "HH:MM" mark.
func (v *Venue) SlotAt(date, time string) (TimeSlot, bool) {
    for _, s := range v.AvailabilityFor(date) {
        if s.Time == time {
            return s, true
        }
    }
    return TimeSlot{}, false
}

func (v *Venue) EffectivePrice(slot TimeSlot) int64 {
    if slot.Price != nil {
        return *slot.Price
    }
    return v.BasePrice
}

// HasAmenities reports whether every required amenity is offered.
func (v *Venue) HasAmenities(required []string) bool {
    for _, want := range required {
        found := false
        for _, have := range v.Amenities {
            if have == want {
                found = true
                break
            }
        }
        if !found {
            return false
        }
    }
    return true
}

// Resource returns the venue resource with the given id.
func (v *Venue) Resource(resourceID string) (Resource, bool) {
    for _, r := range v.Resources {
        if r.ResourceID == resourceID {
            return r, true
        }
    }
    return Resource{}, false
}

// Dates lists the dates that have an availability entry.
func (v *Venue) Dates() []string {
    dates := make([]string, 0, len(v.Availability))
    for _, a := range v.Availability {
        dates = append(dates, a.Date)
    }
    return dates
}
