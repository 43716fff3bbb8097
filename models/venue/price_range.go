package venue

// PriceRange is the spread of effective prices over a set of slots.
type PriceRange struct {
    Min int64 `json:"min"`
    Max int64 `json:"max"`
}

// Single reports whether the range collapses to one price.
func (p PriceRange) Single() bool {
    return p.Min == p.Max
}

// PriceRangeOf reduces slots to their min and max effective price.
// ok is false for an empty slot set.
func (v *Venue) PriceRangeOf(slots []TimeSlot) (PriceRange, bool) {
    if len(slots) == 0 {
        return PriceRange{}, false
    }
    first := v.EffectivePrice(slots[0])
    pr := PriceRange{Min: first, Max: first}
    for _, s := range slots[1:] {
        p := v.EffectivePrice(s)
        if p < pr.Min {
            pr.Min = p
        }
        if p > pr.Max {
            pr.Max = p
        }
    }
    return pr, true
}
