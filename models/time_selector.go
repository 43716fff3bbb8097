package models

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var ErrInvalidTimeSelector = errors.New("invalid time selector")

// TimeKind tells how a TimeSelector restricts slots.
type TimeKind string

const (
	TimeAny   TimeKind = "any"
	TimeExact TimeKind = "exact"
	TimeRange TimeKind = "range"
)

// TimeSelector restricts slots to an exact "HH:MM" mark or to the half-open
// range [Start, End). The zero value selects every slot.
type TimeSelector struct {
	Kind  TimeKind `json:"kind,omitempty"`
	Exact string   `json:"exact,omitempty"`
	Start string   `json:"start,omitempty"`
	End   string   `json:"end,omitempty"`
}

// Session names accepted in place of an explicit range.
var sessions = map[string]TimeSelector{
	"morning":   {Kind: TimeRange, Start: "06:00", End: "12:00"},
	"afternoon": {Kind: TimeRange, Start: "12:00", End: "18:00"},
	"evening":   {Kind: TimeRange, Start: "18:00", End: "21:00"},
	"night":     {Kind: TimeRange, Start: "21:00", End: "24:00"},
}

var clockMark = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// AnyTime selects every slot.
func AnyTime() TimeSelector { return TimeSelector{Kind: TimeAny} }

// ExactTime selects the single slot at t.
func ExactTime(t string) TimeSelector { return TimeSelector{Kind: TimeExact, Exact: t} }

// TimeBetween selects slots in [start, end).
func TimeBetween(start, end string) TimeSelector {
	return TimeSelector{Kind: TimeRange, Start: start, End: end}
}

// IsAny reports whether the selector leaves slots unrestricted.
func (s TimeSelector) IsAny() bool {
	return s.Kind == "" || s.Kind == TimeAny
}

// Matches reports whether a "HH:MM" slot mark passes the selector. Zero-padded
// marks compare lexically in clock order.
func (s TimeSelector) Matches(t string) bool {
	switch s.Kind {
	case TimeExact:
		return t == s.Exact
	case TimeRange:
		return s.Start <= t && t < s.End
	default:
		return true
	}
}

// String renders the selector in the form ParseTimeSelector accepts.
func (s TimeSelector) String() string {
	switch s.Kind {
	case TimeExact:
		return s.Exact
	case TimeRange:
		return s.Start + "-" + s.End
	default:
		return ""
	}
}

// ParseTimeSelector accepts "", an exact "HH:MM", a range "HH:MM-HH:MM" whose
// end may be "24:00", or one of the session names.
func ParseTimeSelector(raw string) (TimeSelector, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return AnyTime(), nil
	}
	if s, ok := sessions[strings.ToLower(raw)]; ok {
		return s, nil
	}
	if start, end, found := strings.Cut(raw, "-"); found {
		start, end = strings.TrimSpace(start), strings.TrimSpace(end)
		if !clockMark.MatchString(start) || !(clockMark.MatchString(end) || end == "24:00") {
			return TimeSelector{}, fmt.Errorf("%w: %q", ErrInvalidTimeSelector, raw)
		}
		if end <= start {
			return TimeSelector{}, fmt.Errorf("%w: empty range %q", ErrInvalidTimeSelector, raw)
		}
		return TimeBetween(start, end), nil
	}
	if !clockMark.MatchString(raw) {
		return TimeSelector{}, fmt.Errorf("%w: %q", ErrInvalidTimeSelector, raw)
	}
	return ExactTime(raw), nil
}

// IsExactTime reports whether raw names a single "HH:MM" slot.
func IsExactTime(raw string) bool {
	return clockMark.MatchString(raw)
}
