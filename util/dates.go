package util

import (
	"fmt"
	"strconv"
	"time"

	"xnova-server/i18n"
)

const (
	DateFormat = "2006-01-02"
	TimeFormat = "15:04"
)

// Clock supplies the current time so date logic can be pinned in tests.
type Clock interface {
	Now() time.Time
}

// RealClock reads the wall clock in a fixed location.
type RealClock struct {
	Location *time.Location
}

func (c RealClock) Now() time.Time {
	if c.Location == nil {
		return time.Now()
	}
	return time.Now().In(c.Location)
}

// FixedClock always returns the same instant.
type FixedClock struct {
	At time.Time
}

func (c FixedClock) Now() time.Time { return c.At }

// Today returns the current calendar day as YYYY-MM-DD.
func Today(c Clock) string {
	return c.Now().Format(DateFormat)
}

// NextDays returns n consecutive dates starting today.
func NextDays(c Clock, n int) []string {
	now := c.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dates := make([]string, 0, n)
	for i := 0; i < n; i++ {
		dates = append(dates, start.AddDate(0, 0, i).Format(DateFormat))
	}
	return dates
}

// ParseDate validates a YYYY-MM-DD date.
func ParseDate(c Clock, date string) (time.Time, error) {
	t, err := time.ParseInLocation(DateFormat, date, c.Now().Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	return t, nil
}

// IsPast reports whether date lies before today.
func IsPast(c Clock, date string) (bool, error) {
	if _, err := ParseDate(c, date); err != nil {
		return false, err
	}
	return date < Today(c), nil
}

// IsDateAvailable reports whether date is today or later.
func IsDateAvailable(c Clock, date string) bool {
	past, err := IsPast(c, date)
	return err == nil && !past
}

// FormatDisplayDate renders date as "today", "tomorrow" or a short weekday
// with day and month ("T4, 21/10").
func FormatDisplayDate(c Clock, tr *i18n.Translator, date string) (string, error) {
	t, err := ParseDate(c, date)
	if err != nil {
		return "", err
	}
	days := NextDays(c, 2)
	switch date {
	case days[0]:
		return tr.T("date.today"), nil
	case days[1]:
		return tr.T("date.tomorrow"), nil
	}
	weekday := tr.T("weekday." + strconv.Itoa(int(t.Weekday())))
	return fmt.Sprintf("%s, %02d/%02d", weekday, t.Day(), int(t.Month())), nil
}
