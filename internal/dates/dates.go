// Package dates provides the calendar arithmetic used by window expansion.
// All service dates are UTC midnights; day-of-week follows time.Weekday
// (0=Sunday .. 6=Saturday).
package dates

import (
	"errors"
	"time"
)

const Layout = "2006-01-02"

var ErrInvalidRange = errors.New("invalid_date_range")

// Truncate normalizes t to its UTC midnight.
func Truncate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Parse parses a YYYY-MM-DD date into a UTC midnight.
func Parse(value string) (time.Time, error) {
	t, err := time.ParseInLocation(Layout, value, time.UTC)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// Format renders a UTC midnight back to YYYY-MM-DD.
func Format(t time.Time) string {
	return t.UTC().Format(Layout)
}

// Weekday maps a date to its 0-6 day-of-week.
func Weekday(t time.Time) int {
	return int(t.UTC().Weekday())
}

// EachDay returns every calendar day in [start, end] inclusive.
func EachDay(start, end time.Time) ([]time.Time, error) {
	start = Truncate(start)
	end = Truncate(end)
	if end.Before(start) {
		return nil, ErrInvalidRange
	}

	days := make([]time.Time, 0, int(end.Sub(start).Hours()/24)+1)
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		days = append(days, day)
	}
	return days, nil
}
