// Package day holds calendar-date helpers. A date is a time.Time at UTC
// midnight; the zero time is the invalid date.
package day

import (
	"strings"
	"time"
)

// ISOLayout is the on-disk date format.
const ISOLayout = "2006-01-02"

// julianEpochOffset is the julian day number of 1970-01-01.
const julianEpochOffset = 2440588

// Of returns the calendar date of t (in t's location) as UTC midnight.
func Of(t time.Time) time.Time {
	if t.IsZero() {
		return time.Time{}
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today returns the current calendar date according to now.
func Today(now func() time.Time) time.Time {
	if now == nil {
		now = time.Now
	}
	return Of(now())
}

// Valid reports whether d is a usable date.
func Valid(d time.Time) bool {
	return !d.IsZero()
}

// Parse parses an ISO date. ok is false for empty or malformed input.
func Parse(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(ISOLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Format renders d as an ISO date, or "" for the invalid date.
func Format(d time.Time) string {
	if d.IsZero() {
		return ""
	}
	return Of(d).Format(ISOLayout)
}

// Add shifts d by n calendar days.
func Add(d time.Time, n int) time.Time {
	return Of(d).AddDate(0, 0, n)
}

// DaysTo returns the signed number of days from `from` to `to`.
func DaysTo(from, to time.Time) int {
	return int(unixDays(Of(to)) - unixDays(Of(from)))
}

// JulianDay returns the julian day number of d.
func JulianDay(d time.Time) int {
	return int(unixDays(Of(d))) + julianEpochOffset
}

// WeekdayIndex returns 0 for Monday through 6 for Sunday.
func WeekdayIndex(d time.Time) int {
	return (int(d.Weekday()) + 6) % 7
}

// Range is an inclusive span of dates.
type Range struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether d falls inside r, both ends inclusive.
func (r Range) Contains(d time.Time) bool {
	d = Of(d)
	return !d.Before(Of(r.Start)) && !d.After(Of(r.End))
}

// ParseRange parses "start..end" or a single ISO date.
func ParseRange(s string) (Range, bool) {
	parts := strings.Split(strings.TrimSpace(s), "..")
	switch len(parts) {
	case 1:
		d, ok := Parse(parts[0])
		if !ok {
			return Range{}, false
		}
		return Range{Start: d, End: d}, true
	case 2:
		start, ok := Parse(parts[0])
		if !ok {
			return Range{}, false
		}
		end, ok := Parse(parts[1])
		if !ok || end.Before(start) {
			return Range{}, false
		}
		return Range{Start: start, End: end}, true
	default:
		return Range{}, false
	}
}

func unixDays(d time.Time) int64 {
	secs := d.Unix()
	days := secs / 86400
	if secs%86400 < 0 {
		days--
	}
	return days
}
