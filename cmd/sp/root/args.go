package root

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"studyplan/internal/day"
)

// dateArg parses an ISO date, or "today"/"tomorrow" relative to today.
func dateArg(s string, today time.Time) (time.Time, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "today":
		return today, nil
	case "tomorrow":
		return day.Add(today, 1), nil
	case "yesterday":
		return day.Add(today, -1), nil
	}
	d, ok := day.Parse(s)
	if !ok {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
	}
	return d, nil
}

func indexArg(s string) (int, error) {
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || i < 0 {
		return 0, fmt.Errorf("index must be a non-negative integer, got %q", s)
	}
	return i, nil
}

var whenLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// parseWhen reads a local date-time. A bare date means midnight.
func parseWhen(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range whenLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time %q (want YYYY-MM-DD or YYYY-MM-DD HH:MM)", s)
}

func optionalWhen(s string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, err := parseWhen(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
