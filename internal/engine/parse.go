package engine

import (
	"fmt"
	"strconv"
	"strings"

	"studyplan/internal/algorithm"
)

// ParseQuality parses a review grade.
// Supported: 0-5, or blackout, wrong, familiar, hard, good, perfect.
func ParseQuality(input string) (int, error) {
	s := strings.TrimSpace(strings.ToLower(input))
	switch s {
	case "blackout":
		return 0, nil
	case "wrong":
		return 1, nil
	case "familiar":
		return 2, nil
	case "hard":
		return 3, nil
	case "good":
		return 4, nil
	case "perfect", "easy":
		return 5, nil
	}
	q, err := strconv.Atoi(s)
	if err != nil || !algorithm.ValidQuality(q) {
		return 0, fmt.Errorf("invalid quality %q (want 0-5)", input)
	}
	return q, nil
}

// ParsePriority parses low, medium/med or high.
func ParsePriority(input string) (Priority, error) {
	switch strings.TrimSpace(strings.ToLower(input)) {
	case "low", "l":
		return PriorityLow, nil
	case "medium", "med", "m":
		return PriorityMedium, nil
	case "high", "h":
		return PriorityHigh, nil
	default:
		return PriorityLow, fmt.Errorf("invalid priority %q", input)
	}
}
