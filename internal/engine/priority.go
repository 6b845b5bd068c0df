package engine

import (
	"math"
	"time"

	"studyplan/internal/config"
	"studyplan/internal/day"
)

// Classify is the simple priority rule used for exams and events.
//
// Done items are Low. Without a due date the fallback is returned.
// Otherwise overdue and due-today are High, due tomorrow is Medium and
// anything later is Low.
func Classify(due *time.Time, done bool, today time.Time, fallback Priority) Priority {
	if done {
		return PriorityLow
	}
	if due == nil || due.IsZero() {
		return fallback
	}
	d := day.DaysTo(today, *due)
	switch {
	case d <= 0:
		return PriorityHigh
	case d == 1:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

// Scorer is the weighted priority model used for generated tasks.
type Scorer struct {
	cfg config.PriorityConfig
}

func NewScorer(cfg config.PriorityConfig) Scorer {
	return Scorer{cfg: cfg}
}

// Score returns the raw weighted score of a pending task due in
// daysUntilDue days.
func (s Scorer) Score(daysUntilDue, durationMinutes int) float64 {
	score := 0.0
	hours := daysUntilDue * 24
	if hours >= 0 && hours <= s.cfg.DueSoonHours && s.cfg.DueSoonHours > 0 {
		score += s.cfg.DueSoonWeight * (1 - float64(hours)/float64(s.cfg.DueSoonHours))
	}
	if durationMinutes > 0 {
		score += s.cfg.EstimateWeight * math.Min(1, float64(durationMinutes)/60) * 0.5
	}
	return score
}

// Priority maps a task onto a level. Done is always Low and overdue always High.
func (s Scorer) Priority(daysUntilDue, durationMinutes int, done bool) Priority {
	if done {
		return PriorityLow
	}
	if daysUntilDue < 0 {
		return PriorityHigh
	}
	score := s.Score(daysUntilDue, durationMinutes)
	switch {
	case score >= s.cfg.HighThreshold:
		return PriorityHigh
	case score >= s.cfg.MediumThreshold:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

// TaskPriority scores t relative to today.
func (s Scorer) TaskPriority(t Task, today time.Time) Priority {
	return s.Priority(day.DaysTo(today, t.Date), t.DurationMinutes, t.Done)
}
