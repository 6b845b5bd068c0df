package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"studyplan/internal/config"
)

func TestClassify(t *testing.T) {
	today := date(2025, 5, 10)
	due := func(offset int) *time.Time {
		d := today.AddDate(0, 0, offset).Add(15 * time.Hour)
		return &d
	}

	cases := []struct {
		name     string
		due      *time.Time
		done     bool
		fallback Priority
		want     Priority
	}{
		{"done overrides overdue", due(-3), true, PriorityHigh, PriorityLow},
		{"no due uses fallback", nil, false, PriorityMedium, PriorityMedium},
		{"overdue", due(-1), false, PriorityLow, PriorityHigh},
		{"today", due(0), false, PriorityLow, PriorityHigh},
		{"tomorrow", due(1), false, PriorityLow, PriorityMedium},
		{"in two days", due(2), false, PriorityHigh, PriorityLow},
		{"far away", due(30), false, PriorityHigh, PriorityLow},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Classify(tc.due, tc.done, today, tc.fallback))
		})
	}
}

func TestClassifyIgnoresTimeOfDay(t *testing.T) {
	today := date(2025, 5, 10)
	late := today.Add(23 * time.Hour)
	assert.Equal(t, PriorityHigh, Classify(&late, false, today.Add(time.Second), PriorityLow))
}

func TestScorerLiteralCases(t *testing.T) {
	s := NewScorer(config.Default().Priority)

	assert.InDelta(t, 2.0, s.Score(0, 0), 1e-9)
	assert.InDelta(t, 1.0+0.25, s.Score(1, 30), 1e-9)
	assert.InDelta(t, 0.5, s.Score(2, 90), 1e-9, "duration caps at one hour")
	assert.InDelta(t, 0.0, s.Score(5, 0), 1e-9)

	assert.Equal(t, PriorityHigh, s.Priority(0, 30, false))
	assert.Equal(t, PriorityMedium, s.Priority(1, 30, false))
	assert.Equal(t, PriorityMedium, s.Priority(3, 60, false), "0.5 reaches medium")
	assert.Equal(t, PriorityLow, s.Priority(3, 50, false))
	assert.Equal(t, PriorityHigh, s.Priority(-1, 0, false), "overdue")
	assert.Equal(t, PriorityLow, s.Priority(-1, 60, true), "done wins")
	assert.Equal(t, PriorityLow, s.Priority(0, 60, true))
}

func TestScorerUsesConfiguredWeights(t *testing.T) {
	s := NewScorer(config.PriorityConfig{
		DueSoonWeight:   1,
		EstimateWeight:  4,
		DueSoonHours:    24,
		HighThreshold:   2,
		MediumThreshold: 1,
	})
	// 4 * 1 * 0.5 = 2 from the estimate alone
	assert.Equal(t, PriorityHigh, s.Priority(10, 60, false))
	// the window edge contributes 1 * (1 - 24/24) = 0
	assert.Equal(t, PriorityLow, s.Priority(1, 0, false))
}

func TestPriorityString(t *testing.T) {
	assert.Equal(t, "low", PriorityLow.String())
	assert.Equal(t, "medium", PriorityMedium.String())
	assert.Equal(t, "high", PriorityHigh.String())
	assert.False(t, Priority(7).IsValid())
}
