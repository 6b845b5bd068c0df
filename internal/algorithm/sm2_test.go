package algorithm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var defaults = Params{InitialInterval: 1, EaseModifier: 1.0}

func TestInitial(t *testing.T) {
	s := Initial(defaults)
	assert.Equal(t, 0, s.Repetition)
	assert.InDelta(t, 2.5, s.EaseFactor, 1e-9)
	assert.Equal(t, 1, s.IntervalDays)

	s = Initial(Params{InitialInterval: 0, EaseModifier: 1})
	assert.Equal(t, 1, s.IntervalDays, "interval is never below one day")
}

func TestNextPerfectSequence(t *testing.T) {
	s := Initial(defaults)

	s = Next(s, 5, defaults)
	assert.Equal(t, 1, s.Repetition)
	assert.Equal(t, 1, s.IntervalDays)
	assert.InDelta(t, 2.6, s.EaseFactor, 1e-9)

	s = Next(s, 5, defaults)
	assert.Equal(t, 2, s.Repetition)
	assert.Equal(t, 6, s.IntervalDays)
	assert.InDelta(t, 2.7, s.EaseFactor, 1e-9)

	s = Next(s, 5, defaults)
	assert.Equal(t, 3, s.Repetition)
	assert.Equal(t, 17, s.IntervalDays) // round(6 * 2.8)
	assert.InDelta(t, 2.8, s.EaseFactor, 1e-9)
}

func TestNextIntervalsNeverShrinkUnderPerfectRecall(t *testing.T) {
	s := Initial(defaults)
	prev := s.IntervalDays
	for i := 0; i < 10; i++ {
		s = Next(s, 5, defaults)
		require.GreaterOrEqual(t, s.IntervalDays, prev)
		require.GreaterOrEqual(t, s.EaseFactor, MinEaseFactor)
		prev = s.IntervalDays
	}
}

func TestNextFailureResets(t *testing.T) {
	s := State{Repetition: 4, EaseFactor: 2.1, IntervalDays: 30}
	got := Next(s, 2, Params{InitialInterval: 3, EaseModifier: 1})
	assert.Equal(t, 0, got.Repetition)
	assert.Equal(t, 3, got.IntervalDays)
	assert.InDelta(t, 2.1, got.EaseFactor, 1e-9, "ease factor untouched on failure")
}

func TestNextEaseFloor(t *testing.T) {
	s := State{Repetition: 2, EaseFactor: 1.3, IntervalDays: 10}
	got := Next(s, 3, defaults)
	assert.InDelta(t, MinEaseFactor, got.EaseFactor, 1e-9)
	assert.Equal(t, 13, got.IntervalDays)
}

func TestNextEaseModifierScalesChange(t *testing.T) {
	s := Initial(defaults)
	got := Next(s, 5, Params{InitialInterval: 1, EaseModifier: 1.5})
	assert.InDelta(t, 2.65, got.EaseFactor, 1e-9)
}

func TestValidQuality(t *testing.T) {
	for q := 0; q <= 5; q++ {
		assert.True(t, ValidQuality(q))
	}
	assert.False(t, ValidQuality(-1))
	assert.False(t, ValidQuality(6))
}
