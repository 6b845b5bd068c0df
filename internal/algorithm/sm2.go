// Package algorithm holds the SM-2 spaced-repetition step.
package algorithm

import "math"

// Default settings for new review items
const (
	InitialEaseFactor = 2.5
	MinEaseFactor     = 1.3
	MinQuality        = 0
	MaxQuality        = 5
	passingQuality    = 3
	secondInterval    = 6
)

// State is the SM-2 scheduling state of one review item.
type State struct {
	Repetition   int
	EaseFactor   float64
	IntervalDays int
}

// Params tunes the scheduler.
type Params struct {
	InitialInterval int
	EaseModifier    float64
}

// ValidQuality reports whether q is a grade the scheduler accepts.
func ValidQuality(q int) bool {
	return q >= MinQuality && q <= MaxQuality
}

// Initial returns the state of a freshly added item.
func Initial(p Params) State {
	return State{
		Repetition:   0,
		EaseFactor:   InitialEaseFactor,
		IntervalDays: firstInterval(p),
	}
}

// Next applies one graded review and returns the new state. The caller is
// responsible for rejecting qualities outside [0,5] first.
//
// A failed recall (quality < 3) restarts the repetition count and keeps
// the ease factor. Otherwise
// EF' = EF + (0.1 - (5-q) * (0.08 + (5-q)*0.02)) * easeModifier, floored at 1.3.
func Next(s State, quality int, p Params) State {
	if quality < passingQuality {
		return State{
			Repetition:   0,
			EaseFactor:   s.EaseFactor,
			IntervalDays: firstInterval(p),
		}
	}

	q := float64(quality)
	ease := s.EaseFactor + (0.1-(5-q)*(0.08+(5-q)*0.02))*p.EaseModifier
	if ease < MinEaseFactor {
		ease = MinEaseFactor
	}

	var interval int
	switch s.Repetition {
	case 0:
		interval = firstInterval(p)
	case 1:
		interval = secondInterval
	default:
		interval = int(math.Round(float64(s.IntervalDays) * ease))
	}
	if interval < 1 {
		interval = 1
	}

	return State{
		Repetition:   s.Repetition + 1,
		EaseFactor:   ease,
		IntervalDays: interval,
	}
}

func firstInterval(p Params) int {
	if p.InitialInterval < 1 {
		return 1
	}
	return p.InitialInterval
}
