package engine

import (
	"time"

	"studyplan/internal/day"
	"studyplan/internal/storage"
)

// SetDone marks slot index of date as done or not done and persists the
// change. It returns false for an invalid date or a negative index.
//
// Completion is keyed by slot position, so a regenerated plan with a
// different subject order inherits the flags of the old positions.
func (s *Service) SetDone(date time.Time, index int, value bool) bool {
	if !day.Valid(date) || index < 0 {
		return false
	}
	key := day.Format(date)
	set := s.done[key]
	if value {
		if set == nil {
			set = map[int]bool{}
			s.done[key] = set
		}
		set[index] = true
	} else if set != nil {
		delete(set, index)
		if len(set) == 0 {
			delete(s.done, key)
		}
	}
	s.persisted(storage.DoneFile, s.store.Done.Save(s.done))
	return true
}

// IsDone reports whether slot index of date is marked done.
func (s *Service) IsDone(date time.Time, index int) bool {
	if !day.Valid(date) {
		return false
	}
	return s.done[day.Format(date)][index]
}

// ToggleDone flips the flag of slot index and returns the new value.
func (s *Service) ToggleDone(date time.Time, index int) (bool, bool) {
	next := !s.IsDone(date, index)
	if !s.SetDone(date, index, next) {
		return false, false
	}
	return next, true
}
