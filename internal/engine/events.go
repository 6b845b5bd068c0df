package engine

import (
	"context"
	"time"

	"studyplan/internal/day"
	"studyplan/internal/storage"
)

// EventsAvailable reports whether the events database is attached.
func (s *Service) EventsAvailable() bool {
	return s.events != nil
}

// Event returns one event, or nil when id is unknown.
func (s *Service) Event(ctx context.Context, id string) (*Event, error) {
	if s.events == nil {
		return nil, ErrEventsUnavailable
	}
	row, err := s.events.Get(ctx, id)
	if err != nil || row == nil {
		return nil, err
	}
	e := s.eventFromRow(*row)
	return &e, nil
}

// Events lists events by start time.
func (s *Service) Events(ctx context.Context, onlyOpen bool) ([]Event, error) {
	if s.events == nil {
		return nil, ErrEventsUnavailable
	}
	rows, err := s.events.List(ctx, onlyOpen)
	if err != nil {
		return nil, err
	}
	return s.eventsFromRows(rows), nil
}

// EventsBetween lists events starting on a date in [from, to].
func (s *Service) EventsBetween(ctx context.Context, from, to time.Time, onlyOpen bool) ([]Event, error) {
	if s.events == nil {
		return nil, ErrEventsUnavailable
	}
	if !day.Valid(from) || !day.Valid(to) || to.Before(from) {
		return nil, nil
	}
	rows, err := s.events.ListBetween(ctx, day.Format(from), day.Format(to), onlyOpen)
	if err != nil {
		return nil, err
	}
	return s.eventsFromRows(rows), nil
}

// SearchEvents matches term against title, location and tags.
func (s *Service) SearchEvents(ctx context.Context, term string, onlyOpen bool) ([]Event, error) {
	if s.events == nil {
		return nil, ErrEventsUnavailable
	}
	rows, err := s.events.Search(ctx, term, onlyOpen)
	if err != nil {
		return nil, err
	}
	return s.eventsFromRows(rows), nil
}

func (s *Service) eventsFromRows(rows []storage.Event) []Event {
	out := make([]Event, 0, len(rows))
	for _, r := range rows {
		out = append(out, s.eventFromRow(r))
	}
	return out
}

func (s *Service) eventFromRow(r storage.Event) Event {
	return Event{
		ID:        r.ID,
		Title:     r.Title,
		Start:     r.Start,
		End:       r.End,
		AllDay:    r.AllDay,
		Location:  r.Location,
		Notes:     r.Notes,
		Tags:      r.Tags,
		IsExam:    r.IsExam,
		Done:      r.IsDone,
		Due:       r.Due,
		SubjectID: r.SubjectID,
		ColorHint: r.ColorHint,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
		Priority:  Classify(r.Due, r.IsDone, s.Today(), PriorityLow),
	}
}
