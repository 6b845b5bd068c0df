package engine

import (
	"context"

	"studyplan/internal/storage"
)

// SetEventDone marks an event done or open. found is false for an unknown id.
func (s *Service) SetEventDone(ctx context.Context, id string, done bool) (bool, error) {
	if s.events == nil {
		return false, ErrEventsUnavailable
	}
	return s.events.SetDone(ctx, id, done)
}

// UpdateEvent rewrites a stored event. Priority and timestamps on e are ignored.
func (s *Service) UpdateEvent(ctx context.Context, e Event) (bool, error) {
	if s.events == nil {
		return false, ErrEventsUnavailable
	}
	title, err := normalizeTitle(e.Title)
	if err != nil {
		return false, err
	}
	if e.Start.IsZero() {
		return false, InputError{Field: "start", Reason: "start is required"}
	}
	return s.events.Update(ctx, storage.Event{
		ID:        e.ID,
		Title:     title,
		Start:     e.Start,
		End:       e.End,
		AllDay:    e.AllDay,
		Location:  e.Location,
		Notes:     e.Notes,
		Tags:      normalizeTags(e.Tags),
		IsExam:    e.IsExam,
		IsDone:    e.Done,
		Due:       e.Due,
		SubjectID: e.SubjectID,
		ColorHint: e.ColorHint,
	})
}

// RemoveEvent deletes an event. found is false for an unknown id.
func (s *Service) RemoveEvent(ctx context.Context, id string) (bool, error) {
	if s.events == nil {
		return false, ErrEventsUnavailable
	}
	return s.events.Delete(ctx, id)
}
