package engine

import (
	"context"
	"strings"
	"time"

	"studyplan/internal/storage"
)

type AddEventInput struct {
	Title     string
	Start     time.Time // zero means now
	End       *time.Time
	AllDay    bool
	Location  string
	Notes     string
	Tags      []string
	IsExam    bool
	Due       *time.Time
	SubjectID string
}

func normalizeTitle(title string) (string, error) {
	t := strings.TrimSpace(title)
	if t == "" {
		return "", InputError{Field: "title", Reason: "title is required"}
	}
	return t, nil
}

// AddEvent stores a new event. The color hint follows the event's subject;
// an unregistered subject id gets UnknownSubjectColor.
func (s *Service) AddEvent(ctx context.Context, in AddEventInput) (*Event, error) {
	if s.events == nil {
		return nil, ErrEventsUnavailable
	}
	title, err := normalizeTitle(in.Title)
	if err != nil {
		return nil, err
	}
	start := in.Start
	if start.IsZero() {
		start = s.now()
	}
	if in.End != nil && in.End.Before(start) {
		return nil, InputError{Field: "end", Reason: "end is before start"}
	}

	color := ""
	if in.SubjectID != "" {
		color = UnknownSubjectColor
		if sub, ok := s.Subject(in.SubjectID); ok {
			color = sub.Color
		}
	}

	row, err := s.events.Insert(ctx, storage.EventInsert{
		Title:     title,
		Start:     start,
		End:       in.End,
		AllDay:    in.AllDay,
		Location:  strings.TrimSpace(in.Location),
		Notes:     in.Notes,
		Tags:      normalizeTags(in.Tags),
		IsExam:    in.IsExam,
		Due:       in.Due,
		SubjectID: in.SubjectID,
		ColorHint: color,
	})
	if err != nil {
		return nil, err
	}
	e := s.eventFromRow(*row)
	return &e, nil
}

func normalizeTags(tags []string) []string {
	var out []string
	seen := map[string]bool{}
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
