package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// JSONEventRepo keeps events in events.json. It backs the planner when the
// SQLite database cannot be opened and orders, filters and matches events
// the same way EventRepo does.
type JSONEventRepo struct {
	path string
	now  func() time.Time
}

func NewJSONEventRepo(dir string) *JSONEventRepo {
	return &JSONEventRepo{path: filepath.Join(dir, EventsFile), now: time.Now}
}

// WithClock replaces the clock used for created/updated stamps.
func (r *JSONEventRepo) WithClock(now func() time.Time) *JSONEventRepo {
	r.SetClock(now)
	return r
}

func (r *JSONEventRepo) SetClock(now func() time.Time) {
	if now != nil {
		r.now = now
	}
}

// Path is the events file location.
func (r *JSONEventRepo) Path() string { return r.path }

// eventRecord is one element of the events.json array. Times use the same
// RFC 3339 text as the database columns.
type eventRecord struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Start     string   `json:"start"`
	End       string   `json:"end,omitempty"`
	AllDay    bool     `json:"allDay"`
	Location  string   `json:"location,omitempty"`
	Notes     string   `json:"notes,omitempty"`
	Tags      []string `json:"tags,omitempty"`
	IsExam    bool     `json:"isExam"`
	IsDone    bool     `json:"isDone"`
	Due       string   `json:"due,omitempty"`
	SubjectID string   `json:"subjectId,omitempty"`
	ColorHint string   `json:"colorHint,omitempty"`
	CreatedAt string   `json:"createdAt"`
	UpdatedAt string   `json:"updatedAt"`
}

func (r *JSONEventRepo) Insert(_ context.Context, in EventInsert) (*Event, error) {
	recs, err := r.load("event insert")
	if err != nil {
		return nil, err
	}
	now := r.stamp()
	rec := eventRecord{
		ID:        uuid.NewString(),
		Title:     in.Title,
		Start:     formatTime(in.Start),
		End:       derefTime(formatTimePtr(in.End)),
		AllDay:    in.AllDay,
		Location:  in.Location,
		Notes:     in.Notes,
		Tags:      nonEmpty(in.Tags),
		IsExam:    in.IsExam,
		Due:       derefTime(formatTimePtr(in.Due)),
		SubjectID: in.SubjectID,
		ColorHint: in.ColorHint,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := r.save("event insert", append(recs, rec)); err != nil {
		return nil, err
	}
	return rec.event()
}

func (r *JSONEventRepo) Get(_ context.Context, id string) (*Event, error) {
	recs, err := r.load("event get")
	if err != nil {
		return nil, err
	}
	if i := indexOf(recs, id); i >= 0 {
		return recs[i].event()
	}
	return nil, nil
}

// List returns events ordered by start, optionally only the open ones.
func (r *JSONEventRepo) List(_ context.Context, onlyOpen bool) ([]Event, error) {
	return r.filter("event list", onlyOpen, func(eventRecord) bool { return true })
}

// ListBetween returns events whose start date falls in [from, to].
func (r *JSONEventRepo) ListBetween(_ context.Context, from, to string, onlyOpen bool) ([]Event, error) {
	return r.filter("event list between", onlyOpen, func(rec eventRecord) bool {
		d := rec.Start
		if len(d) > 10 {
			d = d[:10]
		}
		return d >= from && d <= to
	})
}

// Search matches term case-insensitively against title, location and tags.
// An empty term matches everything.
func (r *JSONEventRepo) Search(_ context.Context, term string, onlyOpen bool) ([]Event, error) {
	t := strings.ToLower(strings.TrimSpace(term))
	return r.filter("event search", onlyOpen, func(rec eventRecord) bool {
		if t == "" {
			return true
		}
		hay := strings.ToLower(rec.Title + " " + rec.Location + " " + strings.Join(rec.Tags, " "))
		return strings.Contains(hay, t)
	})
}

// SetDone flips the done flag. found is false when no event has id.
func (r *JSONEventRepo) SetDone(_ context.Context, id string, done bool) (bool, error) {
	return r.mutate("event set done", id, func(rec *eventRecord) {
		rec.IsDone = done
	})
}

// Update rewrites every mutable field of e. createdAt is preserved.
func (r *JSONEventRepo) Update(_ context.Context, e Event) (bool, error) {
	return r.mutate("event update", e.ID, func(rec *eventRecord) {
		rec.Title = e.Title
		rec.Start = formatTime(e.Start)
		rec.End = derefTime(formatTimePtr(e.End))
		rec.AllDay = e.AllDay
		rec.Location = e.Location
		rec.Notes = e.Notes
		rec.Tags = nonEmpty(e.Tags)
		rec.IsExam = e.IsExam
		rec.IsDone = e.IsDone
		rec.Due = derefTime(formatTimePtr(e.Due))
		rec.SubjectID = e.SubjectID
		rec.ColorHint = e.ColorHint
	})
}

func (r *JSONEventRepo) Delete(_ context.Context, id string) (bool, error) {
	recs, err := r.load("event delete")
	if err != nil {
		return false, err
	}
	i := indexOf(recs, id)
	if i < 0 {
		return false, nil
	}
	if err := r.save("event delete", slices.Delete(recs, i, i+1)); err != nil {
		return false, err
	}
	return true, nil
}

func (r *JSONEventRepo) mutate(op, id string, apply func(*eventRecord)) (bool, error) {
	recs, err := r.load(op)
	if err != nil {
		return false, err
	}
	i := indexOf(recs, id)
	if i < 0 {
		return false, nil
	}
	apply(&recs[i])
	recs[i].UpdatedAt = r.stamp()
	if err := r.save(op, recs); err != nil {
		return false, err
	}
	return true, nil
}

func (r *JSONEventRepo) filter(op string, onlyOpen bool, keep func(eventRecord) bool) ([]Event, error) {
	recs, err := r.load(op)
	if err != nil {
		return nil, err
	}
	// Same order as ORDER BY start on the text column.
	slices.SortStableFunc(recs, func(a, b eventRecord) int {
		return strings.Compare(a.Start, b.Start)
	})

	var out []Event
	for _, rec := range recs {
		if onlyOpen && rec.IsDone {
			continue
		}
		if !keep(rec) {
			continue
		}
		e, err := rec.event()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		out = append(out, *e)
	}
	return out, nil
}

func (r *JSONEventRepo) load(op string) ([]eventRecord, error) {
	var recs []eventRecord
	if _, err := readJSON(r.path, &recs); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return recs, nil
}

func (r *JSONEventRepo) save(op string, recs []eventRecord) error {
	if recs == nil {
		recs = []eventRecord{}
	}
	if err := writeJSON(r.path, recs); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (r *JSONEventRepo) stamp() string {
	return r.now().UTC().Format(timeLayout)
}

func (rec eventRecord) event() (*Event, error) {
	start, err := parseTime(rec.Start)
	if err != nil {
		return nil, fmt.Errorf("event %s start: %w", rec.ID, err)
	}
	end, err := parseOptionalTime(rec.End)
	if err != nil {
		return nil, fmt.Errorf("event %s end: %w", rec.ID, err)
	}
	due, err := parseOptionalTime(rec.Due)
	if err != nil {
		return nil, fmt.Errorf("event %s due: %w", rec.ID, err)
	}
	created, err := parseTime(rec.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("event %s createdAt: %w", rec.ID, err)
	}
	updated, err := parseTime(rec.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("event %s updatedAt: %w", rec.ID, err)
	}
	return &Event{
		ID:        rec.ID,
		Title:     rec.Title,
		Start:     start,
		End:       end,
		AllDay:    rec.AllDay,
		Location:  rec.Location,
		Notes:     rec.Notes,
		Tags:      slices.Clone(rec.Tags),
		IsExam:    rec.IsExam,
		IsDone:    rec.IsDone,
		Due:       due,
		SubjectID: rec.SubjectID,
		ColorHint: rec.ColorHint,
		CreatedAt: created,
		UpdatedAt: updated,
	}, nil
}

func indexOf(recs []eventRecord, id string) int {
	return slices.IndexFunc(recs, func(rec eventRecord) bool { return rec.ID == id })
}

func nonEmpty(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	return slices.Clone(tags)
}

func derefTime(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func parseOptionalTime(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := parseTime(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
