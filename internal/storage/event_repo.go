package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// timeLayout is how event times are stored; the first 10 bytes are the date.
const timeLayout = time.RFC3339

type EventRepo struct {
	db  *sql.DB
	now func() time.Time
}

func NewEventRepo(db *sql.DB) *EventRepo {
	return &EventRepo{db: db, now: time.Now}
}

// WithClock replaces the clock used for created/updated stamps.
func (r *EventRepo) WithClock(now func() time.Time) *EventRepo {
	r.SetClock(now)
	return r
}

func (r *EventRepo) SetClock(now func() time.Time) {
	if now != nil {
		r.now = now
	}
}

type EventInsert struct {
	Title     string
	Start     time.Time
	End       *time.Time
	AllDay    bool
	Location  string
	Notes     string
	Tags      []string
	IsExam    bool
	Due       *time.Time
	SubjectID string
	ColorHint string
}

const eventColumns = `id, title, start, ends_at, all_day, location, notes, tags,
	is_exam, is_done, due, subject_id, color_hint, created_at, updated_at`

func (r *EventRepo) Insert(ctx context.Context, in EventInsert) (*Event, error) {
	tagsJSON, err := marshalTags(in.Tags)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	now := r.now().UTC().Format(timeLayout)
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO events (`+eventColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, 0, ?, ?, ?, ?, ?)
	`, id, in.Title, formatTime(in.Start), formatTimePtr(in.End), boolToInt(in.AllDay), in.Location, in.Notes, tagsJSON,
		boolToInt(in.IsExam), formatTimePtr(in.Due), in.SubjectID, in.ColorHint, now, now)
	if err != nil {
		return nil, fmt.Errorf("event insert: %w", err)
	}
	return r.Get(ctx, id)
}

func (r *EventRepo) Get(ctx context.Context, id string) (*Event, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+eventColumns+` FROM events WHERE id = ?`, id)
	return scanEventRow(row)
}

// List returns events ordered by start, optionally only the open ones.
func (r *EventRepo) List(ctx context.Context, onlyOpen bool) ([]Event, error) {
	q := `SELECT ` + eventColumns + ` FROM events`
	if onlyOpen {
		q += ` WHERE is_done = 0`
	}
	q += ` ORDER BY start ASC`
	return r.query(ctx, "event list", q)
}

// ListBetween returns events whose start date falls in [from, to].
func (r *EventRepo) ListBetween(ctx context.Context, from, to string, onlyOpen bool) ([]Event, error) {
	q := `SELECT ` + eventColumns + ` FROM events WHERE substr(start, 1, 10) BETWEEN ? AND ?`
	if onlyOpen {
		q += ` AND is_done = 0`
	}
	q += ` ORDER BY start ASC`
	return r.query(ctx, "event list between", q, from, to)
}

// Search matches term case-insensitively against title, location and tags.
// An empty term matches everything.
func (r *EventRepo) Search(ctx context.Context, term string, onlyOpen bool) ([]Event, error) {
	q := `SELECT ` + eventColumns + ` FROM events WHERE 1=1`
	var args []any
	if t := strings.ToLower(strings.TrimSpace(term)); t != "" {
		like := "%" + t + "%"
		q += ` AND (lower(title) LIKE ? OR lower(coalesce(location, '')) LIKE ? OR lower(coalesce(tags, '')) LIKE ?)`
		args = append(args, like, like, like)
	}
	if onlyOpen {
		q += ` AND is_done = 0`
	}
	q += ` ORDER BY start ASC`
	return r.query(ctx, "event search", q, args...)
}

// SetDone flips the done flag. found is false when no row has id.
func (r *EventRepo) SetDone(ctx context.Context, id string, done bool) (bool, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE events SET is_done = ?, updated_at = ? WHERE id = ?`,
		boolToInt(done), r.now().UTC().Format(timeLayout), id)
	if err != nil {
		return false, fmt.Errorf("event set done: %w", err)
	}
	return affected(res, "event set done")
}

// Update rewrites every mutable column of e. created_at is preserved.
func (r *EventRepo) Update(ctx context.Context, e Event) (bool, error) {
	tagsJSON, err := marshalTags(e.Tags)
	if err != nil {
		return false, err
	}

	found := false
	err = WithTx(ctx, r.db, func(tx *sql.Tx) error {
		var one int
		if err := tx.QueryRowContext(ctx, `SELECT 1 FROM events WHERE id = ?`, e.ID).Scan(&one); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil
			}
			return fmt.Errorf("event lookup: %w", err)
		}
		_, err := tx.ExecContext(ctx, `
			UPDATE events
			SET title = ?, start = ?, ends_at = ?, all_day = ?, location = ?, notes = ?, tags = ?,
				is_exam = ?, is_done = ?, due = ?, subject_id = ?, color_hint = ?, updated_at = ?
			WHERE id = ?
		`, e.Title, formatTime(e.Start), formatTimePtr(e.End), boolToInt(e.AllDay), e.Location, e.Notes, tagsJSON,
			boolToInt(e.IsExam), boolToInt(e.IsDone), formatTimePtr(e.Due), e.SubjectID, e.ColorHint,
			r.now().UTC().Format(timeLayout), e.ID)
		if err != nil {
			return fmt.Errorf("event update: %w", err)
		}
		found = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return found, nil
}

func (r *EventRepo) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("event delete: %w", err)
	}
	return affected(res, "event delete")
}

func (r *EventRepo) query(ctx context.Context, op, q string, args ...any) ([]Event, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		e, err := scanEventRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s rows: %w", op, err)
	}
	return out, nil
}

func affected(res sql.Result, op string) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%s rows affected: %w", op, err)
	}
	return n > 0, nil
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEventRow(row scanner) (*Event, error) {
	var (
		id        string
		title     string
		start     string
		end       sql.NullString
		allDay    int
		location  sql.NullString
		notes     sql.NullString
		tagsRaw   sql.NullString
		isExam    int
		isDone    int
		due       sql.NullString
		subjectID sql.NullString
		colorHint sql.NullString
		createdAt string
		updatedAt string
	)

	if err := row.Scan(
		&id, &title, &start, &end, &allDay, &location, &notes, &tagsRaw,
		&isExam, &isDone, &due, &subjectID, &colorHint, &createdAt, &updatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("event scan: %w", err)
	}

	startAt, err := parseTime(start)
	if err != nil {
		return nil, fmt.Errorf("event %s start: %w", id, err)
	}
	endAt, err := parseNullTime(end)
	if err != nil {
		return nil, fmt.Errorf("event %s end: %w", id, err)
	}
	dueAt, err := parseNullTime(due)
	if err != nil {
		return nil, fmt.Errorf("event %s due: %w", id, err)
	}
	created, err := parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("event %s created_at: %w", id, err)
	}
	updated, err := parseTime(updatedAt)
	if err != nil {
		return nil, fmt.Errorf("event %s updated_at: %w", id, err)
	}

	// Parse tags JSON
	var tags []string
	if tagsRaw.Valid && tagsRaw.String != "" {
		if err := json.Unmarshal([]byte(tagsRaw.String), &tags); err != nil {
			return nil, fmt.Errorf("unmarshal tags: %w", err)
		}
	}

	return &Event{
		ID:        id,
		Title:     title,
		Start:     startAt,
		End:       endAt,
		AllDay:    allDay != 0,
		Location:  location.String,
		Notes:     notes.String,
		Tags:      tags,
		IsExam:    isExam != 0,
		IsDone:    isDone != 0,
		Due:       dueAt,
		SubjectID: subjectID.String,
		ColorHint: colorHint.String,
		CreatedAt: created,
		UpdatedAt: updated,
	}, nil
}

func marshalTags(tags []string) (*string, error) {
	if len(tags) == 0 {
		return nil, nil
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return nil, fmt.Errorf("marshal tags: %w", err)
	}
	s := string(data)
	return &s, nil
}

func formatTime(t time.Time) string {
	return t.Format(timeLayout)
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatTime(*t)
	return &s
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(timeLayout, s)
}

func parseNullTime(ns sql.NullString) (*time.Time, error) {
	if !ns.Valid || ns.String == "" {
		return nil, nil
	}
	t, err := parseTime(ns.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
