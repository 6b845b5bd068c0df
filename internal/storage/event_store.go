package storage

import (
	"context"
	"time"
)

// EventStore persists calendar events. EventRepo keeps them in SQLite and
// JSONEventRepo in events.json when the database cannot be opened.
type EventStore interface {
	// SetClock replaces the clock used for created/updated stamps.
	SetClock(now func() time.Time)

	Insert(ctx context.Context, in EventInsert) (*Event, error)
	// Get returns nil, nil when no event has id.
	Get(ctx context.Context, id string) (*Event, error)
	List(ctx context.Context, onlyOpen bool) ([]Event, error)
	ListBetween(ctx context.Context, from, to string, onlyOpen bool) ([]Event, error)
	Search(ctx context.Context, term string, onlyOpen bool) ([]Event, error)
	SetDone(ctx context.Context, id string, done bool) (bool, error)
	Update(ctx context.Context, e Event) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

var (
	_ EventStore = (*EventRepo)(nil)
	_ EventStore = (*JSONEventRepo)(nil)
)
