package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS events (
			id TEXT PRIMARY KEY NOT NULL,
			title TEXT NOT NULL,
			start TEXT NOT NULL,
			ends_at TEXT,
			all_day INTEGER NOT NULL DEFAULT 0,
			location TEXT,
			notes TEXT,
			tags TEXT,
			is_exam INTEGER NOT NULL DEFAULT 0,
			is_done INTEGER NOT NULL DEFAULT 0,
			due TEXT,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_events_start ON events(start);`,
		`CREATE INDEX IF NOT EXISTS idx_events_tags ON events(tags);`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	// Columns added after the first release (ignore if already present)
	alterStmts := []string{
		`ALTER TABLE events ADD COLUMN subject_id TEXT;`,
		`ALTER TABLE events ADD COLUMN color_hint TEXT;`,
	}
	for _, stmt := range alterStmts {
		_, err := db.ExecContext(ctx, stmt)
		if err != nil && !strings.Contains(err.Error(), "duplicate column") {
			return fmt.Errorf("migrate alter: %w", err)
		}
	}

	return nil
}
