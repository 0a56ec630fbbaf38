package db

import (
	"database/sql"
	"fmt"
)

// migrations are applied in order and recorded in schema_migrations by
// index; append new statements, never edit applied ones.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS semesters (
		id               TEXT PRIMARY KEY,
		name             TEXT NOT NULL,
		first_week_start TEXT NOT NULL,
		last_week_end    TEXT NOT NULL,
		created_at       TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS rooms (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL UNIQUE,
		created_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS lesson_times (
		number     INTEGER PRIMARY KEY CHECK(number >= 1),
		start_time TEXT NOT NULL,
		end_time   TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS sessions (
		id           TEXT PRIMARY KEY,
		semester_id  TEXT NOT NULL REFERENCES semesters(id) ON DELETE CASCADE,
		day_of_week  TEXT NOT NULL,
		start_period INTEGER NOT NULL CHECK(start_period >= 1),
		end_period   INTEGER NOT NULL,
		room_name    TEXT NOT NULL REFERENCES rooms(name) ON UPDATE CASCADE,
		status       TEXT NOT NULL DEFAULT 'PENDING'
		             CHECK(status IN ('ACTIVE','PENDING','REJECTED','CANCELLED')),
		course_name  TEXT NOT NULL DEFAULT '',
		instructor   TEXT NOT NULL DEFAULT '',
		note         TEXT NOT NULL DEFAULT '',
		created_at   TEXT NOT NULL,
		updated_at   TEXT NOT NULL,
		CHECK(end_period >= start_period)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_sessions_semester ON sessions(semester_id)`,
	`CREATE INDEX IF NOT EXISTS idx_sessions_room_day ON sessions(room_name, day_of_week)`,

	`CREATE TABLE IF NOT EXISTS session_cancellations (
		session_id TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
		date       TEXT NOT NULL,
		PRIMARY KEY (session_id, date)
	)`,
}

// Migrate applies every migration not yet recorded in schema_migrations.
func Migrate(db *sql.DB) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (version INTEGER PRIMARY KEY)`); err != nil {
		return fmt.Errorf("creating schema_migrations: %w", err)
	}

	var applied int
	if err := db.QueryRow(`SELECT COALESCE(MAX(version) + 1, 0) FROM schema_migrations`).Scan(&applied); err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}

	for i := applied; i < len(migrations); i++ {
		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
		if _, err := tx.Exec(migrations[i]); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d: %w", i, err)
		}
		if _, err := tx.Exec(`INSERT INTO schema_migrations (version) VALUES (?)`, i); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("recording migration %d: %w", i, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing migration %d: %w", i, err)
		}
	}
	return nil
}

// SchemaVersion returns the number of applied migrations.
func SchemaVersion(db *sql.DB) (int, error) {
	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM schema_migrations`).Scan(&n); err != nil {
		return 0, fmt.Errorf("reading schema version: %w", err)
	}
	return n, nil
}
