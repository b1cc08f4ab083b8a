package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS projects (
		id TEXT PRIMARY KEY,
		org_id TEXT NOT NULL,
		name TEXT NOT NULL,
		client TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS tasks (
		id TEXT PRIMARY KEY,
		project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		code TEXT NOT NULL DEFAULT '',
		title TEXT NOT NULL,
		logged_seconds INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS profiles (
		user_id TEXT PRIMARY KEY,
		org_id TEXT NOT NULL,
		plan TEXT NOT NULL DEFAULT 'base'
			CHECK (plan IN ('base', 'pro')),
		default_billable INTEGER NOT NULL DEFAULT 0
	)`,

	// One row per user: the storage-level backing for the single-active-timer
	// invariant.
	`CREATE TABLE IF NOT EXISTS timers (
		user_id TEXT PRIMARY KEY,
		org_id TEXT NOT NULL,
		mode TEXT NOT NULL DEFAULT 'idle'
			CHECK (mode IN ('idle', 'running', 'paused')),
		kind TEXT NOT NULL DEFAULT '',
		fixed_duration_seconds INTEGER NOT NULL DEFAULT 0,
		task_id TEXT NOT NULL DEFAULT '',
		project_id TEXT NOT NULL DEFAULT '',
		started_at TEXT,
		accumulated_seconds INTEGER NOT NULL DEFAULT 0,
		description TEXT NOT NULL DEFAULT '',
		billable INTEGER NOT NULL DEFAULT 0,
		default_billable INTEGER NOT NULL DEFAULT 0
	)`,

	`CREATE TABLE IF NOT EXISTS time_entries (
		id TEXT PRIMARY KEY,
		org_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		task_id TEXT NOT NULL DEFAULT '',
		project_id TEXT NOT NULL DEFAULT '',
		start_time TEXT NOT NULL,
		end_time TEXT NOT NULL,
		duration_seconds INTEGER NOT NULL,
		timer_type TEXT NOT NULL DEFAULT 'manual',
		description TEXT NOT NULL DEFAULT '',
		billable INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_time_entries_user_start
		ON time_entries(user_id, start_time)`,

	`CREATE TABLE IF NOT EXISTS timesheets (
		id TEXT PRIMARY KEY,
		org_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		week_start TEXT NOT NULL,
		week_end TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'draft'
			CHECK (status IN ('draft', 'submitted', 'approved')),
		total_hours REAL NOT NULL DEFAULT 0,
		billable_hours REAL NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		UNIQUE (user_id, week_start)
	)`,

	// time_entry_id is UNIQUE: an entry belongs to at most one timesheet.
	`CREATE TABLE IF NOT EXISTS timesheet_entries (
		timesheet_id TEXT NOT NULL REFERENCES timesheets(id) ON DELETE CASCADE,
		time_entry_id TEXT NOT NULL UNIQUE REFERENCES time_entries(id) ON DELETE CASCADE,
		PRIMARY KEY (timesheet_id, time_entry_id)
	)`,
}
