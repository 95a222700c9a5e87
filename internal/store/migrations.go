package store

import (
	"context"
	"fmt"
)

type migration struct {
	version int
	sql     string
}

// migrations run in order; versions must be sequential starting from 1.
// The DDL is restricted to what both Postgres and SQLite accept.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS users (
	id         TEXT PRIMARY KEY,
	first_name TEXT NOT NULL,
	last_name  TEXT NOT NULL,
	email      TEXT NOT NULL UNIQUE,
	password   TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL,
	updated_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS user_roles (
	user_id TEXT NOT NULL REFERENCES users (id) ON DELETE CASCADE,
	role    TEXT NOT NULL,
	PRIMARY KEY (user_id, role)
);

CREATE TABLE IF NOT EXISTS sessions (
	id            TEXT PRIMARY KEY,
	user_id       TEXT NOT NULL REFERENCES users (id) ON DELETE CASCADE,
	fingerprint   TEXT NOT NULL,
	refresh_token TEXT NOT NULL UNIQUE,
	expires_at    TIMESTAMP NOT NULL,
	created_at    TIMESTAMP NOT NULL,
	updated_at    TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS projects (
	id                 TEXT PRIMARY KEY,
	name               TEXT NOT NULL,
	description        TEXT,
	start_date         TIMESTAMP NOT NULL,
	end_date           TIMESTAMP,
	status             TEXT NOT NULL,
	created_by_user_id TEXT NOT NULL REFERENCES users (id) ON DELETE RESTRICT,
	created_at         TIMESTAMP NOT NULL,
	updated_at         TIMESTAMP
);

CREATE TABLE IF NOT EXISTS tasks (
	id                 TEXT PRIMARY KEY,
	title              TEXT NOT NULL,
	description        TEXT,
	start_date         TIMESTAMP NOT NULL,
	due_date           TIMESTAMP,
	status             TEXT NOT NULL,
	priority           TEXT NOT NULL,
	project_id         TEXT NOT NULL REFERENCES projects (id) ON DELETE CASCADE,
	created_by_user_id TEXT NOT NULL REFERENCES users (id) ON DELETE RESTRICT,
	created_at         TIMESTAMP NOT NULL,
	updated_at         TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_tasks_project_id ON tasks (project_id);

CREATE TABLE IF NOT EXISTS task_assignments (
	id                  TEXT PRIMARY KEY,
	task_id             TEXT NOT NULL REFERENCES tasks (id) ON DELETE CASCADE,
	assigned_to_user_id TEXT NOT NULL REFERENCES users (id) ON DELETE RESTRICT,
	assigned_at         TIMESTAMP NOT NULL,
	UNIQUE (task_id, assigned_to_user_id)
);

CREATE INDEX IF NOT EXISTS idx_task_assignments_user_id ON task_assignments (assigned_to_user_id);

CREATE TABLE IF NOT EXISTS attachments (
	id                  TEXT PRIMARY KEY,
	file_name           TEXT NOT NULL,
	file_path           TEXT NOT NULL,
	file_size           BIGINT NOT NULL,
	content_type        TEXT,
	task_id             TEXT NOT NULL REFERENCES tasks (id) ON DELETE CASCADE,
	uploaded_by_user_id TEXT NOT NULL REFERENCES users (id) ON DELETE RESTRICT,
	uploaded_at         TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_attachments_task_id ON attachments (task_id);

CREATE TABLE IF NOT EXISTS notifications (
	id         TEXT PRIMARY KEY,
	user_id    TEXT NOT NULL REFERENCES users (id) ON DELETE CASCADE,
	title      TEXT NOT NULL,
	message    TEXT,
	type       TEXT NOT NULL,
	is_read    BOOLEAN NOT NULL DEFAULT FALSE,
	created_at TIMESTAMP NOT NULL,
	task_id    TEXT REFERENCES tasks (id) ON DELETE SET NULL,
	project_id TEXT REFERENCES projects (id) ON DELETE SET NULL
);

CREATE INDEX IF NOT EXISTS idx_notifications_user_id ON notifications (user_id);

CREATE TABLE IF NOT EXISTS activity_logs (
	id          TEXT PRIMARY KEY,
	action      TEXT NOT NULL,
	description TEXT,
	type        TEXT NOT NULL,
	created_at  TIMESTAMP NOT NULL,
	user_id     TEXT NOT NULL REFERENCES users (id) ON DELETE RESTRICT,
	task_id     TEXT REFERENCES tasks (id) ON DELETE SET NULL,
	project_id  TEXT REFERENCES projects (id) ON DELETE SET NULL
);

CREATE INDEX IF NOT EXISTS idx_activity_logs_created_at ON activity_logs (created_at);
`,
	},
}

// Migrate applies every migration newer than the recorded schema version.
func (d *DB) Migrate(ctx context.Context) error {
	_, err := d.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_version (version INTEGER NOT NULL)`)
	if err != nil {
		return fmt.Errorf("creating schema_version table: %w", err)
	}

	var current int
	err = d.db.GetContext(ctx, &current, `SELECT COALESCE(MAX(version), 0) FROM schema_version`)
	if err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}

		tx, err := d.db.BeginTxx(ctx, nil)
		if err != nil {
			return fmt.Errorf("beginning migration v%d: %w", m.version, err)
		}
		if _, err = tx.ExecContext(ctx, m.sql); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
		if _, err = tx.ExecContext(ctx, tx.Rebind(`INSERT INTO schema_version (version) VALUES (?)`), m.version); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("recording migration v%d: %w", m.version, err)
		}
		if err = tx.Commit(); err != nil {
			return fmt.Errorf("committing migration v%d: %w", m.version, err)
		}
	}
	return nil
}
