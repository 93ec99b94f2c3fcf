package database

import (
	"context"
	"database/sql"
	"fmt"
)

// Statements are executed one at a time: the pgx stdlib driver uses the
// extended protocol, which rejects multi-statement Exec calls.
var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id         BIGSERIAL   PRIMARY KEY,
		username   TEXT        NOT NULL UNIQUE,
		credential TEXT        NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS polls (
		id         BIGSERIAL   PRIMARY KEY,
		owner_id   BIGINT      NOT NULL REFERENCES users(id),
		question   TEXT        NOT NULL,
		is_closed  BOOLEAN     NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS choices (
		id          BIGSERIAL PRIMARY KEY,
		poll_id     BIGINT    NOT NULL REFERENCES polls(id) ON DELETE CASCADE,
		choice_text TEXT      NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS responses (
		poll_id    BIGINT      NOT NULL REFERENCES polls(id) ON DELETE CASCADE,
		choice_id  BIGINT      NOT NULL REFERENCES choices(id) ON DELETE CASCADE,
		user_id    BIGINT      NOT NULL REFERENCES users(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (poll_id, user_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_choices_poll_id ON choices(poll_id)`,
	`CREATE INDEX IF NOT EXISTS idx_responses_choice_id ON responses(choice_id)`,
}

// SQLite keeps created_at writes in Go code, so the columns carry no
// server-side default.
var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id         INTEGER   PRIMARY KEY AUTOINCREMENT,
		username   TEXT      NOT NULL UNIQUE,
		credential TEXT      NOT NULL,
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS polls (
		id         INTEGER   PRIMARY KEY AUTOINCREMENT,
		owner_id   INTEGER   NOT NULL REFERENCES users(id),
		question   TEXT      NOT NULL,
		is_closed  INTEGER   NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS choices (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		poll_id     INTEGER NOT NULL REFERENCES polls(id) ON DELETE CASCADE,
		choice_text TEXT    NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS responses (
		poll_id    INTEGER   NOT NULL REFERENCES polls(id) ON DELETE CASCADE,
		choice_id  INTEGER   NOT NULL REFERENCES choices(id) ON DELETE CASCADE,
		user_id    INTEGER   NOT NULL REFERENCES users(id),
		created_at TIMESTAMP NOT NULL,
		PRIMARY KEY (poll_id, user_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_choices_poll_id ON choices(poll_id)`,
	`CREATE INDEX IF NOT EXISTS idx_responses_choice_id ON responses(choice_id)`,
}

// EnsureSchema creates the tables and indexes for the given driver if
// they do not exist yet. It is safe to call on every startup.
func EnsureSchema(ctx context.Context, db *sql.DB, driver string) error {
	var stmts []string
	switch driver {
	case "postgres":
		stmts = postgresSchema
	case "sqlite":
		stmts = sqliteSchema
	default:
		return fmt.Errorf("database: unknown driver %q", driver)
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("database: ensure schema: %w", err)
		}
	}
	return nil
}
