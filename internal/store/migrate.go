package store

import (
	"database/sql"
	"fmt"
)

// migrate creates the event tables. All DDL is idempotent; the schema grows
// by appending statements here.
func migrate(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS session_events (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			sequence      INTEGER NOT NULL,
			timestamp     DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			session_id    TEXT NOT NULL,
			action        TEXT NOT NULL,
			mode          TEXT NOT NULL,
			deck_id       TEXT NOT NULL,
			cards_scored  INTEGER NOT NULL DEFAULT 0,
			duration_secs INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_session_events_session
			ON session_events (session_id)`,

		`CREATE TABLE IF NOT EXISTS review_events (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			sequence    INTEGER NOT NULL,
			timestamp   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			session_id  TEXT NOT NULL,
			topic_id    TEXT NOT NULL,
			position    INTEGER NOT NULL,
			card_kind   TEXT NOT NULL,
			grade       TEXT NOT NULL,
			next_due_at DATETIME
		)`,
		`CREATE INDEX IF NOT EXISTS idx_review_events_card
			ON review_events (topic_id, position)`,

		`CREATE TABLE IF NOT EXISTS llm_request_events (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			sequence      INTEGER NOT NULL,
			timestamp     DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			provider      TEXT NOT NULL,
			model         TEXT NOT NULL,
			purpose       TEXT NOT NULL,
			input_tokens  INTEGER NOT NULL DEFAULT 0,
			output_tokens INTEGER NOT NULL DEFAULT 0,
			latency_ms    INTEGER NOT NULL DEFAULT 0,
			success       INTEGER NOT NULL,
			error_message TEXT NOT NULL DEFAULT '',
			request_body  TEXT NOT NULL DEFAULT '',
			response_body TEXT NOT NULL DEFAULT ''
		)`,
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("exec migration: %w", err)
		}
	}
	return nil
}
