package database

import (
	"context"
	"database/sql"
	"fmt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS campaigns (
		id             BIGINT PRIMARY KEY,
		title          TEXT NOT NULL,
		description    TEXT NOT NULL DEFAULT '',
		category       TEXT NOT NULL,
		target_amount  BIGINT NOT NULL CHECK (target_amount > 0),
		current_amount BIGINT NOT NULL DEFAULT 0 CHECK (current_amount >= 0),
		recipient      TEXT NOT NULL,
		status         TEXT NOT NULL,
		created_at     TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS campaign_counter (
		id    SMALLINT PRIMARY KEY CHECK (id = 1),
		value BIGINT NOT NULL
	)`,
	`INSERT INTO campaign_counter (id, value) VALUES (1, 0) ON CONFLICT (id) DO NOTHING`,
	`CREATE TABLE IF NOT EXISTS donations (
		seq          BIGSERIAL PRIMARY KEY,
		campaign_id  BIGINT NOT NULL REFERENCES campaigns (id),
		donor        TEXT NOT NULL,
		amount       BIGINT NOT NULL CHECK (amount > 0),
		is_anonymous BOOLEAN NOT NULL DEFAULT FALSE,
		created_at   TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS donations_campaign_seq_idx ON donations (campaign_id, seq)`,
	`CREATE TABLE IF NOT EXISTS ledger_admin (
		id             SMALLINT PRIMARY KEY CHECK (id = 1),
		principal      TEXT NOT NULL,
		initialized_at TIMESTAMPTZ NOT NULL
	)`,
}

// Migrate creates the ledger tables when they are missing. Every statement
// is idempotent.
func Migrate(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin migration: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range schema {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migration: %w", err)
	}
	return nil
}
