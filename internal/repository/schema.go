package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSchema creates the history tables when they don't exist yet. The
// live game never reads these back; they are result audit only.
func EnsureSchema(ctx context.Context, db *pgxpool.Pool) error {
	_, err := db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS match_history (
			id           BIGSERIAL PRIMARY KEY,
			session_id   TEXT NOT NULL,
			winner       TEXT NOT NULL DEFAULT '',
			rounds       INT NOT NULL,
			duration_ms  BIGINT NOT NULL,
			participants JSONB NOT NULL DEFAULT '[]',
			created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
		);

		CREATE TABLE IF NOT EXISTS round_events (
			id         BIGSERIAL PRIMARY KEY,
			session_id TEXT NOT NULL,
			round      INT NOT NULL,
			kind       TEXT NOT NULL,
			actor      TEXT NOT NULL DEFAULT '',
			target     TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);

		CREATE INDEX IF NOT EXISTS idx_round_events_session ON round_events (session_id);
	`)
	return err
}
