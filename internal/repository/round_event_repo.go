package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"imposter_arena/internal/domain"
)

type RoundEventRepository struct {
	db *pgxpool.Pool
}

func NewRoundEventRepository(db *pgxpool.Pool) *RoundEventRepository {
	return &RoundEventRepository{db: db}
}

// Append stores a batch of resolution events for one session.
func (r *RoundEventRepository) Append(ctx context.Context, sessionID string, events []domain.RoundEvent) error {
	for _, e := range events {
		if _, err := r.db.Exec(ctx,
			`INSERT INTO round_events (session_id, round, kind, actor, target)
			 VALUES ($1, $2, $3, $4, $5)`,
			sessionID, e.Round, e.Kind, e.Actor, e.Target,
		); err != nil {
			return err
		}
	}
	return nil
}

// ListBySession returns a session's resolution events in order.
func (r *RoundEventRepository) ListBySession(ctx context.Context, sessionID string) ([]*domain.RoundEvent, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, session_id, round, kind, actor, target, created_at
		 FROM round_events
		 WHERE session_id = $1
		 ORDER BY id`,
		sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.RoundEvent
	for rows.Next() {
		e := &domain.RoundEvent{}
		if err := rows.Scan(&e.ID, &e.SessionID, &e.Round, &e.Kind, &e.Actor, &e.Target, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
