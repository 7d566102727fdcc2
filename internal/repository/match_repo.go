package repository

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"

	"imposter_arena/internal/domain"
)

type MatchHistoryRepository struct {
	db *pgxpool.Pool
}

func NewMatchHistoryRepository(db *pgxpool.Pool) *MatchHistoryRepository {
	return &MatchHistoryRepository{db: db}
}

// Create persists the summary of a finished session.
func (r *MatchHistoryRepository) Create(ctx context.Context, m *domain.MatchRecord) error {
	participantsJSON, err := json.Marshal(m.Participants)
	if err != nil {
		participantsJSON = []byte("[]")
	}

	return r.db.QueryRow(ctx,
		`INSERT INTO match_history
			(session_id, winner, rounds, duration_ms, participants)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		m.SessionID,
		m.Winner,
		m.Rounds,
		m.DurationMS,
		participantsJSON,
	).Scan(&m.ID, &m.CreatedAt)
}

// ListRecent returns the newest finished matches.
func (r *MatchHistoryRepository) ListRecent(ctx context.Context, limit int) ([]*domain.MatchRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, session_id, winner, rounds, duration_ms, participants, created_at
		 FROM match_history
		 ORDER BY created_at DESC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.MatchRecord
	for rows.Next() {
		m := &domain.MatchRecord{}
		var participantsJSON []byte
		if err := rows.Scan(&m.ID, &m.SessionID, &m.Winner, &m.Rounds, &m.DurationMS, &participantsJSON, &m.CreatedAt); err != nil {
			return nil, err
		}
		if len(participantsJSON) > 0 {
			_ = json.Unmarshal(participantsJSON, &m.Participants)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
