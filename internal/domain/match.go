package domain

import "time"

// MatchRecord is the persisted summary of a finished session.
type MatchRecord struct {
	ID           int64     `json:"id"`
	SessionID    string    `json:"session_id"`
	Winner       string    `json:"winner"` // faction tag, empty for stopped games
	Rounds       int       `json:"rounds"`
	DurationMS   int64     `json:"duration_ms"`
	Participants []string  `json:"participants"`
	CreatedAt    time.Time `json:"created_at"`
}

// RoundEvent is one resolution outcome (kill or ejection) inside a round.
type RoundEvent struct {
	ID        int64     `json:"id"`
	SessionID string    `json:"session_id"`
	Round     int       `json:"round"`
	Kind      string    `json:"kind"` // "kill" | "ejection"
	Actor     string    `json:"actor,omitempty"`
	Target    string    `json:"target"`
	CreatedAt time.Time `json:"created_at"`
}

const (
	EventKill     = "kill"
	EventEjection = "ejection"
)
