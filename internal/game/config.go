package game

import "time"

// Config carries per-session tunables. Zero values are replaced with the
// defaults below so tests can construct partial configs.
type Config struct {
	RoomCount      int
	MinSeats       int
	ActionWindow   time.Duration
	MovementWindow time.Duration
	VotingWindow   time.Duration
}

const (
	DefaultRoomCount      = 6
	DefaultMinSeats       = 6
	DefaultActionWindow   = 30 * time.Second
	DefaultMovementWindow = 15 * time.Second
	DefaultVotingWindow   = 45 * time.Second
)

func (c Config) withDefaults() Config {
	if c.RoomCount <= 0 {
		c.RoomCount = DefaultRoomCount
	}
	if c.MinSeats <= 0 {
		c.MinSeats = DefaultMinSeats
	}
	if c.ActionWindow <= 0 {
		c.ActionWindow = DefaultActionWindow
	}
	if c.MovementWindow <= 0 {
		c.MovementWindow = DefaultMovementWindow
	}
	if c.VotingWindow <= 0 {
		c.VotingWindow = DefaultVotingWindow
	}
	return c
}
