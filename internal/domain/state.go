package domain

import "errors"

var (
	ErrNotParticipant  = errors.New("not a participant of this session")
	ErrSessionNotFound = errors.New("session not found")
	ErrNoAliveSeat     = errors.New("no alive participants left")
	ErrAlreadyStarted  = errors.New("session already started")
)

// GameState is the single mutable aggregate of one session. It is owned
// exclusively by the session's scheduler goroutine; everything else reads
// it through projected views.
type GameState struct {
	Participants map[string]*Participant
	Phase        Phase
	Round        int
	TurnOrder    []string
	Accused      string
	Votes        map[string]string // voter id -> target id or AbstainTarget
	Active       bool
	Winner       Faction // empty until a win condition fires
}

// Alive returns the ids of living participants in turn order.
func (s *GameState) Alive() []string {
	out := make([]string, 0, len(s.TurnOrder))
	for _, id := range s.TurnOrder {
		if p, ok := s.Participants[id]; ok && p.Alive {
			out = append(out, id)
		}
	}
	return out
}

// AliveByFaction counts living members of the given faction.
func (s *GameState) AliveByFaction(f Faction) int {
	n := 0
	for _, p := range s.Participants {
		if p.Alive && p.Role == f {
			n++
		}
	}
	return n
}
