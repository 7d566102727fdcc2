package domain

// Phase is one state of the per-round state machine.
type Phase string

const (
	PhaseAction   Phase = "action"
	PhaseMovement Phase = "movement"
	PhaseVoting   Phase = "voting"
	PhaseComplete Phase = "complete"
)

func (p Phase) String() string {
	return string(p)
}

// CanTransitionTo reports whether moving from p to target is a legal
// state-machine step. Voting is reachable only from Action (an accusation
// preempts the rest of the round); Complete is terminal.
func (p Phase) CanTransitionTo(target Phase) bool {
	valid := map[Phase][]Phase{
		PhaseAction:   {PhaseMovement, PhaseVoting},
		PhaseMovement: {PhaseAction, PhaseComplete},
		PhaseVoting:   {PhaseAction, PhaseComplete},
	}

	for _, next := range valid[p] {
		if next == target {
			return true
		}
	}
	return false
}
