package domain

// DecisionType enumerates every decision a participant can submit.
type DecisionType string

const (
	// action phase
	DecisionPass   DecisionType = "pass"
	DecisionKill   DecisionType = "kill"
	DecisionAccuse DecisionType = "accuse"

	// movement phase
	DecisionStay             DecisionType = "stay"
	DecisionClockwise        DecisionType = "clockwise"
	DecisionCounterClockwise DecisionType = "counterclockwise"

	// voting phase
	DecisionVote    DecisionType = "vote"
	DecisionAbstain DecisionType = "abstain"
)

// AbstainTarget is the sentinel tally key for abstentions.
const AbstainTarget = "abstain"

// Decision is the structured outcome a participant produces for a phase.
// Target is set for kill/accuse/vote; Text carries the accusation
// justification and is recorded verbatim, never interpreted.
type Decision struct {
	Type   DecisionType `json:"type"`
	Target string       `json:"target,omitempty"`
	Text   string       `json:"text,omitempty"`
}

// NoOpFor returns the phase-appropriate default decision, substituted
// whenever no valid decision was collected.
func NoOpFor(phase Phase) Decision {
	switch phase {
	case PhaseMovement:
		return Decision{Type: DecisionStay}
	case PhaseVoting:
		return Decision{Type: DecisionAbstain}
	default:
		return Decision{Type: DecisionPass}
	}
}

// ValidFor reports whether the decision type belongs to the given phase.
func (d Decision) ValidFor(phase Phase) bool {
	switch phase {
	case PhaseAction:
		return d.Type == DecisionPass || d.Type == DecisionKill || d.Type == DecisionAccuse
	case PhaseMovement:
		return d.Type == DecisionStay || d.Type == DecisionClockwise || d.Type == DecisionCounterClockwise
	case PhaseVoting:
		return d.Type == DecisionVote || d.Type == DecisionAbstain
	default:
		return false
	}
}
