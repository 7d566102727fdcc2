package game

import (
	"imposter_arena/internal/domain"
)

// Resolvers consume the pending decision slots and mutate state. They are
// pure over their inputs (no I/O, no clock) and always clear the slots
// they consume, populated or not.

// ResolveActions applies every pending kill. Legality is re-checked
// against the state at resolution time: the actor must still be alive and
// impostor, the target alive, co-located and crew. A target already dead
// from an earlier application stays dead and the later kill is a no-op,
// which makes the whole step idempotent and order-independent.
func ResolveActions(state *domain.GameState) []domain.RoundEvent {
	var events []domain.RoundEvent

	for _, id := range state.TurnOrder {
		actor, ok := state.Participants[id]
		if !ok || actor.PendingAction == nil {
			continue
		}
		d := *actor.PendingAction
		actor.PendingAction = nil

		if d.Type != domain.DecisionKill || !actor.Alive || actor.Role != domain.FactionImpostor {
			continue
		}
		target, ok := state.Participants[d.Target]
		if !ok || !target.Alive || target.Room != actor.Room || target.Role == domain.FactionImpostor {
			continue
		}

		target.Alive = false
		events = append(events, domain.RoundEvent{
			Round:  state.Round,
			Kind:   domain.EventKill,
			Actor:  actor.ID,
			Target: target.ID,
		})
	}

	return events
}

// ResolveMovement applies pending movements: clockwise is +1, counter-
// clockwise is -1, both mod roomCount; stay leaves the room untouched.
// Alive and synthetic seats are treated uniformly.
func ResolveMovement(state *domain.GameState, roomCount int) {
	for _, p := range state.Participants {
		if p.PendingMove == nil {
			continue
		}
		d := *p.PendingMove
		p.PendingMove = nil

		if !p.Alive {
			continue
		}
		switch d.Type {
		case domain.DecisionClockwise:
			p.Room = (p.Room + 1) % roomCount
		case domain.DecisionCounterClockwise:
			p.Room = (p.Room - 1 + roomCount) % roomCount
		}
	}
}

// ResolveVotes tallies the votes map into counts keyed by target or the
// abstain sentinel. The strictly greatest count ejects its target; a tie
// at the maximum, or abstain holding the maximum, ejects nobody. Accused
// and votes are cleared either way.
func ResolveVotes(state *domain.GameState) []domain.RoundEvent {
	counts := make(map[string]int)
	for _, target := range state.Votes {
		counts[target]++
	}

	top, topCount, tied := "", 0, false
	for target, n := range counts {
		switch {
		case n > topCount:
			top, topCount, tied = target, n, false
		case n == topCount:
			tied = true
		}
	}

	var events []domain.RoundEvent
	if topCount > 0 && !tied && top != domain.AbstainTarget {
		if target, ok := state.Participants[top]; ok && target.Alive {
			target.Alive = false
			events = append(events, domain.RoundEvent{
				Round:  state.Round,
				Kind:   domain.EventEjection,
				Target: target.ID,
			})
		}
	}

	state.Accused = ""
	state.Votes = make(map[string]string)
	for _, p := range state.Participants {
		p.PendingVote = nil
	}

	return events
}

// ClearActions drops any still-pending action slots. Used when a voting
// round preempts the action->movement cycle: the interrupted round's
// actions are discarded, never carried into the next round.
func ClearActions(state *domain.GameState) {
	for _, p := range state.Participants {
		p.PendingAction = nil
	}
}
