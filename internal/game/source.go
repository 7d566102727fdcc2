package game

import (
	"context"
	"math/rand"
	"time"

	"imposter_arena/internal/domain"
	"imposter_arena/internal/logger"
)

// DecisionSource produces one decision per participant per phase: remote
// seats go through the Messenger, synthetic seats run a local policy.
// It never fails: anything that goes wrong degrades to the phase no-op.
type DecisionSource struct {
	messenger Messenger
	rng       *rand.Rand
}

func NewDecisionSource(messenger Messenger, rng *rand.Rand) *DecisionSource {
	return &DecisionSource{messenger: messenger, rng: rng}
}

// Collect returns the decision for one participant. The caller validates
// the result against state before storing it; Collect only handles the
// transport/policy side.
func (ds *DecisionSource) Collect(ctx context.Context, p *domain.Participant, view domain.View, phase domain.Phase, deadline time.Time) domain.Decision {
	if !p.Alive {
		return domain.NoOpFor(phase)
	}

	if p.Synthetic {
		d := ds.synthetic(p, view, phase)
		DecisionsCollected.WithLabelValues("synthetic", "ok").Inc()
		return d
	}

	if ds.messenger == nil {
		DecisionsCollected.WithLabelValues("remote", "no_messenger").Inc()
		return domain.NoOpFor(phase)
	}

	d, err := ds.messenger.Send(ctx, p.ID, view, deadline)
	if err != nil {
		// late, malformed or unreachable: all identical, never fatal
		logger.Warn("decision collect degraded to no-op",
			"participant", p.ID, "phase", phase.String(), "error", err)
		DecisionsCollected.WithLabelValues("remote", "noop").Inc()
		return domain.NoOpFor(phase)
	}

	DecisionsCollected.WithLabelValues("remote", "ok").Inc()
	return d
}

// synthetic is the fixed stochastic fallback policy:
//   - action: an impostor kills a random valid co-located crew target with
//     p=0.5, otherwise passes; crew always passes
//   - movement: uniform stay / clockwise / counterclockwise
//   - voting: abstain with p=0.5, otherwise a uniform alive non-self target
func (ds *DecisionSource) synthetic(p *domain.Participant, view domain.View, phase domain.Phase) domain.Decision {
	switch phase {
	case domain.PhaseAction:
		if p.Role != domain.FactionImpostor || ds.rng.Intn(2) == 0 {
			return domain.Decision{Type: domain.DecisionPass}
		}
		var targets []string
		for _, other := range view.Players {
			if other.ID == p.ID || !other.Alive || other.Room != p.Room {
				continue
			}
			if other.Role == domain.FactionImpostor {
				continue
			}
			targets = append(targets, other.ID)
		}
		if len(targets) == 0 {
			return domain.Decision{Type: domain.DecisionPass}
		}
		return domain.Decision{Type: domain.DecisionKill, Target: targets[ds.rng.Intn(len(targets))]}

	case domain.PhaseMovement:
		switch ds.rng.Intn(3) {
		case 0:
			return domain.Decision{Type: domain.DecisionClockwise}
		case 1:
			return domain.Decision{Type: domain.DecisionCounterClockwise}
		default:
			return domain.Decision{Type: domain.DecisionStay}
		}

	case domain.PhaseVoting:
		if ds.rng.Intn(2) == 0 {
			return domain.Decision{Type: domain.DecisionAbstain}
		}
		var targets []string
		for _, other := range view.Players {
			if other.ID != p.ID && other.Alive {
				targets = append(targets, other.ID)
			}
		}
		if len(targets) == 0 {
			return domain.Decision{Type: domain.DecisionAbstain}
		}
		return domain.Decision{Type: domain.DecisionVote, Target: targets[ds.rng.Intn(len(targets))]}
	}

	return domain.NoOpFor(phase)
}

// Validate checks a collected decision against current state and downgrades
// anything illegal to the phase no-op. The rules are identical no matter
// where the decision came from:
//   - the decision type must belong to the phase
//   - a target must not be the actor itself
//   - a kill target must be alive, co-located with the actor, and not an
//     impostor; only impostors kill
//   - an accusation or vote target must be alive
func Validate(state *domain.GameState, actorID string, d domain.Decision, phase domain.Phase) domain.Decision {
	noop := domain.NoOpFor(phase)

	actor, ok := state.Participants[actorID]
	if !ok || !actor.Alive {
		return noop
	}
	if !d.ValidFor(phase) {
		return noop
	}

	switch d.Type {
	case domain.DecisionKill:
		target, ok := state.Participants[d.Target]
		if !ok || d.Target == actorID {
			return noop
		}
		if actor.Role != domain.FactionImpostor {
			return noop
		}
		if !target.Alive || target.Room != actor.Room || target.Role == domain.FactionImpostor {
			return noop
		}
	case domain.DecisionAccuse, domain.DecisionVote:
		target, ok := state.Participants[d.Target]
		if !ok || d.Target == actorID || !target.Alive {
			return noop
		}
	}

	return d
}
