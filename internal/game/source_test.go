package game

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"imposter_arena/internal/domain"
)

type scriptMessenger struct {
	decisions map[string]domain.Decision
}

func (m *scriptMessenger) Send(ctx context.Context, id string, view domain.View, deadline time.Time) (domain.Decision, error) {
	if d, ok := m.decisions[id]; ok {
		return d, nil
	}
	return domain.Decision{}, errors.New("no reply")
}

// silentMessenger never answers before the deadline.
type silentMessenger struct{}

func (silentMessenger) Send(ctx context.Context, id string, view domain.View, deadline time.Time) (domain.Decision, error) {
	<-ctx.Done()
	return domain.Decision{}, ctx.Err()
}

func TestValidateDowngradesIllegalDecisions(t *testing.T) {
	cases := []struct {
		name  string
		actor string
		d     domain.Decision
		phase domain.Phase
		want  domain.DecisionType
	}{
		{"self kill", "imp1", domain.Decision{Type: domain.DecisionKill, Target: "imp1"}, domain.PhaseAction, domain.DecisionPass},
		{"kill by crew", "crew1", domain.Decision{Type: domain.DecisionKill, Target: "crew2"}, domain.PhaseAction, domain.DecisionPass},
		{"kill fellow impostor", "imp1", domain.Decision{Type: domain.DecisionKill, Target: "imp2"}, domain.PhaseAction, domain.DecisionPass},
		{"kill unknown target", "imp1", domain.Decision{Type: domain.DecisionKill, Target: "ghost"}, domain.PhaseAction, domain.DecisionPass},
		{"wrong phase type", "crew1", domain.Decision{Type: domain.DecisionClockwise}, domain.PhaseAction, domain.DecisionPass},
		{"vote in movement", "crew1", domain.Decision{Type: domain.DecisionVote, Target: "imp1"}, domain.PhaseMovement, domain.DecisionStay},
		{"self accusation", "crew1", domain.Decision{Type: domain.DecisionAccuse, Target: "crew1"}, domain.PhaseAction, domain.DecisionPass},
		{"valid kill passes through", "imp1", domain.Decision{Type: domain.DecisionKill, Target: "crew1"}, domain.PhaseAction, domain.DecisionKill},
		{"valid vote passes through", "crew1", domain.Decision{Type: domain.DecisionVote, Target: "imp1"}, domain.PhaseVoting, domain.DecisionVote},
	}

	for _, tc := range cases {
		s := testState()
		got := Validate(s, tc.actor, tc.d, tc.phase)
		if got.Type != tc.want {
			t.Fatalf("%s: got %q, want %q", tc.name, got.Type, tc.want)
		}
	}
}

func TestValidateKillRequiresCoLocation(t *testing.T) {
	s := testState()
	s.Participants["crew1"].Room = 4

	got := Validate(s, "imp1", domain.Decision{Type: domain.DecisionKill, Target: "crew1"}, domain.PhaseAction)
	if got.Type != domain.DecisionPass {
		t.Fatalf("cross-room kill accepted: %+v", got)
	}
}

func TestCollectDeadSeatIsNoOp(t *testing.T) {
	s := testState()
	s.Participants["crew1"].Alive = false

	ds := NewDecisionSource(&scriptMessenger{}, rand.New(rand.NewSource(1)))
	d := ds.Collect(context.Background(), s.Participants["crew1"], domain.View{}, domain.PhaseVoting, time.Now().Add(time.Second))
	if d.Type != domain.DecisionAbstain {
		t.Fatalf("dead seat produced %q, want abstain", d.Type)
	}
}

func TestCollectMessengerFailureIsNoOp(t *testing.T) {
	s := testState()
	ds := NewDecisionSource(&scriptMessenger{}, rand.New(rand.NewSource(1)))

	d := ds.Collect(context.Background(), s.Participants["crew1"], domain.View{}, domain.PhaseMovement, time.Now().Add(time.Second))
	if d.Type != domain.DecisionStay {
		t.Fatalf("unreachable seat produced %q, want stay", d.Type)
	}
}

func TestSyntheticDecisionsAreAlwaysValid(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	ds := NewDecisionSource(nil, rng)

	for i := 0; i < 200; i++ {
		s := testState()
		for _, id := range s.TurnOrder {
			p := s.Participants[id]
			p.Synthetic = true
			view, err := Project(s, id)
			if err != nil {
				t.Fatalf("project %s: %v", id, err)
			}
			for _, phase := range []domain.Phase{domain.PhaseAction, domain.PhaseMovement, domain.PhaseVoting} {
				d := ds.Collect(context.Background(), p, view, phase, time.Now().Add(time.Second))
				if got := Validate(s, id, d, phase); got != d {
					t.Fatalf("synthetic %s produced invalid %v for %s (downgraded to %v)", id, d, phase, got)
				}
			}
		}
	}
}
