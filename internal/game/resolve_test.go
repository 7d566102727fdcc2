package game

import (
	"testing"

	"imposter_arena/internal/domain"
)

// six seats: imp1, imp2 impostors, crew1..crew4, everyone in room 0.
func testState() *domain.GameState {
	ids := []string{"imp1", "imp2", "crew1", "crew2", "crew3", "crew4"}
	participants := make(map[string]*domain.Participant, len(ids))
	for _, id := range ids {
		role := domain.FactionCrew
		if id == "imp1" || id == "imp2" {
			role = domain.FactionImpostor
		}
		participants[id] = &domain.Participant{ID: id, Role: role, Alive: true}
	}
	return &domain.GameState{
		Participants: participants,
		Phase:        domain.PhaseAction,
		Round:        1,
		TurnOrder:    ids,
		Votes:        make(map[string]string),
		Active:       true,
	}
}

func kill(target string) *domain.Decision {
	return &domain.Decision{Type: domain.DecisionKill, Target: target}
}

func TestResolveActionsKillsValidTarget(t *testing.T) {
	s := testState()
	s.Participants["imp1"].PendingAction = kill("crew1")

	events := ResolveActions(s)

	if s.Participants["crew1"].Alive {
		t.Fatal("crew1 should be dead")
	}
	if len(events) != 1 || events[0].Kind != domain.EventKill || events[0].Target != "crew1" {
		t.Fatalf("unexpected events: %+v", events)
	}
	if s.Participants["imp1"].PendingAction != nil {
		t.Fatal("pending action not cleared")
	}
}

func TestResolveActionsIdempotent(t *testing.T) {
	s := testState()
	s.Participants["imp1"].PendingAction = kill("crew1")
	s.Participants["imp2"].PendingAction = kill("crew1")

	ResolveActions(s)
	aliveAfterOnce := make(map[string]bool)
	for id, p := range s.Participants {
		aliveAfterOnce[id] = p.Alive
	}

	// re-applying the same batch must change nothing
	s.Participants["imp1"].PendingAction = kill("crew1")
	s.Participants["imp2"].PendingAction = kill("crew1")
	ResolveActions(s)

	for id, p := range s.Participants {
		if p.Alive != aliveAfterOnce[id] {
			t.Fatalf("alive state of %s changed on second application", id)
		}
	}
	if s.AliveByFaction(domain.FactionCrew) != 3 {
		t.Fatalf("want exactly one crew death, alive crew = %d", s.AliveByFaction(domain.FactionCrew))
	}
}

func TestResolveActionsRejectsIllegalKills(t *testing.T) {
	cases := []struct {
		name  string
		setup func(*domain.GameState)
	}{
		{"wrong room", func(s *domain.GameState) {
			s.Participants["crew1"].Room = 3
			s.Participants["imp1"].PendingAction = kill("crew1")
		}},
		{"impostor target", func(s *domain.GameState) {
			s.Participants["imp1"].PendingAction = kill("imp2")
		}},
		{"crew actor", func(s *domain.GameState) {
			s.Participants["crew2"].PendingAction = kill("crew1")
		}},
		{"dead actor", func(s *domain.GameState) {
			s.Participants["imp1"].Alive = false
			s.Participants["imp1"].PendingAction = kill("crew1")
		}},
	}

	for _, tc := range cases {
		s := testState()
		tc.setup(s)
		before := s.AliveByFaction(domain.FactionCrew) + s.AliveByFaction(domain.FactionImpostor)

		events := ResolveActions(s)

		after := s.AliveByFaction(domain.FactionCrew) + s.AliveByFaction(domain.FactionImpostor)
		if before != after || len(events) != 0 {
			t.Fatalf("%s: illegal kill was applied", tc.name)
		}
	}
}

func TestResolveMovementWrapsAround(t *testing.T) {
	s := testState()
	s.Participants["crew1"].Room = 5
	s.Participants["crew1"].PendingMove = &domain.Decision{Type: domain.DecisionClockwise}
	s.Participants["crew2"].Room = 0
	s.Participants["crew2"].PendingMove = &domain.Decision{Type: domain.DecisionCounterClockwise}
	s.Participants["crew3"].Room = 2
	s.Participants["crew3"].PendingMove = &domain.Decision{Type: domain.DecisionStay}

	ResolveMovement(s, DefaultRoomCount)

	if got := s.Participants["crew1"].Room; got != 0 {
		t.Fatalf("clockwise from 5: got room %d, want 0", got)
	}
	if got := s.Participants["crew2"].Room; got != 5 {
		t.Fatalf("counterclockwise from 0: got room %d, want 5", got)
	}
	if got := s.Participants["crew3"].Room; got != 2 {
		t.Fatalf("stay moved the participant to room %d", got)
	}
	for id, p := range s.Participants {
		if p.PendingMove != nil {
			t.Fatalf("pending move of %s not cleared", id)
		}
		if p.Room < 0 || p.Room >= DefaultRoomCount {
			t.Fatalf("room %d of %s out of range", p.Room, id)
		}
	}
}

func TestResolveVotesEjectsStrictPlurality(t *testing.T) {
	s := testState()
	s.Accused = "imp1"
	s.Votes = map[string]string{
		"crew1": "imp1",
		"crew2": "imp1",
		"crew3": "imp1",
		"imp1":  domain.AbstainTarget,
		"imp2":  "crew1",
		"crew4": domain.AbstainTarget,
	}

	events := ResolveVotes(s)

	if s.Participants["imp1"].Alive {
		t.Fatal("imp1 should be ejected")
	}
	if len(events) != 1 || events[0].Kind != domain.EventEjection {
		t.Fatalf("unexpected events: %+v", events)
	}
	if s.Accused != "" || len(s.Votes) != 0 {
		t.Fatal("accused/votes not cleared after resolution")
	}
}

func TestResolveVotesTieMeansNoEjection(t *testing.T) {
	s := testState()
	s.Votes = map[string]string{
		"crew1": "imp1",
		"crew2": "crew3",
	}

	events := ResolveVotes(s)

	for id, p := range s.Participants {
		if !p.Alive {
			t.Fatalf("tie ejected %s", id)
		}
	}
	if len(events) != 0 {
		t.Fatalf("tie produced events: %+v", events)
	}
}

func TestResolveVotesAbstainMajorityMeansNoEjection(t *testing.T) {
	s := testState()
	s.Votes = map[string]string{
		"crew1": domain.AbstainTarget,
		"crew2": domain.AbstainTarget,
		"crew3": domain.AbstainTarget,
		"crew4": "imp1",
	}

	ResolveVotes(s)

	if !s.Participants["imp1"].Alive {
		t.Fatal("abstain plurality must not eject")
	}
}
