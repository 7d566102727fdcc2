package game

import (
	"testing"

	"imposter_arena/internal/domain"
)

func TestEvaluateWin(t *testing.T) {
	cases := []struct {
		name       string
		dead       []string
		wantWinner domain.Faction
		wantDone   bool
	}{
		{"game continues", []string{"crew1"}, "", false},
		{"crew wins when impostors wiped", []string{"imp1", "imp2"}, domain.FactionCrew, true},
		{"impostors win when crew wiped", []string{"crew1", "crew2", "crew3", "crew4"}, domain.FactionImpostor, true},
		{"everyone dead: crew wins the tie", []string{"imp1", "imp2", "crew1", "crew2", "crew3", "crew4"}, domain.FactionCrew, true},
	}

	for _, tc := range cases {
		s := testState()
		for _, id := range tc.dead {
			s.Participants[id].Alive = false
		}

		winner, done := EvaluateWin(s)
		if done != tc.wantDone || winner != tc.wantWinner {
			t.Fatalf("%s: got (%q, %v), want (%q, %v)", tc.name, winner, done, tc.wantWinner, tc.wantDone)
		}
	}
}
