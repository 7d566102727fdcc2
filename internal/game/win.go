package game

import "imposter_arena/internal/domain"

// EvaluateWin is the terminal-condition predicate: crew wins once no
// impostor is alive, impostors win once no crew is alive. Checking the
// impostor count first is the documented tie-break — if both factions hit
// zero in the same resolution, crew wins, matching the "eliminate all
// impostors" framing.
func EvaluateWin(state *domain.GameState) (domain.Faction, bool) {
	if state.AliveByFaction(domain.FactionImpostor) == 0 {
		return domain.FactionCrew, true
	}
	if state.AliveByFaction(domain.FactionCrew) == 0 {
		return domain.FactionImpostor, true
	}
	return "", false
}
