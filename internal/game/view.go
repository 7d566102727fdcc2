package game

import (
	"imposter_arena/internal/domain"
)

// Project builds the filtered view of state for one viewer.
//
// Redaction policy: roles of other participants are visible only to
// impostor viewers (impostors know each other); the same viewers also see
// each living participant's current-round action slot, which may still be
// empty. Resolved rounds are never echoed back, so a view can never leak
// a future round's information. The policy is identical for real and
// synthetic seats.
func Project(state *domain.GameState, viewerID string) (domain.View, error) {
	viewer, ok := state.Participants[viewerID]
	if !ok {
		return domain.View{}, domain.ErrNotParticipant
	}

	privileged := viewer.Role == domain.FactionImpostor

	view := domain.View{
		Phase:     state.Phase,
		Round:     state.Round,
		TurnOrder: append([]string(nil), state.TurnOrder...),
		Accused:   state.Accused,
		YourRole:  viewer.Role,
		YourRoom:  viewer.Room,
		Winner:    state.Winner,
		Players:   make([]domain.PlayerView, 0, len(state.TurnOrder)),
	}

	for _, id := range state.TurnOrder {
		p, ok := state.Participants[id]
		if !ok {
			continue
		}
		pv := domain.PlayerView{
			ID:    p.ID,
			Alive: p.Alive,
			Room:  p.Room,
		}
		if privileged || p.ID == viewerID {
			pv.Role = p.Role
		}
		if privileged && p.Alive && p.PendingAction != nil {
			action := *p.PendingAction
			pv.Action = &action
		}
		view.Players = append(view.Players, pv)
	}

	return view, nil
}
