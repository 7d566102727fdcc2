package handlers

import (
	"imposter_arena/internal/repository"
	"imposter_arena/internal/service"
	"imposter_arena/internal/ws"
)

// Handler bundles what the route handlers need: the session registry, the
// participant hub and the history repositories.
type Handler struct {
	Manager *service.SessionManager
	Hub     *ws.Hub
	Matches *repository.MatchHistoryRepository
	Events  *repository.RoundEventRepository
}

func NewHandler(manager *service.SessionManager, hub *ws.Hub, matches *repository.MatchHistoryRepository, events *repository.RoundEventRepository) *Handler {
	return &Handler{
		Manager: manager,
		Hub:     hub,
		Matches: matches,
		Events:  events,
	}
}
