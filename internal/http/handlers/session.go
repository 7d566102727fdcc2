package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"imposter_arena/internal/domain"
	"imposter_arena/internal/http/middleware"
)

// StartSession launches a new game from the currently connected
// participants.
func (h *Handler) StartSession(c *gin.Context) {
	sess, err := h.Manager.StartSession(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to start session"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"session_id": sess.ID,
		"turn_order": sess.TurnOrder(),
	})
}

// SessionView returns the authenticated participant's filtered view.
// Works during the game and after completion (the view then carries the
// winner); a degraded round is invisible here beyond no-op slots.
func (h *Handler) SessionView(c *gin.Context) {
	participantID, ok := middleware.ParticipantID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	sess, err := h.Manager.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	view, err := sess.CurrentView(participantID)
	if errors.Is(err, domain.ErrNotParticipant) {
		c.JSON(http.StatusForbidden, gin.H{"error": "not a participant"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build view"})
		return
	}

	c.JSON(http.StatusOK, view)
}

type DecisionRequest struct {
	RequestID string          `json:"request_id,omitempty"`
	Decision  domain.Decision `json:"decision"`
}

// SubmitDecision feeds a verified decision payload into the pending
// collection wait. It answers 202 whether or not a request was still
// outstanding: a late decision is simply dropped, the participant's slot
// already resolved to the no-op.
func (h *Handler) SubmitDecision(c *gin.Context) {
	participantID, ok := middleware.ParticipantID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req DecisionRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}
	if req.Decision.Type == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "decision type required"})
		return
	}

	accepted := h.Hub.Resolve(participantID, req.RequestID, req.Decision)
	c.JSON(http.StatusAccepted, gin.H{"accepted": accepted})
}

// StopSession cancels a running game without declaring a winner.
func (h *Handler) StopSession(c *gin.Context) {
	if err := h.Manager.Stop(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"stopped": true})
}

// RecentMatches lists finished games from the history store.
func (h *Handler) RecentMatches(c *gin.Context) {
	if h.Matches == nil {
		c.JSON(http.StatusOK, gin.H{"matches": []any{}})
		return
	}

	matches, err := h.Matches.ListRecent(c.Request.Context(), 50)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load history"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"matches": matches})
}

// SessionEvents lists the recorded kills and ejections of one session.
func (h *Handler) SessionEvents(c *gin.Context) {
	if h.Events == nil {
		c.JSON(http.StatusOK, gin.H{"events": []any{}})
		return
	}

	events, err := h.Events.ListBySession(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load events"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}
