package handlers

import (
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"

	"imposter_arena/internal/service"
)

type AuthRequest struct {
	ParticipantID string `json:"participant_id"`
}

var participantIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_.\-]{1,64}$`)

// Auth issues a participant token. The id is self-declared; what the
// token protects is the binding between a connection and its seat, not
// identity — upstream identity verification is the deployment's concern.
func (h *Handler) Auth(c *gin.Context) {
	var req AuthRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}
	if !participantIDPattern.MatchString(req.ParticipantID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid participant id"})
		return
	}

	token, err := service.GenerateJWT(req.ParticipantID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":          token,
		"participant_id": req.ParticipantID,
	})
}
