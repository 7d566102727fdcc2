package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"imposter_arena/internal/service"
)

// JWT authenticates a participant token from the Authorization header and
// stores the participant id in the request context.
func JWT() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
			return
		}

		token := strings.TrimPrefix(header, "Bearer ")
		participantID, err := service.ParseJWT(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set("participant_id", participantID)
		c.Next()
	}
}

// ParticipantID reads the id set by the JWT middleware.
func ParticipantID(c *gin.Context) (string, bool) {
	v, ok := c.Get("participant_id")
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}
