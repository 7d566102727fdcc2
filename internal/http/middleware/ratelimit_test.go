package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

// exercises the in-memory fallback path (no Redis configured)
func TestRateLimitMemoryFallback(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/limited", RateLimit(2, time.Minute), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	do := func() int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/limited", nil)
		req.RemoteAddr = "10.1.2.3:1234"
		r.ServeHTTP(w, req)
		return w.Code
	}

	if code := do(); code != http.StatusOK {
		t.Fatalf("first request: %d", code)
	}
	if code := do(); code != http.StatusOK {
		t.Fatalf("second request: %d", code)
	}
	if code := do(); code != http.StatusTooManyRequests {
		t.Fatalf("third request: got %d, want 429", code)
	}
}

func TestDecisionRateLimitRequiresAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.POST("/decision", DecisionRateLimit(10, time.Minute), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("POST", "/decision", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("got %d, want 401 without JWT context", w.Code)
	}
}
