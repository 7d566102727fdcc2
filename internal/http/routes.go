package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"imposter_arena/internal/config"
	"imposter_arena/internal/http/handlers"
	"imposter_arena/internal/http/middleware"
	"imposter_arena/internal/repository"
	"imposter_arena/internal/service"
	"imposter_arena/internal/ws"
)

// RegisterRoutes wires the REST and websocket surface. Returns the
// session manager so the entrypoint can stop games on shutdown.
func RegisterRoutes(r *gin.Engine, db *pgxpool.Pool, cfg *config.Config, version string) *service.SessionManager {
	var (
		matches *repository.MatchHistoryRepository
		events  *repository.RoundEventRepository
	)
	if db != nil {
		matches = repository.NewMatchHistoryRepository(db)
		events = repository.NewRoundEventRepository(db)
	}

	hub := ws.NewHub()
	manager := service.NewSessionManager(cfg.Game(), hub, hub, hub, matches, events)
	h := handlers.NewHandler(manager, hub, matches, events)
	healthHandler := handlers.NewHealthHandler(db, version)

	// probes stay unthrottled
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	apiWindow := time.Duration(cfg.APIRateWindow) * time.Second
	decisionWindow := time.Duration(cfg.DecisionRateWindow) * time.Second

	v1 := r.Group("/api/v1")
	v1.Use(middleware.Metrics())
	v1.Use(middleware.RateLimit(cfg.APIRateLimit, apiWindow))
	{
		v1.POST("/auth", h.Auth)

		v1.POST("/session", middleware.JWT(), h.StartSession)
		v1.GET("/session/:id/view", middleware.JWT(), h.SessionView)
		v1.POST("/session/:id/decision", middleware.JWT(),
			middleware.DecisionRateLimit(cfg.DecisionRateLimit, decisionWindow), h.SubmitDecision)
		v1.DELETE("/session/:id", middleware.JWT(), h.StopSession)
		v1.GET("/session/:id/events", middleware.JWT(), h.SessionEvents)

		v1.GET("/matches", h.RecentMatches)
	}

	// participant transport
	r.GET("/ws", h.WS())

	return manager
}
