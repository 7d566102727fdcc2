package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"imposter_arena/internal/game"
	"imposter_arena/internal/logger"
)

type Config struct {
	AppPort     string
	DatabaseURL string
	JWTSecret   string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	LogLevel string
	LogJSON  bool

	// phase windows, seconds
	ActionSeconds   int
	MovementSeconds int
	VotingSeconds   int
	RoomCount       int
	MinSeats        int

	APIRateLimit       int
	APIRateWindow      int
	DecisionRateLimit  int
	DecisionRateWindow int
}

// Load reads configuration from the environment (.env honored).
func Load() *Config {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		logger.Fatal("DATABASE_URL is not set")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logger.Fatal("JWT_SECRET is not set")
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	redisDB := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			redisDB = n
		}
	}

	return &Config{
		AppPort:     port,
		DatabaseURL: dbURL,
		JWTSecret:   jwtSecret,

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       redisDB,

		LogLevel: envOr("LOG_LEVEL", "info"),
		LogJSON:  os.Getenv("LOG_JSON") == "true",

		ActionSeconds:   envInt("ACTION_PHASE_SECONDS", 30),
		MovementSeconds: envInt("MOVEMENT_PHASE_SECONDS", 15),
		VotingSeconds:   envInt("VOTING_PHASE_SECONDS", 45),
		RoomCount:       envInt("ROOM_COUNT", game.DefaultRoomCount),
		MinSeats:        envInt("MIN_SEATS", game.DefaultMinSeats),

		APIRateLimit:       envInt("API_RATE_LIMIT", 60),
		APIRateWindow:      envInt("API_RATE_WINDOW_SECONDS", 60),
		DecisionRateLimit:  envInt("DECISION_RATE_LIMIT", 30),
		DecisionRateWindow: envInt("DECISION_RATE_WINDOW_SECONDS", 60),
	}
}

// Game maps the env tunables onto an engine config.
func (c *Config) Game() game.Config {
	return game.Config{
		RoomCount:      c.RoomCount,
		MinSeats:       c.MinSeats,
		ActionWindow:   time.Duration(c.ActionSeconds) * time.Second,
		MovementWindow: time.Duration(c.MovementSeconds) * time.Second,
		VotingWindow:   time.Duration(c.VotingSeconds) * time.Second,
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}
