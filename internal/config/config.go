package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Port           string
	AllowedOrigins []string
	LogLevel       string

	// WebSocket tuning for the operator hub
	WSReadTimeout  time.Duration
	WSWriteTimeout time.Duration
	PingPeriod     time.Duration
	PongWait       time.Duration
	WriteWait      time.Duration
	MaxMessageSize int64

	// IVR simulation
	SchedulerInterval time.Duration // how often the incoming-call scheduler rolls
	CallProbability   float64       // chance per roll of spawning a call
	AutoRejectSeconds int           // countdown window for an unanswered alert
	OperatorID        string        // agent identity bound on accept

	// Remote call-state backend (Postgres). Empty means local-only mode.
	DatabaseURL   string
	ListenChannel string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "http://localhost:5173"), ","),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		ListenChannel:  getEnv("LISTEN_CHANNEL", "call_requests"),
		OperatorID:     getEnv("OPERATOR_ID", "agent-1"),
	}

	wsReadTimeout, err := strconv.Atoi(getEnv("WS_READ_TIMEOUT", "60"))
	if err != nil {
		return nil, fmt.Errorf("invalid WS_READ_TIMEOUT: %w", err)
	}
	config.WSReadTimeout = time.Duration(wsReadTimeout) * time.Second

	wsWriteTimeout, err := strconv.Atoi(getEnv("WS_WRITE_TIMEOUT", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid WS_WRITE_TIMEOUT: %w", err)
	}
	config.WSWriteTimeout = time.Duration(wsWriteTimeout) * time.Second

	schedulerSecs, err := strconv.Atoi(getEnv("SCHEDULER_INTERVAL", "30"))
	if err != nil {
		return nil, fmt.Errorf("invalid SCHEDULER_INTERVAL: %w", err)
	}
	config.SchedulerInterval = time.Duration(schedulerSecs) * time.Second

	probability, err := strconv.ParseFloat(getEnv("CALL_PROBABILITY", "0.3"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid CALL_PROBABILITY: %w", err)
	}
	if probability < 0 || probability > 1 {
		return nil, fmt.Errorf("CALL_PROBABILITY must be in [0,1], got %v", probability)
	}
	config.CallProbability = probability

	autoReject, err := strconv.Atoi(getEnv("AUTO_REJECT_SECONDS", "15"))
	if err != nil {
		return nil, fmt.Errorf("invalid AUTO_REJECT_SECONDS: %w", err)
	}
	if autoReject <= 0 {
		return nil, fmt.Errorf("AUTO_REJECT_SECONDS must be positive, got %d", autoReject)
	}
	config.AutoRejectSeconds = autoReject

	// Calculate WebSocket constants
	config.PongWait = config.WSReadTimeout
	config.PingPeriod = (config.PongWait * 9) / 10 // Must be less than pongWait
	config.WriteWait = config.WSWriteTimeout
	config.MaxMessageSize = 512

	// Trim spaces from allowed origins
	for i, origin := range config.AllowedOrigins {
		config.AllowedOrigins[i] = strings.TrimSpace(origin)
	}

	return config, nil
}

// getEnv gets an environment variable with a fallback default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
