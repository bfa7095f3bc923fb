package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration for the service. Every value
// comes from the environment, with .env honored for local development.
type Config struct {
	Port        string
	Environment string
	LogLevel    slog.Level

	DatabaseURL string
	RedisURL    string

	JWT JWTConfig

	// Kafka brokers for event publishing; empty means local in-process
	// publishing only.
	KafkaBrokers []string

	CORSAllowedOrigins []string

	// Rate limit for the anonymous auth endpoints, requests per second
	// per client IP with the given burst.
	AuthRateLimit      float64
	AuthRateLimitBurst int
}

type JWTConfig struct {
	Secret   string
	Issuer   string
	Audience string
	Lifetime time.Duration
}

// LoadConfig reads configuration from the environment. A missing .env
// file is not an error.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    parseLogLevel(getEnv("LOG_LEVEL", "info")),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		RedisURL:    getEnv("REDIS_URL", ""),
		JWT: JWTConfig{
			Secret:   getEnv("JWT_SECRET", ""),
			Issuer:   getEnv("JWT_ISSUER", "mentor-mentee-app"),
			Audience: getEnv("JWT_AUDIENCE", "mentor-mentee-client"),
			Lifetime: getDurationEnv("JWT_LIFETIME", time.Hour),
		},
		KafkaBrokers:       splitEnvList(getEnv("KAFKA_BROKERS", "")),
		CORSAllowedOrigins: splitEnvList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		AuthRateLimit:      getFloatEnv("AUTH_RATE_LIMIT", 5),
		AuthRateLimitBurst: getIntEnv("AUTH_RATE_LIMIT_BURST", 10),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getFloatEnv(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func splitEnvList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
