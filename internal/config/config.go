package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Database
	DatabaseURL string

	// Auth
	JWTSecret          string
	AccessTokenMinutes int

	// CORS
	AllowedOrigins []string
}

func Load() (*Config, error) {
	// Load .env if present (development only; real env vars take precedence)
	_ = godotenv.Load()

	cfg := &Config{
		Port:               getEnv("PORT", "8080"),
		Env:                getEnv("ENV", "development"),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		JWTSecret:          getEnv("JWT_SECRET", ""),
		AccessTokenMinutes: getEnvInt("ACCESS_TOKEN_EXPIRE_MINUTES", 1440),
		AllowedOrigins: []string{
			"http://localhost:3000",
			"http://localhost:5173",
		},
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return fallback
}
