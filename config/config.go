package config

import (
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every setting the application reads from the environment.
// It is loaded once in main; nothing else calls os.Getenv.
type Config struct {
	DatabaseURL string
	RedisAddr   string
	JWTSecret   string
	ListenAddr  string
	TokenTTL    time.Duration
}

// App is the loaded application configuration.
var App Config

// JwtKey is the HMAC key used to sign and verify access tokens.
var JwtKey []byte

// Load reads configuration from the environment (and .env, if present).
func Load() {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables only")
	}

	App = Config{
		DatabaseURL: os.Getenv("DB_URL"),
		RedisAddr:   os.Getenv("REDIS_ADDR"),
		JWTSecret:   getEnv("JWT_SECRET", "rent-manager-dev-secret"),
		ListenAddr:  getEnv("LISTEN_ADDR", ":8080"),
		TokenTTL:    7 * 24 * time.Hour,
	}
	JwtKey = []byte(App.JWTSecret)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
