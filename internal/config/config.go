package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultJWTAccessTTL = "24h"
	defaultInviteTTL    = "24h"
	defaultResetTTL     = "15m"
	defaultListenAddr   = ":8080"
	defaultDatabaseURL  = "flexspaces.db"
)

// Config is loaded once in main and handed to the layers that need it.
// Nothing below the handlers reads the environment directly.
type Config struct {
	AppEnv      string
	ListenAddr  string
	DatabaseURL string
	BaseURL     string

	JWTSecret    string
	JWTAccessTTL time.Duration
	InviteTTL    time.Duration
	ResetTTL     time.Duration

	SMTPAddr string
	SMTPFrom string
	SMTPUser string
	SMTPPass string
}

func Load() (*Config, error) {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:      strings.ToLower(getEnv("APP_ENV", "dev")),
		ListenAddr:  getEnv("LISTEN_ADDR", defaultListenAddr),
		DatabaseURL: getEnv("DATABASE_URL", defaultDatabaseURL),
		BaseURL:     getEnv("BASE_URL", "http://localhost:8080"),
		JWTSecret:   strings.TrimSpace(os.Getenv("JWT_SECRET")),
		SMTPAddr:    getEnv("SMTP_ADDR", ""),
		SMTPFrom:    getEnv("SMTP_FROM", "no-reply@flexspaces.local"),
		SMTPUser:    getEnv("SMTP_USER", ""),
		SMTPPass:    getEnv("SMTP_PASS", ""),
	}

	if cfg.JWTSecret == "" {
		if cfg.AppEnv != "dev" {
			return nil, fmt.Errorf("JWT_SECRET is required when APP_ENV=%s", cfg.AppEnv)
		}
		cfg.JWTSecret = "change-me-jwt-secret"
	}

	var err error
	if cfg.JWTAccessTTL, err = parseDurationEnv("JWT_ACCESS_TTL", defaultJWTAccessTTL); err != nil {
		return nil, err
	}
	if cfg.InviteTTL, err = parseDurationEnv("INVITE_TOKEN_TTL", defaultInviteTTL); err != nil {
		return nil, err
	}
	if cfg.ResetTTL, err = parseDurationEnv("RESET_TOKEN_TTL", defaultResetTTL); err != nil {
		return nil, err
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func parseDurationEnv(key, fallback string) (time.Duration, error) {
	raw := getEnv(key, fallback)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q: %w", key, raw, err)
	}
	return d, nil
}
