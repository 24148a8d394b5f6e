package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv         string
	Port           string
	AllowedOrigins string

	RedisURL string

	JWTSecret string
	TokenTTL  time.Duration

	MeiliSearchHost string
	MeiliMasterKey  string

	// Presence thresholds: a user is idle after IdleThreshold of inactivity
	// and offline after OfflineThreshold. IdleThreshold < OfflineThreshold.
	IdleThreshold    time.Duration
	OfflineThreshold time.Duration

	StatusSweepInterval time.Duration
	AdSweepInterval     time.Duration

	// SigninLockout > 0 enables the redis lockout between signin attempts.
	SigninLockout time.Duration
}

func Load() (*Config, error) {
	// Don't fail if .env doesn't exist (might be prod env vars)
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:         getEnv("APP_ENV", "development"),
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "http://localhost:3000"),

		RedisURL: os.Getenv("REDIS_URL"),

		JWTSecret: getEnv("JWT_SECRET", "dev-secret"),
		TokenTTL:  2 * time.Hour,

		MeiliSearchHost: getEnv("MEILISEARCH_HOST", ""),
		MeiliMasterKey:  os.Getenv("MEILI_MASTER_KEY"),
	}

	idleMinutes, err := parseMinutes(getEnv("STATUS_IDLE_MINUTES", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid STATUS_IDLE_MINUTES: %w", err)
	}
	offlineMinutes, err := parseMinutes(getEnv("STATUS_OFFLINE_MINUTES", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid STATUS_OFFLINE_MINUTES: %w", err)
	}
	cfg.IdleThreshold = idleMinutes
	cfg.OfflineThreshold = offlineMinutes

	if cfg.IdleThreshold >= cfg.OfflineThreshold {
		return nil, fmt.Errorf("STATUS_IDLE_MINUTES must be less than STATUS_OFFLINE_MINUTES")
	}

	cfg.StatusSweepInterval, err = time.ParseDuration(getEnv("STATUS_SWEEP_INTERVAL", "1m"))
	if err != nil {
		return nil, fmt.Errorf("invalid STATUS_SWEEP_INTERVAL: %w", err)
	}
	cfg.AdSweepInterval, err = time.ParseDuration(getEnv("AD_SWEEP_INTERVAL", "1m"))
	if err != nil {
		return nil, fmt.Errorf("invalid AD_SWEEP_INTERVAL: %w", err)
	}

	if lockout := os.Getenv("SIGNIN_LOCKOUT"); lockout != "" {
		cfg.SigninLockout, err = time.ParseDuration(lockout)
		if err != nil {
			return nil, fmt.Errorf("invalid SIGNIN_LOCKOUT: %w", err)
		}
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func parseMinutes(s string) (time.Duration, error) {
	minutes, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	return time.Duration(minutes) * time.Minute, nil
}
