package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

const defaultDatabaseDSN = "host=localhost port=5432 dbname=ledger_service_db user=postgres password=postgres sslmode=disable"
const defaultHTTPAddr = ":8080"
const defaultJWTSecret = "CHANGE_ME"
const defaultAccessTokenTTL = 30 * time.Minute
const defaultRefreshTokenTTL = 7 * 24 * time.Hour
const defaultAccountNumberAttempts = 10
const defaultMaxActiveCards = 3

// Policy groups the transition rules that the original system left
// inconsistently enforced. They are configuration, not code.
type Policy struct {
	AllowReopenClosedAccounts bool
	MaxActiveCards            int
	AccountNumberAttempts     int
}

type Config struct {
	DatabaseDSN     string
	MigrationsDir   string
	HTTPAddr        string
	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	Policy          Policy
}

func Load() (Config, error) {
	cfg := Config{
		DatabaseDSN:     envOrDefault("DATABASE_DSN", defaultDatabaseDSN),
		MigrationsDir:   envOrDefault("MIGRATIONS_DIR", "migrations"),
		HTTPAddr:        envOrDefault("HTTP_ADDR", defaultHTTPAddr),
		JWTSecret:       envOrDefault("JWT_SECRET", defaultJWTSecret),
		AccessTokenTTL:  defaultAccessTokenTTL,
		RefreshTokenTTL: defaultRefreshTokenTTL,
		Policy: Policy{
			AllowReopenClosedAccounts: envBool("ALLOW_REOPEN_CLOSED_ACCOUNTS", false),
			MaxActiveCards:            envInt("MAX_ACTIVE_CARDS", defaultMaxActiveCards),
			AccountNumberAttempts:     envInt("ACCOUNT_NUMBER_ATTEMPTS", defaultAccountNumberAttempts),
		},
	}

	if minutes := envInt("ACCESS_TOKEN_EXPIRE_MINUTES", 0); minutes > 0 {
		cfg.AccessTokenTTL = time.Duration(minutes) * time.Minute
	}
	if days := envInt("REFRESH_TOKEN_EXPIRE_DAYS", 0); days > 0 {
		cfg.RefreshTokenTTL = time.Duration(days) * 24 * time.Hour
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func envInt(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func envBool(key string, fallback bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return value
}
