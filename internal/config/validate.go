package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// Validate checks Config for production-critical problems.
// It collects all errors into a single joined error.
func (c *Config) Validate() error {
	var errs []string

	// Model credential: required. A runtime without it can never serve a
	// generation, so this is a startup fault rather than a per-request one.
	if c.Gemini.APIKey == "" {
		errs = append(errs, "GEMINI_API_KEY is required")
	}

	switch c.Quota.Store {
	case QuotaStorePostgres:
		if c.DB.Password == "" {
			errs = append(errs, "DB_PASSWORD is required when QUOTA_STORE=postgres")
		}
	case QuotaStoreRedis, QuotaStoreNone:
	default:
		errs = append(errs, fmt.Sprintf("QUOTA_STORE must be %q, %q or empty, got %q",
			QuotaStorePostgres, QuotaStoreRedis, c.Quota.Store))
	}

	if c.Quota.Store == QuotaStoreNone {
		slog.Warn("QUOTA_STORE is empty — daily note limits will not be enforced")
	}

	// Port ranges
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("SERVER_PORT must be 1–65535, got %d", c.Server.Port))
	}
	if c.DB.Port < 1 || c.DB.Port > 65535 {
		errs = append(errs, fmt.Sprintf("DB_PORT must be 1–65535, got %d", c.DB.Port))
	}
	if c.Redis.Port < 1 || c.Redis.Port > 65535 {
		errs = append(errs, fmt.Sprintf("REDIS_PORT must be 1–65535, got %d", c.Redis.Port))
	}

	if c.Quota.FreeDailyLimit < 1 {
		errs = append(errs, fmt.Sprintf("QUOTA_FREE_DAILY_LIMIT must be positive, got %d", c.Quota.FreeDailyLimit))
	}
	if c.Gemini.Timeout <= 0 {
		errs = append(errs, "GEMINI_TIMEOUT must be positive")
	}

	if len(errs) > 0 {
		return errors.New("config validation failed:\n  " + strings.Join(errs, "\n  "))
	}
	return nil
}
