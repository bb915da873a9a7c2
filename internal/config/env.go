package config

import (
	"fmt"
	"strconv"
	"time"
)

func loadEnv(cfg *Config, getenv func(string) string) error {
	cfg.Port = envOrDefault(getenv, "PORT", cfg.Port)
	cfg.DatabaseDriver = envOrDefault(getenv, "DATABASE_DRIVER", cfg.DatabaseDriver)
	cfg.DatabasePath = envOrDefault(getenv, "DATABASE_PATH", cfg.DatabasePath)
	cfg.DatabaseDSN = envOrDefault(getenv, "DATABASE_DSN", cfg.DatabaseDSN)
	cfg.JWTSecret = envOrDefault(getenv, "JWT_SECRET", cfg.JWTSecret)
	cfg.LogLevel = envOrDefault(getenv, "LOG_LEVEL", cfg.LogLevel)

	// Default to secure cookies; disable only for local development.
	if v := getenv("COOKIE_SECURE"); v != "" {
		cfg.CookieSecure = v != "false"
	}

	if v := getenv("BCRYPT_COST"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid BCRYPT_COST: %w", err)
		}
		cfg.BcryptCost = parsed
	}

	if v := getenv("POSTS_PER_PAGE"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid POSTS_PER_PAGE: %w", err)
		}
		cfg.PostsPerPage = parsed
	}

	if v := getenv("TOKEN_TTL"); v != "" {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid TOKEN_TTL: %w", err)
		}
		cfg.TokenTTL = parsed
	}
	return nil
}

func envOrDefault(getenv func(string) string, key, defaultVal string) string {
	if val := getenv(key); val != "" {
		return val
	}
	return defaultVal
}
