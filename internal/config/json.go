package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// jsonConfig mirrors Config for file decoding. Pointer fields distinguish an
// absent key from a zero value so that only present keys override defaults.
type jsonConfig struct {
	Port           *string `json:"port"`
	DatabaseDriver *string `json:"database_driver"`
	DatabasePath   *string `json:"database_path"`
	DatabaseDSN    *string `json:"database_dsn"`
	JWTSecret      *string `json:"jwt_secret"`
	CookieSecure   *bool   `json:"cookie_secure"`
	BcryptCost     *int    `json:"bcrypt_cost"`
	PostsPerPage   *int    `json:"posts_per_page"`
	TokenTTL       *string `json:"token_ttl"`
	LogLevel       *string `json:"log_level"`
}

func loadJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var c jsonConfig
	if err := json.Unmarshal(data, &c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	setIf(&cfg.Port, c.Port)
	setIf(&cfg.DatabaseDriver, c.DatabaseDriver)
	setIf(&cfg.DatabasePath, c.DatabasePath)
	setIf(&cfg.DatabaseDSN, c.DatabaseDSN)
	setIf(&cfg.JWTSecret, c.JWTSecret)
	setIf(&cfg.CookieSecure, c.CookieSecure)
	setIf(&cfg.BcryptCost, c.BcryptCost)
	setIf(&cfg.PostsPerPage, c.PostsPerPage)
	setIf(&cfg.LogLevel, c.LogLevel)

	if c.TokenTTL != nil {
		ttl, err := time.ParseDuration(*c.TokenTTL)
		if err != nil {
			return fmt.Errorf("parse token_ttl: %w", err)
		}
		cfg.TokenTTL = ttl
	}
	return nil
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
