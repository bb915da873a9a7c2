// Package config assembles the server settings from defaults, an optional
// JSON file, environment variables and command-line flags, in that order.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// Supported values for DatabaseDriver.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds runtime settings for the Yatube server and yatubectl.
type Config struct {
	Port           string
	DatabaseDriver string
	DatabasePath   string
	DatabaseDSN    string
	JWTSecret      string
	CookieSecure   bool
	BcryptCost     int
	PostsPerPage   int
	TokenTTL       time.Duration
	LogLevel       string
}

// LoadDefaults populates Config with development defaults. JWTSecret is left
// empty and must always be supplied.
func (c *Config) LoadDefaults() {
	c.Port = "8080"
	c.DatabaseDriver = DriverSQLite
	c.DatabasePath = "yatube.db"
	c.DatabaseDSN = ""
	c.JWTSecret = ""
	c.CookieSecure = true
	c.BcryptCost = 12
	c.PostsPerPage = 10
	c.TokenTTL = 24 * time.Hour
	c.LogLevel = "info"
}

// Load builds a Config from defaults, then the JSON file named by -config or
// CONFIG_FILE, then the environment, then explicitly set flags. The result
// is validated before it is returned.
func Load(args []string, getenv func(string) string) (*Config, error) {
	cfg, err := assemble(args, getenv)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadTooling is Load for administrative commands that never issue session
// tokens. JWT_SECRET is not required and not checked.
func LoadTooling(args []string, getenv func(string) string) (*Config, error) {
	cfg, err := assemble(args, getenv)
	if err != nil {
		return nil, err
	}
	if err := cfg.validateStorage(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func assemble(args []string, getenv func(string) string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	fl, err := parseFlags(args, getenv)
	if err != nil {
		return nil, err
	}

	if fl.configFile != "" {
		if err := loadJSON(cfg, fl.configFile); err != nil {
			return nil, err
		}
	}

	if err := loadEnv(cfg, getenv); err != nil {
		return nil, err
	}

	fl.apply(cfg)
	return cfg, nil
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var errs []error
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	} else if len(c.JWTSecret) < 32 {
		errs = append(errs, errors.New("JWT_SECRET must be at least 32 characters for HMAC-SHA256 security"))
	}
	errs = append(errs, c.validateStorage())
	return errors.Join(errs...)
}

// validateStorage checks everything except the signing secret.
func (c *Config) validateStorage() error {
	var errs []error
	if c.BcryptCost < 4 || c.BcryptCost > 14 {
		errs = append(errs, fmt.Errorf("BCRYPT_COST must be between 4 and 14, got %d", c.BcryptCost))
	}
	if c.PostsPerPage < 1 {
		errs = append(errs, fmt.Errorf("POSTS_PER_PAGE must be positive, got %d", c.PostsPerPage))
	}
	if c.TokenTTL <= 0 {
		errs = append(errs, fmt.Errorf("TOKEN_TTL must be positive, got %s", c.TokenTTL))
	}
	switch c.DatabaseDriver {
	case DriverSQLite:
		if c.DatabasePath == "" {
			errs = append(errs, errors.New("DATABASE_PATH is required for the sqlite driver"))
		}
	case DriverPostgres:
		if c.DatabaseDSN == "" {
			errs = append(errs, errors.New("DATABASE_DSN is required for the postgres driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown DATABASE_DRIVER %q", c.DatabaseDriver))
	}
	if _, err := c.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}

// SlogLevel parses LogLevel ("debug", "info", "warn", "error").
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid LOG_LEVEL %q: %w", c.LogLevel, err)
	}
	return level, nil
}
