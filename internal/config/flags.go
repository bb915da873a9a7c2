package config

import (
	"flag"
	"fmt"
	"time"
)

// flagValues holds the parsed command line. Only flags that were set
// explicitly override earlier sources.
type flagValues struct {
	fs         *flag.FlagSet
	configFile string
	port       string
	driver     string
	dbPath     string
	dsn        string
	perPage    int
	tokenTTL   time.Duration
	logLevel   string
}

func parseFlags(args []string, getenv func(string) string) (*flagValues, error) {
	fl := &flagValues{fs: flag.NewFlagSet("yatube", flag.ContinueOnError)}
	fs := fl.fs

	fs.StringVar(&fl.configFile, "config", getenv("CONFIG_FILE"), "path to a JSON config file")
	fs.StringVar(&fl.port, "port", "", "HTTP listen port")
	fs.StringVar(&fl.driver, "db-driver", "", "database driver (sqlite or postgres)")
	fs.StringVar(&fl.dbPath, "db-path", "", "SQLite database file")
	fs.StringVar(&fl.dsn, "db-dsn", "", "PostgreSQL DSN")
	fs.IntVar(&fl.perPage, "posts-per-page", 0, "posts per feed page")
	fs.DurationVar(&fl.tokenTTL, "token-ttl", 0, "session token lifetime")
	fs.StringVar(&fl.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}
	return fl, nil
}

func (fl *flagValues) apply(cfg *Config) {
	fl.fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "port":
			cfg.Port = fl.port
		case "db-driver":
			cfg.DatabaseDriver = fl.driver
		case "db-path":
			cfg.DatabasePath = fl.dbPath
		case "db-dsn":
			cfg.DatabaseDSN = fl.dsn
		case "posts-per-page":
			cfg.PostsPerPage = fl.perPage
		case "token-ttl":
			cfg.TokenTTL = fl.tokenTTL
		case "log-level":
			cfg.LogLevel = fl.logLevel
		}
	})
}
