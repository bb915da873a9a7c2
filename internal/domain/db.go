package domain

import "context"

// Database defines lifecycle operations for the underlying database.
// Each implementation (SQLite, Postgres) owns its own migration
// files and strategy, ensuring the entire backend is swappable.
type Database interface {
	Migrate(ctx context.Context) error
	// SchemaVersion is the newest applied migration.
	SchemaVersion(ctx context.Context) (int64, error)
	Ping(ctx context.Context) error
	Close() error
}

// Store is a Database that also hands out the repositories backed by it.
type Store interface {
	Database
	Users() UserRepository
	Groups() GroupRepository
	Posts() PostRepository
}
