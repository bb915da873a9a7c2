package sqlite_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/msomdec/yatube/internal/domain"
	"github.com/msomdec/yatube/internal/repository/sqlite"
)

// Verify that *sqlite.DB implements domain.Store at compile time.
var _ domain.Store = (*sqlite.DB)(nil)

func newTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestNew(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	db, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer db.Close()

	// Verify the file was created.
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Fatal("database file was not created")
	}

	// Verify foreign keys are enabled.
	var fkEnabled int
	if err := db.SqlDB.QueryRow("PRAGMA foreign_keys").Scan(&fkEnabled); err != nil {
		t.Fatalf("check foreign_keys: %v", err)
	}
	if fkEnabled != 1 {
		t.Fatalf("expected foreign_keys=1, got %d", fkEnabled)
	}
}

func TestMigrate(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	// Verify the tables exist by inserting rows.
	_, err := db.SqlDB.ExecContext(ctx,
		"INSERT INTO users (username, email, password_hash) VALUES (?, ?, ?)",
		"auth", "auth@example.com", "hash123",
	)
	if err != nil {
		t.Fatalf("insert into users: %v", err)
	}
	_, err = db.SqlDB.ExecContext(ctx,
		"INSERT INTO post_groups (title, slug) VALUES (?, ?)", "Test group", "test-slug",
	)
	if err != nil {
		t.Fatalf("insert into post_groups: %v", err)
	}
}

func TestMigrateIdempotent(t *testing.T) {
	db := newTestDB(t)

	// Second run should be a no-op.
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("second Migrate (idempotent): %v", err)
	}

	version, err := db.SchemaVersion(context.Background())
	if err != nil {
		t.Fatalf("SchemaVersion: %v", err)
	}
	if version != 3 {
		t.Fatalf("expected schema version 3, got %d", version)
	}
}
