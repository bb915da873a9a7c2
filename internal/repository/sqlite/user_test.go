package sqlite_test

import (
	"context"
	"errors"
	"testing"

	"github.com/msomdec/yatube/internal/domain"
	"github.com/msomdec/yatube/internal/repository/sqlite"
)

func createUser(t *testing.T, repo domain.UserRepository, username string) *domain.User {
	t.Helper()
	user := &domain.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hash",
	}
	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("Create %s: %v", username, err)
	}
	return user
}

func TestUserRepository_Create(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewUserRepository(db)
	ctx := context.Background()

	user := &domain.User{
		Username:     "auth",
		FirstName:    "Test",
		LastName:     "User",
		Email:        "auth@example.com",
		PasswordHash: "hashedpw",
	}

	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if user.ID == 0 {
		t.Fatal("expected user ID to be set after create")
	}
	if user.CreatedAt.IsZero() {
		t.Fatal("expected CreatedAt to be set")
	}
}

func TestUserRepository_Create_DuplicateUsername(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewUserRepository(db)

	createUser(t, repo, "dup")

	err := repo.Create(context.Background(), &domain.User{Username: "dup", PasswordHash: "hash2"})
	if !errors.Is(err, domain.ErrDuplicateUsername) {
		t.Fatalf("expected ErrDuplicateUsername, got %v", err)
	}
}

func TestUserRepository_GetByID(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewUserRepository(db)
	user := createUser(t, repo, "byid")

	found, err := repo.GetByID(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if found.Username != "byid" {
		t.Fatalf("expected username %q, got %q", "byid", found.Username)
	}
	if found.Email != user.Email {
		t.Fatalf("expected email %q, got %q", user.Email, found.Email)
	}
}

func TestUserRepository_GetByID_NotFound(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewUserRepository(db)

	_, err := repo.GetByID(context.Background(), 99999)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUserRepository_GetByUsername(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewUserRepository(db)
	user := createUser(t, repo, "HasNoName")

	found, err := repo.GetByUsername(context.Background(), "HasNoName")
	if err != nil {
		t.Fatalf("GetByUsername: %v", err)
	}
	if found.ID != user.ID {
		t.Fatalf("expected id %d, got %d", user.ID, found.ID)
	}

	_, err = repo.GetByUsername(context.Background(), "nobody")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUserRepository_UpdatePassword(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewUserRepository(db)
	ctx := context.Background()
	user := createUser(t, repo, "changer")

	if err := repo.UpdatePassword(ctx, user.ID, "newhash"); err != nil {
		t.Fatalf("UpdatePassword: %v", err)
	}

	found, err := repo.GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if found.PasswordHash != "newhash" {
		t.Fatalf("expected updated hash, got %q", found.PasswordHash)
	}

	if err := repo.UpdatePassword(ctx, 99999, "x"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUserRepository_Count(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewUserRepository(db)

	createUser(t, repo, "one")
	createUser(t, repo, "two")

	n, err := repo.Count(context.Background())
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 users, got %d", n)
	}
}
