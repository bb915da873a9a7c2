package postgres_test

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"testing"

	"github.com/msomdec/yatube/internal/domain"
	"github.com/msomdec/yatube/internal/paginate"
	"github.com/msomdec/yatube/internal/repository/postgres"
)

var _ domain.Store = (*postgres.DB)(nil)

// newTestDB connects to the database named by YATUBE_TEST_POSTGRES_DSN and
// empties every table. The test is skipped when the variable is unset.
func newTestDB(t *testing.T) *postgres.DB {
	t.Helper()
	dsn := os.Getenv("YATUBE_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("YATUBE_TEST_POSTGRES_DSN not set")
	}

	ctx := context.Background()
	db, err := postgres.New(ctx, dsn)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.Migrate(ctx); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	if _, err := db.Pool.Exec(ctx, `TRUNCATE posts, post_groups, users RESTART IDENTITY`); err != nil {
		t.Fatalf("truncate: %v", err)
	}
	return db
}

func TestMigrateIdempotent(t *testing.T) {
	db := newTestDB(t)
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("second Migrate: %v", err)
	}

	version, err := db.SchemaVersion(context.Background())
	if err != nil {
		t.Fatalf("SchemaVersion: %v", err)
	}
	if version != 3 {
		t.Fatalf("expected schema version 3, got %d", version)
	}
}

func TestUsers(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	users := db.Users()

	user := &domain.User{Username: "auth", Email: "auth@example.com", PasswordHash: "hash"}
	if err := users.Create(ctx, user); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if user.ID == 0 {
		t.Fatal("expected user ID to be set")
	}

	err := users.Create(ctx, &domain.User{Username: "auth", PasswordHash: "x"})
	if !errors.Is(err, domain.ErrDuplicateUsername) {
		t.Fatalf("expected ErrDuplicateUsername, got %v", err)
	}

	found, err := users.GetByUsername(ctx, "auth")
	if err != nil {
		t.Fatalf("GetByUsername: %v", err)
	}
	if found.ID != user.ID {
		t.Fatalf("expected id %d, got %d", user.ID, found.ID)
	}

	if err := users.UpdatePassword(ctx, user.ID, "newhash"); err != nil {
		t.Fatalf("UpdatePassword: %v", err)
	}
	if _, err := users.GetByID(ctx, user.ID+100); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGroupsAndPosts(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	author := &domain.User{Username: "auth", PasswordHash: "hash"}
	if err := db.Users().Create(ctx, author); err != nil {
		t.Fatalf("create user: %v", err)
	}
	group := &domain.Group{Title: "Test group", Slug: "test-slug"}
	if err := db.Groups().Create(ctx, group); err != nil {
		t.Fatalf("create group: %v", err)
	}
	if err := db.Groups().Create(ctx, &domain.Group{Title: "Again", Slug: "test-slug"}); !errors.Is(err, domain.ErrDuplicateSlug) {
		t.Fatalf("expected ErrDuplicateSlug, got %v", err)
	}

	posts := db.Posts()
	for i := range 13 {
		p := &domain.Post{Text: fmt.Sprintf("Post %d", i), AuthorID: author.ID, GroupID: &group.ID}
		if err := posts.Create(ctx, p); err != nil {
			t.Fatalf("create post %d: %v", i, err)
		}
	}

	page, err := posts.ListByGroup(ctx, group.ID, 10, 0)
	if err != nil {
		t.Fatalf("ListByGroup: %v", err)
	}
	if len(page) != 10 || page[0].Text != "Post 12" {
		t.Fatalf("expected newest first, got %d posts led by %q", len(page), page[0].Text)
	}
	if page[0].Group == nil || page[0].Group.Slug != "test-slug" {
		t.Fatalf("expected hydrated group, got %+v", page[0].Group)
	}

	n, err := posts.CountByAuthor(ctx, author.ID)
	if err != nil {
		t.Fatalf("CountByAuthor: %v", err)
	}
	if n != 13 {
		t.Fatalf("expected 13 posts, got %d", n)
	}

	err = posts.Create(ctx, &domain.Post{Text: "orphan", AuthorID: author.ID + 100})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListAll_OffsetAtIntLimit(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	author := &domain.User{Username: "auth", PasswordHash: "hash"}
	if err := db.Users().Create(ctx, author); err != nil {
		t.Fatalf("create user: %v", err)
	}
	if err := db.Posts().Create(ctx, &domain.Post{Text: "Only post", AuthorID: author.ID}); err != nil {
		t.Fatalf("create post: %v", err)
	}

	limit, offset := paginate.New(10).Window(paginate.ParseNumber("1000000000000000000"))
	if offset != math.MaxInt-limit {
		t.Fatalf("expected clamped offset, got %d", offset)
	}
	page, err := db.Posts().ListAll(ctx, limit, offset)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(page) != 0 {
		t.Fatalf("expected no posts, got %d", len(page))
	}
}
