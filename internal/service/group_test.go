package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/msomdec/yatube/internal/domain"
	"github.com/msomdec/yatube/internal/service"
)

func TestGroupService_Create(t *testing.T) {
	db := newTestDB(t)
	svc := service.NewGroupService(db.Groups())
	ctx := context.Background()

	g, err := svc.Create(ctx, " Test group ", "test-slug", "Test description")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if g.Title != "Test group" {
		t.Fatalf("expected trimmed title, got %q", g.Title)
	}

	found, err := db.Groups().GetBySlug(ctx, "test-slug")
	if err != nil {
		t.Fatalf("GetBySlug: %v", err)
	}
	if found.ID != g.ID {
		t.Fatalf("expected id %d, got %d", g.ID, found.ID)
	}

	if _, err := svc.Create(ctx, "Again", "test-slug", ""); !errors.Is(err, domain.ErrDuplicateSlug) {
		t.Fatalf("expected ErrDuplicateSlug, got %v", err)
	}

	groups, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}
}

func TestGroupService_Create_Invalid(t *testing.T) {
	db := newTestDB(t)
	svc := service.NewGroupService(db.Groups())

	tests := []struct {
		name  string
		title string
		slug  string
	}{
		{"empty title", "", "ok"},
		{"long title", strings.Repeat("t", 201), "ok"},
		{"empty slug", "Title", ""},
		{"slug with spaces", "Title", "two words"},
		{"slug with slash", "Title", "a/b"},
		{"long slug", "Title", strings.Repeat("s", 51)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.title, tt.slug, "")
			if !errors.Is(err, domain.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}
