package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/msomdec/yatube/internal/domain"
)

var slugPattern = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

const (
	maxGroupTitle = 200
	maxGroupSlug  = 50
)

// GroupService manages the groups posts can be filed under. Groups are only
// created through administrative tooling.
type GroupService struct {
	groups domain.GroupRepository
}

func NewGroupService(groups domain.GroupRepository) *GroupService {
	return &GroupService{groups: groups}
}

// Create validates and stores a new group.
func (s *GroupService) Create(ctx context.Context, title, slug, description string) (*domain.Group, error) {
	title = strings.TrimSpace(title)
	slug = strings.TrimSpace(slug)

	switch {
	case title == "":
		return nil, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	case len([]rune(title)) > maxGroupTitle:
		return nil, fmt.Errorf("%w: title must be at most %d characters", domain.ErrInvalidInput, maxGroupTitle)
	case !slugPattern.MatchString(slug):
		return nil, fmt.Errorf("%w: slug may contain only letters, numbers, underscores or hyphens", domain.ErrInvalidInput)
	case len(slug) > maxGroupSlug:
		return nil, fmt.Errorf("%w: slug must be at most %d characters", domain.ErrInvalidInput, maxGroupSlug)
	}

	group := &domain.Group{Title: title, Slug: slug, Description: strings.TrimSpace(description)}
	if err := s.groups.Create(ctx, group); err != nil {
		return nil, fmt.Errorf("create group: %w", err)
	}
	return group, nil
}

// List returns all groups ordered by title.
func (s *GroupService) List(ctx context.Context) ([]domain.Group, error) {
	return s.groups.List(ctx)
}
