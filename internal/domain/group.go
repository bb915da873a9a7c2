package domain

import (
	"context"
	"time"
)

// Group is a community that posts can optionally be filed under.
// Groups are created by administrators and never owned by a user.
type Group struct {
	ID          int64
	Title       string
	Slug        string
	Description string
	CreatedAt   time.Time
}

// GroupRepository defines persistence operations for groups.
type GroupRepository interface {
	Create(ctx context.Context, group *Group) error
	GetByID(ctx context.Context, id int64) (*Group, error)
	GetBySlug(ctx context.Context, slug string) (*Group, error)
	List(ctx context.Context) ([]Group, error)
}
