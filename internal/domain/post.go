package domain

import (
	"context"
	"time"
)

// Post is a single entry in the feed. AuthorID and CreatedAt never change
// after creation; Text and GroupID are editable by the author.
type Post struct {
	ID        int64
	Text      string
	AuthorID  int64
	GroupID   *int64
	CreatedAt time.Time

	// Populated on reads.
	Author *User
	Group  *Group
}

// PostRepository defines persistence operations for posts. All list
// methods return posts newest first.
type PostRepository interface {
	Create(ctx context.Context, post *Post) error
	GetByID(ctx context.Context, id int64) (*Post, error)
	// Update persists Text and GroupID only.
	Update(ctx context.Context, post *Post) error
	ListAll(ctx context.Context, limit, offset int) ([]Post, error)
	ListByGroup(ctx context.Context, groupID int64, limit, offset int) ([]Post, error)
	ListByAuthor(ctx context.Context, authorID int64, limit, offset int) ([]Post, error)
	CountAll(ctx context.Context) (int, error)
	CountByGroup(ctx context.Context, groupID int64) (int, error)
	CountByAuthor(ctx context.Context, authorID int64) (int, error)
}
