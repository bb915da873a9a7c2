package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/msomdec/yatube/internal/domain"
)

// PostRepository implements domain.PostRepository using PostgreSQL.
type PostRepository struct {
	pool *pgxpool.Pool
}

func NewPostRepository(db *DB) *PostRepository {
	return &PostRepository{pool: db.Pool}
}

const selectPosts = `SELECT p.id, p.text, p.author_id, p.group_id, p.created_at,
	u.id, u.username, u.first_name, u.last_name, u.email, u.created_at, u.updated_at,
	g.id, g.title, g.slug, g.description, g.created_at
	FROM posts p
	JOIN users u ON u.id = p.author_id
	LEFT JOIN post_groups g ON g.id = p.group_id`

func (r *PostRepository) Create(ctx context.Context, post *domain.Post) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO posts (text, author_id, group_id) VALUES ($1, $2, $3) RETURNING id, created_at`,
		post.Text, post.AuthorID, post.GroupID,
	).Scan(&post.ID, &post.CreatedAt)
	if err != nil {
		if hasCode(err, foreignKeyViolation) {
			return fmt.Errorf("%w: author or group does not exist", domain.ErrNotFound)
		}
		return fmt.Errorf("insert post: %w", err)
	}
	return nil
}

func (r *PostRepository) GetByID(ctx context.Context, id int64) (*domain.Post, error) {
	post, err := scanPost(r.pool.QueryRow(ctx, selectPosts+` WHERE p.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get post: %w", err)
	}
	return post, nil
}

func (r *PostRepository) Update(ctx context.Context, post *domain.Post) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE posts SET text = $1, group_id = $2 WHERE id = $3`,
		post.Text, post.GroupID, post.ID,
	)
	if err != nil {
		if hasCode(err, foreignKeyViolation) {
			return fmt.Errorf("%w: group does not exist", domain.ErrNotFound)
		}
		return fmt.Errorf("update post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PostRepository) ListAll(ctx context.Context, limit, offset int) ([]domain.Post, error) {
	return r.list(ctx, selectPosts+` ORDER BY p.created_at DESC, p.id DESC LIMIT $1 OFFSET $2`, limit, offset)
}

func (r *PostRepository) ListByGroup(ctx context.Context, groupID int64, limit, offset int) ([]domain.Post, error) {
	return r.list(ctx, selectPosts+` WHERE p.group_id = $1 ORDER BY p.created_at DESC, p.id DESC LIMIT $2 OFFSET $3`,
		groupID, limit, offset)
}

func (r *PostRepository) ListByAuthor(ctx context.Context, authorID int64, limit, offset int) ([]domain.Post, error) {
	return r.list(ctx, selectPosts+` WHERE p.author_id = $1 ORDER BY p.created_at DESC, p.id DESC LIMIT $2 OFFSET $3`,
		authorID, limit, offset)
}

func (r *PostRepository) CountAll(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM posts`)
}

func (r *PostRepository) CountByGroup(ctx context.Context, groupID int64) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM posts WHERE group_id = $1`, groupID)
}

func (r *PostRepository) CountByAuthor(ctx context.Context, authorID int64) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM posts WHERE author_id = $1`, authorID)
}

func (r *PostRepository) list(ctx context.Context, query string, args ...any) ([]domain.Post, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	var posts []domain.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, *post)
	}
	return posts, rows.Err()
}

func (r *PostRepository) count(ctx context.Context, query string, args ...any) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count posts: %w", err)
	}
	return n, nil
}

func scanPost(row pgx.Row) (*domain.Post, error) {
	var (
		p      domain.Post
		u      domain.User
		gID    *int64
		gTitle *string
		gSlug  *string
		gDesc  *string
		gAt    *time.Time
	)
	err := row.Scan(&p.ID, &p.Text, &p.AuthorID, &p.GroupID, &p.CreatedAt,
		&u.ID, &u.Username, &u.FirstName, &u.LastName, &u.Email, &u.CreatedAt, &u.UpdatedAt,
		&gID, &gTitle, &gSlug, &gDesc, &gAt)
	if err != nil {
		return nil, err
	}

	p.Author = &u
	if gID != nil {
		p.Group = &domain.Group{ID: *gID, Title: *gTitle, Slug: *gSlug, Description: *gDesc, CreatedAt: *gAt}
	}
	return &p, nil
}
