package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/msomdec/yatube/internal/domain"
)

// PostRepository implements domain.PostRepository using SQLite.
type PostRepository struct {
	db *sql.DB
}

// NewPostRepository creates a new SQLite-backed PostRepository.
func NewPostRepository(db *DB) *PostRepository {
	return &PostRepository{db: db.SqlDB}
}

// selectPosts joins the author and the optional group so that every post
// comes back hydrated.
const selectPosts = `SELECT p.id, p.text, p.author_id, p.group_id, p.created_at,
	u.id, u.username, u.first_name, u.last_name, u.email, u.created_at, u.updated_at,
	g.id, g.title, g.slug, g.description, g.created_at
	FROM posts p
	JOIN users u ON u.id = p.author_id
	LEFT JOIN post_groups g ON g.id = p.group_id`

const newestFirst = ` ORDER BY p.created_at DESC, p.id DESC LIMIT ? OFFSET ?`

func (r *PostRepository) Create(ctx context.Context, post *domain.Post) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO posts (text, author_id, group_id, created_at) VALUES (?, ?, ?, ?)`,
		post.Text, post.AuthorID, post.GroupID, now,
	)
	if err != nil {
		if isForeignKeyError(err) {
			return fmt.Errorf("%w: author or group does not exist", domain.ErrNotFound)
		}
		return fmt.Errorf("insert post: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get post id: %w", err)
	}

	post.ID = id
	post.CreatedAt = now
	return nil
}

func (r *PostRepository) GetByID(ctx context.Context, id int64) (*domain.Post, error) {
	row := r.db.QueryRowContext(ctx, selectPosts+` WHERE p.id = ?`, id)
	post, err := scanPost(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get post: %w", err)
	}
	return post, nil
}

func (r *PostRepository) Update(ctx context.Context, post *domain.Post) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE posts SET text = ?, group_id = ? WHERE id = ?`,
		post.Text, post.GroupID, post.ID,
	)
	if err != nil {
		if isForeignKeyError(err) {
			return fmt.Errorf("%w: group does not exist", domain.ErrNotFound)
		}
		return fmt.Errorf("update post: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PostRepository) ListAll(ctx context.Context, limit, offset int) ([]domain.Post, error) {
	return r.list(ctx, selectPosts+newestFirst, limit, offset)
}

func (r *PostRepository) ListByGroup(ctx context.Context, groupID int64, limit, offset int) ([]domain.Post, error) {
	return r.list(ctx, selectPosts+` WHERE p.group_id = ?`+newestFirst, groupID, limit, offset)
}

func (r *PostRepository) ListByAuthor(ctx context.Context, authorID int64, limit, offset int) ([]domain.Post, error) {
	return r.list(ctx, selectPosts+` WHERE p.author_id = ?`+newestFirst, authorID, limit, offset)
}

func (r *PostRepository) CountAll(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM posts`)
}

func (r *PostRepository) CountByGroup(ctx context.Context, groupID int64) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM posts WHERE group_id = ?`, groupID)
}

func (r *PostRepository) CountByAuthor(ctx context.Context, authorID int64) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM posts WHERE author_id = ?`, authorID)
}

func (r *PostRepository) list(ctx context.Context, query string, args ...any) ([]domain.Post, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
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
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count posts: %w", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (*domain.Post, error) {
	var (
		p      domain.Post
		u      domain.User
		gID    sql.NullInt64
		gTitle sql.NullString
		gSlug  sql.NullString
		gDesc  sql.NullString
		gAt    sql.NullTime
	)
	err := row.Scan(&p.ID, &p.Text, &p.AuthorID, &p.GroupID, &p.CreatedAt,
		&u.ID, &u.Username, &u.FirstName, &u.LastName, &u.Email, &u.CreatedAt, &u.UpdatedAt,
		&gID, &gTitle, &gSlug, &gDesc, &gAt)
	if err != nil {
		return nil, err
	}

	p.Author = &u
	if gID.Valid {
		p.Group = &domain.Group{
			ID:          gID.Int64,
			Title:       gTitle.String,
			Slug:        gSlug.String,
			Description: gDesc.String,
			CreatedAt:   gAt.Time,
		}
	}
	return &p, nil
}
