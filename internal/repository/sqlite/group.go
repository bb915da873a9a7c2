package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/msomdec/yatube/internal/domain"
)

// GroupRepository implements domain.GroupRepository using SQLite.
type GroupRepository struct {
	db *sql.DB
}

// NewGroupRepository creates a new SQLite-backed GroupRepository.
func NewGroupRepository(db *DB) *GroupRepository {
	return &GroupRepository{db: db.SqlDB}
}

func (r *GroupRepository) Create(ctx context.Context, group *domain.Group) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO post_groups (title, slug, description, created_at) VALUES (?, ?, ?, ?)`,
		group.Title, group.Slug, group.Description, now,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return domain.ErrDuplicateSlug
		}
		return fmt.Errorf("insert group: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get group id: %w", err)
	}

	group.ID = id
	group.CreatedAt = now
	return nil
}

func (r *GroupRepository) GetByID(ctx context.Context, id int64) (*domain.Group, error) {
	return r.getOne(ctx, `WHERE id = ?`, id)
}

func (r *GroupRepository) GetBySlug(ctx context.Context, slug string) (*domain.Group, error) {
	return r.getOne(ctx, `WHERE slug = ?`, slug)
}

func (r *GroupRepository) List(ctx context.Context) ([]domain.Group, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, slug, description, created_at FROM post_groups ORDER BY title, id`)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	defer rows.Close()

	var groups []domain.Group
	for rows.Next() {
		var g domain.Group
		if err := rows.Scan(&g.ID, &g.Title, &g.Slug, &g.Description, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan group: %w", err)
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

func (r *GroupRepository) getOne(ctx context.Context, where string, arg any) (*domain.Group, error) {
	g := &domain.Group{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, title, slug, description, created_at FROM post_groups `+where, arg,
	).Scan(&g.ID, &g.Title, &g.Slug, &g.Description, &g.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get group: %w", err)
	}
	return g, nil
}
