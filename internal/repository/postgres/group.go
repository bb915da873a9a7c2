package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/msomdec/yatube/internal/domain"
)

// GroupRepository implements domain.GroupRepository using PostgreSQL.
type GroupRepository struct {
	pool *pgxpool.Pool
}

func NewGroupRepository(db *DB) *GroupRepository {
	return &GroupRepository{pool: db.Pool}
}

const groupColumns = `id, title, slug, description, created_at`

func (r *GroupRepository) Create(ctx context.Context, group *domain.Group) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO post_groups (title, slug, description) VALUES ($1, $2, $3) RETURNING id, created_at`,
		group.Title, group.Slug, group.Description,
	).Scan(&group.ID, &group.CreatedAt)
	if err != nil {
		if hasCode(err, uniqueViolation) {
			return domain.ErrDuplicateSlug
		}
		return fmt.Errorf("insert group: %w", err)
	}
	return nil
}

func (r *GroupRepository) GetByID(ctx context.Context, id int64) (*domain.Group, error) {
	return r.getOne(ctx, `id = $1`, id)
}

func (r *GroupRepository) GetBySlug(ctx context.Context, slug string) (*domain.Group, error) {
	return r.getOne(ctx, `slug = $1`, slug)
}

func (r *GroupRepository) List(ctx context.Context) ([]domain.Group, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+groupColumns+` FROM post_groups ORDER BY title, id`)
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
	var g domain.Group
	err := r.pool.QueryRow(ctx, `SELECT `+groupColumns+` FROM post_groups WHERE `+where, arg).
		Scan(&g.ID, &g.Title, &g.Slug, &g.Description, &g.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get group: %w", err)
	}
	return &g, nil
}
