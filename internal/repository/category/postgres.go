package category

import (
	"context"
	"errors"

	"storefront/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Create(ctx context.Context, c domain.Category) (*domain.Category, error) {
	const q = `
INSERT INTO categories (store_id, name)
VALUES ($1, $2)
RETURNING id, store_id, name, created_at
`
	var out domain.Category
	err := r.pool.QueryRow(ctx, q, c.StoreID, c.Name).Scan(&out.ID, &out.StoreID, &out.Name, &out.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *postgresRepo) List(ctx context.Context, storeID int64) ([]domain.Category, error) {
	const q = `
SELECT id, store_id, name, created_at
FROM categories
WHERE store_id = $1
ORDER BY name
`
	rows, err := r.pool.Query(ctx, q, storeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.StoreID, &c.Name, &c.CreatedAt); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, domain.ErrNotFound
			}
			return nil, err
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return categories, nil
}
