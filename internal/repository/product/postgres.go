package product

import (
	"context"
	"errors"
	"io"
	"log"

	"storefront/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

// NewPostgres returns a Repository backed by Postgres.
func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

const productColumns = `id, store_id, name, description, price, discount_price, image_url, category_id, is_active, created_at`

func (r *postgresRepo) Create(ctx context.Context, p domain.Product) (*domain.Product, error) {
	const q = `
INSERT INTO products (store_id, name, description, price, discount_price, image_url, category_id, is_active)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING ` + productColumns
	return r.scanProduct(r.pool.QueryRow(ctx, q,
		p.StoreID, p.Name, p.Description, p.Price, p.DiscountPrice, p.ImageURL, p.CategoryID, p.IsActive,
	))
}

func (r *postgresRepo) GetByID(ctx context.Context, storeID, id int64) (*domain.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products
WHERE store_id = $1 AND id = $2
LIMIT 1
`
	return r.scanProduct(r.pool.QueryRow(ctx, q, storeID, id))
}

func (r *postgresRepo) GetByIDs(ctx context.Context, storeID int64, ids []int64) ([]domain.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products
WHERE store_id = $1 AND id = ANY($2)
ORDER BY id
`
	rows, err := r.pool.Query(ctx, q, storeID, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.collect(rows)
}

func (r *postgresRepo) ListActive(ctx context.Context, storeID int64) ([]domain.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products
WHERE store_id = $1 AND is_active = TRUE
ORDER BY id
`
	rows, err := r.pool.Query(ctx, q, storeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.collect(rows)
}

func (r *postgresRepo) collect(rows pgx.Rows) ([]domain.Product, error) {
	var products []domain.Product
	for rows.Next() {
		p, err := r.scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *postgresRepo) scanProduct(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	err := row.Scan(
		&p.ID,
		&p.StoreID,
		&p.Name,
		&p.Description,
		&p.Price,
		&p.DiscountPrice,
		&p.ImageURL,
		&p.CategoryID,
		&p.IsActive,
		&p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: scan error=%v", err)
		return nil, err
	}
	return &p, nil
}
