package customer

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

const customerColumns = `id, store_id, phone, name, total_orders, total_spent, first_order_at, last_order_at, created_at`

// UpsertOnOrder creates the customer on first order, otherwise bumps the
// aggregates and overwrites the name with the latest supplied one.
func (r *postgresRepo) UpsertOnOrder(ctx context.Context, in UpsertOnOrderInput) (*domain.Customer, error) {
	const q = `
INSERT INTO customers (store_id, phone, name, total_orders, total_spent, first_order_at, last_order_at)
VALUES ($1, $2, $3, 1, $4, $5, $5)
ON CONFLICT (store_id, phone) DO UPDATE SET
    name = EXCLUDED.name,
    total_orders = customers.total_orders + 1,
    total_spent = customers.total_spent + EXCLUDED.total_spent,
    last_order_at = EXCLUDED.last_order_at
RETURNING ` + customerColumns
	return r.scanCustomer(r.pool.QueryRow(ctx, q, in.StoreID, in.Phone, in.Name, in.Total, in.Now))
}

func (r *postgresRepo) GetByPhone(ctx context.Context, storeID int64, phone string) (*domain.Customer, error) {
	const q = `
SELECT ` + customerColumns + `
FROM customers
WHERE store_id = $1 AND phone = $2
LIMIT 1
`
	return r.scanCustomer(r.pool.QueryRow(ctx, q, storeID, phone))
}

func (r *postgresRepo) List(ctx context.Context, storeID int64) ([]domain.Customer, error) {
	const q = `
SELECT ` + customerColumns + `
FROM customers
WHERE store_id = $1
ORDER BY last_order_at DESC
`
	rows, err := r.pool.Query(ctx, q, storeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []domain.Customer
	for rows.Next() {
		c, err := r.scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return customers, nil
}

func (r *postgresRepo) scanCustomer(row pgx.Row) (*domain.Customer, error) {
	var c domain.Customer
	err := row.Scan(
		&c.ID,
		&c.StoreID,
		&c.Phone,
		&c.Name,
		&c.TotalOrders,
		&c.TotalSpent,
		&c.FirstOrderAt,
		&c.LastOrderAt,
		&c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("customer repo: scan error=%v", err)
		return nil, err
	}
	return &c, nil
}
