package store

import (
	"context"
	"errors"
	"strings"

	"storefront/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

// NewPostgres returns a Repository backed by Postgres.
func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Create(ctx context.Context, s domain.Store) (*domain.Store, error) {
	const q = `
INSERT INTO stores (key, name, whatsapp_number, currency)
VALUES ($1, $2, $3, $4)
RETURNING id, key, name, whatsapp_number, currency, created_at
`
	return scanStore(r.pool.QueryRow(ctx, q, strings.ToLower(s.Key), s.Name, s.WhatsAppNumber, s.Currency))
}

func (r *postgresRepo) GetByKey(ctx context.Context, key string) (*domain.Store, error) {
	const q = `
SELECT id, key, name, whatsapp_number, currency, created_at
FROM stores
WHERE key = lower($1)
LIMIT 1
`
	return scanStore(r.pool.QueryRow(ctx, q, key))
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*domain.Store, error) {
	const q = `
SELECT id, key, name, whatsapp_number, currency, created_at
FROM stores
WHERE id = $1
LIMIT 1
`
	return scanStore(r.pool.QueryRow(ctx, q, id))
}

func scanStore(row pgx.Row) (*domain.Store, error) {
	var s domain.Store
	err := row.Scan(&s.ID, &s.Key, &s.Name, &s.WhatsAppNumber, &s.Currency, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyExists
		}
		return nil, err
	}
	return &s, nil
}
