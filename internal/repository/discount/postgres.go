package discount

import (
	"context"
	"errors"
	"io"
	"log"

	"storefront/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
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

const discountColumns = `id, store_id, name, type, code, is_active, start_date, end_date,
       value_type, value, applies_to, target_product_ids, target_category_ids,
       buy_product_ids, get_product_ids, min_requirement, min_value,
       max_total_uses, max_per_customer, max_total_amount, created_at`

func (r *postgresRepo) Create(ctx context.Context, d domain.Discount) (*domain.Discount, error) {
	const q = `
INSERT INTO discounts (
    store_id, name, type, code, is_active, start_date, end_date,
    value_type, value, applies_to, target_product_ids, target_category_ids,
    buy_product_ids, get_product_ids, min_requirement, min_value,
    max_total_uses, max_per_customer, max_total_amount
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
RETURNING ` + discountColumns
	return r.scanDiscount(r.pool.QueryRow(ctx, q, discountArgs(d)...))
}

func (r *postgresRepo) Update(ctx context.Context, d domain.Discount) (*domain.Discount, error) {
	const q = `
UPDATE discounts SET
    name = $3, type = $4, code = $5, is_active = $6, start_date = $7, end_date = $8,
    value_type = $9, value = $10, applies_to = $11, target_product_ids = $12,
    target_category_ids = $13, buy_product_ids = $14, get_product_ids = $15,
    min_requirement = $16, min_value = $17, max_total_uses = $18,
    max_per_customer = $19, max_total_amount = $20
WHERE store_id = $1 AND id = $2
RETURNING ` + discountColumns
	args := append([]interface{}{d.StoreID, d.ID}, discountArgs(d)[1:]...)
	return r.scanDiscount(r.pool.QueryRow(ctx, q, args...))
}

func (r *postgresRepo) Delete(ctx context.Context, storeID, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM discounts WHERE store_id = $1 AND id = $2`, storeID, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) GetByID(ctx context.Context, storeID, id int64) (*domain.Discount, error) {
	const q = `
SELECT ` + discountColumns + `
FROM discounts
WHERE store_id = $1 AND id = $2
LIMIT 1
`
	return r.scanDiscount(r.pool.QueryRow(ctx, q, storeID, id))
}

func (r *postgresRepo) List(ctx context.Context, storeID int64) ([]domain.Discount, error) {
	const q = `
SELECT ` + discountColumns + `
FROM discounts
WHERE store_id = $1
ORDER BY id
`
	return r.query(ctx, q, storeID)
}

// ListActive returns enabled discounts ordered by id; the engine applies
// the date-window filter against its own evaluation time.
func (r *postgresRepo) ListActive(ctx context.Context, storeID int64) ([]domain.Discount, error) {
	const q = `
SELECT ` + discountColumns + `
FROM discounts
WHERE store_id = $1 AND is_active = TRUE
ORDER BY id
`
	return r.query(ctx, q, storeID)
}

func (r *postgresRepo) query(ctx context.Context, q string, args ...interface{}) ([]domain.Discount, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var discounts []domain.Discount
	for rows.Next() {
		d, err := r.scanDiscount(rows)
		if err != nil {
			return nil, err
		}
		discounts = append(discounts, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return discounts, nil
}

func discountArgs(d domain.Discount) []interface{} {
	return []interface{}{
		d.StoreID,
		d.Name,
		string(d.Type),
		d.Code,
		d.IsActive,
		d.StartDate,
		d.EndDate,
		string(d.ValueType),
		d.Value,
		string(d.AppliesTo),
		d.TargetProductIDs,
		d.TargetCategoryIDs,
		d.BuyProductIDs,
		d.GetProductIDs,
		string(d.MinRequirement),
		d.MinValue,
		d.MaxTotalUses,
		d.MaxPerCustomer,
		d.MaxTotalAmount,
	}
}

func (r *postgresRepo) scanDiscount(row pgx.Row) (*domain.Discount, error) {
	var d domain.Discount
	err := row.Scan(
		&d.ID,
		&d.StoreID,
		&d.Name,
		&d.Type,
		&d.Code,
		&d.IsActive,
		&d.StartDate,
		&d.EndDate,
		&d.ValueType,
		&d.Value,
		&d.AppliesTo,
		&d.TargetProductIDs,
		&d.TargetCategoryIDs,
		&d.BuyProductIDs,
		&d.GetProductIDs,
		&d.MinRequirement,
		&d.MinValue,
		&d.MaxTotalUses,
		&d.MaxPerCustomer,
		&d.MaxTotalAmount,
		&d.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyExists
		}
		r.logger.Printf("discount repo: scan error=%v", err)
		return nil, err
	}
	return &d, nil
}
