package usage

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront/internal/domain"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

// NewPostgres returns a Repository backed by the discount_usage event table.
func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) TotalUses(ctx context.Context, discountID int64) (int, error) {
	const q = `SELECT COUNT(*) FROM discount_usage WHERE discount_id = $1`
	var n int
	if err := r.pool.QueryRow(ctx, q, discountID).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *postgresRepo) CustomerUses(ctx context.Context, discountID int64, phone string) (int, error) {
	const q = `SELECT COUNT(*) FROM discount_usage WHERE discount_id = $1 AND phone = $2`
	var n int
	if err := r.pool.QueryRow(ctx, q, discountID, phone).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// RecordUse appends one consumption event on the caller's transaction.
// The caps are re-checked here: the engine's read happens before the
// order transaction, so two concurrent placements could both pass it.
// Inside the transaction the per-store advisory lock serializes this
// re-check, making the caps exact.
func (r *postgresRepo) RecordUse(ctx context.Context, tx pgx.Tx, in RecordUseInput) error {
	const q = `
INSERT INTO discount_usage (discount_id, store_id, order_id, phone)
SELECT d.id, $2, $3, NULLIF($4, '')
FROM discounts d
WHERE d.id = $1
  AND (d.max_total_uses IS NULL
       OR (SELECT COUNT(*) FROM discount_usage u WHERE u.discount_id = d.id) < d.max_total_uses)
  AND (d.max_per_customer IS NULL OR $4 = ''
       OR (SELECT COUNT(*) FROM discount_usage u WHERE u.discount_id = d.id AND u.phone = $4) < d.max_per_customer)
`
	cmd, err := tx.Exec(ctx, q, in.DiscountID, in.StoreID, in.OrderID, in.Phone)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrUsageCapExceeded
	}
	return nil
}
