package order

import (
	"context"
	"errors"
	"io"
	"log"

	"storefront/internal/domain"
	"storefront/internal/repository/usage"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UsageRecorder writes discount consumption events on the order's
// transaction.
type UsageRecorder interface {
	RecordUse(ctx context.Context, tx pgx.Tx, in usage.RecordUseInput) error
}

type postgresRepo struct {
	pool   *pgxpool.Pool
	usage  UsageRecorder
	logger *log.Logger
}

// NewPostgres returns a Repository backed by Postgres.
func NewPostgres(pool *pgxpool.Pool, usageRec UsageRecorder, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, usage: usageRec, logger: logger}
}

const orderColumns = `id, store_id, order_number, public_token, customer_name, customer_phone,
       delivery_address, note, subtotal, discount_amount, total, free_delivery,
       status, payment_status, fulfillment_status, internal_note, created_at`

// Create inserts the order inside one transaction. A per-store advisory
// lock serializes the MAX(order_number)+1 read against concurrent
// placements for the same store; different stores never contend.
func (r *postgresRepo) Create(ctx context.Context, in CreateOrderInput) (*domain.Order, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, in.StoreID); err != nil {
		return nil, err
	}

	var number int
	if err := tx.QueryRow(ctx, `
SELECT COALESCE(MAX(order_number), 0) + 1
FROM orders
WHERE store_id = $1
`, in.StoreID).Scan(&number); err != nil {
		return nil, err
	}

	const insertQ = `
INSERT INTO orders (
    store_id, order_number, public_token, customer_name, customer_phone,
    delivery_address, note, subtotal, discount_amount, total, free_delivery,
    status, payment_status, fulfillment_status
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, 'pending', 'unpaid', 'unfulfilled')
RETURNING ` + orderColumns
	order, err := scanOrder(tx.QueryRow(ctx, insertQ,
		in.StoreID,
		number,
		in.PublicToken,
		in.CustomerName,
		in.CustomerPhone,
		in.DeliveryAddress,
		in.Note,
		in.Subtotal,
		in.DiscountAmount,
		in.Total,
		in.FreeDelivery,
	))
	if err != nil {
		return nil, err
	}

	for _, item := range in.Items {
		if _, err := tx.Exec(ctx, `
INSERT INTO order_items (order_id, product_id, name, quantity, unit_price, total, image_url)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`, order.ID, item.ProductID, item.Name, item.Quantity, item.UnitPrice, item.Total, item.ImageURL); err != nil {
			return nil, err
		}
	}

	for _, discountID := range in.UsageDiscountIDs {
		if err := r.usage.RecordUse(ctx, tx, usage.RecordUseInput{
			DiscountID: discountID,
			StoreID:    in.StoreID,
			OrderID:    order.ID,
			Phone:      in.CustomerPhone,
		}); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	order.Items = in.Items
	return order, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, storeID, id int64) (*domain.Order, error) {
	const q = `
SELECT ` + orderColumns + `
FROM orders
WHERE store_id = $1 AND id = $2
LIMIT 1
`
	order, err := scanOrder(r.pool.QueryRow(ctx, q, storeID, id))
	if err != nil {
		return nil, err
	}
	if err := r.loadItems(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *postgresRepo) GetByToken(ctx context.Context, token string) (*domain.Order, error) {
	const q = `
SELECT ` + orderColumns + `
FROM orders
WHERE public_token = $1
LIMIT 1
`
	order, err := scanOrder(r.pool.QueryRow(ctx, q, token))
	if err != nil {
		return nil, err
	}
	if err := r.loadItems(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *postgresRepo) List(ctx context.Context, storeID int64) ([]domain.Order, error) {
	const q = `
SELECT ` + orderColumns + `
FROM orders
WHERE store_id = $1
ORDER BY order_number DESC
`
	rows, err := r.pool.Query(ctx, q, storeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *postgresRepo) SetStatus(ctx context.Context, storeID, id int64, status domain.OrderStatus) error {
	return r.setField(ctx, `UPDATE orders SET status = $3 WHERE store_id = $1 AND id = $2`, storeID, id, string(status))
}

func (r *postgresRepo) SetPaymentStatus(ctx context.Context, storeID, id int64, status domain.PaymentStatus) error {
	return r.setField(ctx, `UPDATE orders SET payment_status = $3 WHERE store_id = $1 AND id = $2`, storeID, id, string(status))
}

func (r *postgresRepo) SetFulfillmentStatus(ctx context.Context, storeID, id int64, status domain.FulfillmentStatus) error {
	return r.setField(ctx, `UPDATE orders SET fulfillment_status = $3 WHERE store_id = $1 AND id = $2`, storeID, id, string(status))
}

func (r *postgresRepo) SetInternalNote(ctx context.Context, storeID, id int64, note string) error {
	return r.setField(ctx, `UPDATE orders SET internal_note = $3 WHERE store_id = $1 AND id = $2`, storeID, id, note)
}

func (r *postgresRepo) setField(ctx context.Context, q string, storeID, id int64, value string) error {
	cmd, err := r.pool.Exec(ctx, q, storeID, id, value)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) loadItems(ctx context.Context, order *domain.Order) error {
	const q = `
SELECT product_id, name, quantity, unit_price, total, image_url
FROM order_items
WHERE order_id = $1
ORDER BY id
`
	rows, err := r.pool.Query(ctx, q, order.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ProductID, &item.Name, &item.Quantity, &item.UnitPrice, &item.Total, &item.ImageURL); err != nil {
			return err
		}
		order.Items = append(order.Items, item)
	}
	return rows.Err()
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var o domain.Order
	err := row.Scan(
		&o.ID,
		&o.StoreID,
		&o.OrderNumber,
		&o.PublicToken,
		&o.CustomerName,
		&o.CustomerPhone,
		&o.DeliveryAddress,
		&o.Note,
		&o.Subtotal,
		&o.DiscountAmount,
		&o.Total,
		&o.FreeDelivery,
		&o.Status,
		&o.PaymentStatus,
		&o.FulfillmentStatus,
		&o.InternalNote,
		&o.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}
