package usage

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// Repository is the usage ledger: how many times each discount has been
// consumed, globally and per customer phone. Reads serve cap checks
// during evaluation; RecordUse runs inside the order-placement
// transaction so a capped discount is never over-consumed by a crash
// between order insert and usage insert.
type Repository interface {
	TotalUses(ctx context.Context, discountID int64) (int, error)
	CustomerUses(ctx context.Context, discountID int64, phone string) (int, error)
	RecordUse(ctx context.Context, tx pgx.Tx, in RecordUseInput) error
}

// RecordUseInput describes one consumption event. Phone is empty for
// anonymous checkouts.
type RecordUseInput struct {
	DiscountID int64
	StoreID    int64
	OrderID    int64
	Phone      string
}
