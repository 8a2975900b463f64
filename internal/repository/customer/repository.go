package customer

import (
	"context"
	"time"

	"storefront/internal/domain"
)

// UpsertOnOrderInput carries the aggregate delta from one placed order.
type UpsertOnOrderInput struct {
	StoreID int64
	Phone   string
	Name    string
	Total   int64
	Now     time.Time
}

// Repository persists customer aggregates keyed by (store, phone).
type Repository interface {
	UpsertOnOrder(ctx context.Context, in UpsertOnOrderInput) (*domain.Customer, error)
	GetByPhone(ctx context.Context, storeID int64, phone string) (*domain.Customer, error)
	List(ctx context.Context, storeID int64) ([]domain.Customer, error)
}
