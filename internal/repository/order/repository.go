package order

import (
	"context"

	"storefront/internal/domain"
)

// CreateOrderInput carries the fully priced cart snapshot to persist.
// UsageDiscountIDs lists the applied discounts whose consumption must be
// recorded in the same transaction as the order insert.
type CreateOrderInput struct {
	StoreID          int64
	PublicToken      string
	CustomerName     string
	CustomerPhone    string
	DeliveryAddress  string
	Note             string
	Items            []domain.OrderItem
	Subtotal         int64
	DiscountAmount   int64
	Total            int64
	FreeDelivery     bool
	UsageDiscountIDs []int64
}

// Repository persists orders. Create allocates the per-store order
// number atomically with respect to concurrent placements.
type Repository interface {
	Create(ctx context.Context, in CreateOrderInput) (*domain.Order, error)
	GetByID(ctx context.Context, storeID, id int64) (*domain.Order, error)
	GetByToken(ctx context.Context, token string) (*domain.Order, error)
	List(ctx context.Context, storeID int64) ([]domain.Order, error)
	SetStatus(ctx context.Context, storeID, id int64, status domain.OrderStatus) error
	SetPaymentStatus(ctx context.Context, storeID, id int64, status domain.PaymentStatus) error
	SetFulfillmentStatus(ctx context.Context, storeID, id int64, status domain.FulfillmentStatus) error
	SetInternalNote(ctx context.Context, storeID, id int64, note string) error
}
