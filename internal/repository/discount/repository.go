package discount

import (
	"context"

	"storefront/internal/domain"
)

// Repository persists discount definitions and serves the engine's read
// contract (ListActive).
type Repository interface {
	Create(ctx context.Context, d domain.Discount) (*domain.Discount, error)
	Update(ctx context.Context, d domain.Discount) (*domain.Discount, error)
	Delete(ctx context.Context, storeID, id int64) error
	GetByID(ctx context.Context, storeID, id int64) (*domain.Discount, error)
	List(ctx context.Context, storeID int64) ([]domain.Discount, error)
	ListActive(ctx context.Context, storeID int64) ([]domain.Discount, error)
}
