package product

import (
	"context"

	"storefront/internal/domain"
)

// Repository persists and fetches catalog products.
type Repository interface {
	Create(ctx context.Context, p domain.Product) (*domain.Product, error)
	GetByID(ctx context.Context, storeID, id int64) (*domain.Product, error)
	GetByIDs(ctx context.Context, storeID int64, ids []int64) ([]domain.Product, error)
	ListActive(ctx context.Context, storeID int64) ([]domain.Product, error)
}
