package category

import (
	"context"

	"storefront/internal/domain"
)

// Repository persists and fetches catalog categories.
type Repository interface {
	Create(ctx context.Context, c domain.Category) (*domain.Category, error)
	List(ctx context.Context, storeID int64) ([]domain.Category, error)
}
