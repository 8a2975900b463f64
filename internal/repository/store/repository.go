package store

import (
	"context"

	"storefront/internal/domain"
)

// Repository persists and fetches stores.
type Repository interface {
	Create(ctx context.Context, s domain.Store) (*domain.Store, error)
	GetByKey(ctx context.Context, key string) (*domain.Store, error)
	GetByID(ctx context.Context, id int64) (*domain.Store, error)
}
