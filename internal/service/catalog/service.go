package catalog

import (
	"context"
	"fmt"

	"storefront/internal/domain"
)

type Service struct {
	products   productRepo
	categories categoryRepo
}

type productRepo interface {
	GetByIDs(ctx context.Context, storeID int64, ids []int64) ([]domain.Product, error)
	ListActive(ctx context.Context, storeID int64) ([]domain.Product, error)
}

type categoryRepo interface {
	List(ctx context.Context, storeID int64) ([]domain.Category, error)
}

func New(products productRepo, categories categoryRepo) *Service {
	return &Service{products: products, categories: categories}
}

// CartItem is the raw storefront checkout input before pricing.
type CartItem struct {
	ProductID int64 `json:"productId" binding:"required"`
	Quantity  int   `json:"quantity" binding:"required,min=1"`
}

// ResolveCart prices checkout input against the live catalog. Duplicate
// product entries are merged; unknown or inactive products fail the
// resolution since the order cannot be priced.
func (s *Service) ResolveCart(ctx context.Context, storeID int64, items []CartItem) ([]domain.CartLine, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: cart is empty", domain.ErrInvalidInput)
	}

	quantities := make(map[int64]int, len(items))
	ids := make([]int64, 0, len(items))
	for _, item := range items {
		if item.Quantity < 1 {
			return nil, fmt.Errorf("%w: product %d quantity must be positive", domain.ErrInvalidInput, item.ProductID)
		}
		if _, seen := quantities[item.ProductID]; !seen {
			ids = append(ids, item.ProductID)
		}
		quantities[item.ProductID] += item.Quantity
	}

	products, err := s.products.GetByIDs(ctx, storeID, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	lines := make([]domain.CartLine, 0, len(ids))
	for _, id := range ids {
		p, ok := byID[id]
		if !ok || !p.IsActive {
			return nil, fmt.Errorf("product %d: %w", id, domain.ErrNotFound)
		}
		lines = append(lines, domain.CartLine{
			ProductID:  p.ID,
			Name:       p.Name,
			Quantity:   quantities[id],
			UnitPrice:  p.EffectivePrice(),
			ImageURL:   p.ImageURL,
			CategoryID: p.CategoryID,
		})
	}
	return lines, nil
}

func (s *Service) ListProducts(ctx context.Context, storeID int64) ([]domain.Product, error) {
	return s.products.ListActive(ctx, storeID)
}

func (s *Service) ListCategories(ctx context.Context, storeID int64) ([]domain.Category, error) {
	return s.categories.List(ctx, storeID)
}
