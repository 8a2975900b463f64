package customer

import (
	"context"

	"storefront/internal/domain"
)

type Service struct {
	repo customerRepo
}

type customerRepo interface {
	GetByPhone(ctx context.Context, storeID int64, phone string) (*domain.Customer, error)
	List(ctx context.Context, storeID int64) ([]domain.Customer, error)
}

func New(repo customerRepo) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, storeID int64) ([]domain.Customer, error) {
	return s.repo.List(ctx, storeID)
}

func (s *Service) GetByPhone(ctx context.Context, storeID int64, phone string) (*domain.Customer, error) {
	return s.repo.GetByPhone(ctx, storeID, phone)
}
