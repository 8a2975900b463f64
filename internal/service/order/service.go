package order

import (
	"context"

	"storefront/internal/domain"
)

type Service struct {
	repo orderRepo
}

type orderRepo interface {
	GetByID(ctx context.Context, storeID, id int64) (*domain.Order, error)
	GetByToken(ctx context.Context, token string) (*domain.Order, error)
	List(ctx context.Context, storeID int64) ([]domain.Order, error)
	SetStatus(ctx context.Context, storeID, id int64, status domain.OrderStatus) error
	SetPaymentStatus(ctx context.Context, storeID, id int64, status domain.PaymentStatus) error
	SetFulfillmentStatus(ctx context.Context, storeID, id int64, status domain.FulfillmentStatus) error
	SetInternalNote(ctx context.Context, storeID, id int64, note string) error
}

func New(repo orderRepo) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, storeID int64) ([]domain.Order, error) {
	return s.repo.List(ctx, storeID)
}

func (s *Service) Get(ctx context.Context, storeID, id int64) (*domain.Order, error) {
	return s.repo.GetByID(ctx, storeID, id)
}

func (s *Service) GetByToken(ctx context.Context, token string) (*domain.Order, error) {
	return s.repo.GetByToken(ctx, token)
}

// SetStatus applies the order lifecycle machine: pending -> confirmed ->
// completed, with cancellation allowed before completion.
func (s *Service) SetStatus(ctx context.Context, storeID, id int64, to domain.OrderStatus) (*domain.Order, error) {
	current, err := s.repo.GetByID(ctx, storeID, id)
	if err != nil {
		return nil, err
	}
	if !domain.CanTransitionStatus(current.Status, to) {
		return nil, domain.ErrInvalidTransition
	}
	if err := s.repo.SetStatus(ctx, storeID, id, to); err != nil {
		return nil, err
	}
	current.Status = to
	return current, nil
}

// SetPaymentStatus records any payment state an admin sets; transitions
// are audited, not gated.
func (s *Service) SetPaymentStatus(ctx context.Context, storeID, id int64, to domain.PaymentStatus) (*domain.Order, error) {
	current, err := s.repo.GetByID(ctx, storeID, id)
	if err != nil {
		return nil, err
	}
	if !domain.CanTransitionPayment(current.PaymentStatus, to) {
		return nil, domain.ErrInvalidTransition
	}
	if err := s.repo.SetPaymentStatus(ctx, storeID, id, to); err != nil {
		return nil, err
	}
	current.PaymentStatus = to
	return current, nil
}

func (s *Service) SetFulfillmentStatus(ctx context.Context, storeID, id int64, to domain.FulfillmentStatus) (*domain.Order, error) {
	current, err := s.repo.GetByID(ctx, storeID, id)
	if err != nil {
		return nil, err
	}
	if !domain.CanTransitionFulfillment(current.FulfillmentStatus, to) {
		return nil, domain.ErrInvalidTransition
	}
	if err := s.repo.SetFulfillmentStatus(ctx, storeID, id, to); err != nil {
		return nil, err
	}
	current.FulfillmentStatus = to
	return current, nil
}

func (s *Service) SetInternalNote(ctx context.Context, storeID, id int64, note string) (*domain.Order, error) {
	current, err := s.repo.GetByID(ctx, storeID, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SetInternalNote(ctx, storeID, id, note); err != nil {
		return nil, err
	}
	current.InternalNote = note
	return current, nil
}
