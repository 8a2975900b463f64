package discount

import (
	"context"
	"fmt"
	"strings"

	"storefront/internal/domain"
)

type Service struct {
	repo discountRepo
}

type discountRepo interface {
	Create(ctx context.Context, d domain.Discount) (*domain.Discount, error)
	Update(ctx context.Context, d domain.Discount) (*domain.Discount, error)
	Delete(ctx context.Context, storeID, id int64) error
	GetByID(ctx context.Context, storeID, id int64) (*domain.Discount, error)
	List(ctx context.Context, storeID int64) ([]domain.Discount, error)
}

func New(repo discountRepo) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, d domain.Discount) (*domain.Discount, error) {
	normalize(&d)
	if err := validate(d); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, d)
}

func (s *Service) Update(ctx context.Context, d domain.Discount) (*domain.Discount, error) {
	normalize(&d)
	if err := validate(d); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, d)
}

func (s *Service) Delete(ctx context.Context, storeID, id int64) error {
	return s.repo.Delete(ctx, storeID, id)
}

func (s *Service) Get(ctx context.Context, storeID, id int64) (*domain.Discount, error) {
	return s.repo.GetByID(ctx, storeID, id)
}

func (s *Service) List(ctx context.Context, storeID int64) ([]domain.Discount, error) {
	return s.repo.List(ctx, storeID)
}

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", domain.ErrInvalidInput, msg)
}

func normalize(d *domain.Discount) {
	d.Name = strings.TrimSpace(d.Name)
	d.Code = strings.ToUpper(strings.TrimSpace(d.Code))
	if d.MinRequirement == "" {
		d.MinRequirement = domain.MinNone
	}
	if d.AppliesTo == "" {
		d.AppliesTo = domain.AppliesToOrders
	}
}

// validate enforces the write-time invariants so the engine only ever
// sees well-formed definitions.
func validate(d domain.Discount) error {
	if d.Name == "" {
		return invalid("name required")
	}
	if d.StartDate.IsZero() {
		return invalid("start date required")
	}
	if d.EndDate != nil && d.EndDate.Before(d.StartDate) {
		return invalid("end date before start date")
	}

	switch d.Type {
	case domain.DiscountCode:
		if d.Code == "" {
			return invalid("code required for code discounts")
		}
	case domain.DiscountAutomatic, domain.DiscountOrderAmount, domain.DiscountBundle, domain.DiscountFreeDelivery:
		if d.Code != "" {
			return invalid("code only allowed on code discounts")
		}
	case domain.DiscountBuyXGetY:
		if len(d.BuyProductIDs) == 0 || len(d.GetProductIDs) == 0 {
			return invalid("buy and get products required")
		}
	default:
		return invalid("unknown discount type")
	}

	switch d.Type {
	case domain.DiscountFreeDelivery:
		if d.ValueType != domain.ValueFree {
			return invalid("free delivery must use value type free")
		}
	case domain.DiscountBuyXGetY:
		// Value is not used; the granted units define the amount.
	default:
		switch d.ValueType {
		case domain.ValuePercentage:
			if d.Value < 0 || d.Value > 100 {
				return invalid("percentage must be between 0 and 100")
			}
		case domain.ValueFixed:
			if d.Value <= 0 {
				return invalid("fixed value must be positive")
			}
		default:
			return invalid("invalid value type")
		}
	}

	if d.Type == domain.DiscountBundle && len(d.TargetProductIDs) < 2 {
		return invalid("bundle requires at least two products")
	}

	switch d.AppliesTo {
	case domain.AppliesToOrders, domain.AppliesToProducts, domain.AppliesToCategories:
	default:
		return invalid("invalid applies-to scope")
	}

	switch d.MinRequirement {
	case domain.MinNone:
	case domain.MinAmount, domain.MinQuantity:
		if d.MinValue <= 0 {
			return invalid("minimum value must be positive")
		}
	default:
		return invalid("invalid minimum requirement")
	}

	if d.MaxTotalUses != nil && *d.MaxTotalUses <= 0 {
		return invalid("max total uses must be positive")
	}
	if d.MaxPerCustomer != nil && *d.MaxPerCustomer <= 0 {
		return invalid("max per customer must be positive")
	}
	if d.MaxTotalAmount != nil && *d.MaxTotalAmount <= 0 {
		return invalid("max total amount must be positive")
	}
	return nil
}
