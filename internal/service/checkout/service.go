package checkout

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"storefront/internal/discount"
	"storefront/internal/domain"
	"storefront/internal/repository/customer"
	"storefront/internal/repository/order"
	"storefront/internal/service/catalog"
)

type Service struct {
	catalog   cartResolver
	discounts discountRepo
	usage     discount.UsageReader
	orders    orderRepo
	customers customerRepo
	logger    *log.Logger
	now       func() time.Time
}

type cartResolver interface {
	ResolveCart(ctx context.Context, storeID int64, items []catalog.CartItem) ([]domain.CartLine, error)
}

type discountRepo interface {
	ListActive(ctx context.Context, storeID int64) ([]domain.Discount, error)
}

type orderRepo interface {
	Create(ctx context.Context, in order.CreateOrderInput) (*domain.Order, error)
}

type customerRepo interface {
	UpsertOnOrder(ctx context.Context, in customer.UpsertOnOrderInput) (*domain.Customer, error)
}

func New(cart cartResolver, discounts discountRepo, usage discount.UsageReader, orders orderRepo, customers customerRepo, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{
		catalog:   cart,
		discounts: discounts,
		usage:     usage,
		orders:    orders,
		customers: customers,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// PreviewInput is a cart the shopper has not committed yet.
type PreviewInput struct {
	Items         []catalog.CartItem `json:"items" binding:"required"`
	Code          string             `json:"code"`
	CustomerPhone string             `json:"customerPhone"`
}

// Preview prices the cart without side effects: no order, no usage
// recording. An invalid code is returned alongside the plain-priced cart
// so the storefront can show the error and keep the checkout open.
func (s *Service) Preview(ctx context.Context, storeID int64, in PreviewInput) (domain.PricedCart, error) {
	lines, err := s.catalog.ResolveCart(ctx, storeID, in.Items)
	if err != nil {
		return domain.PricedCart{}, err
	}
	return s.evaluate(ctx, storeID, lines, in.Code, in.CustomerPhone)
}

// PlaceOrderInput is a committed checkout.
type PlaceOrderInput struct {
	Items           []catalog.CartItem `json:"items" binding:"required"`
	Code            string             `json:"code"`
	CustomerName    string             `json:"customerName" binding:"required"`
	CustomerPhone   string             `json:"customerPhone" binding:"required"`
	DeliveryAddress string             `json:"deliveryAddress"`
	Note            string             `json:"note"`
}

// PlacedOrder is the checkout result: the persisted order plus the
// WhatsApp handoff link the storefront redirects to.
type PlacedOrder struct {
	Order        *domain.Order    `json:"order"`
	Cart         domain.PricedCart `json:"cart"`
	WhatsAppLink string           `json:"whatsAppLink,omitempty"`
}

// PlaceOrder resolves and prices the cart, persists the order with its
// per-store number and the usage records in one transaction, then
// best-effort updates the customer aggregate. A failing customer upsert
// is logged and swallowed: the order is the source of truth.
func (s *Service) PlaceOrder(ctx context.Context, store domain.Store, in PlaceOrderInput) (*PlacedOrder, error) {
	name := strings.TrimSpace(in.CustomerName)
	phone := strings.TrimSpace(in.CustomerPhone)
	if name == "" {
		return nil, fmt.Errorf("%w: customer name required", domain.ErrInvalidInput)
	}
	if phone == "" {
		return nil, fmt.Errorf("%w: customer phone required", domain.ErrInvalidInput)
	}

	lines, err := s.catalog.ResolveCart(ctx, store.ID, in.Items)
	if err != nil {
		return nil, err
	}
	cart, err := s.evaluate(ctx, store.ID, lines, in.Code, phone)
	if err != nil {
		return nil, err
	}

	items := make([]domain.OrderItem, 0, len(cart.Lines))
	for _, l := range cart.Lines {
		items = append(items, domain.OrderItem{
			ProductID: l.ProductID,
			Name:      l.Name,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			Total:     l.Total(),
			ImageURL:  l.ImageURL,
		})
	}
	var usageIDs []int64
	for _, a := range cart.Applied {
		if a.Amount > 0 {
			usageIDs = append(usageIDs, a.DiscountID)
		}
	}

	placed, err := s.orders.Create(ctx, order.CreateOrderInput{
		StoreID:          store.ID,
		PublicToken:      uuid.NewString(),
		CustomerName:     name,
		CustomerPhone:    phone,
		DeliveryAddress:  strings.TrimSpace(in.DeliveryAddress),
		Note:             strings.TrimSpace(in.Note),
		Items:            items,
		Subtotal:         cart.Subtotal,
		DiscountAmount:   cart.DiscountAmount,
		Total:            cart.Total,
		FreeDelivery:     cart.FreeDelivery,
		UsageDiscountIDs: usageIDs,
	})
	if err != nil {
		return nil, err
	}

	if _, err := s.customers.UpsertOnOrder(ctx, customer.UpsertOnOrderInput{
		StoreID: store.ID,
		Phone:   phone,
		Name:    name,
		Total:   placed.Total,
		Now:     s.now(),
	}); err != nil {
		s.logger.Printf("checkout: customer upsert store=%d phone=%s err=%v", store.ID, phone, err)
	}

	return &PlacedOrder{
		Order:        placed,
		Cart:         cart,
		WhatsAppLink: WhatsAppLink(store, placed),
	}, nil
}

func (s *Service) evaluate(ctx context.Context, storeID int64, lines []domain.CartLine, code, phone string) (domain.PricedCart, error) {
	discounts, err := s.discounts.ListActive(ctx, storeID)
	if err != nil {
		return domain.PricedCart{}, err
	}
	return discount.Evaluate(ctx, discount.Input{
		Lines:         lines,
		Discounts:     discounts,
		Code:          code,
		CustomerPhone: phone,
		Now:           s.now(),
		Usage:         s.usage,
	})
}
