package checkout

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"storefront/internal/domain"
	customerrepo "storefront/internal/repository/customer"
	orderrepo "storefront/internal/repository/order"
	"storefront/internal/service/catalog"
)

type stubCatalog struct {
	lines []domain.CartLine
	err   error
}

func (s *stubCatalog) ResolveCart(_ context.Context, _ int64, _ []catalog.CartItem) ([]domain.CartLine, error) {
	return s.lines, s.err
}

type stubDiscountRepo struct {
	discounts []domain.Discount
	err       error
}

func (s *stubDiscountRepo) ListActive(_ context.Context, _ int64) ([]domain.Discount, error) {
	return s.discounts, s.err
}

type stubUsage struct{}

func (stubUsage) TotalUses(_ context.Context, _ int64) (int, error) { return 0, nil }

func (stubUsage) CustomerUses(_ context.Context, _ int64, _ string) (int, error) { return 0, nil }

type stubOrderRepo struct {
	created *domain.Order
	err     error
	calls   int
	lastIn  orderrepo.CreateOrderInput
}

func (s *stubOrderRepo) Create(_ context.Context, in orderrepo.CreateOrderInput) (*domain.Order, error) {
	s.calls++
	s.lastIn = in
	return s.created, s.err
}

type stubCustomerRepo struct {
	err    error
	calls  int
	lastIn customerrepo.UpsertOnOrderInput
}

func (s *stubCustomerRepo) UpsertOnOrder(_ context.Context, in customerrepo.UpsertOnOrderInput) (*domain.Customer, error) {
	s.calls++
	s.lastIn = in
	return &domain.Customer{ID: 1}, s.err
}

var testStore = domain.Store{ID: 5, Key: "demo", Name: "Demo", WhatsAppNumber: "+62 811 1234", Currency: "IDR"}

func testNow() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }

func newTestService(cat *stubCatalog, discounts *stubDiscountRepo, orders *stubOrderRepo, customers *stubCustomerRepo) *Service {
	svc := New(cat, discounts, stubUsage{}, orders, customers, nil)
	svc.now = testNow
	return svc
}

func cartLines() []domain.CartLine {
	return []domain.CartLine{{ProductID: 1, Name: "Tea", Quantity: 2, UnitPrice: 1000}}
}

func tenPercent() domain.Discount {
	return domain.Discount{
		ID: 1, Type: domain.DiscountOrderAmount, IsActive: true,
		StartDate: testNow().Add(-time.Hour), ValueType: domain.ValuePercentage, Value: 10,
		AppliesTo: domain.AppliesToOrders,
	}
}

func TestPreviewPricesCart(t *testing.T) {
	orders := &stubOrderRepo{}
	svc := newTestService(&stubCatalog{lines: cartLines()}, &stubDiscountRepo{discounts: []domain.Discount{tenPercent()}}, orders, &stubCustomerRepo{})

	cart, err := svc.Preview(context.Background(), testStore.ID, PreviewInput{Items: []catalog.CartItem{{ProductID: 1, Quantity: 2}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cart.Subtotal != 2000 || cart.DiscountAmount != 200 || cart.Total != 1800 {
		t.Fatalf("unexpected totals: %+v", cart)
	}
	if orders.calls != 0 {
		t.Fatalf("preview must not create orders")
	}
}

func TestPreviewInvalidCodePassesCartThrough(t *testing.T) {
	svc := newTestService(&stubCatalog{lines: cartLines()}, &stubDiscountRepo{}, &stubOrderRepo{}, &stubCustomerRepo{})

	cart, err := svc.Preview(context.Background(), testStore.ID, PreviewInput{
		Items: []catalog.CartItem{{ProductID: 1, Quantity: 2}},
		Code:  "NOPE",
	})
	if !errors.Is(err, domain.ErrInvalidCode) {
		t.Fatalf("expected ErrInvalidCode, got %v", err)
	}
	if cart.Subtotal != 2000 || cart.Total != 2000 {
		t.Fatalf("expected plain-priced cart alongside error, got %+v", cart)
	}
}

func TestPlaceOrderRequiresNameAndPhone(t *testing.T) {
	svc := newTestService(&stubCatalog{lines: cartLines()}, &stubDiscountRepo{}, &stubOrderRepo{}, &stubCustomerRepo{})

	_, err := svc.PlaceOrder(context.Background(), testStore, PlaceOrderInput{CustomerPhone: "+628"})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected name error, got %v", err)
	}
	_, err = svc.PlaceOrder(context.Background(), testStore, PlaceOrderInput{CustomerName: "Ann"})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected phone error, got %v", err)
	}
}

func TestPlaceOrderHappyPath(t *testing.T) {
	orders := &stubOrderRepo{created: &domain.Order{
		ID: 9, OrderNumber: 3, CustomerName: "Ann", Subtotal: 2000, DiscountAmount: 200, Total: 1800,
		Items: []domain.OrderItem{{ProductID: 1, Name: "Tea", Quantity: 2, UnitPrice: 1000, Total: 2000}},
	}}
	customers := &stubCustomerRepo{}
	svc := newTestService(&stubCatalog{lines: cartLines()}, &stubDiscountRepo{discounts: []domain.Discount{tenPercent()}}, orders, customers)

	placed, err := svc.PlaceOrder(context.Background(), testStore, PlaceOrderInput{
		Items:         []catalog.CartItem{{ProductID: 1, Quantity: 2}},
		CustomerName:  "Ann",
		CustomerPhone: "+628111",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if placed.Order.ID != 9 {
		t.Fatalf("unexpected order: %+v", placed.Order)
	}
	in := orders.lastIn
	if in.Subtotal != 2000 || in.DiscountAmount != 200 || in.Total != 1800 {
		t.Fatalf("unexpected create input totals: %+v", in)
	}
	if in.PublicToken == "" {
		t.Fatalf("expected public token assigned")
	}
	if len(in.UsageDiscountIDs) != 1 || in.UsageDiscountIDs[0] != 1 {
		t.Fatalf("expected usage recorded for applied discount, got %v", in.UsageDiscountIDs)
	}
	if len(in.Items) != 1 || in.Items[0].Total != 2000 {
		t.Fatalf("unexpected item snapshot: %+v", in.Items)
	}
	if customers.calls != 1 || customers.lastIn.Total != 1800 || customers.lastIn.Phone != "+628111" {
		t.Fatalf("unexpected customer upsert: %+v", customers.lastIn)
	}
	if !strings.HasPrefix(placed.WhatsAppLink, "https://wa.me/628111234?text=") {
		t.Fatalf("unexpected whatsapp link: %s", placed.WhatsAppLink)
	}
}

func TestPlaceOrderInvalidCodeFails(t *testing.T) {
	orders := &stubOrderRepo{}
	svc := newTestService(&stubCatalog{lines: cartLines()}, &stubDiscountRepo{}, orders, &stubCustomerRepo{})

	_, err := svc.PlaceOrder(context.Background(), testStore, PlaceOrderInput{
		Items:         []catalog.CartItem{{ProductID: 1, Quantity: 2}},
		Code:          "NOPE",
		CustomerName:  "Ann",
		CustomerPhone: "+628111",
	})
	if !errors.Is(err, domain.ErrInvalidCode) {
		t.Fatalf("expected ErrInvalidCode, got %v", err)
	}
	if orders.calls != 0 {
		t.Fatalf("order must not be created with an invalid code")
	}
}

func TestPlaceOrderFreeDeliveryNotRecordedAsUsage(t *testing.T) {
	orders := &stubOrderRepo{created: &domain.Order{ID: 1, OrderNumber: 1}}
	free := domain.Discount{
		ID: 2, Type: domain.DiscountFreeDelivery, IsActive: true,
		StartDate: testNow().Add(-time.Hour), ValueType: domain.ValueFree,
	}
	svc := newTestService(&stubCatalog{lines: cartLines()}, &stubDiscountRepo{discounts: []domain.Discount{free}}, orders, &stubCustomerRepo{})

	_, err := svc.PlaceOrder(context.Background(), testStore, PlaceOrderInput{
		Items:         []catalog.CartItem{{ProductID: 1, Quantity: 2}},
		CustomerName:  "Ann",
		CustomerPhone: "+628111",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !orders.lastIn.FreeDelivery {
		t.Fatalf("expected free delivery carried onto order")
	}
	if len(orders.lastIn.UsageDiscountIDs) != 0 {
		t.Fatalf("free delivery must not consume usage, got %v", orders.lastIn.UsageDiscountIDs)
	}
}

func TestPlaceOrderCustomerUpsertFailureSwallowed(t *testing.T) {
	orders := &stubOrderRepo{created: &domain.Order{ID: 1, OrderNumber: 1, Total: 2000}}
	customers := &stubCustomerRepo{err: errors.New("customers table on fire")}
	svc := newTestService(&stubCatalog{lines: cartLines()}, &stubDiscountRepo{}, orders, customers)

	placed, err := svc.PlaceOrder(context.Background(), testStore, PlaceOrderInput{
		Items:         []catalog.CartItem{{ProductID: 1, Quantity: 2}},
		CustomerName:  "Ann",
		CustomerPhone: "+628111",
	})
	if err != nil {
		t.Fatalf("order placement must survive customer upsert failure, got %v", err)
	}
	if placed.Order.ID != 1 {
		t.Fatalf("unexpected order: %+v", placed.Order)
	}
}

func TestPlaceOrderRepoErrorPropagates(t *testing.T) {
	orders := &stubOrderRepo{err: errors.New("insert failed")}
	customers := &stubCustomerRepo{}
	svc := newTestService(&stubCatalog{lines: cartLines()}, &stubDiscountRepo{}, orders, customers)

	_, err := svc.PlaceOrder(context.Background(), testStore, PlaceOrderInput{
		Items:         []catalog.CartItem{{ProductID: 1, Quantity: 2}},
		CustomerName:  "Ann",
		CustomerPhone: "+628111",
	})
	if err == nil || err.Error() != "insert failed" {
		t.Fatalf("expected order error to propagate, got %v", err)
	}
	if customers.calls != 0 {
		t.Fatalf("customer upsert must not run when order creation fails")
	}
}
