package httpserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"storefront/internal/domain"
	customersvc "storefront/internal/service/customer"
)

type stubCustomerRepo struct {
	customer  *domain.Customer
	err       error
	lastPhone string
}

func (s *stubCustomerRepo) GetByPhone(_ context.Context, _ int64, phone string) (*domain.Customer, error) {
	s.lastPhone = phone
	return s.customer, s.err
}

func (s *stubCustomerRepo) List(_ context.Context, _ int64) ([]domain.Customer, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []domain.Customer{*s.customer}, nil
}

func customerTestRouter(repo *stubCustomerRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(storeMiddleware(&stubStoreRepo{store: &domain.Store{ID: 1, Key: "demo"}}))
	svc := customersvc.New(repo)
	router.GET("/stores/:storeKey/admin/customers", listCustomersHandler(svc))
	router.GET("/stores/:storeKey/admin/customers/:phone", getCustomerHandler(svc))
	return router
}

func TestGetCustomerHandler(t *testing.T) {
	repo := &stubCustomerRepo{customer: &domain.Customer{ID: 3, Phone: "+628111", Name: "Ann", TotalOrders: 2, TotalSpent: 40000}}
	router := customerTestRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/stores/demo/admin/customers/+628111", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	if repo.lastPhone != "+628111" {
		t.Fatalf("expected phone passed through, got %q", repo.lastPhone)
	}
	if !strings.Contains(rec.Body.String(), `"totalOrders":2`) {
		t.Fatalf("expected aggregates in body: %s", rec.Body.String())
	}
}

func TestGetCustomerHandler_NotFound(t *testing.T) {
	router := customerTestRouter(&stubCustomerRepo{err: domain.ErrNotFound})

	req := httptest.NewRequest(http.MethodGet, "/stores/demo/admin/customers/+620000", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}

func TestListCustomersHandler(t *testing.T) {
	repo := &stubCustomerRepo{customer: &domain.Customer{ID: 3, Phone: "+628111", Name: "Ann"}}
	router := customerTestRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/stores/demo/admin/customers", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"customers"`) {
		t.Fatalf("expected customers list in body: %s", rec.Body.String())
	}
}
