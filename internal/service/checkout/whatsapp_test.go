package checkout

import (
	"strings"
	"testing"

	"storefront/internal/domain"
)

func TestWhatsAppLink(t *testing.T) {
	store := domain.Store{Name: "Demo Store", WhatsAppNumber: "+62 812-3456-7890", Currency: "IDR"}
	order := &domain.Order{
		OrderNumber:    12,
		CustomerName:   "Ann",
		Subtotal:       40000,
		DiscountAmount: 5000,
		Total:          35000,
		Items: []domain.OrderItem{
			{Name: "Iced Coffee", Quantity: 2, Total: 40000},
		},
	}

	link := WhatsAppLink(store, order)
	if !strings.HasPrefix(link, "https://wa.me/6281234567890?text=") {
		t.Fatalf("unexpected link prefix: %s", link)
	}
	for _, want := range []string{"Order+%2312", "Iced+Coffee", "Ann"} {
		if !strings.Contains(link, want) {
			t.Fatalf("expected link to contain %q: %s", want, link)
		}
	}
}

func TestWhatsAppLinkNoNumber(t *testing.T) {
	if link := WhatsAppLink(domain.Store{Name: "Demo"}, &domain.Order{}); link != "" {
		t.Fatalf("expected empty link, got %s", link)
	}
}
