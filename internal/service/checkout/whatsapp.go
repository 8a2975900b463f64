package checkout

import (
	"fmt"
	"net/url"
	"strings"

	"storefront/internal/domain"
)

// WhatsAppLink builds the wa.me handoff URL that opens a chat with the
// store's number, prefilled with the order summary. Returns "" when the
// store has no WhatsApp number configured.
func WhatsAppLink(store domain.Store, o *domain.Order) string {
	number := digitsOnly(store.WhatsAppNumber)
	if number == "" {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Order #%d - %s\n\n", o.OrderNumber, store.Name)
	for _, item := range o.Items {
		fmt.Fprintf(&b, "%dx %s - %d\n", item.Quantity, item.Name, item.Total)
	}
	fmt.Fprintf(&b, "\nSubtotal: %d", o.Subtotal)
	if o.DiscountAmount > 0 {
		fmt.Fprintf(&b, "\nDiscount: -%d", o.DiscountAmount)
	}
	fmt.Fprintf(&b, "\nTotal: %d %s", o.Total, store.Currency)
	if o.FreeDelivery {
		b.WriteString("\nFree delivery")
	}
	fmt.Fprintf(&b, "\n\nName: %s", o.CustomerName)
	if o.DeliveryAddress != "" {
		fmt.Fprintf(&b, "\nAddress: %s", o.DeliveryAddress)
	}
	if o.Note != "" {
		fmt.Fprintf(&b, "\nNote: %s", o.Note)
	}

	return "https://wa.me/" + number + "?text=" + url.QueryEscape(b.String())
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
