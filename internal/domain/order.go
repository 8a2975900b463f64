package domain

import "time"

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentUnpaid     PaymentStatus = "unpaid"
	PaymentConfirming PaymentStatus = "confirming"
	PaymentPaid       PaymentStatus = "paid"
	PaymentRefunded   PaymentStatus = "refunded"
	PaymentVoided     PaymentStatus = "voided"
)

type FulfillmentStatus string

const (
	FulfillmentUnfulfilled FulfillmentStatus = "unfulfilled"
	FulfillmentPartial     FulfillmentStatus = "partially_fulfilled"
	FulfillmentFulfilled   FulfillmentStatus = "fulfilled"
)

// OrderItem is a frozen snapshot of a cart line. Later catalog edits
// never change historical orders.
type OrderItem struct {
	ProductID int64  `json:"productId"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unitPrice"`
	Total     int64  `json:"total"`
	ImageURL  string `json:"imageUrl,omitempty"`
}

// Order is immutable once created except for the three status fields and
// the internal note. OrderNumber is per-store, monotonically increasing
// from 1, never reused.
type Order struct {
	ID                int64             `json:"id"`
	StoreID           int64             `json:"-"`
	OrderNumber       int               `json:"orderNumber"`
	PublicToken       string            `json:"publicToken"`
	CustomerName      string            `json:"customerName"`
	CustomerPhone     string            `json:"customerPhone"`
	DeliveryAddress   string            `json:"deliveryAddress,omitempty"`
	Note              string            `json:"note,omitempty"`
	Items             []OrderItem       `json:"items"`
	Subtotal          int64             `json:"subtotal"`
	DiscountAmount    int64             `json:"discountAmount"`
	Total             int64             `json:"total"`
	FreeDelivery      bool              `json:"freeDelivery,omitempty"`
	Status            OrderStatus       `json:"status"`
	PaymentStatus     PaymentStatus     `json:"paymentStatus"`
	FulfillmentStatus FulfillmentStatus `json:"fulfillmentStatus"`
	InternalNote      string            `json:"internalNote,omitempty"`
	CreatedAt         time.Time         `json:"createdAt"`
}

// CanTransitionStatus reports whether an order status change is allowed:
// pending -> confirmed -> completed, pending/confirmed -> cancelled.
// Completed and cancelled are terminal.
func CanTransitionStatus(from, to OrderStatus) bool {
	switch from {
	case OrderPending:
		return to == OrderConfirmed || to == OrderCancelled
	case OrderConfirmed:
		return to == OrderCompleted || to == OrderCancelled
	default:
		return false
	}
}

// CanTransitionPayment reports whether a payment status change is
// allowed. Admins may set any payment state at any time; changes are
// recorded, not gated.
func CanTransitionPayment(from, to PaymentStatus) bool {
	return validPaymentStatus(to) && from != to
}

func validPaymentStatus(s PaymentStatus) bool {
	switch s {
	case PaymentUnpaid, PaymentConfirming, PaymentPaid, PaymentRefunded, PaymentVoided:
		return true
	}
	return false
}

// CanTransitionFulfillment reports whether a fulfillment change is
// allowed: unfulfilled -> partially_fulfilled -> fulfilled, or
// unfulfilled -> fulfilled directly.
func CanTransitionFulfillment(from, to FulfillmentStatus) bool {
	switch from {
	case FulfillmentUnfulfilled:
		return to == FulfillmentPartial || to == FulfillmentFulfilled
	case FulfillmentPartial:
		return to == FulfillmentFulfilled
	default:
		return false
	}
}
