package domain

// CartLine is one priced line of a checkout cart. UnitPrice is resolved
// from the catalog before evaluation (discount price wins when lower).
type CartLine struct {
	ProductID  int64  `json:"productId"`
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
	UnitPrice  int64  `json:"unitPrice"`
	ImageURL   string `json:"imageUrl,omitempty"`
	CategoryID *int64 `json:"categoryId,omitempty"`
}

// Total is the line's contribution to the cart subtotal.
func (l CartLine) Total() int64 {
	return l.UnitPrice * int64(l.Quantity)
}

// AppliedDiscount summarizes one discount included in a priced cart.
type AppliedDiscount struct {
	DiscountID int64        `json:"discountId"`
	Name       string       `json:"name,omitempty"`
	Type       DiscountType `json:"type"`
	Code       string       `json:"code,omitempty"`
	Amount     int64        `json:"amount"`
}

// PricedCart is the evaluation result: Total = max(0, Subtotal-DiscountAmount),
// DiscountAmount never exceeds Subtotal, Applied holds at most one
// automatic and one code discount. FreeDelivery waives the delivery fee
// at checkout without touching the totals.
type PricedCart struct {
	Lines          []CartLine        `json:"lines"`
	Subtotal       int64             `json:"subtotal"`
	DiscountAmount int64             `json:"discountAmount"`
	Total          int64             `json:"total"`
	Applied        []AppliedDiscount `json:"appliedDiscounts,omitempty"`
	FreeDelivery   bool              `json:"freeDelivery,omitempty"`
}
