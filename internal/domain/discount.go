package domain

import "time"

// DiscountType tags the promotional rule variant. Only the fields
// relevant to a variant are populated; Validate enforces that.
type DiscountType string

const (
	DiscountCode         DiscountType = "code"
	DiscountAutomatic    DiscountType = "automatic"
	DiscountOrderAmount  DiscountType = "order_amount"
	DiscountBuyXGetY     DiscountType = "buy_x_get_y"
	DiscountBundle       DiscountType = "bundle"
	DiscountFreeDelivery DiscountType = "free_delivery"
)

type ValueType string

const (
	ValuePercentage ValueType = "percentage"
	ValueFixed      ValueType = "fixed"
	ValueFree       ValueType = "free"
)

type AppliesTo string

const (
	AppliesToOrders     AppliesTo = "orders"
	AppliesToProducts   AppliesTo = "products"
	AppliesToCategories AppliesTo = "categories"
)

type MinRequirement string

const (
	MinNone     MinRequirement = "none"
	MinAmount   MinRequirement = "amount"
	MinQuantity MinRequirement = "quantity"
)

// Discount is one promotional rule owned by a store.
type Discount struct {
	ID                int64          `json:"id"`
	StoreID           int64          `json:"-"`
	Name              string         `json:"name"`
	Type              DiscountType   `json:"type"`
	Code              string         `json:"code,omitempty"`
	IsActive          bool           `json:"isActive"`
	StartDate         time.Time      `json:"startDate"`
	EndDate           *time.Time     `json:"endDate,omitempty"`
	ValueType         ValueType      `json:"valueType"`
	Value             int64          `json:"value"`
	AppliesTo         AppliesTo      `json:"appliesTo"`
	TargetProductIDs  []int64        `json:"targetProductIds,omitempty"`
	TargetCategoryIDs []int64        `json:"targetCategoryIds,omitempty"`
	BuyProductIDs     []int64        `json:"buyProductIds,omitempty"`
	GetProductIDs     []int64        `json:"getProductIds,omitempty"`
	MinRequirement    MinRequirement `json:"minRequirement"`
	MinValue          int64          `json:"minValue,omitempty"`
	MaxTotalUses      *int           `json:"maxTotalUses,omitempty"`
	MaxPerCustomer    *int           `json:"maxPerCustomer,omitempty"`
	MaxTotalAmount    *int64         `json:"maxTotalAmount,omitempty"`
	CreatedAt         time.Time      `json:"createdAt"`
}

// IsAutomatic reports whether the discount applies without an entered code.
func (d Discount) IsAutomatic() bool {
	return d.Type != DiscountCode
}

// ActiveAt reports whether the discount is enabled and now falls inside
// its date window. An absent end date means open-ended.
func (d Discount) ActiveAt(now time.Time) bool {
	if !d.IsActive {
		return false
	}
	if now.Before(d.StartDate) {
		return false
	}
	if d.EndDate != nil && now.After(*d.EndDate) {
		return false
	}
	return true
}
