package domain

import "time"

type Product struct {
	ID            int64     `json:"id"`
	StoreID       int64     `json:"-"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	Price         int64     `json:"price"`
	DiscountPrice *int64    `json:"discountPrice,omitempty"`
	ImageURL      string    `json:"imageUrl,omitempty"`
	CategoryID    *int64    `json:"categoryId,omitempty"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
}

// EffectivePrice is the unit price carts are built from: the discount
// price when set and lower than the regular price.
func (p Product) EffectivePrice() int64 {
	if p.DiscountPrice != nil && *p.DiscountPrice < p.Price {
		return *p.DiscountPrice
	}
	return p.Price
}
