package domain

import "time"

// Customer aggregates order activity per (store, phone). Created
// implicitly on first order or explicitly by an admin; never deleted
// automatically.
type Customer struct {
	ID           int64     `json:"id"`
	StoreID      int64     `json:"-"`
	Phone        string    `json:"phone"`
	Name         string    `json:"name"`
	TotalOrders  int       `json:"totalOrders"`
	TotalSpent   int64     `json:"totalSpent"`
	FirstOrderAt time.Time `json:"firstOrderAt"`
	LastOrderAt  time.Time `json:"lastOrderAt"`
	CreatedAt    time.Time `json:"createdAt"`
}
