package domain

import "time"

type Category struct {
	ID        int64     `json:"id"`
	StoreID   int64     `json:"-"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}
