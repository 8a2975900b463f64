package domain

import "time"

// Store is one tenant of the platform. Key scopes every storefront and
// admin route; WhatsAppNumber receives checkout handoffs.
type Store struct {
	ID             int64     `json:"id"`
	Key            string    `json:"key"`
	Name           string    `json:"name"`
	WhatsAppNumber string    `json:"whatsAppNumber"`
	Currency       string    `json:"currency"`
	CreatedAt      time.Time `json:"createdAt"`
}
