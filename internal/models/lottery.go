package models

import "time"

// Prize is one prize category with a fixed number of units to draw.
type Prize struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// Winner links one drawn guest to one unit of a prize. A guest appears at
// most once across all prizes.
type Winner struct {
	ID        int       `json:"id"`
	PrizeID   int       `json:"prize_id"`
	GuestID   int       `json:"guest_id"`
	CreatedAt time.Time `json:"created_at"`
}
