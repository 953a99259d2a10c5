package entity

import "time"

// ClubEvent is a club event as shown on the public events page.
// Date is a free-form display string, not a validated calendar date.
// Image is either the configured placeholder or a public object-store
// URL owned by this service.
type ClubEvent struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Date        string    `json:"date"`
	Price       int       `json:"price"`
	FormURL     string    `json:"formUrl"`
	Image       string    `json:"image"`
	Visible     bool      `json:"visible"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
