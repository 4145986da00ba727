package models

import "time"

// Hero is the storefront banner. A single row exists; reads create it
// with defaults when missing.
type Hero struct {
	ID            int       `json:"id"`
	MainTitle     string    `json:"main_title"`
	OriginalPrice string    `json:"original_price"`
	CurrentPrice  string    `json:"current_price"`
	ButtonText    string    `json:"button_text"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// DeliveryCharge is the single-row delivery pricing config.
type DeliveryCharge struct {
	ID          int       `json:"id"`
	InsideCity  string    `json:"inside_city"`
	OutsideCity string    `json:"outside_city"`
	InsideCost  float64   `json:"inside_cost"`
	OutsideCost float64   `json:"outside_cost"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
