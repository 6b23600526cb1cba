package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// Event represents an organizer's event (wedding, launch, gala, ...).
type Event struct {
	ID          string          `json:"id" db:"id"`
	OrganizerID string          `json:"organizer_id" db:"organizer_id"`
	Title       string          `json:"title" db:"title"`
	Date        time.Time       `json:"date" db:"date"`
	Location    string          `json:"location" db:"location"`
	Type        string          `json:"type" db:"type"`
	Budget      decimal.Decimal `json:"budget" db:"budget"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at" db:"updated_at"`
}
