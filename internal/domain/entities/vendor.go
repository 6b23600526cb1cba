package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// VendorProfile represents a vendor's public business profile. It is 1:1
// with a VENDOR user; the rating is maintained independently of the
// booking lifecycle.
type VendorProfile struct {
	ID           string    `json:"id" db:"id"`
	UserID       string    `json:"user_id" db:"user_id"`
	BusinessName string    `json:"business_name" db:"business_name"`
	Description  string    `json:"description" db:"description"`
	Category     string    `json:"category" db:"category"`
	Location     string    `json:"location" db:"location"`
	Rating       float64   `json:"rating" db:"rating"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Service represents a bookable offering belonging to one vendor profile.
type Service struct {
	ID          string          `json:"id" db:"id"`
	VendorID    string          `json:"vendor_id" db:"vendor_id"`
	Name        string          `json:"name" db:"name"`
	Description string          `json:"description" db:"description"`
	BasePrice   decimal.Decimal `json:"base_price" db:"base_price"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at" db:"updated_at"`
}

// VendorSummary is the slim vendor reference nested in booking responses.
type VendorSummary struct {
	ID           string `json:"id" db:"id"`
	UserID       string `json:"user_id" db:"user_id"`
	BusinessName string `json:"business_name" db:"business_name"`
}
