package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// BookingStatus represents the status of a booking.
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusAccepted  BookingStatus = "ACCEPTED"
	BookingStatusRejected  BookingStatus = "REJECTED"
	BookingStatusPaid      BookingStatus = "PAID"
	BookingStatusCompleted BookingStatus = "COMPLETED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

// ValidBookingStatus reports whether s is one of the known statuses.
func ValidBookingStatus(s BookingStatus) bool {
	switch s {
	case BookingStatusPending, BookingStatusAccepted, BookingStatusRejected,
		BookingStatusPaid, BookingStatusCompleted, BookingStatusCancelled:
		return true
	}
	return false
}

// bookingTransitions defines the valid status transitions and the roles
// allowed to trigger each one. A status missing a target, or a target
// missing the caller's role, is rejected. Terminal statuses have no
// entries at all.
var bookingTransitions = map[BookingStatus]map[BookingStatus][]Role{
	BookingStatusPending: {
		BookingStatusAccepted:  {RoleVendor},
		BookingStatusRejected:  {RoleVendor},
		BookingStatusCancelled: {RoleOrganizer},
	},
	BookingStatusAccepted: {
		BookingStatusPaid:      {RoleOrganizer},
		BookingStatusCancelled: {RoleOrganizer, RoleVendor},
	},
	BookingStatusPaid: {
		BookingStatusCompleted: {RoleVendor},
	},
	BookingStatusRejected:  {},
	BookingStatusCancelled: {},
	BookingStatusCompleted: {},
}

// IsTerminalStatus reports whether no further transition is accepted
// from s.
func IsTerminalStatus(s BookingStatus) bool {
	return len(bookingTransitions[s]) == 0
}

// CanTransition reports whether an actor with the given role may move a
// booking from one status to another. Admins may drive any edge present
// in the table; no role may use a pair that is not listed.
func CanTransition(from, to BookingStatus, role Role) bool {
	targets, ok := bookingTransitions[from]
	if !ok {
		return false
	}
	roles, ok := targets[to]
	if !ok {
		return false
	}
	if role == RoleAdmin {
		return true
	}
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

// Booking is the central entity of the lifecycle engine. Price is a
// snapshot of the service's base price at creation time and never
// changes afterwards.
type Booking struct {
	ID          string          `json:"id" db:"id"`
	EventID     string          `json:"event_id" db:"event_id"`
	VendorID    string          `json:"vendor_id" db:"vendor_id"`
	ServiceID   string          `json:"service_id" db:"service_id"`
	OrganizerID string          `json:"organizer_id" db:"organizer_id"`
	Status      BookingStatus   `json:"status" db:"status"`
	Price       decimal.Decimal `json:"price" db:"price"`
	Date        time.Time       `json:"date" db:"date"`
	Notes       string          `json:"notes" db:"notes"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at" db:"updated_at"`
}

// BookingDetail is a booking with its nested references, sufficient for
// a caller to render without extra lookups. The nested event and vendor
// also carry the ownership fields the authorization guard needs.
type BookingDetail struct {
	Booking
	Event   Event         `json:"event"`
	Service Service       `json:"service"`
	Vendor  VendorSummary `json:"vendor"`
}
