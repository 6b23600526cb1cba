package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from BookingStatus
		to   BookingStatus
		role Role
		want bool
	}{
		{"vendor accepts pending", BookingStatusPending, BookingStatusAccepted, RoleVendor, true},
		{"vendor rejects pending", BookingStatusPending, BookingStatusRejected, RoleVendor, true},
		{"organizer cancels pending", BookingStatusPending, BookingStatusCancelled, RoleOrganizer, true},
		{"organizer pays accepted", BookingStatusAccepted, BookingStatusPaid, RoleOrganizer, true},
		{"organizer cancels accepted", BookingStatusAccepted, BookingStatusCancelled, RoleOrganizer, true},
		{"vendor cancels accepted", BookingStatusAccepted, BookingStatusCancelled, RoleVendor, true},
		{"vendor completes paid", BookingStatusPaid, BookingStatusCompleted, RoleVendor, true},

		{"organizer cannot accept", BookingStatusPending, BookingStatusAccepted, RoleOrganizer, false},
		{"vendor cannot cancel pending", BookingStatusPending, BookingStatusCancelled, RoleVendor, false},
		{"vendor cannot pay", BookingStatusAccepted, BookingStatusPaid, RoleVendor, false},
		{"organizer cannot complete", BookingStatusPaid, BookingStatusCompleted, RoleOrganizer, false},
		{"paid cannot be cancelled", BookingStatusPaid, BookingStatusCancelled, RoleOrganizer, false},
		{"pending cannot jump to paid", BookingStatusPending, BookingStatusPaid, RoleOrganizer, false},
		{"rejected is terminal", BookingStatusRejected, BookingStatusPending, RoleVendor, false},
		{"cancelled is terminal", BookingStatusCancelled, BookingStatusAccepted, RoleVendor, false},
		{"completed is terminal", BookingStatusCompleted, BookingStatusPending, RoleOrganizer, false},
		{"self transition is not an edge", BookingStatusPending, BookingStatusPending, RoleVendor, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to, tt.role))
		})
	}
}

func TestCanTransition_AdminCoversListedEdgesOnly(t *testing.T) {
	// Admin inherits every edge in the table but gains no new ones.
	assert.True(t, CanTransition(BookingStatusPending, BookingStatusAccepted, RoleAdmin))
	assert.True(t, CanTransition(BookingStatusAccepted, BookingStatusPaid, RoleAdmin))
	assert.True(t, CanTransition(BookingStatusPaid, BookingStatusCompleted, RoleAdmin))
	assert.False(t, CanTransition(BookingStatusPending, BookingStatusCompleted, RoleAdmin))
	assert.False(t, CanTransition(BookingStatusRejected, BookingStatusAccepted, RoleAdmin))
	assert.False(t, CanTransition(BookingStatusPaid, BookingStatusCancelled, RoleAdmin))
}

func TestIsTerminalStatus(t *testing.T) {
	assert.True(t, IsTerminalStatus(BookingStatusRejected))
	assert.True(t, IsTerminalStatus(BookingStatusCancelled))
	assert.True(t, IsTerminalStatus(BookingStatusCompleted))
	assert.False(t, IsTerminalStatus(BookingStatusPending))
	assert.False(t, IsTerminalStatus(BookingStatusAccepted))
	assert.False(t, IsTerminalStatus(BookingStatusPaid))
}

func TestValidBookingStatus(t *testing.T) {
	assert.True(t, ValidBookingStatus(BookingStatusPending))
	assert.False(t, ValidBookingStatus("SHIPPED"))
	assert.False(t, ValidBookingStatus(""))
}
