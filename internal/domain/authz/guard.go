// Package authz decides whether an actor may perform an operation on a
// resource. Nothing is granted implicitly: any combination not covered
// by an explicit rule is denied.
package authz

import (
	"github.com/eventflow/marketplace/internal/domain/entities"
	apperrors "github.com/eventflow/marketplace/pkg/errors"
)

// Operation is the closed set of guarded operations.
type Operation string

const (
	OpCreateBooking Operation = "booking.create"
	OpReadBooking   Operation = "booking.read"
	OpUpdateBooking Operation = "booking.update"
	OpManageEvent   Operation = "event.manage"
	OpManageVendor  Operation = "vendor.manage"
)

// Ownership carries the resource ownership facts a decision needs. Only
// the fields relevant to the operation are consulted.
type Ownership struct {
	// EventOwnerID is the organizer who owns the event behind the
	// resource (the event itself, or a booking's event).
	EventOwnerID string

	// VendorOwnerID is the user who owns the vendor profile behind the
	// resource (the profile itself, a service, or a booking's vendor).
	VendorOwnerID string
}

// Authorize returns nil when the actor may perform op on the resource
// described by own, and a FORBIDDEN error otherwise.
func Authorize(actor entities.Actor, op Operation, own Ownership) error {
	if actor.ID == "" || !actor.Role.Valid() {
		return apperrors.NewForbiddenError("unknown actor")
	}

	switch op {
	case OpCreateBooking:
		if actor.Role == entities.RoleOrganizer && actor.ID == own.EventOwnerID {
			return nil
		}
		return apperrors.NewForbiddenError("only the event's organizer may create a booking")

	case OpReadBooking, OpUpdateBooking:
		switch actor.Role {
		case entities.RoleAdmin:
			return nil
		case entities.RoleOrganizer:
			if actor.ID == own.EventOwnerID {
				return nil
			}
		case entities.RoleVendor:
			if actor.ID == own.VendorOwnerID {
				return nil
			}
		}
		return apperrors.NewForbiddenError("booking belongs to another organizer or vendor")

	case OpManageEvent:
		if actor.Role == entities.RoleOrganizer && actor.ID == own.EventOwnerID {
			return nil
		}
		return apperrors.NewForbiddenError("only the owning organizer may manage this event")

	case OpManageVendor:
		if actor.Role == entities.RoleVendor && actor.ID == own.VendorOwnerID {
			return nil
		}
		return apperrors.NewForbiddenError("only the owning vendor may manage this resource")
	}

	return apperrors.NewForbiddenError("operation not permitted")
}
