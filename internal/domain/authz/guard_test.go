package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/eventflow/marketplace/internal/domain/entities"
	apperrors "github.com/eventflow/marketplace/pkg/errors"
)

func TestAuthorize(t *testing.T) {
	organizer := entities.Actor{ID: "org-1", Role: entities.RoleOrganizer}
	vendor := entities.Actor{ID: "ven-1", Role: entities.RoleVendor}
	admin := entities.Actor{ID: "adm-1", Role: entities.RoleAdmin}

	own := Ownership{EventOwnerID: "org-1", VendorOwnerID: "ven-1"}

	tests := []struct {
		name    string
		actor   entities.Actor
		op      Operation
		own     Ownership
		allowed bool
	}{
		{"owning organizer creates booking", organizer, OpCreateBooking, own, true},
		{"foreign organizer cannot create booking", entities.Actor{ID: "org-2", Role: entities.RoleOrganizer}, OpCreateBooking, own, false},
		{"vendor cannot create booking", vendor, OpCreateBooking, own, false},
		{"admin cannot create booking for others", admin, OpCreateBooking, own, false},

		{"owning organizer reads booking", organizer, OpReadBooking, own, true},
		{"owning vendor reads booking", vendor, OpReadBooking, own, true},
		{"admin reads any booking", admin, OpReadBooking, Ownership{}, true},
		{"stranger cannot read booking", entities.Actor{ID: "org-2", Role: entities.RoleOrganizer}, OpReadBooking, own, false},

		{"owning vendor updates booking", vendor, OpUpdateBooking, own, true},
		{"foreign vendor cannot update booking", entities.Actor{ID: "ven-2", Role: entities.RoleVendor}, OpUpdateBooking, own, false},

		{"owning organizer manages event", organizer, OpManageEvent, own, true},
		{"vendor cannot manage event", vendor, OpManageEvent, own, false},
		{"admin cannot manage events", admin, OpManageEvent, own, false},

		{"owning vendor manages profile", vendor, OpManageVendor, own, true},
		{"organizer cannot manage vendor resources", organizer, OpManageVendor, own, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Authorize(tt.actor, tt.op, tt.own)
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeForbidden))
			}
		})
	}
}

func TestAuthorize_DeniesByDefault(t *testing.T) {
	err := Authorize(entities.Actor{}, OpReadBooking, Ownership{})
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeForbidden))

	err = Authorize(entities.Actor{ID: "u1", Role: "SUPERUSER"}, OpReadBooking, Ownership{})
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeForbidden))

	err = Authorize(entities.Actor{ID: "u1", Role: entities.RoleAdmin}, Operation("unknown.op"), Ownership{})
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeForbidden))
}
