package booking_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/cabin-reservation/internal/booking"
)

func TestAuthorizeStaffMayDoEverything(t *testing.T) {
	ops := []booking.Operation{
		booking.OpFindAvailable,
		booking.OpCreateReservation,
		booking.OpGetReservation,
		booking.OpListReservations,
		booking.OpTransition,
		booking.OpRecordPayment,
		booking.OpReversePayment,
		booking.OpGetPayment,
		booking.OpListPayments,
	}
	for _, role := range []booking.Role{booking.RoleStaff, booking.RoleAdmin} {
		actor := booking.Actor{UserID: 1, Role: role}
		for _, op := range ops {
			assert.NoError(t, booking.Authorize(actor, op, false), "role %s op %d", role, op)
		}
	}
}

func TestAuthorizeGuest(t *testing.T) {
	guest := booking.Actor{UserID: 7, Role: booking.RoleGuest}

	t.Run("open operations", func(t *testing.T) {
		for _, op := range []booking.Operation{
			booking.OpFindAvailable,
			booking.OpCreateReservation,
			booking.OpListReservations,
			booking.OpListPayments,
			booking.OpTransition,
		} {
			assert.NoError(t, booking.Authorize(guest, op, false), "op %d", op)
		}
	})

	t.Run("own reads allowed", func(t *testing.T) {
		assert.NoError(t, booking.Authorize(guest, booking.OpGetReservation, true))
		assert.NoError(t, booking.Authorize(guest, booking.OpGetPayment, true))
	})

	t.Run("foreign reads look like not found", func(t *testing.T) {
		err := booking.Authorize(guest, booking.OpGetReservation, false)
		assert.True(t, booking.IsKind(err, booking.KindNotFound), "%v", err)

		err = booking.Authorize(guest, booking.OpGetPayment, false)
		assert.True(t, booking.IsKind(err, booking.KindNotFound), "%v", err)
	})

	t.Run("ledger writes forbidden", func(t *testing.T) {
		err := booking.Authorize(guest, booking.OpRecordPayment, true)
		assert.True(t, booking.IsKind(err, booking.KindForbidden), "%v", err)

		err = booking.Authorize(guest, booking.OpReversePayment, true)
		assert.True(t, booking.IsKind(err, booking.KindForbidden), "%v", err)
	})
}
