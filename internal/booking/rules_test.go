package booking_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cabin-reservation/internal/booking"
	"github.com/iliyamo/cabin-reservation/internal/model"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	a1, a2 := day(2026, 3, 10), day(2026, 3, 15)

	cases := []struct {
		name   string
		bStart time.Time
		bEnd   time.Time
		want   bool
	}{
		{"identical range", a1, a2, true},
		{"contained", day(2026, 3, 11), day(2026, 3, 12), true},
		{"overlap at start", day(2026, 3, 8), day(2026, 3, 11), true},
		{"overlap at end", day(2026, 3, 14), day(2026, 3, 20), true},
		{"checkout day reuse", a2, day(2026, 3, 18), false},
		{"checkin day handover", day(2026, 3, 5), a1, false},
		{"disjoint before", day(2026, 3, 1), day(2026, 3, 5), false},
		{"disjoint after", day(2026, 3, 20), day(2026, 3, 25), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, booking.Overlaps(a1, a2, tc.bStart, tc.bEnd))
			// Intersection is symmetric.
			assert.Equal(t, tc.want, booking.Overlaps(tc.bStart, tc.bEnd, a1, a2))
		})
	}
}

func TestNights(t *testing.T) {
	assert.Equal(t, 1, booking.Nights(day(2026, 3, 10), day(2026, 3, 11)))
	assert.Equal(t, 5, booking.Nights(day(2026, 3, 10), day(2026, 3, 15)))
	// Month boundary.
	assert.Equal(t, 3, booking.Nights(day(2026, 3, 30), day(2026, 4, 2)))
}

func TestDateOnly(t *testing.T) {
	in := time.Date(2026, 3, 10, 17, 45, 12, 999, time.UTC)
	assert.Equal(t, day(2026, 3, 10), booking.DateOnly(in))
	assert.Equal(t, day(2026, 3, 10), booking.DateOnly(day(2026, 3, 10)))
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestStayPrice(t *testing.T) {
	cabins := []model.Cabin{
		{ID: 1, NightlyRate: dec("100.00")},
		{ID: 2, NightlyRate: dec("80.50")},
	}
	services := []model.Service{
		{ID: 1, FeePerGuest: dec("10.00")},
		{ID: 2, FeePerGuest: dec("2.25")},
	}

	// (100.00+80.50)*3 + (10.00+2.25)*3*4 = 541.50 + 147.00
	got := booking.StayPrice(cabins, services, 3, 4)
	assert.True(t, got.Equal(dec("688.50")), "got %s", got)

	// No services: cabins only.
	got = booking.StayPrice(cabins, nil, 2, 4)
	assert.True(t, got.Equal(dec("361.00")), "got %s", got)
}

func TestCheckTransitionStaff(t *testing.T) {
	staff := booking.Actor{UserID: 9, Role: booking.RoleStaff}
	now := day(2026, 3, 1)
	checkIn := day(2026, 3, 10)

	for _, target := range []string{model.StatusCancelled, model.StatusNoShow, model.StatusFinalized} {
		assert.NoError(t, booking.CheckTransition(model.StatusConfirmed, target, staff, false, now, checkIn))
	}

	// Terminal states admit no further transitions, for any role.
	for _, current := range []string{model.StatusCancelled, model.StatusNoShow, model.StatusFinalized} {
		err := booking.CheckTransition(current, model.StatusFinalized, staff, false, now, checkIn)
		assert.True(t, booking.IsKind(err, booking.KindInvalidTransition), "from %s: %v", current, err)
	}

	err := booking.CheckTransition(model.StatusConfirmed, "CONFIRMED", staff, false, now, checkIn)
	assert.True(t, booking.IsKind(err, booking.KindValidation))
}

func TestCheckTransitionOwnerCancel(t *testing.T) {
	guest := booking.Actor{UserID: 7, Role: booking.RoleGuest}
	checkIn := day(2026, 3, 10)

	t.Run("well before the window", func(t *testing.T) {
		now := day(2026, 3, 1)
		assert.NoError(t, booking.CheckTransition(model.StatusConfirmed, model.StatusCancelled, guest, true, now, checkIn))
	})

	t.Run("exactly 24h before check-in", func(t *testing.T) {
		now := checkIn.Add(-24 * time.Hour)
		assert.NoError(t, booking.CheckTransition(model.StatusConfirmed, model.StatusCancelled, guest, true, now, checkIn))
	})

	t.Run("one minute inside the window", func(t *testing.T) {
		now := checkIn.Add(-24*time.Hour + time.Minute)
		err := booking.CheckTransition(model.StatusConfirmed, model.StatusCancelled, guest, true, now, checkIn)
		assert.True(t, booking.IsKind(err, booking.KindCancellationWindow), "%v", err)
	})

	t.Run("not the owner", func(t *testing.T) {
		err := booking.CheckTransition(model.StatusConfirmed, model.StatusCancelled, guest, false, day(2026, 3, 1), checkIn)
		assert.True(t, booking.IsKind(err, booking.KindForbidden), "%v", err)
	})

	t.Run("already cancelled", func(t *testing.T) {
		err := booking.CheckTransition(model.StatusCancelled, model.StatusCancelled, guest, true, day(2026, 3, 1), checkIn)
		assert.True(t, booking.IsKind(err, booking.KindAlreadyCancelled), "%v", err)
	})

	t.Run("terminal but not cancelled", func(t *testing.T) {
		err := booking.CheckTransition(model.StatusFinalized, model.StatusCancelled, guest, true, day(2026, 3, 1), checkIn)
		assert.True(t, booking.IsKind(err, booking.KindInvalidTransition), "%v", err)
	})

	t.Run("guests cannot finalize", func(t *testing.T) {
		err := booking.CheckTransition(model.StatusConfirmed, model.StatusFinalized, guest, true, day(2026, 3, 1), checkIn)
		assert.True(t, booking.IsKind(err, booking.KindInvalidTransition), "%v", err)
	})
}

func TestCheckRecord(t *testing.T) {
	total := dec("500.00")

	t.Run("partial payment", func(t *testing.T) {
		assert.NoError(t, booking.CheckRecord(model.StatusConfirmed, dec("100.00"), total, dec("50.00")))
	})

	t.Run("exact settlement", func(t *testing.T) {
		assert.NoError(t, booking.CheckRecord(model.StatusConfirmed, dec("400.00"), total, dec("100.00")))
	})

	t.Run("overpayment carries remaining", func(t *testing.T) {
		err := booking.CheckRecord(model.StatusConfirmed, dec("450.00"), total, dec("100.00"))
		require.True(t, booking.IsKind(err, booking.KindOverpayment), "%v", err)
		be := err.(*booking.Error)
		assert.True(t, be.Remaining.Equal(dec("50.00")), "remaining %s", be.Remaining)
	})

	t.Run("terminal reservation rejects payments", func(t *testing.T) {
		for _, status := range []string{model.StatusCancelled, model.StatusNoShow, model.StatusFinalized} {
			err := booking.CheckRecord(status, decimal.Zero, total, dec("10.00"))
			assert.True(t, booking.IsKind(err, booking.KindConflict), "status %s: %v", status, err)
		}
	})
}

func TestCheckReverse(t *testing.T) {
	assert.NoError(t, booking.CheckReverse(true, model.StatusConfirmed))

	err := booking.CheckReverse(false, model.StatusConfirmed)
	assert.True(t, booking.IsKind(err, booking.KindAlreadyReversed), "%v", err)

	err = booking.CheckReverse(true, model.StatusFinalized)
	assert.True(t, booking.IsKind(err, booking.KindConflict), "%v", err)
}

func TestValidMethod(t *testing.T) {
	for _, m := range []string{model.MethodCash, model.MethodCard, model.MethodTransfer} {
		assert.True(t, booking.ValidMethod(m))
	}
	assert.False(t, booking.ValidMethod("CHECK"))
	assert.False(t, booking.ValidMethod("cash"))
	assert.False(t, booking.ValidMethod(""))
}
