package booking

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestCreateReservationInputValidate(t *testing.T) {
	valid := func() CreateReservationInput {
		return CreateReservationInput{
			CheckIn:    time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
			CheckOut:   time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC),
			GuestCount: 2,
			CabinIDs:   []uint64{1},
		}
	}

	t.Run("ok", func(t *testing.T) {
		in := valid()
		assert.NoError(t, in.validate(testNow))
	})

	t.Run("truncates timestamps to dates", func(t *testing.T) {
		in := valid()
		in.CheckIn = in.CheckIn.Add(15 * time.Hour)
		require.NoError(t, in.validate(testNow))
		assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), in.CheckIn)
	})

	t.Run("field problems are reported per field", func(t *testing.T) {
		in := CreateReservationInput{
			CheckIn:    time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
			CheckOut:   time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
			GuestCount: 0,
		}
		err := in.validate(testNow)
		require.True(t, IsKind(err, KindValidation), "%v", err)
		fields := err.(*Error).Fields
		assert.Contains(t, fields, "check_in")
		assert.Contains(t, fields, "check_out")
		assert.Contains(t, fields, "guest_count")
		assert.Contains(t, fields, "cabin_ids")
	})

	t.Run("guest ceiling", func(t *testing.T) {
		in := valid()
		in.GuestCount = MaxGuests
		assert.NoError(t, in.validate(testNow))

		in = valid()
		in.GuestCount = MaxGuests + 1
		err := in.validate(testNow)
		require.True(t, IsKind(err, KindValidation))
		assert.Contains(t, err.(*Error).Fields, "guest_count")
	})

	t.Run("same-day check-in is allowed", func(t *testing.T) {
		in := valid()
		in.CheckIn = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
		in.CheckOut = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
		assert.NoError(t, in.validate(testNow))
	})

	t.Run("duplicate cabin ids collapse", func(t *testing.T) {
		in := valid()
		in.CabinIDs = []uint64{3, 3, 0, 5, 3}
		require.NoError(t, in.validate(testNow))
		assert.Equal(t, []uint64{3, 5}, in.CabinIDs)
	})
}

func TestRecordPaymentInputValidate(t *testing.T) {
	valid := func() RecordPaymentInput {
		return RecordPaymentInput{
			ReservationID: 1,
			Amount:        decimal.RequireFromString("50.00"),
			Method:        "CASH",
		}
	}

	t.Run("ok", func(t *testing.T) {
		in := valid()
		assert.NoError(t, in.validate(testNow))
	})

	t.Run("amount must be positive", func(t *testing.T) {
		for _, amt := range []string{"0", "-1.00"} {
			in := valid()
			in.Amount = decimal.RequireFromString(amt)
			err := in.validate(testNow)
			require.True(t, IsKind(err, KindValidation), "amount %s", amt)
			assert.Contains(t, err.(*Error).Fields, "amount")
		}
	})

	t.Run("unknown method", func(t *testing.T) {
		in := valid()
		in.Method = "BARTER"
		err := in.validate(testNow)
		require.True(t, IsKind(err, KindValidation))
		assert.Contains(t, err.(*Error).Fields, "method")
	})

	t.Run("backdating allowed, future-dating not", func(t *testing.T) {
		in := valid()
		past := testNow.AddDate(0, 0, -3)
		in.PaidOn = &past
		assert.NoError(t, in.validate(testNow))

		in = valid()
		future := testNow.AddDate(0, 0, 1)
		in.PaidOn = &future
		err := in.validate(testNow)
		require.True(t, IsKind(err, KindValidation))
		assert.Contains(t, err.(*Error).Fields, "paid_on")
	})
}

func TestValidStatus(t *testing.T) {
	for _, s := range []string{"CONFIRMED", "CANCELLED", "NO_SHOW", "FINALIZED"} {
		assert.True(t, validStatus(s), s)
	}
	assert.False(t, validStatus("PENDING"))
	assert.False(t, validStatus("confirmed"))
}

func TestClampPage(t *testing.T) {
	limit, offset := clampPage(0, -5)
	assert.Equal(t, 50, limit)
	assert.Equal(t, 0, offset)

	limit, offset = clampPage(1000, 20)
	assert.Equal(t, 200, limit)
	assert.Equal(t, 20, offset)

	limit, offset = clampPage(25, 75)
	assert.Equal(t, 25, limit)
	assert.Equal(t, 75, offset)
}

func TestErrorMessageIncludesFields(t *testing.T) {
	err := validation(map[string]string{"b_field": "is bad", "a_field": "is missing"})
	// Fields render sorted for stable messages.
	assert.Equal(t, "invalid input (a_field: is missing; b_field: is bad)", err.Error())
}
