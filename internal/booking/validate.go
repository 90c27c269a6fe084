package booking

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iliyamo/cabin-reservation/internal/model"
)

// CreateReservationInput carries the typed arguments of
// CreateReservation.  Dates are taken at day granularity; the engine
// truncates them to midnight before validating.
type CreateReservationInput struct {
	CheckIn    time.Time
	CheckOut   time.Time
	GuestCount int
	CabinIDs   []uint64
	ServiceIDs []uint64
}

// RecordPaymentInput carries the typed arguments of RecordPayment.
// PaidOn is optional and defaults to the current date; backdating is
// allowed, future-dating is not.
type RecordPaymentInput struct {
	ReservationID uint64
	Amount        decimal.Decimal
	Method        string
	PaidOn        *time.Time
}

// stayFields validates a stay window plus guest count and returns
// field-level problems, empty when everything is fine.
func stayFields(checkIn, checkOut time.Time, guests int, now time.Time) map[string]string {
	fields := map[string]string{}
	today := DateOnly(now)
	if checkIn.Before(today) {
		fields["check_in"] = "must not be in the past"
	}
	if !checkOut.After(checkIn) {
		fields["check_out"] = "must be after check_in"
	}
	if guests < 1 {
		fields["guest_count"] = "must be positive"
	} else if guests > MaxGuests {
		fields["guest_count"] = "must not exceed the platform maximum of 10"
	}
	return fields
}

func (in *CreateReservationInput) validate(now time.Time) error {
	in.CheckIn = DateOnly(in.CheckIn)
	in.CheckOut = DateOnly(in.CheckOut)
	fields := stayFields(in.CheckIn, in.CheckOut, in.GuestCount, now)
	in.CabinIDs = dedupIDs(in.CabinIDs)
	in.ServiceIDs = dedupIDs(in.ServiceIDs)
	if len(in.CabinIDs) == 0 {
		fields["cabin_ids"] = "at least one cabin is required"
	}
	if len(fields) > 0 {
		return validation(fields)
	}
	return nil
}

func (in *RecordPaymentInput) validate(now time.Time) error {
	fields := map[string]string{}
	if in.ReservationID == 0 {
		fields["reservation_id"] = "is required"
	}
	if !in.Amount.IsPositive() {
		fields["amount"] = "must be positive"
	}
	if !ValidMethod(in.Method) {
		fields["method"] = "must be one of CASH, CARD, TRANSFER"
	}
	if in.PaidOn != nil {
		d := DateOnly(*in.PaidOn)
		in.PaidOn = &d
		if d.After(DateOnly(now)) {
			fields["paid_on"] = "must not be in the future"
		}
	}
	if len(fields) > 0 {
		return validation(fields)
	}
	return nil
}

// validStatus reports whether s names any reservation status,
// including the initial CONFIRMED.  Used for list filters.
func validStatus(s string) bool {
	return s == model.StatusConfirmed || validTarget(s)
}

// dedupIDs drops zero and duplicate ids while preserving order.
func dedupIDs(ids []uint64) []uint64 {
	unique := make([]uint64, 0, len(ids))
	seen := make(map[uint64]struct{}, len(ids))
	for _, id := range ids {
		if id == 0 {
			continue
		}
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			unique = append(unique, id)
		}
	}
	return unique
}

// clampPage normalizes limit/offset to sane bounds.
func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
