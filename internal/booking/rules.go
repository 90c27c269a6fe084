package booking

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iliyamo/cabin-reservation/internal/model"
)

// MaxGuests is the platform-wide ceiling on guests per reservation.
const MaxGuests = 10

// CancellationNotice is the minimum lead time an owner must leave
// between cancelling and the check-in midnight.
const CancellationNotice = 24 * time.Hour

// Role is the resolved role of the caller, supplied by the auth layer.
type Role string

const (
	RoleGuest Role = "GUEST"
	RoleStaff Role = "STAFF"
	RoleAdmin Role = "ADMIN"
)

// IsStaff reports whether the role carries operator privileges.
func (r Role) IsStaff() bool { return r == RoleStaff || r == RoleAdmin }

// Actor is the resolved caller identity passed into every operation.
type Actor struct {
	UserID uint64
	Role   Role
}

// Overlaps reports whether the half-open date ranges [aStart, aEnd)
// and [bStart, bEnd) intersect.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// Nights returns the number of nights between two dates at day
// granularity.  Both arguments must already be truncated to midnight.
func Nights(checkIn, checkOut time.Time) int {
	return int(checkOut.Sub(checkIn).Hours() / 24)
}

// DateOnly truncates t to midnight UTC.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// StayPrice computes the total for a stay:
// sum(cabin rate * nights) + sum(service fee) * nights * guests.
func StayPrice(cabins []model.Cabin, services []model.Service, nights, guests int) decimal.Decimal {
	n := decimal.NewFromInt(int64(nights))
	total := decimal.Zero
	for _, c := range cabins {
		total = total.Add(c.NightlyRate.Mul(n))
	}
	if len(services) > 0 {
		fees := decimal.Zero
		for _, s := range services {
			fees = fees.Add(s.FeePerGuest)
		}
		total = total.Add(fees.Mul(n).Mul(decimal.NewFromInt(int64(guests))))
	}
	return total
}

// terminal reports whether a reservation status admits no further
// transitions.  CONFIRMED is the only non-terminal state.
func terminal(status string) bool { return status != model.StatusConfirmed }

// validTarget reports whether the string names a reachable target state.
func validTarget(status string) bool {
	switch status {
	case model.StatusCancelled, model.StatusNoShow, model.StatusFinalized:
		return true
	}
	return false
}

// CheckTransition decides whether an actor may move a reservation from
// its current status to the target.  isOwner tells whether the actor
// is the reservation's owner; checkIn is the stay's first day at
// midnight.  It returns nil when the transition is allowed.
//
// Transitions out of a terminal state are rejected for every role, so
// a closed booking can never be reopened or re-closed differently.
func CheckTransition(current, target string, actor Actor, isOwner bool, now, checkIn time.Time) error {
	if !validTarget(target) {
		return validation(map[string]string{"status": "must be one of CANCELLED, NO_SHOW, FINALIZED"})
	}
	if actor.Role.IsStaff() {
		if terminal(current) {
			return newError(KindInvalidTransition, "reservation is already %s", current)
		}
		return nil
	}
	// Owners may only cancel their own reservation.
	if target != model.StatusCancelled {
		return newError(KindInvalidTransition, "guests may only cancel a reservation")
	}
	if !isOwner {
		return newError(KindForbidden, "reservation belongs to another user")
	}
	if current == model.StatusCancelled {
		return newError(KindAlreadyCancelled, "reservation is already cancelled")
	}
	if terminal(current) {
		return newError(KindInvalidTransition, "reservation is already %s", current)
	}
	// The cutoff is 24h before midnight of the check-in day; cancelling
	// at exactly 24h remaining is still allowed.
	if checkIn.Sub(now) < CancellationNotice {
		return newError(KindCancellationWindow, "cancellation closes 24h before check-in")
	}
	return nil
}

// CheckRecord validates a payment against the reservation it targets.
// It returns the error to surface, or nil when the payment may be
// recorded.
func CheckRecord(status string, paid, total, amount decimal.Decimal) error {
	if terminal(status) {
		return conflict("payments cannot be recorded on a %s reservation", status)
	}
	if remaining := total.Sub(paid); amount.GreaterThan(remaining) {
		return overpayment(remaining)
	}
	return nil
}

// CheckReverse validates a reversal of a payment.  active is the
// payment's current flag; status is the owning reservation's state.
func CheckReverse(active bool, status string) error {
	if !active {
		return newError(KindAlreadyReversed, "payment has already been reversed")
	}
	if terminal(status) {
		return conflict("payments cannot be reversed on a %s reservation", status)
	}
	return nil
}

// ValidMethod reports whether m is an accepted payment method.
func ValidMethod(m string) bool {
	switch m {
	case model.MethodCash, model.MethodCard, model.MethodTransfer:
		return true
	}
	return false
}
