package booking

// Operation names the engine entry points for authorization decisions.
type Operation int

const (
	OpFindAvailable Operation = iota + 1
	OpCreateReservation
	OpGetReservation
	OpListReservations
	OpTransition
	OpRecordPayment
	OpReversePayment
	OpGetPayment
	OpListPayments
)

// Authorize is the single authorization policy consulted by the
// engine.  isOwner reports whether the actor owns the entity the
// operation targets; for list operations and creation it is ignored.
// The transition gate applies its own finer-grained rules on top of
// this (owners may only cancel), see CheckTransition.
//
// Returning nil means the role may attempt the operation; returning an
// error short-circuits before any state is touched.  Reads on foreign
// entities fail as not-found rather than forbidden so guests cannot
// probe for the existence of other users' bookings.
func Authorize(actor Actor, op Operation, isOwner bool) error {
	if actor.Role.IsStaff() {
		return nil
	}
	switch op {
	case OpFindAvailable, OpCreateReservation, OpListReservations, OpListPayments:
		return nil
	case OpGetReservation:
		if !isOwner {
			return notFound("reservation not found")
		}
		return nil
	case OpGetPayment:
		if !isOwner {
			return notFound("payment not found")
		}
		return nil
	case OpTransition:
		// Ownership and target-state rules are enforced by CheckTransition.
		return nil
	case OpRecordPayment, OpReversePayment:
		return newError(KindForbidden, "only staff may record or reverse payments")
	}
	return newError(KindForbidden, "operation not permitted")
}
