// Package booking implements the reservation and payment consistency
// engine: availability search, atomic reservation creation, the status
// state machine and the payment ledger.  It is transport-agnostic; the
// HTTP layer wraps its operations 1:1.
package booking

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// Kind classifies engine failures.  Every business-rule violation maps
// to exactly one kind so callers never have to parse message text.
type Kind int

const (
	// KindNotFound – a reservation, payment, cabin or service id does not exist.
	KindNotFound Kind = iota + 1
	// KindResourceUnavailable – cabin inactive, under maintenance, type
	// inactive, or combined capacity insufficient.
	KindResourceUnavailable
	// KindConflict – date-range overlap, or an operation against a
	// reservation whose state forbids it.
	KindConflict
	// KindInvalidTransition – state change not permitted for the caller's
	// role, or the source state is already terminal.
	KindInvalidTransition
	// KindForbidden – caller is not the reservation owner.
	KindForbidden
	// KindCancellationWindow – fewer than 24 hours remain before check-in.
	KindCancellationWindow
	// KindOverpayment – payment would exceed the reservation total.
	KindOverpayment
	// KindAlreadyReversed – the payment has already been reversed.
	KindAlreadyReversed
	// KindAlreadyCancelled – the reservation is already cancelled.
	KindAlreadyCancelled
	// KindValidation – malformed input with field-level detail.
	KindValidation
)

// String returns a stable machine-readable label for the kind.
func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindResourceUnavailable:
		return "resource_unavailable"
	case KindConflict:
		return "conflict"
	case KindInvalidTransition:
		return "invalid_transition"
	case KindForbidden:
		return "forbidden"
	case KindCancellationWindow:
		return "cancellation_window_expired"
	case KindOverpayment:
		return "overpayment_rejected"
	case KindAlreadyReversed:
		return "already_reversed"
	case KindAlreadyCancelled:
		return "already_cancelled"
	case KindValidation:
		return "validation_error"
	}
	return "unknown"
}

// Error is the engine's error type.  It carries structured context so
// values such as ids or the remaining payable amount travel alongside
// the message rather than embedded in it.
type Error struct {
	Kind      Kind
	Message   string
	IDs       []uint64          // offending entity ids, when applicable
	Fields    map[string]string // field -> problem, for validation errors
	Remaining decimal.Decimal   // remaining payable, for overpayment errors
}

// Error implements the error interface.
func (e *Error) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return e.Message + " (" + strings.Join(parts, "; ") + ")"
}

// KindOf returns the kind of an engine error, or zero when err is not
// an engine error.
func KindOf(err error) Kind {
	if be, ok := err.(*Error); ok {
		return be.Kind
	}
	return 0
}

// IsKind reports whether err is an engine error of the given kind.
func IsKind(err error, k Kind) bool { return KindOf(err) == k }

func newError(k Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: k, Message: fmt.Sprintf(format, args...)}
}

func notFound(format string, args ...interface{}) *Error {
	return newError(KindNotFound, format, args...)
}

func unavailable(format string, args ...interface{}) *Error {
	return newError(KindResourceUnavailable, format, args...)
}

func conflict(format string, args ...interface{}) *Error {
	return newError(KindConflict, format, args...)
}

func validation(fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Message: "invalid input", Fields: fields}
}

func overpayment(remaining decimal.Decimal) *Error {
	return &Error{
		Kind:      KindOverpayment,
		Message:   fmt.Sprintf("payment exceeds total; remaining payable is %s", remaining.StringFixed(2)),
		Remaining: remaining,
	}
}

func withIDs(e *Error, ids []uint64) *Error {
	e.IDs = ids
	return e
}
