package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Accepted payment methods.  Payments are manually recorded ledger
// entries, not gateway transactions, so the enumeration is small and
// fixed.
const (
	MethodCash     = "CASH"
	MethodCard     = "CARD"
	MethodTransfer = "TRANSFER"
)

// Payment is an append-only ledger entry against a reservation.  The
// amount never changes after insertion; reversing a payment flips
// IsActive to false and the entry stops counting toward the
// reservation's paid amount.  Rows are never deleted so the full
// audit history is retained.
//
// Fields:
//  ID            – primary key identifier.
//  ReservationID – reservation the payment belongs to.
//  Amount        – positive amount, exact decimal, immutable.
//  Method        – one of the Method* constants.
//  PaidOn        – value date; defaults to the creation date, may be
//                  backdated when recording a payment received earlier.
//  IsActive      – false once the payment has been reversed.
//  CreatedBy     – staff user who recorded the entry.
//  UpdatedBy     – staff user who last touched the entry.
//  CreatedAt     – creation timestamp.
//  UpdatedAt     – last update timestamp.
type Payment struct {
	ID            uint64          // payments.id
	ReservationID uint64          // payments.reservation_id
	Amount        decimal.Decimal // payments.amount
	Method        string          // payments.method
	PaidOn        time.Time       // payments.paid_on
	IsActive      bool            // payments.is_active
	CreatedBy     uint64          // payments.created_by
	UpdatedBy     uint64          // payments.updated_by
	CreatedAt     time.Time       // payments.created_at
	UpdatedAt     time.Time       // payments.updated_at
}
