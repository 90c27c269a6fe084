// Package queue defines message payloads exchanged over the message broker.
package queue

// Event types published on the reservation.events queue.
const (
	EventReservationCreated = "reservation.created"
	EventStatusChanged      = "reservation.status_changed"
	EventPaymentRecorded    = "payment.recorded"
	EventPaymentReversed    = "payment.reversed"
)

// Event is published after a reservation or ledger commit.  It
// carries enough information for downstream consumers (notification
// senders, analytics) to act without querying the primary database.
// Money fields are formatted decimal strings so consumers never touch
// floating point.
type Event struct {
	EventID       string `json:"event_id"`
	Type          string `json:"type"`
	ReservationID uint64 `json:"reservation_id"`
	Code          string `json:"code"`
	OwnerID       uint64 `json:"owner_id"`
	Status        string `json:"status"`
	CheckIn       string `json:"check_in,omitempty"`
	CheckOut      string `json:"check_out,omitempty"`
	TotalAmount   string `json:"total_amount,omitempty"`
	PaidAmount    string `json:"paid_amount,omitempty"`
	PaymentID     uint64 `json:"payment_id,omitempty"`
	Amount        string `json:"amount,omitempty"`
	Method        string `json:"method,omitempty"`
	OccurredAt    string `json:"occurred_at"`
}
