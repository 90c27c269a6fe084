package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Reservation status values.  CONFIRMED is the only live state; the
// other three are terminal.
const (
	StatusConfirmed = "CONFIRMED"
	StatusCancelled = "CANCELLED"
	StatusNoShow    = "NO_SHOW"
	StatusFinalized = "FINALIZED"
)

// Reservation records a guest's booking of one or more cabins over a
// date range.  The stay window is stored with day granularity and
// interpreted as the half-open interval [CheckIn, CheckOut).
// TotalAmount is computed once at creation and never changes;
// PaidAmount and IsFullyPaid are derived from the payment ledger and
// mutated only by ledger operations.
//
// Fields:
//  ID          – primary key identifier.
//  Code        – unique human readable code (RES-YYYYMMDD-SSSSS).
//  OwnerID     – guest who created the reservation; never reassigned.
//  CheckIn     – arrival date (midnight UTC).
//  CheckOut    – departure date (midnight UTC), strictly after CheckIn.
//  GuestCount  – number of guests, 1..MaxGuests.
//  Status      – one of the Status* constants.
//  TotalAmount – price of the stay, exact decimal.
//  PaidAmount  – sum of active payment amounts.
//  IsFullyPaid – PaidAmount >= TotalAmount.
//  CreatedBy   – user who created the row.
//  UpdatedBy   – user who last modified the row.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Reservation struct {
	ID          uint64          // reservations.id
	Code        string          // reservations.code
	OwnerID     uint64          // reservations.owner_id
	CheckIn     time.Time       // reservations.check_in
	CheckOut    time.Time       // reservations.check_out
	GuestCount  int             // reservations.guest_count
	Status      string          // reservations.status
	TotalAmount decimal.Decimal // reservations.total_amount
	PaidAmount  decimal.Decimal // reservations.paid_amount
	IsFullyPaid bool            // reservations.is_fully_paid
	CreatedBy   uint64          // reservations.created_by
	UpdatedBy   uint64          // reservations.updated_by
	CreatedAt   time.Time       // reservations.created_at
	UpdatedAt   time.Time       // reservations.updated_at
}

// ResourceAssignment links a reservation to one booked cabin.  Rows
// are written once at booking time and never updated; NightlyRate is
// the cabin's rate snapshotted when the booking was made.
//
// Fields:
//  ID            – primary key identifier.
//  ReservationID – owning reservation.
//  CabinID       – booked cabin.
//  NightlyRate   – rate applied to this cabin for the stay.
//  CreatedAt     – creation timestamp.
type ResourceAssignment struct {
	ID            uint64          // reservation_cabins.id
	ReservationID uint64          // reservation_cabins.reservation_id
	CabinID       uint64          // reservation_cabins.cabin_id
	NightlyRate   decimal.Decimal // reservation_cabins.nightly_rate
	CreatedAt     time.Time       // reservation_cabins.created_at
}

// ServiceAssignment links a reservation to one add-on service.  Like
// ResourceAssignment it is immutable once created; FeePerGuest is the
// per-guest-per-night fee snapshotted at booking time.
//
// Fields:
//  ID            – primary key identifier.
//  ReservationID – owning reservation.
//  ServiceID     – attached service.
//  FeePerGuest   – fee applied for this service.
//  CreatedAt     – creation timestamp.
type ServiceAssignment struct {
	ID            uint64          // reservation_services.id
	ReservationID uint64          // reservation_services.reservation_id
	ServiceID     uint64          // reservation_services.service_id
	FeePerGuest   decimal.Decimal // reservation_services.fee_per_guest
	CreatedAt     time.Time       // reservation_services.created_at
}
