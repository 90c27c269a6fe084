package booking

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/cabin-reservation/internal/model"
	"github.com/iliyamo/cabin-reservation/internal/queue"
	"github.com/iliyamo/cabin-reservation/internal/repository"
)

// CreateReservation validates a booking request and atomically
// persists the reservation with its cabin and service assignments.
// The precondition checks run in a fixed order, each with its own
// error kind: cabin existence, cabin eligibility, capacity, date
// conflict, service existence.
//
// The conflict re-check runs inside the same transaction that inserts
// the rows, after taking FOR UPDATE locks on the cabin rows.  Two
// concurrent bookings touching the same cabin therefore serialize at
// the lock; the second observes the first's committed reservation and
// fails with a conflict rather than double-booking.
func (e *Engine) CreateReservation(ctx context.Context, in CreateReservationInput, actor Actor) (*repository.ReservationDetail, error) {
	if err := Authorize(actor, OpCreateReservation, true); err != nil {
		return nil, err
	}
	now := e.now()
	if err := in.validate(now); err != nil {
		return nil, err
	}

	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	// 1. All cabins exist.  Locked for the rest of the transaction.
	locked, err := e.cabins.LockByIDsTx(ctx, tx, in.CabinIDs)
	if err != nil {
		return nil, err
	}
	if len(locked) != len(in.CabinIDs) {
		found := make(map[uint64]struct{}, len(locked))
		for _, lc := range locked {
			found[lc.ID] = struct{}{}
		}
		missing := make([]uint64, 0)
		for _, id := range in.CabinIDs {
			if _, ok := found[id]; !ok {
				missing = append(missing, id)
			}
		}
		return nil, withIDs(notFound("one or more cabins do not exist"), missing)
	}

	// 2. All cabins bookable; 3. combined capacity sufficient.
	capacity := 0
	cabins := make([]model.Cabin, 0, len(locked))
	for _, lc := range locked {
		if !lc.IsActive || lc.UnderMaintenance || !lc.TypeActive {
			return nil, withIDs(unavailable("cabin %s is not bookable", lc.Code), []uint64{lc.ID})
		}
		capacity += lc.Capacity
		cabins = append(cabins, lc.Cabin)
	}
	if capacity < in.GuestCount {
		return nil, unavailable("selected cabins sleep %d guests, %d requested", capacity, in.GuestCount)
	}

	// 4. No conflicting reservation, re-checked under the cabin locks.
	conflicted, err := e.reservations.ConflictingCabinIDsTx(ctx, tx, in.CabinIDs, in.CheckIn, in.CheckOut)
	if err != nil {
		return nil, err
	}
	if len(conflicted) > 0 {
		return nil, withIDs(conflict("cabins already booked for an overlapping range"), conflicted)
	}

	// 5. All services exist and are active.
	services, err := e.services.GetByIDsTx(ctx, tx, in.ServiceIDs)
	if err != nil {
		return nil, err
	}
	if len(services) != len(in.ServiceIDs) {
		found := make(map[uint64]struct{}, len(services))
		for _, s := range services {
			found[s.ID] = struct{}{}
		}
		missing := make([]uint64, 0)
		for _, id := range in.ServiceIDs {
			if _, ok := found[id]; !ok {
				missing = append(missing, id)
			}
		}
		return nil, withIDs(notFound("one or more services do not exist"), missing)
	}
	for _, s := range services {
		if !s.IsActive {
			return nil, withIDs(unavailable("service %q is not available", s.Name), []uint64{s.ID})
		}
	}

	// Code sequence allocation shares the transaction, so code
	// assignment and reservation insert are indivisible.
	seq, err := e.reservations.NextSeqTx(ctx, tx, now)
	if err != nil {
		return nil, err
	}

	nights := Nights(in.CheckIn, in.CheckOut)
	rec := &model.Reservation{
		Code:        FormatCode(now, seq),
		OwnerID:     actor.UserID,
		CheckIn:     in.CheckIn,
		CheckOut:    in.CheckOut,
		GuestCount:  in.GuestCount,
		Status:      model.StatusConfirmed,
		TotalAmount: StayPrice(cabins, services, nights, in.GuestCount),
		IsFullyPaid: false,
		CreatedBy:   actor.UserID,
		UpdatedBy:   actor.UserID,
	}
	if err := e.reservations.CreateTx(ctx, tx, rec); err != nil {
		if errors.Is(err, repository.ErrDuplicateCode) {
			return nil, conflict("reservation code collision, retry the booking")
		}
		return nil, err
	}

	cabinRows := make([]model.ResourceAssignment, 0, len(cabins))
	for _, c := range cabins {
		cabinRows = append(cabinRows, model.ResourceAssignment{
			ReservationID: rec.ID,
			CabinID:       c.ID,
			NightlyRate:   c.NightlyRate,
		})
	}
	if err := e.reservations.AddCabinsTx(ctx, tx, cabinRows); err != nil {
		return nil, err
	}
	svcRows := make([]model.ServiceAssignment, 0, len(services))
	for _, s := range services {
		svcRows = append(svcRows, model.ServiceAssignment{
			ReservationID: rec.ID,
			ServiceID:     s.ID,
			FeePerGuest:   s.FeePerGuest,
		})
	}
	if err := e.reservations.AddServicesTx(ctx, tx, svcRows); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true

	det, err := e.reservations.GetDetail(ctx, rec.ID)
	if err != nil {
		return nil, err
	}
	e.publish(ctx, queue.Event{
		Type:          queue.EventReservationCreated,
		ReservationID: rec.ID,
		Code:          rec.Code,
		OwnerID:       rec.OwnerID,
		Status:        rec.Status,
		CheckIn:       det.CheckIn,
		CheckOut:      det.CheckOut,
		TotalAmount:   rec.TotalAmount.StringFixed(2),
		OccurredAt:    now.Format(time.RFC3339),
	})
	return det, nil
}

// GetReservation returns one reservation with its assignments.
// Guests only see their own bookings; a foreign id answers not-found
// so existence is not leaked.
func (e *Engine) GetReservation(ctx context.Context, id uint64, actor Actor) (*repository.ReservationDetail, error) {
	det, err := e.reservations.GetDetail(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound("reservation not found")
		}
		return nil, err
	}
	if err := Authorize(actor, OpGetReservation, det.OwnerID == actor.UserID); err != nil {
		return nil, err
	}
	return det, nil
}

// ListReservations returns a page of reservations matching the
// filter.  Guest callers are always scoped to their own bookings
// regardless of what the filter asks for.
func (e *Engine) ListReservations(ctx context.Context, f repository.ReservationFilter, actor Actor) ([]repository.ReservationDetail, error) {
	if err := Authorize(actor, OpListReservations, true); err != nil {
		return nil, err
	}
	if f.Status != "" && !validStatus(f.Status) {
		return nil, validation(map[string]string{"status": "unknown status"})
	}
	if !actor.Role.IsStaff() {
		f.OwnerID = actor.UserID
	}
	f.Limit, f.Offset = clampPage(f.Limit, f.Offset)
	return e.reservations.List(ctx, f)
}
