package booking

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/cabin-reservation/internal/queue"
	"github.com/iliyamo/cabin-reservation/internal/repository"
)

// Transition moves a reservation to a target state, enforcing the
// state machine and the role rules: staff may close a live booking as
// CANCELLED, NO_SHOW or FINALIZED; owners may only cancel their own
// booking with at least 24 hours of notice.  Any transition whose
// source state is already terminal is rejected, so closed bookings
// are never reopened.
//
// Only the operational state and audit fields change; financial
// fields are untouchable from here.  The read and the update share
// one transaction with the row locked, so concurrent transitions on
// the same reservation serialize and the loser sees the new state.
func (e *Engine) Transition(ctx context.Context, reservationID uint64, target string, actor Actor) (*repository.ReservationDetail, error) {
	if err := Authorize(actor, OpTransition, true); err != nil {
		return nil, err
	}
	now := e.now()

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

	res, err := e.reservations.GetForUpdateTx(ctx, tx, reservationID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound("reservation not found")
		}
		return nil, err
	}
	if err := CheckTransition(res.Status, target, actor, res.OwnerID == actor.UserID, now, res.CheckIn); err != nil {
		return nil, err
	}
	if err := e.reservations.UpdateStatusTx(ctx, tx, reservationID, target, actor.UserID); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true

	det, err := e.reservations.GetDetail(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	e.publish(ctx, queue.Event{
		Type:          queue.EventStatusChanged,
		ReservationID: reservationID,
		Code:          res.Code,
		OwnerID:       res.OwnerID,
		Status:        target,
		OccurredAt:    now.Format(time.RFC3339),
	})
	return det, nil
}
