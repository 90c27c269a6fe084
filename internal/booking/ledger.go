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

// RecordPayment appends a ledger entry to a live reservation and
// raises its paid amount in the same transaction.  The reservation
// row is locked first, so two concurrent payments (or a payment and a
// reversal) on the same reservation serialize and neither overwrites
// the other's increment; the increment itself happens in SQL, never
// as a read-modify-write in Go.
//
// Rejections: unknown reservation, terminal reservation state, and
// any amount that would push paid_amount past total_amount; the
// overpayment error carries the remaining payable amount.
func (e *Engine) RecordPayment(ctx context.Context, in RecordPaymentInput, actor Actor) (*model.Payment, error) {
	if err := Authorize(actor, OpRecordPayment, false); err != nil {
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

	res, err := e.reservations.GetForUpdateTx(ctx, tx, in.ReservationID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound("reservation not found")
		}
		return nil, err
	}
	if err := CheckRecord(res.Status, res.PaidAmount, res.TotalAmount, in.Amount); err != nil {
		return nil, err
	}

	paidOn := DateOnly(now)
	if in.PaidOn != nil {
		paidOn = *in.PaidOn
	}
	p := &model.Payment{
		ReservationID: in.ReservationID,
		Amount:        in.Amount,
		Method:        in.Method,
		PaidOn:        paidOn,
		IsActive:      true,
		CreatedBy:     actor.UserID,
		UpdatedBy:     actor.UserID,
	}
	if err := e.payments.CreateTx(ctx, tx, p); err != nil {
		return nil, err
	}
	if err := e.reservations.ApplyPaymentDeltaTx(ctx, tx, res.ID, in.Amount, actor.UserID); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true

	e.publish(ctx, queue.Event{
		Type:          queue.EventPaymentRecorded,
		ReservationID: res.ID,
		Code:          res.Code,
		OwnerID:       res.OwnerID,
		Status:        res.Status,
		TotalAmount:   res.TotalAmount.StringFixed(2),
		PaidAmount:    res.PaidAmount.Add(in.Amount).StringFixed(2),
		PaymentID:     p.ID,
		Amount:        in.Amount.StringFixed(2),
		Method:        in.Method,
		OccurredAt:    now.Format(time.RFC3339),
	})
	return p, nil
}

// ReversePayment deactivates a ledger entry and lowers the owning
// reservation's paid amount.  The entry itself is never deleted and
// its amount never changes; flipping is_active is the only mutation,
// which preserves the audit history.  Reversing an already-inactive
// payment fails and changes nothing.
func (e *Engine) ReversePayment(ctx context.Context, paymentID uint64, actor Actor) (*model.Payment, error) {
	if err := Authorize(actor, OpReversePayment, false); err != nil {
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

	p, err := e.payments.GetForUpdateTx(ctx, tx, paymentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound("payment not found")
		}
		return nil, err
	}
	// Lock the reservation too; its balance is about to change.
	res, err := e.reservations.GetForUpdateTx(ctx, tx, p.ReservationID)
	if err != nil {
		return nil, err
	}
	if err := CheckReverse(p.IsActive, res.Status); err != nil {
		return nil, err
	}
	if err := e.payments.DeactivateTx(ctx, tx, p.ID, actor.UserID); err != nil {
		return nil, err
	}
	if err := e.reservations.ApplyPaymentDeltaTx(ctx, tx, res.ID, p.Amount.Neg(), actor.UserID); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true

	p.IsActive = false
	p.UpdatedBy = actor.UserID
	e.publish(ctx, queue.Event{
		Type:          queue.EventPaymentReversed,
		ReservationID: res.ID,
		Code:          res.Code,
		OwnerID:       res.OwnerID,
		Status:        res.Status,
		TotalAmount:   res.TotalAmount.StringFixed(2),
		PaidAmount:    res.PaidAmount.Sub(p.Amount).StringFixed(2),
		PaymentID:     p.ID,
		Amount:        p.Amount.StringFixed(2),
		Method:        p.Method,
		OccurredAt:    now.Format(time.RFC3339),
	})
	return p, nil
}

// GetPayment returns one ledger entry.  Guests only see payments on
// their own reservations; foreign ids answer not-found.
func (e *Engine) GetPayment(ctx context.Context, paymentID uint64, actor Actor) (*repository.PaymentRow, error) {
	row, err := e.payments.GetWithReservation(ctx, paymentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound("payment not found")
		}
		return nil, err
	}
	if err := Authorize(actor, OpGetPayment, row.OwnerID == actor.UserID); err != nil {
		return nil, err
	}
	return row, nil
}

// ListPayments returns a page of ledger entries matching the filter.
// Guest callers are always scoped to payments on their own
// reservations.
func (e *Engine) ListPayments(ctx context.Context, f repository.PaymentFilter, actor Actor) ([]repository.PaymentRow, error) {
	if err := Authorize(actor, OpListPayments, true); err != nil {
		return nil, err
	}
	if f.Method != "" && !ValidMethod(f.Method) {
		return nil, validation(map[string]string{"method": "must be one of CASH, CARD, TRANSFER"})
	}
	if !actor.Role.IsStaff() {
		f.OwnerID = actor.UserID
	}
	f.Limit, f.Offset = clampPage(f.Limit, f.Offset)
	return e.payments.List(ctx, f)
}
