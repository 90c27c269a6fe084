package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/iliyamo/cabin-reservation/internal/model"
)

// PaymentRepo persists the append-only payment ledger.  Entries are
// inserted and deactivated, never updated in amount and never
// deleted, so the full audit trail survives reversals.
type PaymentRepo struct {
	db *sql.DB
}

// NewPaymentRepo returns a new PaymentRepo bound to the given database.
func NewPaymentRepo(db *sql.DB) *PaymentRepo { return &PaymentRepo{db: db} }

const paymentColumns = `id, reservation_id, amount, method, paid_on, is_active,
	   created_by, updated_by, created_at, updated_at`

func scanPayment(row interface{ Scan(...interface{}) error }, p *model.Payment) error {
	return row.Scan(
		&p.ID, &p.ReservationID, &p.Amount, &p.Method, &p.PaidOn, &p.IsActive,
		&p.CreatedBy, &p.UpdatedBy, &p.CreatedAt, &p.UpdatedAt,
	)
}

// CreateTx inserts a ledger entry within an existing transaction and
// populates the generated id and DB defaults on the record.
func (r *PaymentRepo) CreateTx(ctx context.Context, tx *sql.Tx, p *model.Payment) error {
	const q = `INSERT INTO payments
			   (reservation_id, amount, method, paid_on, is_active, created_by, updated_by)
			   VALUES (?, ?, ?, ?, ?, ?, ?)`
	result, err := tx.ExecContext(ctx, q,
		p.ReservationID, p.Amount, p.Method, p.PaidOn, p.IsActive, p.CreatedBy, p.UpdatedBy,
	)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	const sel = `SELECT created_at, updated_at FROM payments WHERE id = ?`
	return tx.QueryRowContext(ctx, sel, p.ID).Scan(&p.CreatedAt, &p.UpdatedAt)
}

// GetForUpdateTx loads a payment under FOR UPDATE so a concurrent
// reversal of the same entry blocks until this transaction finishes.
// Returns sql.ErrNoRows when the id does not exist.
func (r *PaymentRepo) GetForUpdateTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Payment, error) {
	q := `SELECT ` + paymentColumns + ` FROM payments WHERE id = ? FOR UPDATE`
	var p model.Payment
	if err := scanPayment(tx.QueryRowContext(ctx, q, id), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// DeactivateTx flips a payment to inactive.  The amount column is
// deliberately left untouched; deactivation is the only mutation a
// ledger entry ever receives.
func (r *PaymentRepo) DeactivateTx(ctx context.Context, tx *sql.Tx, id uint64, updatedBy uint64) error {
	const q = `UPDATE payments SET is_active = 0, updated_by = ? WHERE id = ?`
	_, err := tx.ExecContext(ctx, q, updatedBy, id)
	return err
}

// PaymentRow is a ledger entry joined with its reservation's code and
// owner, used for ownership checks and API responses.
type PaymentRow struct {
	model.Payment
	ReservationCode string
	OwnerID         uint64
}

// GetWithReservation loads one payment together with the owning
// reservation's code and owner id.  Returns sql.ErrNoRows when the
// payment does not exist.
func (r *PaymentRepo) GetWithReservation(ctx context.Context, id uint64) (*PaymentRow, error) {
	const q = `SELECT p.id, p.reservation_id, p.amount, p.method, p.paid_on, p.is_active,
					  p.created_by, p.updated_by, p.created_at, p.updated_at,
					  r.code, r.owner_id
			   FROM payments p
			   JOIN reservations r ON r.id = p.reservation_id
			   WHERE p.id = ?`
	var row PaymentRow
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&row.ID, &row.ReservationID, &row.Amount, &row.Method, &row.PaidOn, &row.IsActive,
		&row.CreatedBy, &row.UpdatedBy, &row.CreatedAt, &row.UpdatedAt,
		&row.ReservationCode, &row.OwnerID,
	)
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// PaymentFilter narrows List results.  Zero values mean "no filter";
// OwnerID is forced by the engine for guest callers.
type PaymentFilter struct {
	OwnerID       uint64
	ReservationID uint64
	Method        string
	IsActive      *bool
	Code          string // substring match on the reservation code
	PaidFrom      *time.Time
	PaidTo        *time.Time
	Limit         int
	Offset        int
}

// List returns ledger entries matching the filter, newest first.
// Predicates are fixed fragments with placeholders; values are never
// interpolated into the query text.
func (r *PaymentRepo) List(ctx context.Context, f PaymentFilter) ([]PaymentRow, error) {
	where := make([]string, 0, 7)
	args := make([]interface{}, 0, 9)
	if f.OwnerID != 0 {
		where = append(where, "r.owner_id = ?")
		args = append(args, f.OwnerID)
	}
	if f.ReservationID != 0 {
		where = append(where, "p.reservation_id = ?")
		args = append(args, f.ReservationID)
	}
	if f.Method != "" {
		where = append(where, "p.method = ?")
		args = append(args, f.Method)
	}
	if f.IsActive != nil {
		where = append(where, "p.is_active = ?")
		args = append(args, *f.IsActive)
	}
	if f.Code != "" {
		where = append(where, "r.code LIKE ?")
		args = append(args, "%"+f.Code+"%")
	}
	if f.PaidFrom != nil {
		where = append(where, "p.paid_on >= ?")
		args = append(args, *f.PaidFrom)
	}
	if f.PaidTo != nil {
		where = append(where, "p.paid_on <= ?")
		args = append(args, *f.PaidTo)
	}
	q := `SELECT p.id, p.reservation_id, p.amount, p.method, p.paid_on, p.is_active,
				 p.created_by, p.updated_by, p.created_at, p.updated_at,
				 r.code, r.owner_id
		  FROM payments p
		  JOIN reservations r ON r.id = p.reservation_id`
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY p.created_at DESC, p.id DESC LIMIT ? OFFSET ?"
	args = append(args, f.Limit, f.Offset)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]PaymentRow, 0)
	for rows.Next() {
		var row PaymentRow
		if err := rows.Scan(
			&row.ID, &row.ReservationID, &row.Amount, &row.Method, &row.PaidOn, &row.IsActive,
			&row.CreatedBy, &row.UpdatedBy, &row.CreatedAt, &row.UpdatedAt,
			&row.ReservationCode, &row.OwnerID,
		); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
