package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iliyamo/cabin-reservation/internal/model"
)

// ErrDuplicateCode is returned when the unique key on
// reservations.code rejects an insert.  The per-day counter makes
// this unreachable in a single deployment; the constraint is the
// backstop for codes minted outside the engine.
var ErrDuplicateCode = errors.New("reservation code already exists")

// ReservationRepo persists reservations, their cabin and service
// assignments, and the per-day code counter.  All mutating methods
// are transaction-scoped; the engine owns the transaction so that a
// reservation and its assignments commit or roll back as one unit.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// dayKey renders the counter key for reservation_codes.day, which is
// CHAR(8).  It must stay in step with the YYYYMMDD segment of the
// reservation code so one counter row backs exactly one code day.
func dayKey(day time.Time) string { return day.UTC().Format("20060102") }

// NextSeqTx atomically increments and returns the code sequence for
// the given day.  The upsert takes a row lock on the counter, so two
// transactions booking on the same day are serialized here and can
// never observe the same sequence.  LAST_INSERT_ID(expr) makes the
// updated value readable through LastInsertId; the fresh-insert path
// leaves it at zero, which means the sequence is 1.
func (r *ReservationRepo) NextSeqTx(ctx context.Context, tx *sql.Tx, day time.Time) (int64, error) {
	const q = `INSERT INTO reservation_codes (day, last_seq) VALUES (?, 1)
			   ON DUPLICATE KEY UPDATE last_seq = LAST_INSERT_ID(last_seq + 1)`
	res, err := tx.ExecContext(ctx, q, dayKey(day))
	if err != nil {
		return 0, err
	}
	seq, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	if seq == 0 {
		seq = 1
	}
	return seq, nil
}

// ConflictingCabinIDsTx returns the ids of the given cabins that have
// at least one non-cancelled reservation intersecting the half-open
// range [checkIn, checkOut).  It must run inside the same transaction
// that holds FOR UPDATE locks on the cabin rows; the lock guarantees
// the answer stays true until commit.
func (r *ReservationRepo) ConflictingCabinIDsTx(ctx context.Context, tx *sql.Tx, cabinIDs []uint64, checkIn, checkOut time.Time) ([]uint64, error) {
	if len(cabinIDs) == 0 {
		return []uint64{}, nil
	}
	placeholders := make([]string, 0, len(cabinIDs))
	args := make([]interface{}, 0, len(cabinIDs)+3)
	for _, id := range cabinIDs {
		placeholders = append(placeholders, "?")
		args = append(args, id)
	}
	args = append(args, model.StatusCancelled, checkOut, checkIn)
	q := `SELECT DISTINCT rc.cabin_id
		  FROM reservation_cabins rc
		  JOIN reservations r ON r.id = rc.reservation_id
		  WHERE rc.cabin_id IN (` + strings.Join(placeholders, ",") + `)
			AND r.status <> ?
			AND r.check_in < ? AND ? < r.check_out`
	rows, err := tx.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var conflicted []uint64
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		conflicted = append(conflicted, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return conflicted, nil
}

// CreateTx inserts a new reservation within the scope of an existing
// transaction and populates the generated id plus DB-side defaults on
// the provided record.  The caller must commit or roll back.
func (r *ReservationRepo) CreateTx(ctx context.Context, tx *sql.Tx, res *model.Reservation) error {
	const q = `INSERT INTO reservations
			   (code, owner_id, check_in, check_out, guest_count, status,
				total_amount, paid_amount, is_fully_paid, created_by, updated_by)
			   VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	result, err := tx.ExecContext(ctx, q,
		res.Code, res.OwnerID, res.CheckIn, res.CheckOut, res.GuestCount, res.Status,
		res.TotalAmount, res.PaidAmount, res.IsFullyPaid, res.CreatedBy, res.UpdatedBy,
	)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrDuplicateCode
		}
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = uint64(id)
	// Query back the full row to populate timestamps and defaults.
	const sel = `SELECT created_at, updated_at FROM reservations WHERE id = ?`
	return tx.QueryRowContext(ctx, sel, res.ID).Scan(&res.CreatedAt, &res.UpdatedAt)
}

// AddCabinsTx inserts the cabin assignments for a reservation in a
// single statement.  Passing an empty slice has no effect.
func (r *ReservationRepo) AddCabinsTx(ctx context.Context, tx *sql.Tx, rows []model.ResourceAssignment) error {
	if len(rows) == 0 {
		return nil
	}
	query := `INSERT INTO reservation_cabins (reservation_id, cabin_id, nightly_rate) VALUES `
	args := make([]interface{}, 0, len(rows)*3)
	for i, a := range rows {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?)"
		args = append(args, a.ReservationID, a.CabinID, a.NightlyRate)
	}
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

// AddServicesTx inserts the service assignments for a reservation in
// a single statement.  Passing an empty slice has no effect.
func (r *ReservationRepo) AddServicesTx(ctx context.Context, tx *sql.Tx, rows []model.ServiceAssignment) error {
	if len(rows) == 0 {
		return nil
	}
	query := `INSERT INTO reservation_services (reservation_id, service_id, fee_per_guest) VALUES `
	args := make([]interface{}, 0, len(rows)*3)
	for i, a := range rows {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?)"
		args = append(args, a.ReservationID, a.ServiceID, a.FeePerGuest)
	}
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

const reservationColumns = `id, code, owner_id, check_in, check_out, guest_count, status,
	   total_amount, paid_amount, is_fully_paid, created_by, updated_by, created_at, updated_at`

func scanReservation(row interface{ Scan(...interface{}) error }, res *model.Reservation) error {
	return row.Scan(
		&res.ID, &res.Code, &res.OwnerID, &res.CheckIn, &res.CheckOut, &res.GuestCount, &res.Status,
		&res.TotalAmount, &res.PaidAmount, &res.IsFullyPaid, &res.CreatedBy, &res.UpdatedBy,
		&res.CreatedAt, &res.UpdatedAt,
	)
}

// GetForUpdateTx loads a reservation under FOR UPDATE.  The row lock
// makes the gate and ledger operations on one reservation mutually
// exclusive.  Returns sql.ErrNoRows when the id does not exist.
func (r *ReservationRepo) GetForUpdateTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Reservation, error) {
	q := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = ? FOR UPDATE`
	var res model.Reservation
	if err := scanReservation(tx.QueryRowContext(ctx, q, id), &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// UpdateStatusTx mutates only the operational state plus audit fields.
func (r *ReservationRepo) UpdateStatusTx(ctx context.Context, tx *sql.Tx, id uint64, status string, updatedBy uint64) error {
	const q = `UPDATE reservations SET status = ?, updated_by = ? WHERE id = ?`
	_, err := tx.ExecContext(ctx, q, status, updatedBy, id)
	return err
}

// ApplyPaymentDeltaTx adjusts paid_amount by delta and recomputes
// is_fully_paid in the same statement.  MySQL applies SET assignments
// left to right, so is_fully_paid sees the already-updated
// paid_amount.  The caller must hold the reservation row lock.
func (r *ReservationRepo) ApplyPaymentDeltaTx(ctx context.Context, tx *sql.Tx, id uint64, delta decimal.Decimal, updatedBy uint64) error {
	const q = `UPDATE reservations
			   SET paid_amount = paid_amount + ?,
				   is_fully_paid = (paid_amount >= total_amount),
				   updated_by = ?
			   WHERE id = ?`
	_, err := tx.ExecContext(ctx, q, delta, updatedBy, id)
	return err
}

// AssignedCabin is a cabin assignment joined with catalog display data.
type AssignedCabin struct {
	CabinID     uint64          `json:"cabin_id"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Capacity    int             `json:"capacity"`
	NightlyRate decimal.Decimal `json:"nightly_rate"`
}

// AssignedService is a service assignment joined with catalog display data.
type AssignedService struct {
	ServiceID   uint64          `json:"service_id"`
	Name        string          `json:"name"`
	FeePerGuest decimal.Decimal `json:"fee_per_guest"`
}

// ReservationDetail is a reservation hydrated with its assignments,
// as returned to API callers.
type ReservationDetail struct {
	ID          uint64            `json:"id"`
	Code        string            `json:"code"`
	OwnerID     uint64            `json:"owner_id"`
	CheckIn     string            `json:"check_in"`
	CheckOut    string            `json:"check_out"`
	GuestCount  int               `json:"guest_count"`
	Status      string            `json:"status"`
	TotalAmount decimal.Decimal   `json:"total_amount"`
	PaidAmount  decimal.Decimal   `json:"paid_amount"`
	IsFullyPaid bool              `json:"is_fully_paid"`
	Cabins      []AssignedCabin   `json:"cabins"`
	Services    []AssignedService `json:"services"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// GetDetail loads one reservation with its cabin and service
// assignments.  Returns sql.ErrNoRows when the id does not exist.
func (r *ReservationRepo) GetDetail(ctx context.Context, id uint64) (*ReservationDetail, error) {
	q := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = ?`
	var res model.Reservation
	if err := scanReservation(r.db.QueryRowContext(ctx, q, id), &res); err != nil {
		return nil, err
	}
	det := detailFrom(&res)
	if err := r.fillAssignments(ctx, det); err != nil {
		return nil, err
	}
	return det, nil
}

func detailFrom(res *model.Reservation) *ReservationDetail {
	return &ReservationDetail{
		ID:          res.ID,
		Code:        res.Code,
		OwnerID:     res.OwnerID,
		CheckIn:     res.CheckIn.UTC().Format("2006-01-02"),
		CheckOut:    res.CheckOut.UTC().Format("2006-01-02"),
		GuestCount:  res.GuestCount,
		Status:      res.Status,
		TotalAmount: res.TotalAmount,
		PaidAmount:  res.PaidAmount,
		IsFullyPaid: res.IsFullyPaid,
		Cabins:      []AssignedCabin{},
		Services:    []AssignedService{},
		CreatedAt:   res.CreatedAt,
		UpdatedAt:   res.UpdatedAt,
	}
}

func (r *ReservationRepo) fillAssignments(ctx context.Context, det *ReservationDetail) error {
	const cabQ = `SELECT rc.cabin_id, c.code, c.name, c.capacity, rc.nightly_rate
				  FROM reservation_cabins rc
				  JOIN cabins c ON c.id = rc.cabin_id
				  WHERE rc.reservation_id = ?
				  ORDER BY c.code`
	rows, err := r.db.QueryContext(ctx, cabQ, det.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var a AssignedCabin
		if err := rows.Scan(&a.CabinID, &a.Code, &a.Name, &a.Capacity, &a.NightlyRate); err != nil {
			return err
		}
		det.Cabins = append(det.Cabins, a)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	const svcQ = `SELECT rs.service_id, s.name, rs.fee_per_guest
				  FROM reservation_services rs
				  JOIN services s ON s.id = rs.service_id
				  WHERE rs.reservation_id = ?
				  ORDER BY s.name`
	srows, err := r.db.QueryContext(ctx, svcQ, det.ID)
	if err != nil {
		return err
	}
	defer srows.Close()
	for srows.Next() {
		var a AssignedService
		if err := srows.Scan(&a.ServiceID, &a.Name, &a.FeePerGuest); err != nil {
			return err
		}
		det.Services = append(det.Services, a)
	}
	return srows.Err()
}

// ReservationFilter narrows List results.  Zero values mean "no
// filter"; OwnerID is forced by the engine for guest callers.  The
// date pair selects reservations whose stay intersects [From, To)
// using the same half-open semantics as the availability check.
type ReservationFilter struct {
	OwnerID     uint64
	Status      string
	IsFullyPaid *bool
	Code        string // substring match on the reservation code
	From        *time.Time
	To          *time.Time
	Limit       int
	Offset      int
}

// List returns reservation summaries matching the filter, newest
// first.  The WHERE clause is assembled from fixed predicate
// fragments with placeholders only; filter values are never
// interpolated into the query text.
func (r *ReservationRepo) List(ctx context.Context, f ReservationFilter) ([]ReservationDetail, error) {
	where := make([]string, 0, 6)
	args := make([]interface{}, 0, 8)
	if f.OwnerID != 0 {
		where = append(where, "owner_id = ?")
		args = append(args, f.OwnerID)
	}
	if f.Status != "" {
		where = append(where, "status = ?")
		args = append(args, f.Status)
	}
	if f.IsFullyPaid != nil {
		where = append(where, "is_fully_paid = ?")
		args = append(args, *f.IsFullyPaid)
	}
	if f.Code != "" {
		where = append(where, "code LIKE ?")
		args = append(args, "%"+f.Code+"%")
	}
	if f.From != nil && f.To != nil {
		where = append(where, "check_in < ? AND ? < check_out")
		args = append(args, *f.To, *f.From)
	}
	q := `SELECT ` + reservationColumns + ` FROM reservations`
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?"
	args = append(args, f.Limit, f.Offset)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	details := make([]ReservationDetail, 0)
	index := make(map[uint64]int)
	for rows.Next() {
		var res model.Reservation
		if err := scanReservation(rows, &res); err != nil {
			return nil, err
		}
		det := detailFrom(&res)
		index[det.ID] = len(details)
		details = append(details, *det)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(details) == 0 {
		return details, nil
	}
	// Populate cabin assignments for the whole page in one query.
	ids := make([]interface{}, 0, len(details))
	placeholders := make([]string, 0, len(details))
	for _, d := range details {
		ids = append(ids, d.ID)
		placeholders = append(placeholders, "?")
	}
	cabQ := `SELECT rc.reservation_id, rc.cabin_id, c.code, c.name, c.capacity, rc.nightly_rate
			 FROM reservation_cabins rc
			 JOIN cabins c ON c.id = rc.cabin_id
			 WHERE rc.reservation_id IN (` + strings.Join(placeholders, ",") + `)
			 ORDER BY rc.reservation_id, c.code`
	crows, err := r.db.QueryContext(ctx, cabQ, ids...)
	if err != nil {
		return nil, err
	}
	defer crows.Close()
	for crows.Next() {
		var rid uint64
		var a AssignedCabin
		if err := crows.Scan(&rid, &a.CabinID, &a.Code, &a.Name, &a.Capacity, &a.NightlyRate); err != nil {
			return nil, err
		}
		if idx, ok := index[rid]; ok {
			details[idx].Cabins = append(details[idx].Cabins, a)
		}
	}
	if err := crows.Err(); err != nil {
		return nil, err
	}
	svcQ := `SELECT rs.reservation_id, rs.service_id, s.name, rs.fee_per_guest
			 FROM reservation_services rs
			 JOIN services s ON s.id = rs.service_id
			 WHERE rs.reservation_id IN (` + strings.Join(placeholders, ",") + `)
			 ORDER BY rs.reservation_id, s.name`
	srows, err := r.db.QueryContext(ctx, svcQ, ids...)
	if err != nil {
		return nil, err
	}
	defer srows.Close()
	for srows.Next() {
		var rid uint64
		var a AssignedService
		if err := srows.Scan(&rid, &a.ServiceID, &a.Name, &a.FeePerGuest); err != nil {
			return nil, err
		}
		if idx, ok := index[rid]; ok {
			details[idx].Services = append(details[idx].Services, a)
		}
	}
	return details, srows.Err()
}
