package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/iliyamo/cabin-reservation/internal/model"
)

// CabinRepo provides read access to the cabin catalog.  The engine
// never mutates cabins; it only reads them, and always inside the
// same transaction as any decision that depends on their flags so a
// concurrent catalog edit cannot invalidate a booking mid-flight.
type CabinRepo struct {
	db *sql.DB
}

// NewCabinRepo returns a new CabinRepo bound to the given database.
func NewCabinRepo(db *sql.DB) *CabinRepo { return &CabinRepo{db: db} }

// LockedCabin is a cabin row read under FOR UPDATE, together with the
// active flag of its type.  Holding the row lock for the rest of the
// booking transaction serializes concurrent bookings that touch the
// same cabin.
type LockedCabin struct {
	model.Cabin
	TypeActive bool
}

// FindAvailable returns every bookable cabin with no non-cancelled
// reservation intersecting the half-open range [checkIn, checkOut).
// A cabin qualifies when it is active, not under maintenance and its
// type is active.  Results are ordered by capacity then cabin code so
// client-facing lists are deterministic.
func (r *CabinRepo) FindAvailable(ctx context.Context, checkIn, checkOut time.Time) ([]model.Cabin, error) {
	const q = `SELECT c.id, c.code, c.name, c.zone_id, c.cabin_type_id, c.capacity,
					  c.nightly_rate, c.is_active, c.under_maintenance, c.created_at, c.updated_at
			   FROM cabins c
			   JOIN cabin_types t ON t.id = c.cabin_type_id
			   WHERE c.is_active = 1
				 AND c.under_maintenance = 0
				 AND t.is_active = 1
				 AND c.id NOT IN (
					 SELECT rc.cabin_id
					 FROM reservation_cabins rc
					 JOIN reservations r ON r.id = rc.reservation_id
					 WHERE r.status <> ?
					   AND r.check_in < ? AND ? < r.check_out
				 )
			   ORDER BY c.capacity ASC, c.code ASC`
	rows, err := r.db.QueryContext(ctx, q, model.StatusCancelled, checkOut, checkIn)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	cabins := make([]model.Cabin, 0)
	for rows.Next() {
		var c model.Cabin
		if err := rows.Scan(
			&c.ID, &c.Code, &c.Name, &c.ZoneID, &c.CabinTypeID, &c.Capacity,
			&c.NightlyRate, &c.IsActive, &c.UnderMaintenance, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, err
		}
		cabins = append(cabins, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return cabins, nil
}

// LockByIDsTx loads the requested cabins under FOR UPDATE within the
// provided transaction.  Missing ids simply produce fewer rows; the
// caller compares lengths to detect them.  The returned slice follows
// the order of the ids argument.
func (r *CabinRepo) LockByIDsTx(ctx context.Context, tx *sql.Tx, ids []uint64) ([]LockedCabin, error) {
	if len(ids) == 0 {
		return []LockedCabin{}, nil
	}
	placeholders := make([]string, 0, len(ids))
	args := make([]interface{}, 0, len(ids))
	for _, id := range ids {
		placeholders = append(placeholders, "?")
		args = append(args, id)
	}
	q := `SELECT c.id, c.code, c.name, c.zone_id, c.cabin_type_id, c.capacity,
				 c.nightly_rate, c.is_active, c.under_maintenance, c.created_at, c.updated_at,
				 t.is_active
		  FROM cabins c
		  JOIN cabin_types t ON t.id = c.cabin_type_id
		  WHERE c.id IN (` + strings.Join(placeholders, ",") + `)
		  FOR UPDATE`
	rows, err := tx.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	byID := make(map[uint64]LockedCabin, len(ids))
	for rows.Next() {
		var lc LockedCabin
		if err := rows.Scan(
			&lc.ID, &lc.Code, &lc.Name, &lc.ZoneID, &lc.CabinTypeID, &lc.Capacity,
			&lc.NightlyRate, &lc.IsActive, &lc.UnderMaintenance, &lc.CreatedAt, &lc.UpdatedAt,
			&lc.TypeActive,
		); err != nil {
			return nil, err
		}
		byID[lc.ID] = lc
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	out := make([]LockedCabin, 0, len(byID))
	for _, id := range ids {
		if lc, ok := byID[id]; ok {
			out = append(out, lc)
		}
	}
	return out, nil
}
