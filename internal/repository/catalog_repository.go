package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/cabin-reservation/internal/model"
)

// CatalogRepo serves the public browse endpoints with read-only views
// of zones, cabins and services.  All catalog mutation lives in an
// external module; nothing here writes.
type CatalogRepo struct {
	db *sql.DB
}

// NewCatalogRepo returns a new CatalogRepo bound to the given database.
func NewCatalogRepo(db *sql.DB) *CatalogRepo { return &CatalogRepo{db: db} }

// ListZones returns all active zones ordered by name.
func (r *CatalogRepo) ListZones(ctx context.Context) ([]model.Zone, error) {
	const q = `SELECT id, name, is_active, created_at, updated_at
			   FROM zones WHERE is_active = 1 ORDER BY name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	zones := make([]model.Zone, 0)
	for rows.Next() {
		var z model.Zone
		if err := rows.Scan(&z.ID, &z.Name, &z.IsActive, &z.CreatedAt, &z.UpdatedAt); err != nil {
			return nil, err
		}
		zones = append(zones, z)
	}
	return zones, rows.Err()
}

// ListCabins returns active cabins, optionally restricted to a zone,
// ordered by capacity then code to match the availability ordering.
func (r *CatalogRepo) ListCabins(ctx context.Context, zoneID uint64) ([]model.Cabin, error) {
	q := `SELECT id, code, name, zone_id, cabin_type_id, capacity, nightly_rate,
				 is_active, under_maintenance, created_at, updated_at
		  FROM cabins WHERE is_active = 1`
	args := []interface{}{}
	if zoneID != 0 {
		q += " AND zone_id = ?"
		args = append(args, zoneID)
	}
	q += " ORDER BY capacity ASC, code ASC"
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	cabins := make([]model.Cabin, 0)
	for rows.Next() {
		var c model.Cabin
		if err := rows.Scan(
			&c.ID, &c.Code, &c.Name, &c.ZoneID, &c.CabinTypeID, &c.Capacity, &c.NightlyRate,
			&c.IsActive, &c.UnderMaintenance, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, err
		}
		cabins = append(cabins, c)
	}
	return cabins, rows.Err()
}

// ListServices returns all active add-on services ordered by name.
func (r *CatalogRepo) ListServices(ctx context.Context) ([]model.Service, error) {
	const q = `SELECT id, name, fee_per_guest, is_active, created_at, updated_at
			   FROM services WHERE is_active = 1 ORDER BY name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	services := make([]model.Service, 0)
	for rows.Next() {
		var s model.Service
		if err := rows.Scan(&s.ID, &s.Name, &s.FeePerGuest, &s.IsActive, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		services = append(services, s)
	}
	return services, rows.Err()
}
