package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Zone groups cabins by their physical location on the grounds.  The
// engine only reads zones for browse endpoints; zone management is
// handled by an external catalog module.
//
// Fields:
//  ID        – primary key identifier.
//  Name      – human readable zone name.
//  IsActive  – whether the zone is open for bookings.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Zone struct {
	ID        uint64    // zones.id
	Name      string    // zones.name
	IsActive  bool      // zones.is_active
	CreatedAt time.Time // zones.created_at
	UpdatedAt time.Time // zones.updated_at
}

// CabinType classifies cabins (e.g. standard, family, premium).  A
// cabin is only bookable while its type is active.
//
// Fields:
//  ID        – primary key identifier.
//  Name      – unique type name.
//  IsActive  – whether cabins of this type may be booked.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type CabinType struct {
	ID        uint64    // cabin_types.id
	Name      string    // cabin_types.name
	IsActive  bool      // cabin_types.is_active
	CreatedAt time.Time // cabin_types.created_at
	UpdatedAt time.Time // cabin_types.updated_at
}

// Cabin is a bookable physical unit.  Capacity and nightly rate drive
// the booking validation and pricing; the rate captured here is also
// snapshotted onto reservation_cabins rows at booking time so later
// catalog edits do not rewrite history.
//
// Fields:
//  ID               – primary key identifier.
//  Code             – unique human readable cabin code.
//  Name             – display name.
//  ZoneID           – zone the cabin belongs to.
//  CabinTypeID      – classification of the cabin.
//  Capacity         – maximum number of guests.
//  NightlyRate      – price per night, exact decimal.
//  IsActive         – whether the cabin is in service.
//  UnderMaintenance – temporarily blocked from new bookings.
//  CreatedAt        – creation timestamp.
//  UpdatedAt        – last update timestamp.
type Cabin struct {
	ID               uint64          // cabins.id
	Code             string          // cabins.code
	Name             string          // cabins.name
	ZoneID           uint64          // cabins.zone_id
	CabinTypeID      uint64          // cabins.cabin_type_id
	Capacity         int             // cabins.capacity
	NightlyRate      decimal.Decimal // cabins.nightly_rate
	IsActive         bool            // cabins.is_active
	UnderMaintenance bool            // cabins.under_maintenance
	CreatedAt        time.Time       // cabins.created_at
	UpdatedAt        time.Time       // cabins.updated_at
}

// Service is an optional add-on charged per guest per night (e.g.
// breakfast, sauna access).  Like cabins, the fee is snapshotted onto
// the reservation at booking time.
//
// Fields:
//  ID          – primary key identifier.
//  Name        – service name.
//  FeePerGuest – fee per guest per night, exact decimal.
//  IsActive    – whether the service can be attached to new bookings.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Service struct {
	ID          uint64          // services.id
	Name        string          // services.name
	FeePerGuest decimal.Decimal // services.fee_per_guest
	IsActive    bool            // services.is_active
	CreatedAt   time.Time       // services.created_at
	UpdatedAt   time.Time       // services.updated_at
}
