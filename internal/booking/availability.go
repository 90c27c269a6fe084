package booking

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Availability describes one bookable cabin for a requested stay,
// including the computed nights and total price for that cabin alone.
type Availability struct {
	CabinID     uint64          `json:"cabin_id"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	ZoneID      uint64          `json:"zone_id"`
	Capacity    int             `json:"capacity"`
	NightlyRate decimal.Decimal `json:"nightly_rate"`
	Nights      int             `json:"nights"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

// FindAvailable returns the cabins bookable over [checkIn, checkOut).
// Eligible cabins are active, not under maintenance, of an active
// type, and free of non-cancelled reservations intersecting the
// range.  Results keep the repository's capacity-then-code ordering.
// The operation is read-only.
func (e *Engine) FindAvailable(ctx context.Context, checkIn, checkOut time.Time, guestCount int) ([]Availability, error) {
	checkIn = DateOnly(checkIn)
	checkOut = DateOnly(checkOut)
	if fields := stayFields(checkIn, checkOut, guestCount, e.now()); len(fields) > 0 {
		return nil, validation(fields)
	}
	cabins, err := e.cabins.FindAvailable(ctx, checkIn, checkOut)
	if err != nil {
		return nil, err
	}
	nights := Nights(checkIn, checkOut)
	n := decimal.NewFromInt(int64(nights))
	out := make([]Availability, 0, len(cabins))
	for _, c := range cabins {
		out = append(out, Availability{
			CabinID:     c.ID,
			Code:        c.Code,
			Name:        c.Name,
			ZoneID:      c.ZoneID,
			Capacity:    c.Capacity,
			NightlyRate: c.NightlyRate,
			Nights:      nights,
			TotalPrice:  c.NightlyRate.Mul(n),
		})
	}
	return out, nil
}
