package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The counter key must fit reservation_codes.day (CHAR(8)) and match
// the YYYYMMDD day segment of reservation codes, so that every
// calendar day owns its own counter row and the sequence restarts
// at 1.
func TestDayKey(t *testing.T) {
	d := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	key := dayKey(d)
	require.Len(t, key, 8)
	assert.Equal(t, "20260801", key)

	// Consecutive days map to distinct counter rows.
	assert.NotEqual(t, key, dayKey(d.AddDate(0, 0, 1)))
}

func TestDayKeyNormalizesToUTC(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)

	// 2026-08-02 03:00 +05:00 is still 2026-08-01 in UTC.
	assert.Equal(t, "20260801", dayKey(time.Date(2026, 8, 2, 3, 0, 0, 0, loc)))
}
