package booking_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cabin-reservation/internal/booking"
)

func TestFormatCode(t *testing.T) {
	d := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "RES-20260828-00001", booking.FormatCode(d, 1))
	assert.Equal(t, "RES-20260828-00042", booking.FormatCode(d, 42))
	assert.Equal(t, "RES-20260828-12345", booking.FormatCode(d, 12345))
}

func TestParseCodeRoundTrip(t *testing.T) {
	d := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	code := booking.FormatCode(d, 17)

	gotDay, gotSeq, ok := booking.ParseCode(code)
	require.True(t, ok)
	assert.True(t, gotDay.Equal(d))
	assert.Equal(t, int64(17), gotSeq)
}

func TestParseCodeRejectsMalformed(t *testing.T) {
	for _, code := range []string{
		"",
		"RES-20260828",
		"RES-20260828-1",
		"RES-20260828-000001",
		"RES-2026088-00001",
		"XYZ-20260828-00001",
		"RES-20260828-00000", // sequences start at 1
		"RES-20261301-00001", // month 13
		"res-20260828-00001",
	} {
		_, _, ok := booking.ParseCode(code)
		assert.False(t, ok, "code %q", code)
	}
}
