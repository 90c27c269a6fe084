package booking

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// codePrefix is the fixed prefix of reservation codes.
const codePrefix = "RES"

var codePattern = regexp.MustCompile(`^RES-(\d{8})-(\d{5})$`)

// FormatCode renders a reservation code as RES-YYYYMMDD-SSSSS, where
// the five-digit sequence restarts at 00001 each calendar day.  The
// sequence itself is allocated by the repository inside the booking
// transaction (per-day counter row), so formatting is the only job
// left here.
func FormatCode(day time.Time, seq int64) string {
	return fmt.Sprintf("%s-%s-%05d", codePrefix, day.UTC().Format("20060102"), seq)
}

// ParseCode splits a reservation code into its day and sequence.  It
// returns false when the string does not match the code format.
func ParseCode(code string) (day time.Time, seq int64, ok bool) {
	m := codePattern.FindStringSubmatch(code)
	if m == nil {
		return time.Time{}, 0, false
	}
	day, err := time.ParseInLocation("20060102", m[1], time.UTC)
	if err != nil {
		return time.Time{}, 0, false
	}
	seq, err = strconv.ParseInt(m[2], 10, 64)
	if err != nil || seq < 1 {
		return time.Time{}, 0, false
	}
	return day, seq, true
}
