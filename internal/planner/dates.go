package planner

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// The planning backend speaks three date formats that must never be
// cross-applied:
//
//   - "DD-MM-YYYY" on plan-generation responses and stored plan entries
//   - "DDMMYYYY" (no dashes) on plan-generation requests
//   - "YYYY-MM-DD" on the manual-entry input path
//
// The request format omitting dashes looks like drift between endpoints, but
// the backend expects exactly that, so the encoders stay separate.

// EncodeWireDate formats a date as DD-MM-YYYY, zero-padded.
func EncodeWireDate(d time.Time) string {
	return fmt.Sprintf("%02d-%02d-%04d", d.Day(), int(d.Month()), d.Year())
}

// EncodeRequestDate formats a date as DDMMYYYY for plan-generation requests.
func EncodeRequestDate(d time.Time) string {
	return fmt.Sprintf("%02d%02d%04d", d.Day(), int(d.Month()), d.Year())
}

// ParseWireDate parses a DD-MM-YYYY string into a local wall-clock date.
// Malformed input returns an error; callers that want the old "silently use
// today" behavior must fall back explicitly and log.
func ParseWireDate(s string) (time.Time, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("parse wire date %q: want DD-MM-YYYY", s)
	}

	day, err := strconv.Atoi(parts[0])
	if err != nil {
		return time.Time{}, fmt.Errorf("parse wire date %q: bad day: %w", s, err)
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return time.Time{}, fmt.Errorf("parse wire date %q: bad month: %w", s, err)
	}
	year, err := strconv.Atoi(parts[2])
	if err != nil {
		return time.Time{}, fmt.Errorf("parse wire date %q: bad year: %w", s, err)
	}

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local), nil
}

// EncodeInputDate formats a date as YYYY-MM-DD, the manual-entry format.
func EncodeInputDate(d time.Time) string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year(), int(d.Month()), d.Day())
}

// ParseInputDate parses a YYYY-MM-DD string into a local wall-clock date.
func ParseInputDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse input date %q: want YYYY-MM-DD", s)
	}
	return t, nil
}

// SameDay reports whether two dates share the same (day, month, year) triple.
// No timezone normalization is performed; callers supply local wall-clock
// values.
func SameDay(a, b time.Time) bool {
	return a.Day() == b.Day() && a.Month() == b.Month() && a.Year() == b.Year()
}
