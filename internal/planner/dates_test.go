package planner

import (
	"strings"
	"testing"
	"time"
)

func TestWireDateRoundTrip(t *testing.T) {
	dates := []time.Time{
		time.Date(2024, time.January, 1, 0, 0, 0, 0, time.Local),
		time.Date(2024, time.February, 29, 0, 0, 0, 0, time.Local),
		time.Date(2025, time.December, 31, 0, 0, 0, 0, time.Local),
		time.Date(2026, time.August, 5, 0, 0, 0, 0, time.Local),
	}

	for _, d := range dates {
		encoded := EncodeWireDate(d)
		parsed, err := ParseWireDate(encoded)
		if err != nil {
			t.Fatalf("ParseWireDate(%q) error: %v", encoded, err)
		}
		if !SameDay(parsed, d) {
			t.Errorf("round trip %v -> %q -> %v lost the day", d, encoded, parsed)
		}
	}
}

func TestEncodeWireDateZeroPads(t *testing.T) {
	d := time.Date(2026, time.March, 5, 0, 0, 0, 0, time.Local)
	if got := EncodeWireDate(d); got != "05-03-2026" {
		t.Errorf("EncodeWireDate() = %q, want %q", got, "05-03-2026")
	}
}

func TestParseWireDateMalformed(t *testing.T) {
	inputs := []string{
		"",
		"15-03",
		"15/03/2026",
		"2026-03-15-0",
		"ab-03-2026",
		"15-xx-2026",
		"15-03-20x6",
	}

	for _, in := range inputs {
		if _, err := ParseWireDate(in); err == nil {
			t.Errorf("ParseWireDate(%q) = nil error, want failure", in)
		}
	}
}

func TestEncodeRequestDateOmitsDashes(t *testing.T) {
	d := time.Date(2026, time.March, 5, 0, 0, 0, 0, time.Local)

	got := EncodeRequestDate(d)
	if got != "05032026" {
		t.Errorf("EncodeRequestDate() = %q, want %q", got, "05032026")
	}
	if strings.Contains(got, "-") {
		t.Errorf("request date %q must not contain separators", got)
	}

	// The request and wire encodings are deliberately different formats.
	if got == EncodeWireDate(d) {
		t.Error("request encoding collapsed into the wire encoding")
	}
}

func TestInputDateRoundTrip(t *testing.T) {
	d := time.Date(2026, time.August, 28, 0, 0, 0, 0, time.Local)

	encoded := EncodeInputDate(d)
	if encoded != "2026-08-28" {
		t.Fatalf("EncodeInputDate() = %q, want %q", encoded, "2026-08-28")
	}

	parsed, err := ParseInputDate(encoded)
	if err != nil {
		t.Fatalf("ParseInputDate(%q) error: %v", encoded, err)
	}
	if !SameDay(parsed, d) {
		t.Errorf("round trip %v -> %q -> %v lost the day", d, encoded, parsed)
	}
}

func TestParseInputDateMalformed(t *testing.T) {
	inputs := []string{"", "28-08-2026", "2026/08/28", "28082026"}

	for _, in := range inputs {
		if _, err := ParseInputDate(in); err == nil {
			t.Errorf("ParseInputDate(%q) = nil error, want failure", in)
		}
	}
}

func TestSameDay(t *testing.T) {
	base := time.Date(2026, time.March, 15, 9, 30, 0, 0, time.Local)

	if !SameDay(base, time.Date(2026, time.March, 15, 23, 59, 0, 0, time.Local)) {
		t.Error("same calendar day with different clock times should match")
	}
	if SameDay(base, base.AddDate(0, 0, 1)) {
		t.Error("adjacent days should not match")
	}
	if SameDay(base, time.Date(2025, time.March, 15, 0, 0, 0, 0, time.Local)) {
		t.Error("same day and month in a different year should not match")
	}
}
