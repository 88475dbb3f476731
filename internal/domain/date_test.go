package domain

import (
	"errors"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate(" 2026-10-17 ")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !d.Equal(time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("got %v", d)
	}
	for _, bad := range []string{"", "17/10/2026", "2026-13-01"} {
		if _, err := ParseDate(bad); !errors.Is(err, ErrInvalidDate) {
			t.Fatalf("ParseDate(%q) err = %v, want ErrInvalidDate", bad, err)
		}
	}
}

func TestDaysBetween(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*3600)
	from := time.Date(2026, 3, 1, 23, 30, 0, 0, loc)
	to := time.Date(2026, 3, 4, 0, 15, 0, 0, loc)
	if got := DaysBetween(from, to); got != 3 {
		t.Fatalf("DaysBetween = %d, want 3", got)
	}
	if got := DaysBetween(to, from); got != -3 {
		t.Fatalf("DaysBetween reversed = %d, want -3", got)
	}
	if got := AddDays(from, 15); got != time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC) {
		t.Fatalf("AddDays = %v", got)
	}
}
