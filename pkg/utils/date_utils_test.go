package utils

import (
	"testing"
	"time"
)

func TestWeekStart(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{"monday maps to itself", time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), "2026-01-05"},
		{"wednesday maps back", time.Date(2026, 1, 7, 15, 30, 0, 0, time.UTC), "2026-01-05"},
		{"sunday belongs to the preceding monday", time.Date(2026, 1, 11, 23, 59, 0, 0, time.UTC), "2026-01-05"},
		{"week spanning a month boundary", time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), "2026-01-26"},
		{
			// Early morning in a zone ahead of UTC is still the local
			// calendar day, not the previous UTC day.
			"positive offset near midnight",
			time.Date(2026, 1, 5, 0, 30, 0, 0, time.FixedZone("AEST", 10*3600)),
			"2026-01-05",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := WeekStart(tc.in)
			if got.Format(DateLayout) != tc.want {
				t.Errorf("WeekStart(%v) = %s, want %s", tc.in, got.Format(DateLayout), tc.want)
			}
			if got.Hour() != 0 || got.Minute() != 0 || got.Second() != 0 {
				t.Errorf("WeekStart(%v) = %v, want midnight", tc.in, got)
			}
			if got.Location() != tc.in.Location() {
				t.Errorf("WeekStart(%v) changed location to %v", tc.in, got.Location())
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2026-01-07")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if got.Year() != 2026 || got.Month() != time.January || got.Day() != 7 {
		t.Errorf("ParseDate = %v, want 2026-01-07", got)
	}

	for _, bad := range []string{"07-01-2026", "2026-1-7", "2026-01-07T00:00:00Z", ""} {
		if _, err := ParseDate(bad); err == nil {
			t.Errorf("ParseDate(%q) succeeded, want error", bad)
		}
	}
}
