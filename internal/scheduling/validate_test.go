package scheduling

import (
	"errors"
	"testing"
)

func mustRange(t *testing.T, start, end string) TimeRange {
	t.Helper()
	r, err := ParseRange(start, end)
	if err != nil {
		t.Fatalf("ParseRange(%s, %s): %v", start, end, err)
	}
	return r
}

func TestCheckOrdering(t *testing.T) {
	if err := CheckOrdering(MustParseTime("09:00"), MustParseTime("17:00")); err != nil {
		t.Errorf("ordered pair rejected: %v", err)
	}
	if err := CheckOrdering(MustParseTime("17:00"), MustParseTime("17:00")); !errors.Is(err, ErrOrdering) {
		t.Errorf("equal pair: got %v, want ErrOrdering", err)
	}
	if err := CheckOrdering(MustParseTime("17:00"), MustParseTime("09:00")); !errors.Is(err, ErrOrdering) {
		t.Errorf("reversed pair: got %v, want ErrOrdering", err)
	}
}

func TestCheckOperatingHours(t *testing.T) {
	oh := OperatingHours{Open: MustParseTime("09:00"), Close: MustParseTime("21:00")}

	tests := []struct {
		start, end string
		wantErr    bool
	}{
		{"09:00", "21:00", false}, // exact window
		{"10:00", "14:00", false},
		{"08:59", "14:00", true}, // before opening
		{"10:00", "21:01", true}, // past closing
		{"08:00", "22:00", true},
	}

	for _, tt := range tests {
		err := oh.CheckOperatingHours(MustParseTime(tt.start), MustParseTime(tt.end))
		if tt.wantErr && !errors.Is(err, ErrOperatingHours) {
			t.Errorf("CheckOperatingHours(%s, %s): got %v, want ErrOperatingHours", tt.start, tt.end, err)
		}
		if !tt.wantErr && err != nil {
			t.Errorf("CheckOperatingHours(%s, %s): unexpected error %v", tt.start, tt.end, err)
		}
	}
}

func TestIsWithinAvailability(t *testing.T) {
	nineToFive := []TimeRange{mustRange(t, "09:00", "17:00")}

	tests := []struct {
		name       string
		start, end string
		ranges     []TimeRange
		want       bool
	}{
		{"inside single range", "10:00", "14:00", nineToFive, true},
		{"exact boundaries", "09:00", "17:00", nineToFive, true},
		{"start precedes range", "08:00", "14:00", nineToFive, false},
		{"end exceeds range", "10:00", "18:00", nineToFive, false},
		{"empty ranges", "10:00", "14:00", nil, false},
		{
			"second range matches",
			"18:00", "20:00",
			[]TimeRange{mustRange(t, "09:00", "12:00"), mustRange(t, "17:00", "21:00")},
			true,
		},
		{
			"spans a gap between ranges",
			"11:00", "18:00",
			[]TimeRange{mustRange(t, "09:00", "12:00"), mustRange(t, "17:00", "21:00")},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsWithinAvailability(MustParseTime(tt.start), MustParseTime(tt.end), tt.ranges)
			if got != tt.want {
				t.Errorf("IsWithinAvailability(%s, %s) = %v, want %v", tt.start, tt.end, got, tt.want)
			}
		})
	}
}

func TestCheckAvailability(t *testing.T) {
	err := CheckAvailability(MustParseTime("08:00"), MustParseTime("14:00"), []TimeRange{mustRange(t, "09:00", "17:00")})
	if !errors.Is(err, ErrAvailabilityMismatch) {
		t.Errorf("got %v, want ErrAvailabilityMismatch", err)
	}
}

func TestCheckOverlap(t *testing.T) {
	existing := []TimeRange{mustRange(t, "09:00", "13:00")}

	tests := []struct {
		name       string
		start, end string
		wantErr    bool
	}{
		{"boundary touch after", "13:00", "17:00", false},
		{"boundary touch before", "08:00", "09:00", false},
		{"partial overlap", "12:00", "17:00", true},
		{"fully inside existing", "09:30", "10:00", true},
		{"fully contains existing", "08:00", "14:00", true},
		{"identical", "09:00", "13:00", true},
		{"disjoint", "14:00", "17:00", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candidate := mustRange(t, tt.start, tt.end)
			err := CheckOverlap(candidate, existing)
			if tt.wantErr && !errors.Is(err, ErrOverlap) {
				t.Errorf("got %v, want ErrOverlap", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestCheckOverlapEmptyExisting(t *testing.T) {
	if err := CheckOverlap(mustRange(t, "09:00", "17:00"), nil); err != nil {
		t.Errorf("no existing shifts should never overlap: %v", err)
	}
}
