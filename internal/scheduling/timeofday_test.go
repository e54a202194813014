package scheduling

import (
	"errors"
	"testing"
)

func TestParseTime(t *testing.T) {
	tests := []struct {
		input   string
		want    TimeOfDay
		wantErr bool
	}{
		{"09:00", TimeOfDay{9, 0}, false},
		{"00:00", TimeOfDay{0, 0}, false},
		{"23:59", TimeOfDay{23, 59}, false},
		{"9:00", TimeOfDay{}, true},  // not zero-padded
		{"24:00", TimeOfDay{}, true}, // hour out of range
		{"12:60", TimeOfDay{}, true},
		{"12:5", TimeOfDay{}, true},
		{"12", TimeOfDay{}, true},
		{"12:00:00", TimeOfDay{}, true},
		{"ab:cd", TimeOfDay{}, true},
		{"-1:00", TimeOfDay{}, true},
		{"", TimeOfDay{}, true},
	}

	for _, tt := range tests {
		got, err := ParseTime(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseTime(%q): expected error, got %v", tt.input, got)
			} else if !errors.Is(err, ErrTimeFormat) {
				t.Errorf("ParseTime(%q): error %v is not ErrTimeFormat", tt.input, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseTime(%q): unexpected error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseTime(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestTimeOfDayString(t *testing.T) {
	if s := (TimeOfDay{9, 5}).String(); s != "09:05" {
		t.Errorf("String() = %q, want 09:05", s)
	}
}

func TestIsBefore(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"09:00", "17:00", true},
		{"17:00", "17:00", false},
		{"17:00", "09:00", false},
		{"09:00", "09:01", true},
		{"09:59", "10:00", true},
	}

	for _, tt := range tests {
		a := MustParseTime(tt.a)
		b := MustParseTime(tt.b)
		if got := IsBefore(a, b); got != tt.want {
			t.Errorf("IsBefore(%s, %s) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestDurationHours(t *testing.T) {
	tests := []struct {
		start, end string
		want       float64
	}{
		{"09:00", "17:00", 8.0},
		{"17:00", "09:00", -8.0}, // no overnight wraparound
		{"09:00", "09:00", 0.0},
		{"09:00", "09:30", 0.5},
		{"09:15", "10:00", 0.75},
	}

	for _, tt := range tests {
		start := MustParseTime(tt.start)
		end := MustParseTime(tt.end)
		if got := DurationHours(start, end); got != tt.want {
			t.Errorf("DurationHours(%s, %s) = %v, want %v", tt.start, tt.end, got, tt.want)
		}
	}
}

func TestDurationHoursSign(t *testing.T) {
	// For every ordered pair the duration is non-negative; for every
	// reversed pair it is negative and finite, never a panic.
	for h := 0; h < 24; h += 3 {
		for m := 0; m < 60; m += 15 {
			start := TimeOfDay{Hour: h, Minute: m}
			end := TimeOfDay{Hour: 23, Minute: 59}
			if IsBefore(start, end) {
				if d := DurationHours(start, end); d < 0 {
					t.Errorf("DurationHours(%s, %s) = %v, want >= 0", start, end, d)
				}
				if d := DurationHours(end, start); d >= 0 {
					t.Errorf("DurationHours(%s, %s) = %v, want < 0", end, start, d)
				}
			}
		}
	}
}

func TestMustParseTimePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustParseTime with bad input did not panic")
		}
	}()
	MustParseTime("25:00")
}
