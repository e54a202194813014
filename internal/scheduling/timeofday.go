package scheduling

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// --- Validation Errors ---
var (
	ErrTimeFormat           = errors.New("invalid time format, expected zero-padded HH:MM")
	ErrOperatingHours       = errors.New("time falls outside shop operating hours")
	ErrOrdering             = errors.New("start time must be strictly before end time")
	ErrAvailabilityMismatch = errors.New("shift is not within any submitted availability range")
	ErrOverlap              = errors.New("shift overlaps an existing approved shift")
)

// TimeOfDay is a wall-clock time in the shop's local time. It carries no
// timezone and no date.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTime parses a "HH:MM" string into a TimeOfDay. Both fields must be
// exactly two digits, hour 00-23, minute 00-59. Anything else is rejected
// with ErrTimeFormat, never coerced.
func ParseTime(s string) (TimeOfDay, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrTimeFormat, s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrTimeFormat, s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrTimeFormat, s)
	}
	return TimeOfDay{Hour: hour, Minute: minute}, nil
}

// MustParseTime is a ParseTime that panics on malformed input. Intended for
// fixed configuration values validated at startup.
func MustParseTime(s string) TimeOfDay {
	t, err := ParseTime(s)
	if err != nil {
		panic(err)
	}
	return t
}

// String formats the time back to zero-padded "HH:MM".
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// MinuteOfDay returns the number of minutes since midnight.
func (t TimeOfDay) MinuteOfDay() int {
	return t.Hour*60 + t.Minute
}

// IsBefore reports whether a is strictly earlier in the day than b.
func IsBefore(a, b TimeOfDay) bool {
	return a.MinuteOfDay() < b.MinuteOfDay()
}

// DurationHours returns the span from start to end in fractional hours.
// When end precedes start the result is negative; there is no overnight
// wraparound. Callers that require a positive span must validate ordering
// first.
func DurationHours(start, end TimeOfDay) float64 {
	return float64(end.MinuteOfDay()-start.MinuteOfDay()) / 60.0
}

// TimeRange is an ordered pair of times. A range is only usable for
// validation when Start is strictly before End; malformed ranges are not
// rejected here, only at the point of use.
type TimeRange struct {
	Start TimeOfDay
	End   TimeOfDay
}

// ParseRange parses a pair of "HH:MM" strings into a TimeRange.
func ParseRange(start, end string) (TimeRange, error) {
	s, err := ParseTime(start)
	if err != nil {
		return TimeRange{}, err
	}
	e, err := ParseTime(end)
	if err != nil {
		return TimeRange{}, err
	}
	return TimeRange{Start: s, End: e}, nil
}
