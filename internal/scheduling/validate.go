package scheduling

import "fmt"

// OperatingHours is the shop-wide daily open/close window. It is explicit
// configuration injected into the validators, applied uniformly to every
// day of the week.
type OperatingHours struct {
	Open  TimeOfDay
	Close TimeOfDay
}

// ParseOperatingHours builds an OperatingHours window from HH:MM strings,
// typically sourced from configuration.
func ParseOperatingHours(open, close string) (OperatingHours, error) {
	openTime, err := ParseTime(open)
	if err != nil {
		return OperatingHours{}, fmt.Errorf("open time: %w", err)
	}
	closeTime, err := ParseTime(close)
	if err != nil {
		return OperatingHours{}, fmt.Errorf("close time: %w", err)
	}
	if !IsBefore(openTime, closeTime) {
		return OperatingHours{}, fmt.Errorf("%w: open %s must be before close %s", ErrOrdering, openTime, closeTime)
	}
	return OperatingHours{Open: openTime, Close: closeTime}, nil
}

// CheckOrdering rejects ranges whose start is not strictly before the end.
func CheckOrdering(start, end TimeOfDay) error {
	if !IsBefore(start, end) {
		return fmt.Errorf("%w: %s-%s", ErrOrdering, start, end)
	}
	return nil
}

// CheckOperatingHours rejects intervals that begin before opening time or
// run past closing time. Boundary-exact intervals are allowed.
func (oh OperatingHours) CheckOperatingHours(start, end TimeOfDay) error {
	if IsBefore(start, oh.Open) || IsBefore(oh.Close, end) {
		return fmt.Errorf("%w: shifts must be between %s and %s", ErrOperatingHours, oh.Open, oh.Close)
	}
	return nil
}

// IsWithinAvailability reports whether the interval [start,end] is fully
// contained in at least one of the given ranges. Containment is non-strict:
// an interval matching range boundaries exactly is contained. An empty
// slice never contains anything. Malformed or overlapping ranges are
// accepted as-is.
func IsWithinAvailability(start, end TimeOfDay, ranges []TimeRange) bool {
	for _, r := range ranges {
		if !IsBefore(start, r.Start) && !IsBefore(r.End, end) {
			return true
		}
	}
	return false
}

// CheckAvailability is IsWithinAvailability with the error taxonomy
// attached for the validation pipeline.
func CheckAvailability(start, end TimeOfDay, ranges []TimeRange) error {
	if !IsWithinAvailability(start, end, ranges) {
		return ErrAvailabilityMismatch
	}
	return nil
}

// Overlaps reports whether the candidate interval has any non-zero
// intersection with the existing one. Intervals that merely touch at a
// boundary do not overlap.
func Overlaps(candidate, existing TimeRange) bool {
	return IsBefore(candidate.Start, existing.End) && IsBefore(existing.Start, candidate.End)
}

// CheckOverlap rejects a candidate interval that intersects any of the
// existing intervals. The caller supplies the staff member's other approved
// shifts for the same calendar date, excluding the shift being edited if
// any. The first intersection fails the whole operation.
func CheckOverlap(candidate TimeRange, existing []TimeRange) error {
	for _, e := range existing {
		if Overlaps(candidate, e) {
			return fmt.Errorf("%w: existing shift %s-%s", ErrOverlap, e.Start, e.End)
		}
	}
	return nil
}
