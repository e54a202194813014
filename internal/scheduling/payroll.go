package scheduling

// PayRateResolutionPolicy selects which hourly rate the aggregator applies
// to approved worked hours.
type PayRateResolutionPolicy string

const (
	// RateCurrent applies the staff member's current rate to all periods,
	// so retroactive rate edits change historical reports. This mirrors
	// the source system's behavior and is the default.
	RateCurrent PayRateResolutionPolicy = "CURRENT"
	// RateSnapshotAtApproval applies the rate frozen on each timesheet at
	// approval time, falling back to the current rate when no snapshot
	// was recorded.
	RateSnapshotAtApproval PayRateResolutionPolicy = "SNAPSHOT_AT_APPROVAL"
)

// TimesheetStatus is the admin review state of a submitted timesheet.
type TimesheetStatus string

const (
	TimesheetPending  TimesheetStatus = "PENDING"
	TimesheetApproved TimesheetStatus = "APPROVED"
	TimesheetRejected TimesheetStatus = "REJECTED"
)

// TimesheetEntry is the slice of a timesheet the aggregator needs.
type TimesheetEntry struct {
	StaffID        int64
	WorkedStart    TimeOfDay
	WorkedEnd      TimeOfDay
	Status         TimesheetStatus
	RateAtApproval *float64
}

// StaffRate is a roster entry feeding the aggregation: every staff member
// listed here appears in the result, with zero totals when they have no
// approved timesheets in the period.
type StaffRate struct {
	StaffID    int64
	HourlyRate float64
}

// StaffHours is the aggregated weekly result for one staff member.
type StaffHours struct {
	StaffID  int64
	Hours    float64
	GrossPay float64
}

// AggregateHours folds approved timesheets into per-staff worked hours and
// gross pay. Only entries with status APPROVED contribute; PENDING and
// REJECTED entries are excluded entirely. Durations are summed
// arithmetically, including negative values from malformed worked times;
// data quality is the caller's concern at submission time, not here.
// The fold is pure: identical input always yields identical output.
func AggregateHours(entries []TimesheetEntry, roster []StaffRate, policy PayRateResolutionPolicy) map[int64]StaffHours {
	result := make(map[int64]StaffHours, len(roster))
	rates := make(map[int64]float64, len(roster))
	for _, r := range roster {
		rates[r.StaffID] = r.HourlyRate
		result[r.StaffID] = StaffHours{StaffID: r.StaffID}
	}

	for _, e := range entries {
		if e.Status != TimesheetApproved {
			continue
		}
		rate := rates[e.StaffID]
		if policy == RateSnapshotAtApproval && e.RateAtApproval != nil {
			rate = *e.RateAtApproval
		}
		duration := DurationHours(e.WorkedStart, e.WorkedEnd)

		agg := result[e.StaffID]
		agg.StaffID = e.StaffID
		agg.Hours += duration
		agg.GrossPay += duration * rate
		result[e.StaffID] = agg
	}
	return result
}
