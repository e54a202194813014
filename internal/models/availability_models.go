package models

import "time"

// Availability submission statuses.
const (
	AvailabilityDraft     = "DRAFT"
	AvailabilitySubmitted = "SUBMITTED"
)

// TimeRange is a staff-entered availability window, "HH:MM" wall-clock
// strings in the shop's local time. Stored as-is; ordering is validated
// only at the point of use.
type TimeRange struct {
	Start string `json:"start" binding:"required,hhmm"`
	End   string `json:"end" binding:"required,hhmm"`
}

// Availability holds one staff member's windows for one day of one week.
// It is replaced wholesale each time the staff member submits availability
// for that week.
type Availability struct {
	ID            int64       `json:"id" db:"id"`
	StaffID       int64       `json:"staff_id" db:"staff_id"`
	WeekStartDate string      `json:"week_start_date" db:"week_start_date"` // Monday, YYYY-MM-DD
	DayOfWeek     int         `json:"day_of_week" db:"day_of_week"`         // 0=Sunday .. 6=Saturday
	TimeRanges    []TimeRange `json:"time_ranges" db:"time_ranges"`
	IsRecurring   bool        `json:"is_recurring" db:"is_recurring"`
	Status        string      `json:"status" db:"status"`
	SubmittedAt   *time.Time  `json:"submitted_at,omitempty" db:"submitted_at"`
	CreatedAt     time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at" db:"updated_at"`
	StaffName     *string     `json:"staff_name,omitempty"` // For joining with users
}
