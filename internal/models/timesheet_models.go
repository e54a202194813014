package models

import "time"

// Timesheet statuses.
const (
	TimesheetPending  = "PENDING"
	TimesheetApproved = "APPROVED"
	TimesheetRejected = "REJECTED"
)

// Timesheet is a staff-submitted record of actually-worked time against one
// approved shift, subject to admin approval. At most one exists per shift,
// and it is never auto-deleted. The rostered interval is denormalized onto
// the row so later shift edits cannot rewrite it.
type Timesheet struct {
	ID                 int64     `json:"id" db:"id"`
	ShiftID            int64     `json:"shift_id" db:"shift_id"`
	StaffID            int64     `json:"staff_id" db:"staff_id"`
	Date               string    `json:"date" db:"date"` // YYYY-MM-DD
	WeekStartDate      string    `json:"week_start_date" db:"week_start_date"`
	ApprovedShiftStart string    `json:"approved_shift_start" db:"approved_shift_start"`
	ApprovedShiftEnd   string    `json:"approved_shift_end" db:"approved_shift_end"`
	WorkedStart        string    `json:"worked_start" db:"worked_start"`
	WorkedEnd          string    `json:"worked_end" db:"worked_end"`
	Status             string    `json:"status" db:"status"`
	RateAtApproval     *float64  `json:"rate_at_approval,omitempty" db:"rate_at_approval"`
	CreatedAt          time.Time `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time `json:"updated_at" db:"updated_at"`
	StaffName          *string   `json:"staff_name,omitempty"` // For joining with users
}

// TimeRecord is a raw clock-in/clock-out pair. HoursWorked is computed
// when the staff member clocks out.
type TimeRecord struct {
	ID           int64      `json:"id" db:"id"`
	StaffID      int64      `json:"staff_id" db:"staff_id"`
	ClockInTime  time.Time  `json:"clock_in_time" db:"clock_in_time"`
	ClockOutTime *time.Time `json:"clock_out_time,omitempty" db:"clock_out_time"`
	HoursWorked  *float64   `json:"hours_worked,omitempty" db:"hours_worked"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
}
