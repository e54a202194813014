package models

import "time"

// ShiftApproved is the only shift status: proposals that fail validation
// are never persisted.
const ShiftApproved = "APPROVED"

// Roster audit actions.
const (
	RosterActionEdit   = "EDIT"
	RosterActionRemove = "REMOVE"
)

// Shift is an admin-approved, staff-specific, single-day work interval.
type Shift struct {
	ID         int64     `json:"id" db:"id"`
	StaffID    int64     `json:"staff_id" db:"staff_id"`
	Date       string    `json:"date" db:"date"` // YYYY-MM-DD
	StartTime  string    `json:"start_time" db:"start_time"`
	EndTime    string    `json:"end_time" db:"end_time"`
	Status     string    `json:"status" db:"status"`
	ApprovedBy int64     `json:"approved_by" db:"approved_by"`
	ApprovedAt time.Time `json:"approved_at" db:"approved_at"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
	StaffName  *string   `json:"staff_name,omitempty"` // For joining with users
}

// RosterAuditLog records admin edits and removals of approved shifts.
type RosterAuditLog struct {
	ID            int64     `json:"id" db:"id"`
	AdminID       int64     `json:"admin_id" db:"admin_id"`
	ShiftID       int64     `json:"shift_id" db:"shift_id"`
	StaffID       int64     `json:"staff_id" db:"staff_id"`
	Action        string    `json:"action" db:"action"`
	PreviousStart *string   `json:"previous_start,omitempty" db:"previous_start"`
	PreviousEnd   *string   `json:"previous_end,omitempty" db:"previous_end"`
	NewStart      *string   `json:"new_start,omitempty" db:"new_start"`
	NewEnd        *string   `json:"new_end,omitempty" db:"new_end"`
	LoggedAt      time.Time `json:"logged_at" db:"logged_at"`
}
