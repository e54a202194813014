package models

import "time"

// User roles. Staff submit availability and timesheets; admins manage the
// roster and approvals.
const (
	RoleStaff = "STAFF"
	RoleAdmin = "ADMIN"
)

// User represents a staff member or admin. Users double as the staff
// roster: every STAFF user carries an hourly pay rate and an active flag.
type User struct {
	ID           int64     `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"` // '-' means don't send in JSON response
	Role         string    `json:"role" db:"role"`
	HourlyRate   float64   `json:"hourly_rate" db:"hourly_rate"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}
