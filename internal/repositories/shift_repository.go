package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"workforce_backend/internal/models"

	"github.com/lib/pq" // For pq.Error
)

// ShiftRepository defines the interface for shift and roster-audit database
// operations. Shift writes are guarded: the insert/update only lands when
// no conflicting approved shift exists for the same staff member and date,
// making "commit the validated shift" an atomic operation rather than a
// read-then-write race.
type ShiftRepository interface {
	CreateShiftGuarded(executor SQLExecutor, shift *models.Shift) (*models.Shift, error)
	UpdateShiftGuarded(executor SQLExecutor, shift *models.Shift) (*models.Shift, error)
	GetShiftByID(id int64) (*models.Shift, error)
	GetShiftsForStaffDate(staffID int64, date string) ([]models.Shift, error)
	GetShiftsForDate(date string, staffID *int64) ([]models.Shift, error)
	GetShiftsForWeek(weekStart, weekEnd string, staffID *int64) ([]models.Shift, error)
	DeleteShift(executor SQLExecutor, id int64) error
	CreateRosterAuditLog(executor SQLExecutor, entry *models.RosterAuditLog) error
}

type shiftRepository struct {
	db *sql.DB
}

// NewShiftRepository creates a new instance of ShiftRepository.
func NewShiftRepository(db *sql.DB) ShiftRepository {
	return &shiftRepository{db: db}
}

// Zero-padded HH:MM strings order lexicographically the same way they order
// as times, so the overlap guard can compare them directly in SQL.
const shiftOverlapGuard = `NOT EXISTS (
		SELECT 1 FROM shifts e
		WHERE e.staff_id = $1 AND e.date = $2 AND e.status = $5
		  AND e.id <> $6
		  AND $3 < e.end_time AND e.start_time < $4
	)`

// CreateShiftGuarded inserts an approved shift only if no approved shift
// for the same staff member and date intersects it. Returns
// ErrShiftConflict when the guard blocks the insert.
func (r *shiftRepository) CreateShiftGuarded(executor SQLExecutor, shift *models.Shift) (*models.Shift, error) {
	query := `INSERT INTO shifts (staff_id, date, start_time, end_time, status, approved_by, approved_at, created_at, updated_at)
	          SELECT $1, $2, $3, $4, $5, $7, $8, $9, $9
	          WHERE ` + shiftOverlapGuard + `
	          RETURNING id, created_at, updated_at`

	currentTime := time.Now()
	shift.Status = models.ShiftApproved
	shift.ApprovedAt = currentTime

	err := executor.QueryRow(query,
		shift.StaffID, shift.Date, shift.StartTime, shift.EndTime, shift.Status,
		int64(0), // no shift to exclude on create
		shift.ApprovedBy, shift.ApprovedAt, currentTime,
	).Scan(&shift.ID, &shift.CreatedAt, &shift.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrShiftConflict
		}
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "foreign_key_violation" {
			return nil, fmt.Errorf("%w: staff member %d not found for shift", ErrNotFound, shift.StaffID)
		}
		return nil, fmt.Errorf("%w: creating shift: %v", ErrDatabaseError, err)
	}
	return shift, nil
}

// UpdateShiftGuarded rewrites a shift's interval, excluding the shift
// itself from the overlap guard.
func (r *shiftRepository) UpdateShiftGuarded(executor SQLExecutor, shift *models.Shift) (*models.Shift, error) {
	query := `UPDATE shifts s SET start_time = $3, end_time = $4, updated_at = $7
	          WHERE s.id = $6 AND s.staff_id = $1 AND s.date = $2 AND ` + shiftOverlapGuard + `
	          RETURNING s.updated_at`

	currentTime := time.Now()
	err := executor.QueryRow(query,
		shift.StaffID, shift.Date, shift.StartTime, shift.EndTime, shift.Status,
		shift.ID, currentTime,
	).Scan(&shift.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Either the shift vanished or the guard blocked the write;
			// disambiguate so the caller can report precisely.
			if _, lookupErr := r.GetShiftByID(shift.ID); errors.Is(lookupErr, ErrNotFound) {
				return nil, ErrNotFound
			}
			return nil, ErrShiftConflict
		}
		return nil, fmt.Errorf("%w: updating shift ID %d: %v", ErrDatabaseError, shift.ID, err)
	}
	return shift, nil
}

// DATE columns come back formatted so they scan straight into the model's
// YYYY-MM-DD strings.
const shiftColumns = `s.id, s.staff_id, to_char(s.date, 'YYYY-MM-DD'), s.start_time, s.end_time, s.status,
	s.approved_by, s.approved_at, s.created_at, s.updated_at`

func scanShift(row scanner, withStaffName bool) (*models.Shift, error) {
	shift := &models.Shift{}
	var staffName sql.NullString

	dest := []interface{}{
		&shift.ID, &shift.StaffID, &shift.Date, &shift.StartTime, &shift.EndTime,
		&shift.Status, &shift.ApprovedBy, &shift.ApprovedAt, &shift.CreatedAt, &shift.UpdatedAt,
	}
	if withStaffName {
		dest = append(dest, &staffName)
	}
	if err := row.Scan(dest...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: scanning shift: %v", ErrDatabaseError, err)
	}
	if staffName.Valid {
		shift.StaffName = &staffName.String
	}
	return shift, nil
}

func (r *shiftRepository) GetShiftByID(id int64) (*models.Shift, error) {
	query := `SELECT ` + shiftColumns + `, u.name
	          FROM shifts s
	          JOIN users u ON s.staff_id = u.id
	          WHERE s.id = $1`
	return scanShift(r.db.QueryRow(query, id), true)
}

func (r *shiftRepository) queryShifts(query string, args ...interface{}) ([]models.Shift, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying shifts: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	shifts := []models.Shift{}
	for rows.Next() {
		shift, err := scanShift(rows, true)
		if err != nil {
			return nil, err
		}
		shifts = append(shifts, *shift)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating shift rows: %v", ErrDatabaseError, err)
	}
	return shifts, nil
}

// GetShiftsForStaffDate returns one staff member's approved shifts on one
// calendar date, the input to the overlap check.
func (r *shiftRepository) GetShiftsForStaffDate(staffID int64, date string) ([]models.Shift, error) {
	query := `SELECT ` + shiftColumns + `, u.name
	          FROM shifts s
	          JOIN users u ON s.staff_id = u.id
	          WHERE s.staff_id = $1 AND s.date = $2 AND s.status = $3
	          ORDER BY s.start_time ASC`
	return r.queryShifts(query, staffID, date, models.ShiftApproved)
}

// GetShiftsForDate returns all approved shifts on a date, optionally
// filtered to one staff member.
func (r *shiftRepository) GetShiftsForDate(date string, staffID *int64) ([]models.Shift, error) {
	if staffID != nil {
		return r.GetShiftsForStaffDate(*staffID, date)
	}
	query := `SELECT ` + shiftColumns + `, u.name
	          FROM shifts s
	          JOIN users u ON s.staff_id = u.id
	          WHERE s.date = $1 AND s.status = $2
	          ORDER BY s.start_time ASC, u.name ASC`
	return r.queryShifts(query, date, models.ShiftApproved)
}

// GetShiftsForWeek returns approved shifts with weekStart <= date < weekEnd.
func (r *shiftRepository) GetShiftsForWeek(weekStart, weekEnd string, staffID *int64) ([]models.Shift, error) {
	query := `SELECT ` + shiftColumns + `, u.name
	          FROM shifts s
	          JOIN users u ON s.staff_id = u.id
	          WHERE s.date >= $1 AND s.date < $2 AND s.status = $3`
	args := []interface{}{weekStart, weekEnd, models.ShiftApproved}
	if staffID != nil {
		query += ` AND s.staff_id = $4`
		args = append(args, *staffID)
	}
	query += ` ORDER BY s.date ASC, s.start_time ASC`
	return r.queryShifts(query, args...)
}

func (r *shiftRepository) DeleteShift(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM shifts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting shift ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CreateRosterAuditLog records an admin edit or removal of a shift.
func (r *shiftRepository) CreateRosterAuditLog(executor SQLExecutor, entry *models.RosterAuditLog) error {
	query := `INSERT INTO roster_audit_logs (admin_id, shift_id, staff_id, action, previous_start, previous_end, new_start, new_end, logged_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	          RETURNING id`

	entry.LoggedAt = time.Now()
	err := executor.QueryRow(query,
		entry.AdminID, entry.ShiftID, entry.StaffID, entry.Action,
		entry.PreviousStart, entry.PreviousEnd, entry.NewStart, entry.NewEnd, entry.LoggedAt,
	).Scan(&entry.ID)
	if err != nil {
		return fmt.Errorf("%w: creating roster audit log: %v", ErrDatabaseError, err)
	}
	return nil
}
