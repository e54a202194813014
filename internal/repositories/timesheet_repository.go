package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"workforce_backend/internal/models"

	"github.com/lib/pq" // For pq.Error
)

// TimesheetRepository defines the interface for timesheet database
// operations. A shift can have at most one timesheet (unique shift_id);
// timesheets are never deleted, only re-statused.
type TimesheetRepository interface {
	CreateTimesheet(executor SQLExecutor, timesheet *models.Timesheet) (*models.Timesheet, error)
	GetTimesheetByID(id int64) (*models.Timesheet, error)
	GetTimesheetByShiftID(shiftID int64) (*models.Timesheet, error)
	GetTimesheetsForWeek(weekStartDate string, staffID *int64, status *string) ([]models.Timesheet, error)
	GetTimesheetsForDate(date string) ([]models.Timesheet, error)
	UpdateTimesheetReview(executor SQLExecutor, timesheet *models.Timesheet) error
}

type timesheetRepository struct {
	db *sql.DB
}

// NewTimesheetRepository creates a new instance of TimesheetRepository.
func NewTimesheetRepository(db *sql.DB) TimesheetRepository {
	return &timesheetRepository{db: db}
}

// CreateTimesheet inserts a PENDING timesheet. The unique constraint on
// shift_id enforces the one-per-shift rule at the database level.
func (r *timesheetRepository) CreateTimesheet(executor SQLExecutor, timesheet *models.Timesheet) (*models.Timesheet, error) {
	query := `INSERT INTO timesheets (shift_id, staff_id, date, week_start_date, approved_shift_start, approved_shift_end,
	                                  worked_start, worked_end, status, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)
	          RETURNING id, created_at, updated_at`

	currentTime := time.Now()
	timesheet.Status = models.TimesheetPending

	err := executor.QueryRow(query,
		timesheet.ShiftID, timesheet.StaffID, timesheet.Date, timesheet.WeekStartDate,
		timesheet.ApprovedShiftStart, timesheet.ApprovedShiftEnd,
		timesheet.WorkedStart, timesheet.WorkedEnd, timesheet.Status, currentTime,
	).Scan(&timesheet.ID, &timesheet.CreatedAt, &timesheet.UpdatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			if pqErr.Code.Name() == "unique_violation" {
				return nil, fmt.Errorf("%w: a timesheet already exists for shift %d", ErrDuplicateKey, timesheet.ShiftID)
			}
			if pqErr.Code.Name() == "foreign_key_violation" {
				return nil, fmt.Errorf("%w: shift %d or staff %d not found for timesheet", ErrNotFound, timesheet.ShiftID, timesheet.StaffID)
			}
		}
		return nil, fmt.Errorf("%w: creating timesheet: %v", ErrDatabaseError, err)
	}
	return timesheet, nil
}

// DATE columns come back formatted so they scan straight into the model's
// YYYY-MM-DD strings.
const timesheetColumns = `t.id, t.shift_id, t.staff_id, to_char(t.date, 'YYYY-MM-DD'), to_char(t.week_start_date, 'YYYY-MM-DD'),
	t.approved_shift_start, t.approved_shift_end, t.worked_start, t.worked_end,
	t.status, t.rate_at_approval, t.created_at, t.updated_at`

func scanTimesheet(row scanner, withStaffName bool) (*models.Timesheet, error) {
	timesheet := &models.Timesheet{}
	var rateAtApproval sql.NullFloat64
	var staffName sql.NullString

	dest := []interface{}{
		&timesheet.ID, &timesheet.ShiftID, &timesheet.StaffID, &timesheet.Date, &timesheet.WeekStartDate,
		&timesheet.ApprovedShiftStart, &timesheet.ApprovedShiftEnd,
		&timesheet.WorkedStart, &timesheet.WorkedEnd,
		&timesheet.Status, &rateAtApproval, &timesheet.CreatedAt, &timesheet.UpdatedAt,
	}
	if withStaffName {
		dest = append(dest, &staffName)
	}
	if err := row.Scan(dest...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: scanning timesheet: %v", ErrDatabaseError, err)
	}
	if rateAtApproval.Valid {
		timesheet.RateAtApproval = &rateAtApproval.Float64
	}
	if staffName.Valid {
		timesheet.StaffName = &staffName.String
	}
	return timesheet, nil
}

func (r *timesheetRepository) GetTimesheetByID(id int64) (*models.Timesheet, error) {
	query := `SELECT ` + timesheetColumns + `, u.name
	          FROM timesheets t
	          JOIN users u ON t.staff_id = u.id
	          WHERE t.id = $1`
	return scanTimesheet(r.db.QueryRow(query, id), true)
}

func (r *timesheetRepository) GetTimesheetByShiftID(shiftID int64) (*models.Timesheet, error) {
	query := `SELECT ` + timesheetColumns + `, u.name
	          FROM timesheets t
	          JOIN users u ON t.staff_id = u.id
	          WHERE t.shift_id = $1`
	return scanTimesheet(r.db.QueryRow(query, shiftID), true)
}

func (r *timesheetRepository) queryTimesheets(query string, args ...interface{}) ([]models.Timesheet, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying timesheets: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	timesheets := []models.Timesheet{}
	for rows.Next() {
		timesheet, err := scanTimesheet(rows, true)
		if err != nil {
			return nil, err
		}
		timesheets = append(timesheets, *timesheet)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating timesheet rows: %v", ErrDatabaseError, err)
	}
	return timesheets, nil
}

// GetTimesheetsForWeek returns timesheets for a week, optionally filtered
// by staff member and status.
func (r *timesheetRepository) GetTimesheetsForWeek(weekStartDate string, staffID *int64, status *string) ([]models.Timesheet, error) {
	query := `SELECT ` + timesheetColumns + `, u.name
	          FROM timesheets t
	          JOIN users u ON t.staff_id = u.id
	          WHERE t.week_start_date = $1`
	args := []interface{}{weekStartDate}
	argCount := 2

	if staffID != nil {
		query += fmt.Sprintf(" AND t.staff_id = $%d", argCount)
		args = append(args, *staffID)
		argCount++
	}
	if status != nil {
		query += fmt.Sprintf(" AND t.status = $%d", argCount)
		args = append(args, *status)
	}
	query += ` ORDER BY t.date ASC, u.name ASC`
	return r.queryTimesheets(query, args...)
}

// GetTimesheetsForDate returns every timesheet dated on one calendar day,
// in all statuses, for the admin review view.
func (r *timesheetRepository) GetTimesheetsForDate(date string) ([]models.Timesheet, error) {
	query := `SELECT ` + timesheetColumns + `, u.name
	          FROM timesheets t
	          JOIN users u ON t.staff_id = u.id
	          WHERE t.date = $1
	          ORDER BY u.name ASC`
	return r.queryTimesheets(query, date)
}

// UpdateTimesheetReview writes the outcome of an admin review: status,
// possibly adjusted worked times, and the rate snapshot on approval.
func (r *timesheetRepository) UpdateTimesheetReview(executor SQLExecutor, timesheet *models.Timesheet) error {
	query := `UPDATE timesheets SET worked_start = $1, worked_end = $2, status = $3, rate_at_approval = $4, updated_at = $5
	          WHERE id = $6
	          RETURNING updated_at`

	timesheet.UpdatedAt = time.Now()
	err := executor.QueryRow(query,
		timesheet.WorkedStart, timesheet.WorkedEnd, timesheet.Status,
		timesheet.RateAtApproval, timesheet.UpdatedAt, timesheet.ID,
	).Scan(&timesheet.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("%w: updating timesheet ID %d: %v", ErrDatabaseError, timesheet.ID, err)
	}
	return nil
}
