package repositories

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"workforce_backend/internal/models"
)

// AvailabilityRepository defines the interface for availability database
// operations. Submissions replace a staff member's rows for a week
// wholesale, so writes are expected to run inside one transaction.
type AvailabilityRepository interface {
	DeleteForStaffWeek(executor SQLExecutor, staffID int64, weekStartDate string) error
	Insert(executor SQLExecutor, availability *models.Availability) (*models.Availability, error)
	GetForStaffWeek(staffID int64, weekStartDate string) ([]models.Availability, error)
	GetSubmittedForWeekDay(weekStartDate string, dayOfWeek int) ([]models.Availability, error)
	GetSubmittedForStaffWeekDay(staffID int64, weekStartDate string, dayOfWeek int) (*models.Availability, error)
}

type availabilityRepository struct {
	db *sql.DB
}

// NewAvailabilityRepository creates a new instance of AvailabilityRepository.
func NewAvailabilityRepository(db *sql.DB) AvailabilityRepository {
	return &availabilityRepository{db: db}
}

// DeleteForStaffWeek removes every availability row for one staff member
// and week. The next submission supersedes the previous one entirely.
func (r *availabilityRepository) DeleteForStaffWeek(executor SQLExecutor, staffID int64, weekStartDate string) error {
	_, err := executor.Exec(`DELETE FROM availability WHERE staff_id = $1 AND week_start_date = $2`,
		staffID, weekStartDate)
	if err != nil {
		return fmt.Errorf("%w: deleting availability for staff %d week %s: %v", ErrDatabaseError, staffID, weekStartDate, err)
	}
	return nil
}

// Insert stores one day's availability. TimeRanges are persisted as jsonb.
func (r *availabilityRepository) Insert(executor SQLExecutor, availability *models.Availability) (*models.Availability, error) {
	rangesJSON, err := json.Marshal(availability.TimeRanges)
	if err != nil {
		return nil, fmt.Errorf("%w: encoding time ranges: %v", ErrDatabaseError, err)
	}

	query := `INSERT INTO availability (staff_id, week_start_date, day_of_week, time_ranges, is_recurring, status, submitted_at, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	          RETURNING id, created_at, updated_at`

	currentTime := time.Now()
	availability.CreatedAt = currentTime
	availability.UpdatedAt = currentTime

	err = executor.QueryRow(query,
		availability.StaffID, availability.WeekStartDate, availability.DayOfWeek,
		rangesJSON, availability.IsRecurring, availability.Status,
		availability.SubmittedAt, availability.CreatedAt, availability.UpdatedAt,
	).Scan(&availability.ID, &availability.CreatedAt, &availability.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("%w: inserting availability: %v", ErrDatabaseError, err)
	}
	return availability, nil
}

func scanAvailabilityRows(rows *sql.Rows, withStaffName bool) ([]models.Availability, error) {
	result := []models.Availability{}
	for rows.Next() {
		var a models.Availability
		var rangesJSON []byte
		var submittedAt sql.NullTime
		var staffName sql.NullString

		dest := []interface{}{
			&a.ID, &a.StaffID, &a.WeekStartDate, &a.DayOfWeek, &rangesJSON,
			&a.IsRecurring, &a.Status, &submittedAt, &a.CreatedAt, &a.UpdatedAt,
		}
		if withStaffName {
			dest = append(dest, &staffName)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("%w: scanning availability: %v", ErrDatabaseError, err)
		}

		if err := json.Unmarshal(rangesJSON, &a.TimeRanges); err != nil {
			return nil, fmt.Errorf("%w: decoding time ranges for availability ID %d: %v", ErrDatabaseError, a.ID, err)
		}
		if submittedAt.Valid {
			a.SubmittedAt = &submittedAt.Time
		}
		if staffName.Valid {
			a.StaffName = &staffName.String
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating availability rows: %v", ErrDatabaseError, err)
	}
	return result, nil
}

// week_start_date is a DATE; formatting it in SQL lets it scan straight
// into the model's YYYY-MM-DD string.
const availabilityColumns = `a.id, a.staff_id, to_char(a.week_start_date, 'YYYY-MM-DD'), a.day_of_week, a.time_ranges,
	a.is_recurring, a.status, a.submitted_at, a.created_at, a.updated_at`

// GetForStaffWeek returns all availability rows one staff member holds for
// a week, in every status.
func (r *availabilityRepository) GetForStaffWeek(staffID int64, weekStartDate string) ([]models.Availability, error) {
	query := `SELECT ` + availabilityColumns + `
	          FROM availability a
	          WHERE a.staff_id = $1 AND a.week_start_date = $2
	          ORDER BY a.day_of_week ASC`

	rows, err := r.db.Query(query, staffID, weekStartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: querying availability for staff %d: %v", ErrDatabaseError, staffID, err)
	}
	defer rows.Close()
	return scanAvailabilityRows(rows, false)
}

// GetSubmittedForWeekDay returns all SUBMITTED availability for one
// week/day pair across the roster, with staff names joined for display.
func (r *availabilityRepository) GetSubmittedForWeekDay(weekStartDate string, dayOfWeek int) ([]models.Availability, error) {
	query := `SELECT ` + availabilityColumns + `, u.name
	          FROM availability a
	          JOIN users u ON a.staff_id = u.id
	          WHERE a.week_start_date = $1 AND a.day_of_week = $2 AND a.status = $3
	          ORDER BY u.name ASC`

	rows, err := r.db.Query(query, weekStartDate, dayOfWeek, models.AvailabilitySubmitted)
	if err != nil {
		return nil, fmt.Errorf("%w: querying submitted availability: %v", ErrDatabaseError, err)
	}
	defer rows.Close()
	return scanAvailabilityRows(rows, true)
}

// GetSubmittedForStaffWeekDay returns the single SUBMITTED availability row
// for one staff member on one day, or ErrNotFound.
func (r *availabilityRepository) GetSubmittedForStaffWeekDay(staffID int64, weekStartDate string, dayOfWeek int) (*models.Availability, error) {
	query := `SELECT ` + availabilityColumns + `
	          FROM availability a
	          WHERE a.staff_id = $1 AND a.week_start_date = $2 AND a.day_of_week = $3 AND a.status = $4
	          ORDER BY a.updated_at DESC
	          LIMIT 1`

	rows, err := r.db.Query(query, staffID, weekStartDate, dayOfWeek, models.AvailabilitySubmitted)
	if err != nil {
		return nil, fmt.Errorf("%w: querying availability for staff %d day %d: %v", ErrDatabaseError, staffID, dayOfWeek, err)
	}
	defer rows.Close()

	result, err := scanAvailabilityRows(rows, false)
	if err != nil {
		return nil, err
	}
	if len(result) == 0 {
		return nil, ErrNotFound
	}
	return &result[0], nil
}
