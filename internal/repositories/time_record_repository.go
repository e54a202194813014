package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"workforce_backend/internal/models"
)

// TimeRecordRepository defines the interface for raw clock-in/clock-out
// records. At most one open record (no clock-out yet) exists per staff
// member at a time.
type TimeRecordRepository interface {
	CreateClockIn(executor SQLExecutor, staffID int64, clockIn time.Time) (*models.TimeRecord, error)
	GetOpenRecord(staffID int64) (*models.TimeRecord, error)
	CloseRecord(executor SQLExecutor, recordID int64, clockOut time.Time, hoursWorked float64) (*models.TimeRecord, error)
	GetRecordsForStaffRange(staffID int64, from, to time.Time) ([]models.TimeRecord, error)
}

type timeRecordRepository struct {
	db *sql.DB
}

// NewTimeRecordRepository creates a new instance of TimeRecordRepository.
func NewTimeRecordRepository(db *sql.DB) TimeRecordRepository {
	return &timeRecordRepository{db: db}
}

const timeRecordColumns = `id, staff_id, clock_in_time, clock_out_time, hours_worked, created_at, updated_at`

func scanTimeRecord(row scanner) (*models.TimeRecord, error) {
	record := &models.TimeRecord{}
	var clockOut sql.NullTime
	var hours sql.NullFloat64

	err := row.Scan(&record.ID, &record.StaffID, &record.ClockInTime, &clockOut, &hours,
		&record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: scanning time record: %v", ErrDatabaseError, err)
	}
	if clockOut.Valid {
		record.ClockOutTime = &clockOut.Time
	}
	if hours.Valid {
		record.HoursWorked = &hours.Float64
	}
	return record, nil
}

func (r *timeRecordRepository) CreateClockIn(executor SQLExecutor, staffID int64, clockIn time.Time) (*models.TimeRecord, error) {
	query := `INSERT INTO time_records (staff_id, clock_in_time, created_at, updated_at)
	          VALUES ($1, $2, $3, $3)
	          RETURNING ` + timeRecordColumns

	return scanTimeRecord(executor.QueryRow(query, staffID, clockIn, time.Now()))
}

// GetOpenRecord returns the staff member's record with no clock-out, or
// ErrNotFound when they are not clocked in.
func (r *timeRecordRepository) GetOpenRecord(staffID int64) (*models.TimeRecord, error) {
	query := `SELECT ` + timeRecordColumns + ` FROM time_records
	          WHERE staff_id = $1 AND clock_out_time IS NULL
	          ORDER BY clock_in_time DESC
	          LIMIT 1`
	return scanTimeRecord(r.db.QueryRow(query, staffID))
}

func (r *timeRecordRepository) CloseRecord(executor SQLExecutor, recordID int64, clockOut time.Time, hoursWorked float64) (*models.TimeRecord, error) {
	query := `UPDATE time_records SET clock_out_time = $1, hours_worked = $2, updated_at = $3
	          WHERE id = $4 AND clock_out_time IS NULL
	          RETURNING ` + timeRecordColumns

	record, err := scanTimeRecord(executor.QueryRow(query, clockOut, hoursWorked, time.Now(), recordID))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("closing time record ID %d: %w", recordID, err)
	}
	return record, nil
}

func (r *timeRecordRepository) GetRecordsForStaffRange(staffID int64, from, to time.Time) ([]models.TimeRecord, error) {
	query := `SELECT ` + timeRecordColumns + ` FROM time_records
	          WHERE staff_id = $1 AND clock_in_time >= $2 AND clock_in_time < $3
	          ORDER BY clock_in_time ASC`

	rows, err := r.db.Query(query, staffID, from, to)
	if err != nil {
		return nil, fmt.Errorf("%w: querying time records: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	records := []models.TimeRecord{}
	for rows.Next() {
		record, err := scanTimeRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating time record rows: %v", ErrDatabaseError, err)
	}
	return records, nil
}
