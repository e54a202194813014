package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"workforce_backend/internal/models"
	"workforce_backend/internal/repositories"
)

// --- Custom Service Errors for Time Records ---
var (
	ErrAlreadyClockedIn = errors.New("staff member is already clocked in")
	ErrNotClockedIn     = errors.New("staff member is not clocked in")
)

// ClockStatus reports whether a staff member currently has an open record.
type ClockStatus struct {
	ClockedIn  bool               `json:"clocked_in"`
	OpenRecord *models.TimeRecord `json:"open_record,omitempty"`
}

// --- ClockService Interface ---
type ClockService interface {
	ClockIn(staffID int64) (*models.TimeRecord, error)
	ClockOut(staffID int64) (*models.TimeRecord, error)
	GetStatus(staffID int64) (*ClockStatus, error)
	GetRecordsForStaffRange(staffID int64, from, to time.Time) ([]models.TimeRecord, error)
}

// --- clockService Implementation ---
type clockService struct {
	timeRecordRepo repositories.TimeRecordRepository
	db             *sql.DB
	now            func() time.Time
}

func NewClockService(rr repositories.TimeRecordRepository, db *sql.DB) ClockService {
	return &clockService{timeRecordRepo: rr, db: db, now: time.Now}
}

// ClockIn opens a time record at the current wall-clock time. A staff
// member can hold at most one open record.
func (s *clockService) ClockIn(staffID int64) (*models.TimeRecord, error) {
	_, err := s.timeRecordRepo.GetOpenRecord(staffID)
	if err == nil {
		return nil, ErrAlreadyClockedIn
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to check open time record: %w", err)
	}

	record, err := s.timeRecordRepo.CreateClockIn(s.db, staffID, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to clock in: %w", err)
	}
	return record, nil
}

// ClockOut closes the open record and computes hours worked from the
// wall-clock interval between clock-in and clock-out.
func (s *clockService) ClockOut(staffID int64) (*models.TimeRecord, error) {
	open, err := s.timeRecordRepo.GetOpenRecord(staffID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotClockedIn
		}
		return nil, fmt.Errorf("failed to check open time record: %w", err)
	}

	clockOut := s.now()
	hours := clockOut.Sub(open.ClockInTime).Hours()
	record, err := s.timeRecordRepo.CloseRecord(s.db, open.ID, clockOut, hours)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotClockedIn
		}
		return nil, fmt.Errorf("failed to clock out: %w", err)
	}
	return record, nil
}

func (s *clockService) GetStatus(staffID int64) (*ClockStatus, error) {
	open, err := s.timeRecordRepo.GetOpenRecord(staffID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return &ClockStatus{ClockedIn: false}, nil
		}
		return nil, fmt.Errorf("failed to check open time record: %w", err)
	}
	return &ClockStatus{ClockedIn: true, OpenRecord: open}, nil
}

func (s *clockService) GetRecordsForStaffRange(staffID int64, from, to time.Time) ([]models.TimeRecord, error) {
	records, err := s.timeRecordRepo.GetRecordsForStaffRange(staffID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to get time records: %w", err)
	}
	return records, nil
}
