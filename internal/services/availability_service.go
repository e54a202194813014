package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"workforce_backend/internal/models"
	"workforce_backend/internal/repositories"
	"workforce_backend/internal/scheduling"
	"workforce_backend/pkg/utils"
)

// --- Custom Service Errors for Availability ---
var (
	ErrAvailabilityNotFound   = errors.New("availability not found")
	ErrWeekStartFormat        = errors.New("invalid week start date, expected YYYY-MM-DD Monday")
	ErrDayOfWeekRange         = errors.New("day of week must be between 0 (Sunday) and 6 (Saturday)")
	ErrAvailabilityValidation = errors.New("availability validation error")
)

// --- Availability DTOs ---

type DayAvailability struct {
	DayOfWeek  int                `json:"day_of_week"`
	TimeRanges []models.TimeRange `json:"time_ranges" binding:"dive"`
}

// SubmitAvailabilityRequest replaces the staff member's availability for
// one week wholesale. Days with no ranges are simply not stored.
type SubmitAvailabilityRequest struct {
	WeekStartDate string            `json:"week_start_date" binding:"required"`
	Days          []DayAvailability `json:"days" binding:"required,dive"`
	IsRecurring   bool              `json:"is_recurring"`
}

// --- AvailabilityService Interface ---
type AvailabilityService interface {
	SubmitAvailability(staffID int64, req SubmitAvailabilityRequest) ([]models.Availability, error)
	GetAvailabilityForWeek(staffID int64, weekStartDate string) ([]models.Availability, error)
	CopyFromPreviousWeek(staffID int64, weekStartDate string) ([]DayAvailability, error)
	GetSubmittedForWeekDay(weekStartDate string, dayOfWeek int) ([]models.Availability, error)
}

// --- availabilityService Implementation ---
type availabilityService struct {
	availabilityRepo repositories.AvailabilityRepository
	db               *sql.DB
}

// NewAvailabilityService creates a new instance of AvailabilityService.
func NewAvailabilityService(ar repositories.AvailabilityRepository, db *sql.DB) AvailabilityService {
	return &availabilityService{
		availabilityRepo: ar,
		db:               db,
	}
}

// normalizeWeekStart parses a YYYY-MM-DD string and snaps it to the Monday
// of its week, so every caller-supplied date addresses the same bucket.
func normalizeWeekStart(weekStartDate string) (string, error) {
	t, err := utils.ParseDate(weekStartDate)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrWeekStartFormat, err)
	}
	return utils.WeekStart(t).Format(utils.DateLayout), nil
}

// validateRanges checks every range parses as HH:MM and is strictly
// ordered. Overlap between a staff member's own ranges is accepted as-is.
func validateRanges(ranges []models.TimeRange) error {
	for _, r := range ranges {
		parsed, err := scheduling.ParseRange(r.Start, r.End)
		if err != nil {
			return fmt.Errorf("%w: range %s-%s: %v", ErrAvailabilityValidation, r.Start, r.End, err)
		}
		if err := scheduling.CheckOrdering(parsed.Start, parsed.End); err != nil {
			return fmt.Errorf("%w: range %s-%s: %v", ErrAvailabilityValidation, r.Start, r.End, err)
		}
	}
	return nil
}

// SubmitAvailability validates and stores a week's availability inside one
// transaction: the previous submission for that week is deleted and the new
// rows inserted as SUBMITTED, so readers never see a half-replaced week.
func (s *availabilityService) SubmitAvailability(staffID int64, req SubmitAvailabilityRequest) ([]models.Availability, error) {
	weekStart, err := normalizeWeekStart(req.WeekStartDate)
	if err != nil {
		return nil, err
	}

	for _, day := range req.Days {
		if day.DayOfWeek < 0 || day.DayOfWeek > 6 {
			return nil, fmt.Errorf("%w: got %d", ErrDayOfWeekRange, day.DayOfWeek)
		}
		if err := validateRanges(day.TimeRanges); err != nil {
			return nil, err
		}
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin availability transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.availabilityRepo.DeleteForStaffWeek(tx, staffID, weekStart); err != nil {
		return nil, fmt.Errorf("failed to supersede previous availability: %w", err)
	}

	now := time.Now()
	stored := []models.Availability{}
	for _, day := range req.Days {
		if len(day.TimeRanges) == 0 {
			continue
		}
		availability := &models.Availability{
			StaffID:       staffID,
			WeekStartDate: weekStart,
			DayOfWeek:     day.DayOfWeek,
			TimeRanges:    day.TimeRanges,
			IsRecurring:   req.IsRecurring,
			Status:        models.AvailabilitySubmitted,
			SubmittedAt:   &now,
		}
		if _, err := s.availabilityRepo.Insert(tx, availability); err != nil {
			return nil, fmt.Errorf("failed to store availability for day %d: %w", day.DayOfWeek, err)
		}
		stored = append(stored, *availability)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit availability: %w", err)
	}
	return stored, nil
}

func (s *availabilityService) GetAvailabilityForWeek(staffID int64, weekStartDate string) ([]models.Availability, error) {
	weekStart, err := normalizeWeekStart(weekStartDate)
	if err != nil {
		return nil, err
	}
	availability, err := s.availabilityRepo.GetForStaffWeek(staffID, weekStart)
	if err != nil {
		return nil, fmt.Errorf("failed to get availability: %w", err)
	}
	return availability, nil
}

// CopyFromPreviousWeek returns the prior week's windows shaped as a draft
// for the requested week. Nothing is persisted until the staff member
// submits.
func (s *availabilityService) CopyFromPreviousWeek(staffID int64, weekStartDate string) ([]DayAvailability, error) {
	weekStart, err := normalizeWeekStart(weekStartDate)
	if err != nil {
		return nil, err
	}
	t, _ := utils.ParseDate(weekStart)
	previousWeek := t.AddDate(0, 0, -7).Format(utils.DateLayout)

	previous, err := s.availabilityRepo.GetForStaffWeek(staffID, previousWeek)
	if err != nil {
		return nil, fmt.Errorf("failed to load previous week availability: %w", err)
	}
	if len(previous) == 0 {
		return nil, fmt.Errorf("%w: no submission for week of %s", ErrAvailabilityNotFound, previousWeek)
	}

	days := []DayAvailability{}
	for _, a := range previous {
		days = append(days, DayAvailability{DayOfWeek: a.DayOfWeek, TimeRanges: a.TimeRanges})
	}
	return days, nil
}

func (s *availabilityService) GetSubmittedForWeekDay(weekStartDate string, dayOfWeek int) ([]models.Availability, error) {
	if dayOfWeek < 0 || dayOfWeek > 6 {
		return nil, fmt.Errorf("%w: got %d", ErrDayOfWeekRange, dayOfWeek)
	}
	weekStart, err := normalizeWeekStart(weekStartDate)
	if err != nil {
		return nil, err
	}
	availability, err := s.availabilityRepo.GetSubmittedForWeekDay(weekStart, dayOfWeek)
	if err != nil {
		return nil, fmt.Errorf("failed to get submitted availability: %w", err)
	}
	return availability, nil
}
