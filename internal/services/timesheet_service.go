package services

import (
	"database/sql"
	"errors"
	"fmt"

	"workforce_backend/internal/models"
	"workforce_backend/internal/repositories"
	"workforce_backend/internal/scheduling"
	"workforce_backend/pkg/utils"
)

// --- Custom Service Errors for Timesheets ---
var (
	ErrTimesheetNotFound      = errors.New("timesheet not found")
	ErrTimesheetExists        = errors.New("a timesheet has already been submitted for this shift")
	ErrTimesheetNotOwned      = errors.New("shift does not belong to the submitting staff member")
	ErrTimesheetNotPending    = errors.New("timesheet has already been reviewed")
	ErrTimesheetReviewInvalid = errors.New("invalid timesheet review decision")
)

// --- Timesheet DTOs ---
type SubmitTimesheetRequest struct {
	ShiftID     int64  `json:"shift_id" binding:"required"`
	WorkedStart string `json:"worked_start" binding:"required,hhmm"`
	WorkedEnd   string `json:"worked_end" binding:"required,hhmm"`
}

type ReviewTimesheetRequest struct {
	Status      string  `json:"status" binding:"required,oneof=APPROVED REJECTED"`
	WorkedStart *string `json:"worked_start" binding:"omitempty,hhmm"`
	WorkedEnd   *string `json:"worked_end" binding:"omitempty,hhmm"`
}

// --- TimesheetService Interface ---
type TimesheetService interface {
	SubmitTimesheet(staffID int64, req SubmitTimesheetRequest) (*models.Timesheet, error)
	ReviewTimesheet(timesheetID int64, req ReviewTimesheetRequest) (*models.Timesheet, error)
	GetTimesheetByID(timesheetID int64) (*models.Timesheet, error)
	GetTimesheetsForWeek(weekStartDate string, staffID *int64, status *string) ([]models.Timesheet, error)
	GetTimesheetsForDate(date string) ([]models.Timesheet, error)
}

// --- timesheetService Implementation ---
type timesheetService struct {
	timesheetRepo repositories.TimesheetRepository
	shiftRepo     repositories.ShiftRepository
	authRepo      repositories.AuthRepository
	db            *sql.DB
}

func NewTimesheetService(
	tr repositories.TimesheetRepository,
	sr repositories.ShiftRepository,
	ur repositories.AuthRepository,
	db *sql.DB,
) TimesheetService {
	return &timesheetService{timesheetRepo: tr, shiftRepo: sr, authRepo: ur, db: db}
}

// SubmitTimesheet records the hours a staff member claims against one of
// their own shifts. The approved interval is denormalized onto the
// timesheet so later shift edits cannot rewrite what was agreed.
func (s *timesheetService) SubmitTimesheet(staffID int64, req SubmitTimesheetRequest) (*models.Timesheet, error) {
	shift, err := s.shiftRepo.GetShiftByID(req.ShiftID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrShiftNotFound
		}
		return nil, fmt.Errorf("failed to load shift for timesheet: %w", err)
	}
	if shift.StaffID != staffID {
		return nil, ErrTimesheetNotOwned
	}

	worked, err := scheduling.ParseRange(req.WorkedStart, req.WorkedEnd)
	if err != nil {
		return nil, err
	}
	if err := scheduling.CheckOrdering(worked.Start, worked.End); err != nil {
		return nil, err
	}

	shiftDate, err := utils.ParseDate(shift.Date)
	if err != nil {
		return nil, fmt.Errorf("shift %d has malformed date: %w", shift.ID, err)
	}

	timesheet := &models.Timesheet{
		ShiftID:            shift.ID,
		StaffID:            staffID,
		Date:               shift.Date,
		WeekStartDate:      utils.WeekStart(shiftDate).Format(utils.DateLayout),
		ApprovedShiftStart: shift.StartTime,
		ApprovedShiftEnd:   shift.EndTime,
		WorkedStart:        worked.Start.String(),
		WorkedEnd:          worked.End.String(),
	}
	created, err := s.timesheetRepo.CreateTimesheet(s.db, timesheet)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrTimesheetExists
		}
		return nil, fmt.Errorf("failed to create timesheet: %w", err)
	}
	return created, nil
}

// ReviewTimesheet applies an admin's approve/reject decision. On approval
// the admin may adjust the worked interval, and the staff member's current
// hourly rate is snapshotted so later rate changes cannot reprice the week
// when the snapshot policy is in force.
func (s *timesheetService) ReviewTimesheet(timesheetID int64, req ReviewTimesheetRequest) (*models.Timesheet, error) {
	timesheet, err := s.GetTimesheetByID(timesheetID)
	if err != nil {
		return nil, err
	}
	if timesheet.Status != models.TimesheetPending {
		return nil, ErrTimesheetNotPending
	}

	switch req.Status {
	case models.TimesheetApproved:
		workedStart, workedEnd := timesheet.WorkedStart, timesheet.WorkedEnd
		if req.WorkedStart != nil {
			workedStart = *req.WorkedStart
		}
		if req.WorkedEnd != nil {
			workedEnd = *req.WorkedEnd
		}
		worked, err := scheduling.ParseRange(workedStart, workedEnd)
		if err != nil {
			return nil, err
		}
		if err := scheduling.CheckOrdering(worked.Start, worked.End); err != nil {
			return nil, err
		}
		timesheet.WorkedStart = worked.Start.String()
		timesheet.WorkedEnd = worked.End.String()
		timesheet.Status = models.TimesheetApproved

		staff, err := s.authRepo.FindUserByID(timesheet.StaffID)
		if err != nil {
			return nil, fmt.Errorf("failed to load staff member for rate snapshot: %w", err)
		}
		rate := staff.HourlyRate
		timesheet.RateAtApproval = &rate
	case models.TimesheetRejected:
		timesheet.Status = models.TimesheetRejected
	default:
		return nil, fmt.Errorf("%w: %s", ErrTimesheetReviewInvalid, req.Status)
	}

	if err := s.timesheetRepo.UpdateTimesheetReview(s.db, timesheet); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrTimesheetNotFound
		}
		return nil, fmt.Errorf("failed to review timesheet: %w", err)
	}
	return s.GetTimesheetByID(timesheet.ID)
}

func (s *timesheetService) GetTimesheetByID(timesheetID int64) (*models.Timesheet, error) {
	timesheet, err := s.timesheetRepo.GetTimesheetByID(timesheetID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrTimesheetNotFound
		}
		return nil, fmt.Errorf("failed to get timesheet by ID: %w", err)
	}
	return timesheet, nil
}

func (s *timesheetService) GetTimesheetsForWeek(weekStartDate string, staffID *int64, status *string) ([]models.Timesheet, error) {
	weekStart, err := normalizeWeekStart(weekStartDate)
	if err != nil {
		return nil, err
	}
	timesheets, err := s.timesheetRepo.GetTimesheetsForWeek(weekStart, staffID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to get timesheets for week: %w", err)
	}
	return timesheets, nil
}

func (s *timesheetService) GetTimesheetsForDate(date string) ([]models.Timesheet, error) {
	if _, err := utils.ParseDate(date); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrShiftDateFormat, err)
	}
	timesheets, err := s.timesheetRepo.GetTimesheetsForDate(date)
	if err != nil {
		return nil, fmt.Errorf("failed to get timesheets for day: %w", err)
	}
	return timesheets, nil
}
