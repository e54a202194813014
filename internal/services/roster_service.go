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

// --- Custom Service Errors for Roster ---
var (
	ErrShiftNotFound   = errors.New("shift not found")
	ErrShiftDateFormat = errors.New("invalid shift date, expected YYYY-MM-DD")
)

// --- Shift DTOs ---
type CreateShiftRequest struct {
	StaffID   int64  `json:"staff_id" binding:"required"`
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"start_time" binding:"required,hhmm"`
	EndTime   string `json:"end_time" binding:"required,hhmm"`
}

type UpdateShiftRequest struct {
	StartTime string `json:"start_time" binding:"required,hhmm"`
	EndTime   string `json:"end_time" binding:"required,hhmm"`
}

// --- RosterService Interface ---
type RosterService interface {
	CreateShift(adminID int64, req CreateShiftRequest) (*models.Shift, error)
	UpdateShift(adminID int64, shiftID int64, req UpdateShiftRequest) (*models.Shift, error)
	RemoveShift(adminID int64, shiftID int64) error
	GetShiftByID(shiftID int64) (*models.Shift, error)
	GetShiftsForDate(date string, staffID *int64) ([]models.Shift, error)
	GetShiftsForWeek(weekStartDate string, staffID *int64) ([]models.Shift, error)
}

// --- rosterService Implementation ---
type rosterService struct {
	shiftRepo        repositories.ShiftRepository
	availabilityRepo repositories.AvailabilityRepository
	authRepo         repositories.AuthRepository
	operatingHours   scheduling.OperatingHours
	db               *sql.DB
}

// NewRosterService creates a new instance of RosterService. Operating hours
// are injected configuration so the validation pipeline is testable against
// arbitrary open/close windows.
func NewRosterService(
	sr repositories.ShiftRepository,
	ar repositories.AvailabilityRepository,
	ur repositories.AuthRepository,
	operatingHours scheduling.OperatingHours,
	db *sql.DB,
) RosterService {
	return &rosterService{
		shiftRepo:        sr,
		availabilityRepo: ar,
		authRepo:         ur,
		operatingHours:   operatingHours,
		db:               db,
	}
}

// parseShiftTimes runs the format, ordering and operating-hours gates, in
// that order, short-circuiting on the first failure.
func (s *rosterService) parseShiftTimes(startStr, endStr string) (scheduling.TimeRange, error) {
	candidate, err := scheduling.ParseRange(startStr, endStr)
	if err != nil {
		return scheduling.TimeRange{}, err
	}
	if err := scheduling.CheckOrdering(candidate.Start, candidate.End); err != nil {
		return scheduling.TimeRange{}, err
	}
	if err := s.operatingHours.CheckOperatingHours(candidate.Start, candidate.End); err != nil {
		return scheduling.TimeRange{}, err
	}
	return candidate, nil
}

// availabilityRanges loads the staff member's SUBMITTED windows for the
// shift's day. When none exist and a fallback is allowed (shift edits), a
// full-day window stands in, mirroring how edits behave when availability
// was never submitted for that day.
func (s *rosterService) availabilityRanges(staffID int64, date string, fallbackFullDay bool) ([]scheduling.TimeRange, error) {
	day, err := utils.ParseDate(date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrShiftDateFormat, err)
	}
	weekStart := utils.WeekStart(day).Format(utils.DateLayout)
	dayOfWeek := int(day.Weekday())

	availability, err := s.availabilityRepo.GetSubmittedForStaffWeekDay(staffID, weekStart, dayOfWeek)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			if fallbackFullDay {
				return []scheduling.TimeRange{{
					Start: scheduling.TimeOfDay{Hour: 0, Minute: 0},
					End:   scheduling.TimeOfDay{Hour: 23, Minute: 59},
				}}, nil
			}
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load availability for overlap check: %w", err)
	}

	ranges := make([]scheduling.TimeRange, 0, len(availability.TimeRanges))
	for _, r := range availability.TimeRanges {
		parsed, err := scheduling.ParseRange(r.Start, r.End)
		if err != nil {
			// Ranges are validated at submission; a malformed stored range
			// means corrupt data, not a user error.
			return nil, fmt.Errorf("stored availability range %s-%s is malformed: %w", r.Start, r.End, err)
		}
		ranges = append(ranges, parsed)
	}
	return ranges, nil
}

// existingShiftRanges converts a staff member's other approved shifts on a
// date into intervals for the overlap check, excluding excludeShiftID.
func (s *rosterService) existingShiftRanges(staffID int64, date string, excludeShiftID int64) ([]scheduling.TimeRange, error) {
	existing, err := s.shiftRepo.GetShiftsForStaffDate(staffID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load existing shifts for overlap check: %w", err)
	}
	ranges := make([]scheduling.TimeRange, 0, len(existing))
	for _, shift := range existing {
		if shift.ID == excludeShiftID {
			continue
		}
		parsed, err := scheduling.ParseRange(shift.StartTime, shift.EndTime)
		if err != nil {
			return nil, fmt.Errorf("stored shift %d has malformed times: %w", shift.ID, err)
		}
		ranges = append(ranges, parsed)
	}
	return ranges, nil
}

// CreateShift runs the full approval pipeline and commits the shift
// atomically. Shifts that fail any gate are never persisted.
func (s *rosterService) CreateShift(adminID int64, req CreateShiftRequest) (*models.Shift, error) {
	candidate, err := s.parseShiftTimes(req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	staff, err := s.authRepo.FindUserByID(req.StaffID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: staff ID %d", ErrStaffNotFound, req.StaffID)
		}
		return nil, fmt.Errorf("failed to validate staff member for shift: %w", err)
	}
	if staff.Role != models.RoleStaff || !staff.IsActive {
		return nil, fmt.Errorf("%w: staff ID %d", ErrStaffNotFound, req.StaffID)
	}

	ranges, err := s.availabilityRanges(req.StaffID, req.Date, false)
	if err != nil {
		return nil, err
	}
	if err := scheduling.CheckAvailability(candidate.Start, candidate.End, ranges); err != nil {
		return nil, err
	}

	existing, err := s.existingShiftRanges(req.StaffID, req.Date, 0)
	if err != nil {
		return nil, err
	}
	if err := scheduling.CheckOverlap(candidate, existing); err != nil {
		return nil, err
	}

	shift := &models.Shift{
		StaffID:    req.StaffID,
		Date:       req.Date,
		StartTime:  candidate.Start.String(),
		EndTime:    candidate.End.String(),
		ApprovedBy: adminID,
	}
	created, err := s.shiftRepo.CreateShiftGuarded(s.db, shift)
	if err != nil {
		if errors.Is(err, repositories.ErrShiftConflict) {
			// A concurrent admin committed an overlapping shift between
			// our validation read and the guarded write.
			return nil, scheduling.ErrOverlap
		}
		return nil, fmt.Errorf("failed to create shift: %w", err)
	}
	return s.shiftRepo.GetShiftByID(created.ID)
}

// UpdateShift revalidates the edited interval, excluding the shift itself
// from the overlap check, and audit-logs the edit.
func (s *rosterService) UpdateShift(adminID int64, shiftID int64, req UpdateShiftRequest) (*models.Shift, error) {
	shift, err := s.GetShiftByID(shiftID)
	if err != nil {
		return nil, err
	}

	candidate, err := s.parseShiftTimes(req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	ranges, err := s.availabilityRanges(shift.StaffID, shift.Date, true)
	if err != nil {
		return nil, err
	}
	if err := scheduling.CheckAvailability(candidate.Start, candidate.End, ranges); err != nil {
		return nil, err
	}

	existing, err := s.existingShiftRanges(shift.StaffID, shift.Date, shift.ID)
	if err != nil {
		return nil, err
	}
	if err := scheduling.CheckOverlap(candidate, existing); err != nil {
		return nil, err
	}

	previousStart, previousEnd := shift.StartTime, shift.EndTime
	shift.StartTime = candidate.Start.String()
	shift.EndTime = candidate.End.String()

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin shift update transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := s.shiftRepo.UpdateShiftGuarded(tx, shift); err != nil {
		if errors.Is(err, repositories.ErrShiftConflict) {
			return nil, scheduling.ErrOverlap
		}
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrShiftNotFound
		}
		return nil, fmt.Errorf("failed to update shift: %w", err)
	}

	auditEntry := &models.RosterAuditLog{
		AdminID:       adminID,
		ShiftID:       shift.ID,
		StaffID:       shift.StaffID,
		Action:        models.RosterActionEdit,
		PreviousStart: &previousStart,
		PreviousEnd:   &previousEnd,
		NewStart:      &shift.StartTime,
		NewEnd:        &shift.EndTime,
	}
	if err := s.shiftRepo.CreateRosterAuditLog(tx, auditEntry); err != nil {
		return nil, fmt.Errorf("failed to audit shift edit: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit shift update: %w", err)
	}
	return s.shiftRepo.GetShiftByID(shift.ID)
}

// RemoveShift deletes a shift and audit-logs the REMOVE in one transaction.
func (s *rosterService) RemoveShift(adminID int64, shiftID int64) error {
	shift, err := s.GetShiftByID(shiftID)
	if err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin shift removal transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.shiftRepo.DeleteShift(tx, shiftID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrShiftNotFound
		}
		return fmt.Errorf("failed to delete shift: %w", err)
	}

	auditEntry := &models.RosterAuditLog{
		AdminID:       adminID,
		ShiftID:       shift.ID,
		StaffID:       shift.StaffID,
		Action:        models.RosterActionRemove,
		PreviousStart: &shift.StartTime,
		PreviousEnd:   &shift.EndTime,
	}
	if err := s.shiftRepo.CreateRosterAuditLog(tx, auditEntry); err != nil {
		return fmt.Errorf("failed to audit shift removal: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit shift removal: %w", err)
	}
	return nil
}

func (s *rosterService) GetShiftByID(shiftID int64) (*models.Shift, error) {
	shift, err := s.shiftRepo.GetShiftByID(shiftID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrShiftNotFound
		}
		return nil, fmt.Errorf("failed to get shift by ID: %w", err)
	}
	return shift, nil
}

func (s *rosterService) GetShiftsForDate(date string, staffID *int64) ([]models.Shift, error) {
	if _, err := utils.ParseDate(date); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrShiftDateFormat, err)
	}
	shifts, err := s.shiftRepo.GetShiftsForDate(date, staffID)
	if err != nil {
		return nil, fmt.Errorf("failed to get shifts: %w", err)
	}
	return shifts, nil
}

func (s *rosterService) GetShiftsForWeek(weekStartDate string, staffID *int64) ([]models.Shift, error) {
	weekStart, err := normalizeWeekStart(weekStartDate)
	if err != nil {
		return nil, err
	}
	start, _ := utils.ParseDate(weekStart)
	weekEnd := start.AddDate(0, 0, 7).Format(utils.DateLayout)

	shifts, err := s.shiftRepo.GetShiftsForWeek(weekStart, weekEnd, staffID)
	if err != nil {
		return nil, fmt.Errorf("failed to get shifts for week: %w", err)
	}
	return shifts, nil
}
