package services

import (
	"time"

	"workforce_backend/internal/models"
	"workforce_backend/internal/repositories"
)

// Hand-written repository mocks. Each method delegates to an optional
// function field; unset fields return ErrNotFound so tests only wire the
// calls they care about.

type mockAuthRepo struct {
	createUserFn      func(user *models.User, hashedPassword string) (int64, error)
	findUserByEmailFn func(email string) (*models.User, string, error)
	findUserByIDFn    func(userID int64) (*models.User, error)
	listStaffFn       func(activeOnly bool) ([]models.User, error)
	updateUserFn      func(user *models.User) error
	updatePasswordFn  func(userID int64, hashedPassword string) error
	setActiveFn       func(userID int64, active bool) error
}

func (m *mockAuthRepo) CreateUser(_ repositories.SQLExecutor, user *models.User, hashedPassword string) (int64, error) {
	if m.createUserFn == nil {
		return 0, repositories.ErrDatabaseError
	}
	return m.createUserFn(user, hashedPassword)
}

func (m *mockAuthRepo) FindUserByEmail(email string) (*models.User, string, error) {
	if m.findUserByEmailFn == nil {
		return nil, "", repositories.ErrNotFound
	}
	return m.findUserByEmailFn(email)
}

func (m *mockAuthRepo) FindUserByID(userID int64) (*models.User, error) {
	if m.findUserByIDFn == nil {
		return nil, repositories.ErrNotFound
	}
	return m.findUserByIDFn(userID)
}

func (m *mockAuthRepo) ListStaff(activeOnly bool) ([]models.User, error) {
	if m.listStaffFn == nil {
		return nil, nil
	}
	return m.listStaffFn(activeOnly)
}

func (m *mockAuthRepo) UpdateUser(_ repositories.SQLExecutor, user *models.User) error {
	if m.updateUserFn == nil {
		return repositories.ErrNotFound
	}
	return m.updateUserFn(user)
}

func (m *mockAuthRepo) UpdatePassword(_ repositories.SQLExecutor, userID int64, hashedPassword string) error {
	if m.updatePasswordFn == nil {
		return repositories.ErrNotFound
	}
	return m.updatePasswordFn(userID, hashedPassword)
}

func (m *mockAuthRepo) SetActive(_ repositories.SQLExecutor, userID int64, active bool) error {
	if m.setActiveFn == nil {
		return repositories.ErrNotFound
	}
	return m.setActiveFn(userID, active)
}

type mockShiftRepo struct {
	createShiftGuardedFn    func(shift *models.Shift) (*models.Shift, error)
	updateShiftGuardedFn    func(shift *models.Shift) (*models.Shift, error)
	getShiftByIDFn          func(id int64) (*models.Shift, error)
	getShiftsForStaffDateFn func(staffID int64, date string) ([]models.Shift, error)
	getShiftsForDateFn      func(date string, staffID *int64) ([]models.Shift, error)
	getShiftsForWeekFn      func(weekStart, weekEnd string, staffID *int64) ([]models.Shift, error)
	deleteShiftFn           func(id int64) error
	auditLogs               []models.RosterAuditLog
}

func (m *mockShiftRepo) CreateShiftGuarded(_ repositories.SQLExecutor, shift *models.Shift) (*models.Shift, error) {
	if m.createShiftGuardedFn == nil {
		return nil, repositories.ErrDatabaseError
	}
	return m.createShiftGuardedFn(shift)
}

func (m *mockShiftRepo) UpdateShiftGuarded(_ repositories.SQLExecutor, shift *models.Shift) (*models.Shift, error) {
	if m.updateShiftGuardedFn == nil {
		return nil, repositories.ErrNotFound
	}
	return m.updateShiftGuardedFn(shift)
}

func (m *mockShiftRepo) GetShiftByID(id int64) (*models.Shift, error) {
	if m.getShiftByIDFn == nil {
		return nil, repositories.ErrNotFound
	}
	return m.getShiftByIDFn(id)
}

func (m *mockShiftRepo) GetShiftsForStaffDate(staffID int64, date string) ([]models.Shift, error) {
	if m.getShiftsForStaffDateFn == nil {
		return nil, nil
	}
	return m.getShiftsForStaffDateFn(staffID, date)
}

func (m *mockShiftRepo) GetShiftsForDate(date string, staffID *int64) ([]models.Shift, error) {
	if m.getShiftsForDateFn == nil {
		return nil, nil
	}
	return m.getShiftsForDateFn(date, staffID)
}

func (m *mockShiftRepo) GetShiftsForWeek(weekStart, weekEnd string, staffID *int64) ([]models.Shift, error) {
	if m.getShiftsForWeekFn == nil {
		return nil, nil
	}
	return m.getShiftsForWeekFn(weekStart, weekEnd, staffID)
}

func (m *mockShiftRepo) DeleteShift(_ repositories.SQLExecutor, id int64) error {
	if m.deleteShiftFn == nil {
		return repositories.ErrNotFound
	}
	return m.deleteShiftFn(id)
}

func (m *mockShiftRepo) CreateRosterAuditLog(_ repositories.SQLExecutor, entry *models.RosterAuditLog) error {
	m.auditLogs = append(m.auditLogs, *entry)
	return nil
}

type mockAvailabilityRepo struct {
	deleteForStaffWeekFn           func(staffID int64, weekStartDate string) error
	insertFn                       func(availability *models.Availability) (*models.Availability, error)
	getForStaffWeekFn              func(staffID int64, weekStartDate string) ([]models.Availability, error)
	getSubmittedForWeekDayFn       func(weekStartDate string, dayOfWeek int) ([]models.Availability, error)
	getSubmittedForStaffWeekDayFn  func(staffID int64, weekStartDate string, dayOfWeek int) (*models.Availability, error)
}

func (m *mockAvailabilityRepo) DeleteForStaffWeek(_ repositories.SQLExecutor, staffID int64, weekStartDate string) error {
	if m.deleteForStaffWeekFn == nil {
		return nil
	}
	return m.deleteForStaffWeekFn(staffID, weekStartDate)
}

func (m *mockAvailabilityRepo) Insert(_ repositories.SQLExecutor, availability *models.Availability) (*models.Availability, error) {
	if m.insertFn == nil {
		availability.ID = 1
		return availability, nil
	}
	return m.insertFn(availability)
}

func (m *mockAvailabilityRepo) GetForStaffWeek(staffID int64, weekStartDate string) ([]models.Availability, error) {
	if m.getForStaffWeekFn == nil {
		return nil, nil
	}
	return m.getForStaffWeekFn(staffID, weekStartDate)
}

func (m *mockAvailabilityRepo) GetSubmittedForWeekDay(weekStartDate string, dayOfWeek int) ([]models.Availability, error) {
	if m.getSubmittedForWeekDayFn == nil {
		return nil, nil
	}
	return m.getSubmittedForWeekDayFn(weekStartDate, dayOfWeek)
}

func (m *mockAvailabilityRepo) GetSubmittedForStaffWeekDay(staffID int64, weekStartDate string, dayOfWeek int) (*models.Availability, error) {
	if m.getSubmittedForStaffWeekDayFn == nil {
		return nil, repositories.ErrNotFound
	}
	return m.getSubmittedForStaffWeekDayFn(staffID, weekStartDate, dayOfWeek)
}

type mockTimesheetRepo struct {
	createTimesheetFn        func(timesheet *models.Timesheet) (*models.Timesheet, error)
	getTimesheetByIDFn       func(id int64) (*models.Timesheet, error)
	getTimesheetByShiftIDFn  func(shiftID int64) (*models.Timesheet, error)
	getTimesheetsForWeekFn   func(weekStartDate string, staffID *int64, status *string) ([]models.Timesheet, error)
	getTimesheetsForDateFn   func(date string) ([]models.Timesheet, error)
	updateTimesheetReviewFn  func(timesheet *models.Timesheet) error
}

func (m *mockTimesheetRepo) CreateTimesheet(_ repositories.SQLExecutor, timesheet *models.Timesheet) (*models.Timesheet, error) {
	if m.createTimesheetFn == nil {
		timesheet.ID = 1
		timesheet.Status = models.TimesheetPending
		return timesheet, nil
	}
	return m.createTimesheetFn(timesheet)
}

func (m *mockTimesheetRepo) GetTimesheetByID(id int64) (*models.Timesheet, error) {
	if m.getTimesheetByIDFn == nil {
		return nil, repositories.ErrNotFound
	}
	return m.getTimesheetByIDFn(id)
}

func (m *mockTimesheetRepo) GetTimesheetByShiftID(shiftID int64) (*models.Timesheet, error) {
	if m.getTimesheetByShiftIDFn == nil {
		return nil, repositories.ErrNotFound
	}
	return m.getTimesheetByShiftIDFn(shiftID)
}

func (m *mockTimesheetRepo) GetTimesheetsForWeek(weekStartDate string, staffID *int64, status *string) ([]models.Timesheet, error) {
	if m.getTimesheetsForWeekFn == nil {
		return nil, nil
	}
	return m.getTimesheetsForWeekFn(weekStartDate, staffID, status)
}

func (m *mockTimesheetRepo) GetTimesheetsForDate(date string) ([]models.Timesheet, error) {
	if m.getTimesheetsForDateFn == nil {
		return nil, nil
	}
	return m.getTimesheetsForDateFn(date)
}

func (m *mockTimesheetRepo) UpdateTimesheetReview(_ repositories.SQLExecutor, timesheet *models.Timesheet) error {
	if m.updateTimesheetReviewFn == nil {
		return nil
	}
	return m.updateTimesheetReviewFn(timesheet)
}

type mockTimeRecordRepo struct {
	createClockInFn           func(staffID int64, clockIn time.Time) (*models.TimeRecord, error)
	getOpenRecordFn           func(staffID int64) (*models.TimeRecord, error)
	closeRecordFn             func(recordID int64, clockOut time.Time, hoursWorked float64) (*models.TimeRecord, error)
	getRecordsForStaffRangeFn func(staffID int64, from, to time.Time) ([]models.TimeRecord, error)
}

func (m *mockTimeRecordRepo) CreateClockIn(_ repositories.SQLExecutor, staffID int64, clockIn time.Time) (*models.TimeRecord, error) {
	if m.createClockInFn == nil {
		return &models.TimeRecord{ID: 1, StaffID: staffID, ClockInTime: clockIn}, nil
	}
	return m.createClockInFn(staffID, clockIn)
}

func (m *mockTimeRecordRepo) GetOpenRecord(staffID int64) (*models.TimeRecord, error) {
	if m.getOpenRecordFn == nil {
		return nil, repositories.ErrNotFound
	}
	return m.getOpenRecordFn(staffID)
}

func (m *mockTimeRecordRepo) CloseRecord(_ repositories.SQLExecutor, recordID int64, clockOut time.Time, hoursWorked float64) (*models.TimeRecord, error) {
	if m.closeRecordFn == nil {
		return nil, repositories.ErrNotFound
	}
	return m.closeRecordFn(recordID, clockOut, hoursWorked)
}

func (m *mockTimeRecordRepo) GetRecordsForStaffRange(staffID int64, from, to time.Time) ([]models.TimeRecord, error) {
	if m.getRecordsForStaffRangeFn == nil {
		return nil, nil
	}
	return m.getRecordsForStaffRangeFn(staffID, from, to)
}
