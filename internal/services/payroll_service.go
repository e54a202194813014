package services

import (
	"errors"
	"fmt"
	"sort"

	"workforce_backend/internal/models"
	"workforce_backend/internal/repositories"
	"workforce_backend/internal/scheduling"
)

// StaffHoursSummary is one row of a weekly hours report.
type StaffHoursSummary struct {
	StaffID   int64   `json:"staff_id"`
	StaffName string  `json:"staff_name"`
	Hours     float64 `json:"hours"`
	GrossPay  float64 `json:"gross_pay"`
}

// WeeklyHoursReport is the aggregated payroll view for one week.
type WeeklyHoursReport struct {
	WeekStartDate string              `json:"week_start_date"`
	Staff         []StaffHoursSummary `json:"staff"`
	TotalHours    float64             `json:"total_hours"`
	TotalGrossPay float64             `json:"total_gross_pay"`
}

// --- PayrollService Interface ---
type PayrollService interface {
	GetWeeklyHours(weekStartDate string, staffID *int64) (*WeeklyHoursReport, error)
}

// --- payrollService Implementation ---
type payrollService struct {
	timesheetRepo repositories.TimesheetRepository
	authRepo      repositories.AuthRepository
	ratePolicy    scheduling.PayRateResolutionPolicy
}

// NewPayrollService creates a new instance of PayrollService. The rate
// policy decides whether reports price hours at the current rate or at the
// rate snapshotted when each timesheet was approved.
func NewPayrollService(
	tr repositories.TimesheetRepository,
	ur repositories.AuthRepository,
	ratePolicy scheduling.PayRateResolutionPolicy,
) PayrollService {
	return &payrollService{timesheetRepo: tr, authRepo: ur, ratePolicy: ratePolicy}
}

// GetWeeklyHours folds the week's approved timesheets into per-staff hours
// and gross pay. With a nil staffID the report covers the whole active
// roster, including zero rows for staff with no approved timesheets.
func (s *payrollService) GetWeeklyHours(weekStartDate string, staffID *int64) (*WeeklyHoursReport, error) {
	weekStart, err := normalizeWeekStart(weekStartDate)
	if err != nil {
		return nil, err
	}

	timesheets, err := s.timesheetRepo.GetTimesheetsForWeek(weekStart, staffID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load timesheets for hours report: %w", err)
	}

	var roster []models.User
	if staffID != nil {
		staff, err := s.authRepo.FindUserByID(*staffID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, ErrStaffNotFound
			}
			return nil, fmt.Errorf("failed to load staff member for hours report: %w", err)
		}
		roster = []models.User{*staff}
	} else {
		roster, err = s.authRepo.ListStaff(true)
		if err != nil {
			return nil, fmt.Errorf("failed to load roster for hours report: %w", err)
		}
	}

	entries := make([]scheduling.TimesheetEntry, 0, len(timesheets))
	for _, t := range timesheets {
		workedStart, err := scheduling.ParseTime(t.WorkedStart)
		if err != nil {
			return nil, fmt.Errorf("timesheet %d has malformed worked start: %w", t.ID, err)
		}
		workedEnd, err := scheduling.ParseTime(t.WorkedEnd)
		if err != nil {
			return nil, fmt.Errorf("timesheet %d has malformed worked end: %w", t.ID, err)
		}
		entries = append(entries, scheduling.TimesheetEntry{
			StaffID:        t.StaffID,
			WorkedStart:    workedStart,
			WorkedEnd:      workedEnd,
			Status:         scheduling.TimesheetStatus(t.Status),
			RateAtApproval: t.RateAtApproval,
		})
	}

	rates := make([]scheduling.StaffRate, 0, len(roster))
	names := make(map[int64]string, len(roster))
	for _, staff := range roster {
		rates = append(rates, scheduling.StaffRate{StaffID: staff.ID, HourlyRate: staff.HourlyRate})
		names[staff.ID] = staff.Name
	}

	aggregated := scheduling.AggregateHours(entries, rates, s.ratePolicy)

	report := &WeeklyHoursReport{WeekStartDate: weekStart}
	for _, agg := range aggregated {
		report.Staff = append(report.Staff, StaffHoursSummary{
			StaffID:   agg.StaffID,
			StaffName: names[agg.StaffID],
			Hours:     agg.Hours,
			GrossPay:  agg.GrossPay,
		})
		report.TotalHours += agg.Hours
		report.TotalGrossPay += agg.GrossPay
	}
	sort.Slice(report.Staff, func(i, j int) bool {
		return report.Staff[i].StaffID < report.Staff[j].StaffID
	})
	return report, nil
}
