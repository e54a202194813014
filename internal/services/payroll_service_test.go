package services

import (
	"errors"
	"math"
	"testing"

	"workforce_backend/internal/models"
	"workforce_backend/internal/scheduling"
)

func approvedTimesheet(staffID int64, workedStart, workedEnd string, rateAtApproval *float64) models.Timesheet {
	return models.Timesheet{
		StaffID:        staffID,
		WeekStartDate:  testWeekStart,
		WorkedStart:    workedStart,
		WorkedEnd:      workedEnd,
		Status:         models.TimesheetApproved,
		RateAtApproval: rateAtApproval,
	}
}

func floatEq(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestGetWeeklyHoursAggregatesApprovedOnly(t *testing.T) {
	timesheets := []models.Timesheet{
		approvedTimesheet(4, "09:00", "13:00", nil), // 4.0h
		approvedTimesheet(4, "14:00", "17:30", nil), // 3.5h
		{StaffID: 4, WorkedStart: "00:00", WorkedEnd: "23:00", Status: models.TimesheetPending},
		{StaffID: 7, WorkedStart: "09:00", WorkedEnd: "17:00", Status: models.TimesheetRejected},
	}
	timesheetRepo := &mockTimesheetRepo{
		getTimesheetsForWeekFn: func(weekStart string, staffID *int64, status *string) ([]models.Timesheet, error) {
			if weekStart != testWeekStart {
				t.Errorf("week start = %s, want %s", weekStart, testWeekStart)
			}
			return timesheets, nil
		},
	}
	authRepo := &mockAuthRepo{listStaffFn: func(bool) ([]models.User, error) {
		return []models.User{
			{ID: 4, Name: "Dana", Role: models.RoleStaff, HourlyRate: 20, IsActive: true},
			{ID: 7, Name: "Lee", Role: models.RoleStaff, HourlyRate: 25, IsActive: true},
			{ID: 8, Name: "Sam", Role: models.RoleStaff, HourlyRate: 18, IsActive: true},
		}, nil
	}}
	svc := NewPayrollService(timesheetRepo, authRepo, scheduling.RateCurrent)

	report, err := svc.GetWeeklyHours(testWeekStart, nil)
	if err != nil {
		t.Fatalf("GetWeeklyHours: %v", err)
	}
	if len(report.Staff) != 3 {
		t.Fatalf("staff rows = %d, want 3 (zero rows included)", len(report.Staff))
	}

	byID := make(map[int64]StaffHoursSummary)
	for _, row := range report.Staff {
		byID[row.StaffID] = row
	}
	if row := byID[4]; !floatEq(row.Hours, 7.5) || !floatEq(row.GrossPay, 150) {
		t.Errorf("staff 4 = %.2fh $%.2f, want 7.50h $150.00", row.Hours, row.GrossPay)
	}
	// PENDING and REJECTED timesheets contribute nothing.
	if row := byID[7]; row.Hours != 0 || row.GrossPay != 0 {
		t.Errorf("staff 7 = %.2fh $%.2f, want zero row", row.Hours, row.GrossPay)
	}
	if row := byID[8]; row.Hours != 0 || row.GrossPay != 0 {
		t.Errorf("staff 8 = %.2fh $%.2f, want zero row", row.Hours, row.GrossPay)
	}
	if !floatEq(report.TotalHours, 7.5) || !floatEq(report.TotalGrossPay, 150) {
		t.Errorf("totals = %.2fh $%.2f, want 7.50h $150.00", report.TotalHours, report.TotalGrossPay)
	}
}

func TestGetWeeklyHoursRatePolicies(t *testing.T) {
	frozenRate := 15.0
	timesheets := []models.Timesheet{approvedTimesheet(4, "09:00", "17:00", &frozenRate)} // 8h
	listStaff := func(bool) ([]models.User, error) {
		return []models.User{{ID: 4, Name: "Dana", Role: models.RoleStaff, HourlyRate: 20, IsActive: true}}, nil
	}
	timesheetRepo := &mockTimesheetRepo{
		getTimesheetsForWeekFn: func(string, *int64, *string) ([]models.Timesheet, error) { return timesheets, nil },
	}

	tests := []struct {
		policy   scheduling.PayRateResolutionPolicy
		wantPay  float64
	}{
		{scheduling.RateCurrent, 160},            // 8h at the current $20
		{scheduling.RateSnapshotAtApproval, 120}, // 8h at the frozen $15
	}
	for _, tc := range tests {
		t.Run(string(tc.policy), func(t *testing.T) {
			svc := NewPayrollService(timesheetRepo, &mockAuthRepo{listStaffFn: listStaff}, tc.policy)
			report, err := svc.GetWeeklyHours(testWeekStart, nil)
			if err != nil {
				t.Fatalf("GetWeeklyHours: %v", err)
			}
			if !floatEq(report.TotalGrossPay, tc.wantPay) {
				t.Errorf("gross pay = %.2f, want %.2f", report.TotalGrossPay, tc.wantPay)
			}
		})
	}
}

func TestGetWeeklyHoursSingleStaff(t *testing.T) {
	staffID := int64(4)
	timesheetRepo := &mockTimesheetRepo{
		getTimesheetsForWeekFn: func(weekStart string, filter *int64, status *string) ([]models.Timesheet, error) {
			if filter == nil || *filter != staffID {
				t.Errorf("staff filter = %v, want 4", filter)
			}
			return []models.Timesheet{approvedTimesheet(4, "10:00", "14:00", nil)}, nil
		},
	}
	authRepo := &mockAuthRepo{findUserByIDFn: func(id int64) (*models.User, error) {
		return &models.User{ID: id, Name: "Dana", Role: models.RoleStaff, HourlyRate: 20, IsActive: true}, nil
	}}
	svc := NewPayrollService(timesheetRepo, authRepo, scheduling.RateCurrent)

	report, err := svc.GetWeeklyHours(testWeekStart, &staffID)
	if err != nil {
		t.Fatalf("GetWeeklyHours: %v", err)
	}
	if len(report.Staff) != 1 {
		t.Fatalf("staff rows = %d, want 1", len(report.Staff))
	}
	if row := report.Staff[0]; !floatEq(row.Hours, 4) || !floatEq(row.GrossPay, 80) {
		t.Errorf("row = %.2fh $%.2f, want 4.00h $80.00", row.Hours, row.GrossPay)
	}
}

func TestGetWeeklyHoursUnknownStaff(t *testing.T) {
	staffID := int64(99)
	svc := NewPayrollService(&mockTimesheetRepo{}, &mockAuthRepo{}, scheduling.RateCurrent)
	_, err := svc.GetWeeklyHours(testWeekStart, &staffID)
	if !errors.Is(err, ErrStaffNotFound) {
		t.Fatalf("GetWeeklyHours error = %v, want %v", err, ErrStaffNotFound)
	}
}

func TestGetWeeklyHoursNegativeDurationSummed(t *testing.T) {
	timesheets := []models.Timesheet{
		approvedTimesheet(4, "09:00", "17:00", nil), // 8h
		approvedTimesheet(4, "17:00", "09:00", nil), // -8h, stored before ordering was enforced
	}
	timesheetRepo := &mockTimesheetRepo{
		getTimesheetsForWeekFn: func(string, *int64, *string) ([]models.Timesheet, error) { return timesheets, nil },
	}
	authRepo := &mockAuthRepo{listStaffFn: func(bool) ([]models.User, error) {
		return []models.User{{ID: 4, Name: "Dana", Role: models.RoleStaff, HourlyRate: 20, IsActive: true}}, nil
	}}
	svc := NewPayrollService(timesheetRepo, authRepo, scheduling.RateCurrent)

	report, err := svc.GetWeeklyHours(testWeekStart, nil)
	if err != nil {
		t.Fatalf("GetWeeklyHours: %v", err)
	}
	if !floatEq(report.TotalHours, 0) {
		t.Errorf("total hours = %.2f, want 0 (negative duration offsets positive)", report.TotalHours)
	}
}

func TestGetWeeklyHoursSurvivesShiftRemoval(t *testing.T) {
	// Timesheets carry their own approved/worked times, so a timesheet
	// whose shift was later removed from the roster still counts.
	orphaned := approvedTimesheet(4, "09:00", "15:00", nil) // 6h
	orphaned.ShiftID = 310
	orphaned.ApprovedShiftStart = "09:00"
	orphaned.ApprovedShiftEnd = "15:00"
	timesheetRepo := &mockTimesheetRepo{
		getTimesheetsForWeekFn: func(string, *int64, *string) ([]models.Timesheet, error) {
			return []models.Timesheet{orphaned}, nil
		},
	}
	authRepo := &mockAuthRepo{listStaffFn: func(bool) ([]models.User, error) {
		return []models.User{{ID: 4, Name: "Dana", Role: models.RoleStaff, HourlyRate: 20, IsActive: true}}, nil
	}}
	svc := NewPayrollService(timesheetRepo, authRepo, scheduling.RateCurrent)

	report, err := svc.GetWeeklyHours(testWeekStart, nil)
	if err != nil {
		t.Fatalf("GetWeeklyHours: %v", err)
	}
	if !floatEq(report.TotalHours, 6) || !floatEq(report.TotalGrossPay, 120) {
		t.Errorf("totals = %.2fh $%.2f, want 6.00h $120.00", report.TotalHours, report.TotalGrossPay)
	}
}
