package handlers

import (
	"errors"
	"net/http"

	"workforce_backend/internal/models"
	"workforce_backend/internal/scheduling"
	"workforce_backend/internal/services"
	"workforce_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// TimesheetHandler holds the timesheet service.
type TimesheetHandler struct {
	timesheetService services.TimesheetService
}

// NewTimesheetHandler creates a new TimesheetHandler.
func NewTimesheetHandler(ts services.TimesheetService) *TimesheetHandler {
	return &TimesheetHandler{timesheetService: ts}
}

// SubmitTimesheet records worked hours against one of the authenticated
// staff member's shifts.
func (h *TimesheetHandler) SubmitTimesheet(c *gin.Context) {
	staffID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.SubmitTimesheetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}

	timesheet, err := h.timesheetService.SubmitTimesheet(staffID, req)
	if err != nil {
		utils.LogError(err, "SubmitTimesheet: Error from timesheetService.SubmitTimesheet")
		if errors.Is(err, scheduling.ErrTimeFormat) || errors.Is(err, scheduling.ErrOrdering) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Worked times must be ordered HH:MM values.", err.Error()))
		} else if errors.Is(err, services.ErrShiftNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Shift not found.", err.Error()))
		} else if errors.Is(err, services.ErrTimesheetNotOwned) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusForbidden, utils.ErrCodeForbidden, "Shift belongs to another staff member.", err.Error()))
		} else if errors.Is(err, services.ErrTimesheetExists) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "A timesheet already exists for this shift.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to submit timesheet.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, timesheet)
}

// ReviewTimesheet applies an admin's approve or reject decision.
func (h *TimesheetHandler) ReviewTimesheet(c *gin.Context) {
	timesheetID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req services.ReviewTimesheetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}

	timesheet, err := h.timesheetService.ReviewTimesheet(timesheetID, req)
	if err != nil {
		utils.LogError(err, "ReviewTimesheet: Error from timesheetService.ReviewTimesheet")
		if errors.Is(err, scheduling.ErrTimeFormat) || errors.Is(err, scheduling.ErrOrdering) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Adjusted times must be ordered HH:MM values.", err.Error()))
		} else if errors.Is(err, services.ErrTimesheetNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Timesheet not found.", err.Error()))
		} else if errors.Is(err, services.ErrTimesheetNotPending) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Timesheet has already been reviewed.", err.Error()))
		} else if errors.Is(err, services.ErrTimesheetReviewInvalid) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Review status must be APPROVED or REJECTED.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to review timesheet.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, timesheet)
}

// GetTimesheets lists timesheets by ?week_start or ?date, with optional
// ?staff_id and ?status filters, the admin review view.
func (h *TimesheetHandler) GetTimesheets(c *gin.Context) {
	var staffID *int64
	if raw := c.Query("staff_id"); raw != "" {
		id, err := utils.StrToInt64(raw)
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Invalid staff_id query parameter.", err.Error()))
			return
		}
		staffID = &id
	}
	var status *string
	if raw := c.Query("status"); raw != "" {
		status = &raw
	}

	var (
		timesheets []models.Timesheet
		err        error
	)
	switch {
	case c.Query("week_start") != "":
		timesheets, err = h.timesheetService.GetTimesheetsForWeek(c.Query("week_start"), staffID, status)
	case c.Query("date") != "":
		timesheets, err = h.timesheetService.GetTimesheetsForDate(c.Query("date"))
	default:
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Either week_start or date query parameter is required.", "missing date filter"))
		return
	}
	if err != nil {
		utils.LogError(err, "GetTimesheets: Error from timesheetService")
		if errors.Is(err, services.ErrWeekStartFormat) || errors.Is(err, services.ErrShiftDateFormat) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Invalid date filter.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to retrieve timesheets.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, timesheets)
}

// GetMyTimesheets lists the authenticated staff member's timesheets for
// ?week_start=YYYY-MM-DD.
func (h *TimesheetHandler) GetMyTimesheets(c *gin.Context) {
	staffID, ok := currentUserID(c)
	if !ok {
		return
	}
	weekStart := c.Query("week_start")
	if weekStart == "" {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "week_start query parameter is required.", "missing week_start"))
		return
	}

	timesheets, err := h.timesheetService.GetTimesheetsForWeek(weekStart, &staffID, nil)
	if err != nil {
		utils.LogError(err, "GetMyTimesheets: Error from timesheetService.GetTimesheetsForWeek")
		if errors.Is(err, services.ErrWeekStartFormat) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Invalid week_start date.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to retrieve timesheets.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, timesheets)
}
