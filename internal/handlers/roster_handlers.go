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

// RosterHandler holds the roster service.
type RosterHandler struct {
	rosterService services.RosterService
}

// NewRosterHandler creates a new RosterHandler.
func NewRosterHandler(rs services.RosterService) *RosterHandler {
	return &RosterHandler{rosterService: rs}
}

// respondSchedulingError maps validation pipeline failures onto API errors
// so clients can tell which gate rejected the shift.
func respondSchedulingError(c *gin.Context, err error) bool {
	switch {
	case errors.Is(err, scheduling.ErrTimeFormat):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Times must be zero-padded HH:MM.", err.Error()))
	case errors.Is(err, scheduling.ErrOrdering):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "End time must be after start time.", err.Error()))
	case errors.Is(err, scheduling.ErrOperatingHours):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeOutsideHours, "Shift falls outside operating hours.", err.Error()))
	case errors.Is(err, scheduling.ErrAvailabilityMismatch):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeNotAvailable, "Shift is not within the staff member's submitted availability.", err.Error()))
	case errors.Is(err, scheduling.ErrOverlap):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeShiftOverlap, "Shift overlaps an existing shift for this staff member.", err.Error()))
	default:
		return false
	}
	return true
}

// CreateShift commits a shift after the full validation pipeline passes.
func (h *RosterHandler) CreateShift(c *gin.Context) {
	adminID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.CreateShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}

	shift, err := h.rosterService.CreateShift(adminID, req)
	if err != nil {
		utils.LogError(err, "CreateShift: Error from rosterService.CreateShift")
		if respondSchedulingError(c, err) {
			return
		}
		if errors.Is(err, services.ErrStaffNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Staff member not found or inactive.", err.Error()))
		} else if errors.Is(err, services.ErrShiftDateFormat) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Invalid shift date.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create shift.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, shift)
}

// UpdateShift revalidates and applies new times to an existing shift.
func (h *RosterHandler) UpdateShift(c *gin.Context) {
	adminID, ok := currentUserID(c)
	if !ok {
		return
	}
	shiftID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req services.UpdateShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}

	shift, err := h.rosterService.UpdateShift(adminID, shiftID, req)
	if err != nil {
		utils.LogError(err, "UpdateShift: Error from rosterService.UpdateShift")
		if respondSchedulingError(c, err) {
			return
		}
		if errors.Is(err, services.ErrShiftNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Shift not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update shift.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, shift)
}

// DeleteShift removes a shift from the roster.
func (h *RosterHandler) DeleteShift(c *gin.Context) {
	adminID, ok := currentUserID(c)
	if !ok {
		return
	}
	shiftID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.rosterService.RemoveShift(adminID, shiftID); err != nil {
		utils.LogError(err, "DeleteShift: Error from rosterService.RemoveShift")
		if errors.Is(err, services.ErrShiftNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Shift not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete shift.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Shift removed."})
}

// GetShifts lists shifts by ?date=YYYY-MM-DD or ?week_start=YYYY-MM-DD,
// optionally filtered by ?staff_id.
func (h *RosterHandler) GetShifts(c *gin.Context) {
	var staffID *int64
	if raw := c.Query("staff_id"); raw != "" {
		id, err := utils.StrToInt64(raw)
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Invalid staff_id query parameter.", err.Error()))
			return
		}
		staffID = &id
	}

	var (
		shifts []models.Shift
		err    error
	)
	switch {
	case c.Query("date") != "":
		shifts, err = h.rosterService.GetShiftsForDate(c.Query("date"), staffID)
	case c.Query("week_start") != "":
		shifts, err = h.rosterService.GetShiftsForWeek(c.Query("week_start"), staffID)
	default:
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Either date or week_start query parameter is required.", "missing date filter"))
		return
	}
	if err != nil {
		utils.LogError(err, "GetShifts: Error from rosterService")
		if errors.Is(err, services.ErrShiftDateFormat) || errors.Is(err, services.ErrWeekStartFormat) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Invalid date filter.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to retrieve shifts.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, shifts)
}

// GetMyShifts lists the authenticated staff member's shifts for
// ?week_start=YYYY-MM-DD.
func (h *RosterHandler) GetMyShifts(c *gin.Context) {
	staffID, ok := currentUserID(c)
	if !ok {
		return
	}
	weekStart := c.Query("week_start")
	if weekStart == "" {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "week_start query parameter is required.", "missing week_start"))
		return
	}

	shifts, err := h.rosterService.GetShiftsForWeek(weekStart, &staffID)
	if err != nil {
		utils.LogError(err, "GetMyShifts: Error from rosterService.GetShiftsForWeek")
		if errors.Is(err, services.ErrWeekStartFormat) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Invalid week_start date.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to retrieve shifts.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, shifts)
}
