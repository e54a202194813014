package handlers

import (
	"errors"
	"net/http"

	"workforce_backend/internal/services"
	"workforce_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// AvailabilityHandler holds the availability service.
type AvailabilityHandler struct {
	availabilityService services.AvailabilityService
}

// NewAvailabilityHandler creates a new AvailabilityHandler.
func NewAvailabilityHandler(as services.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{availabilityService: as}
}

// SubmitAvailability replaces the authenticated staff member's availability
// for one week.
func (h *AvailabilityHandler) SubmitAvailability(c *gin.Context) {
	staffID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.SubmitAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}

	stored, err := h.availabilityService.SubmitAvailability(staffID, req)
	if err != nil {
		utils.LogError(err, "SubmitAvailability: Error from availabilityService.SubmitAvailability")
		if errors.Is(err, services.ErrWeekStartFormat) || errors.Is(err, services.ErrDayOfWeekRange) || errors.Is(err, services.ErrAvailabilityValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Invalid availability submission.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to submit availability.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, stored)
}

// GetMyAvailability returns the authenticated staff member's availability
// for ?week_start=YYYY-MM-DD.
func (h *AvailabilityHandler) GetMyAvailability(c *gin.Context) {
	staffID, ok := currentUserID(c)
	if !ok {
		return
	}
	weekStart := c.Query("week_start")
	if weekStart == "" {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "week_start query parameter is required.", "missing week_start"))
		return
	}

	availability, err := h.availabilityService.GetAvailabilityForWeek(staffID, weekStart)
	if err != nil {
		utils.LogError(err, "GetMyAvailability: Error from availabilityService.GetAvailabilityForWeek")
		if errors.Is(err, services.ErrWeekStartFormat) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Invalid week_start date.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to retrieve availability.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, availability)
}

// CopyPreviousWeek returns the prior week's windows as a draft for the
// requested week. Nothing is persisted until the draft is submitted.
func (h *AvailabilityHandler) CopyPreviousWeek(c *gin.Context) {
	staffID, ok := currentUserID(c)
	if !ok {
		return
	}
	weekStart := c.Query("week_start")
	if weekStart == "" {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "week_start query parameter is required.", "missing week_start"))
		return
	}

	days, err := h.availabilityService.CopyFromPreviousWeek(staffID, weekStart)
	if err != nil {
		utils.LogError(err, "CopyPreviousWeek: Error from availabilityService.CopyFromPreviousWeek")
		if errors.Is(err, services.ErrAvailabilityNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "No availability found for the previous week.", err.Error()))
		} else if errors.Is(err, services.ErrWeekStartFormat) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Invalid week_start date.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to copy availability.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"days": days})
}

// GetSubmittedForWeekDay lists every staff member's submitted windows for
// one day of a week, the admin's rostering view.
func (h *AvailabilityHandler) GetSubmittedForWeekDay(c *gin.Context) {
	weekStart := c.Query("week_start")
	if weekStart == "" {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "week_start query parameter is required.", "missing week_start"))
		return
	}
	dayOfWeek, err := utils.StrToInt64(c.Query("day_of_week"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "day_of_week query parameter must be 0-6.", err.Error()))
		return
	}

	availability, err := h.availabilityService.GetSubmittedForWeekDay(weekStart, int(dayOfWeek))
	if err != nil {
		utils.LogError(err, "GetSubmittedForWeekDay: Error from availabilityService.GetSubmittedForWeekDay")
		if errors.Is(err, services.ErrWeekStartFormat) || errors.Is(err, services.ErrDayOfWeekRange) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Invalid week or day parameters.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to retrieve submitted availability.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, availability)
}
