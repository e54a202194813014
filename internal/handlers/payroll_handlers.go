package handlers

import (
	"errors"
	"net/http"

	"workforce_backend/internal/services"
	"workforce_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// PayrollHandler holds the payroll service.
type PayrollHandler struct {
	payrollService services.PayrollService
}

// NewPayrollHandler creates a new PayrollHandler.
func NewPayrollHandler(ps services.PayrollService) *PayrollHandler {
	return &PayrollHandler{payrollService: ps}
}

// GetWeeklyHours returns the aggregated hours report for
// ?week_start=YYYY-MM-DD, optionally filtered by ?staff_id.
func (h *PayrollHandler) GetWeeklyHours(c *gin.Context) {
	weekStart := c.Query("week_start")
	if weekStart == "" {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "week_start query parameter is required.", "missing week_start"))
		return
	}

	var staffID *int64
	if raw := c.Query("staff_id"); raw != "" {
		id, err := utils.StrToInt64(raw)
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Invalid staff_id query parameter.", err.Error()))
			return
		}
		staffID = &id
	}

	report, err := h.payrollService.GetWeeklyHours(weekStart, staffID)
	if err != nil {
		utils.LogError(err, "GetWeeklyHours: Error from payrollService.GetWeeklyHours")
		if errors.Is(err, services.ErrWeekStartFormat) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Invalid week_start date.", err.Error()))
		} else if errors.Is(err, services.ErrStaffNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Staff member not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to compute hours report.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, report)
}

// GetMyWeeklyHours returns the authenticated staff member's own hours for
// ?week_start=YYYY-MM-DD.
func (h *PayrollHandler) GetMyWeeklyHours(c *gin.Context) {
	staffID, ok := currentUserID(c)
	if !ok {
		return
	}
	weekStart := c.Query("week_start")
	if weekStart == "" {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "week_start query parameter is required.", "missing week_start"))
		return
	}

	report, err := h.payrollService.GetWeeklyHours(weekStart, &staffID)
	if err != nil {
		utils.LogError(err, "GetMyWeeklyHours: Error from payrollService.GetWeeklyHours")
		if errors.Is(err, services.ErrWeekStartFormat) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Invalid week_start date.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to compute hours report.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, report)
}
