package handlers

import (
	"errors"
	"net/http"
	"time"

	"workforce_backend/internal/services"
	"workforce_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ClockHandler holds the clock service.
type ClockHandler struct {
	clockService services.ClockService
}

// NewClockHandler creates a new ClockHandler.
func NewClockHandler(cs services.ClockService) *ClockHandler {
	return &ClockHandler{clockService: cs}
}

// ClockIn opens a time record for the authenticated staff member.
func (h *ClockHandler) ClockIn(c *gin.Context) {
	staffID, ok := currentUserID(c)
	if !ok {
		return
	}

	record, err := h.clockService.ClockIn(staffID)
	if err != nil {
		utils.LogError(err, "ClockIn: Error from clockService.ClockIn")
		if errors.Is(err, services.ErrAlreadyClockedIn) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Already clocked in.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to clock in.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, record)
}

// ClockOut closes the authenticated staff member's open time record.
func (h *ClockHandler) ClockOut(c *gin.Context) {
	staffID, ok := currentUserID(c)
	if !ok {
		return
	}

	record, err := h.clockService.ClockOut(staffID)
	if err != nil {
		utils.LogError(err, "ClockOut: Error from clockService.ClockOut")
		if errors.Is(err, services.ErrNotClockedIn) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Not clocked in.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to clock out.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, record)
}

// GetClockStatus reports whether the authenticated staff member is
// currently clocked in.
func (h *ClockHandler) GetClockStatus(c *gin.Context) {
	staffID, ok := currentUserID(c)
	if !ok {
		return
	}

	status, err := h.clockService.GetStatus(staffID)
	if err != nil {
		utils.LogError(err, "GetClockStatus: Error from clockService.GetStatus")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to check clock status.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, status)
}

// GetMyTimeRecords lists the authenticated staff member's raw clock
// records between ?from and ?to (YYYY-MM-DD, inclusive).
func (h *ClockHandler) GetMyTimeRecords(c *gin.Context) {
	staffID, ok := currentUserID(c)
	if !ok {
		return
	}

	from, err := utils.ParseDate(c.DefaultQuery("from", time.Now().AddDate(0, 0, -7).Format(utils.DateLayout)))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Invalid from date.", err.Error()))
		return
	}
	to, err := utils.ParseDate(c.DefaultQuery("to", time.Now().Format(utils.DateLayout)))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Invalid to date.", err.Error()))
		return
	}

	records, err := h.clockService.GetRecordsForStaffRange(staffID, from, to.AddDate(0, 0, 1))
	if err != nil {
		utils.LogError(err, "GetMyTimeRecords: Error from clockService.GetRecordsForStaffRange")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to retrieve time records.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, records)
}
