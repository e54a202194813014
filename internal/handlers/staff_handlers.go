package handlers

import (
	"errors"
	"net/http"

	"workforce_backend/internal/services"
	"workforce_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// StaffHandler holds the staff service.
type StaffHandler struct {
	staffService services.StaffService
}

// NewStaffHandler creates a new StaffHandler.
func NewStaffHandler(ss services.StaffService) *StaffHandler {
	return &StaffHandler{staffService: ss}
}

// CreateStaffMember handles the creation of a new staff member.
func (h *StaffHandler) CreateStaffMember(c *gin.Context) {
	var req services.CreateStaffMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}

	staffMember, err := h.staffService.CreateStaffMember(req)
	if err != nil {
		utils.LogError(err, "CreateStaffMember: Error from staffService.CreateStaffMember")
		if errors.Is(err, services.ErrEmailExists) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Email already registered.", err.Error()))
		} else if errors.Is(err, services.ErrStaffDataValidation) || errors.Is(err, services.ErrPasswordTooShort) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Invalid staff member data.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create staff member.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, staffMember)
}

// GetStaffMembers lists staff. ?active_only=true filters out deactivated
// members.
func (h *StaffHandler) GetStaffMembers(c *gin.Context) {
	activeOnly := c.Query("active_only") == "true"

	staffMembers, err := h.staffService.GetStaffMembers(activeOnly)
	if err != nil {
		utils.LogError(err, "GetStaffMembers: Error from staffService.GetStaffMembers")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to retrieve staff members.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, staffMembers)
}

// GetStaffMemberByID retrieves one staff member.
func (h *StaffHandler) GetStaffMemberByID(c *gin.Context) {
	staffID, ok := pathID(c, "id")
	if !ok {
		return
	}

	staffMember, err := h.staffService.GetStaffMemberByID(staffID)
	if err != nil {
		utils.LogError(err, "GetStaffMemberByID: Error from staffService.GetStaffMemberByID")
		if errors.Is(err, services.ErrStaffNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Staff member not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to retrieve staff member.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, staffMember)
}

// UpdateStaffMember applies partial updates to a staff member.
func (h *StaffHandler) UpdateStaffMember(c *gin.Context) {
	staffID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req services.UpdateStaffMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}

	staffMember, err := h.staffService.UpdateStaffMember(staffID, req)
	if err != nil {
		utils.LogError(err, "UpdateStaffMember: Error from staffService.UpdateStaffMember")
		if errors.Is(err, services.ErrStaffNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Staff member not found.", err.Error()))
		} else if errors.Is(err, services.ErrStaffDataValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Invalid staff member data.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update staff member.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, staffMember)
}

// DeactivateStaffMember flips a staff member inactive. The row is kept so
// shift and timesheet history survives.
func (h *StaffHandler) DeactivateStaffMember(c *gin.Context) {
	staffID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.staffService.DeactivateStaffMember(staffID); err != nil {
		utils.LogError(err, "DeactivateStaffMember: Error from staffService.DeactivateStaffMember")
		if errors.Is(err, services.ErrStaffNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Staff member not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to deactivate staff member.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Staff member deactivated."})
}

// ResetStaffPassword sets a new password for a staff member.
func (h *StaffHandler) ResetStaffPassword(c *gin.Context) {
	staffID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req services.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}

	if err := h.staffService.ResetStaffPassword(staffID, req.NewPassword); err != nil {
		utils.LogError(err, "ResetStaffPassword: Error from staffService.ResetStaffPassword")
		if errors.Is(err, services.ErrStaffNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Staff member not found.", err.Error()))
		} else if errors.Is(err, services.ErrPasswordTooShort) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Password must be at least 6 characters.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to reset password.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password reset."})
}
