package handlers

import (
	"errors"
	"net/http"

	"workforce_backend/internal/services"
	"workforce_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// AuthHandler holds the authentication service.
type AuthHandler struct {
	authService services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(as services.AuthService) *AuthHandler {
	return &AuthHandler{authService: as}
}

// RegisterUser handles user registration.
func (h *AuthHandler) RegisterUser(c *gin.Context) {
	var req services.RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}

	user, err := h.authService.RegisterUser(req)
	if err != nil {
		utils.LogError(err, "RegisterUser: Error from authService.RegisterUser")
		if errors.Is(err, services.ErrEmailExists) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Email already registered.", err.Error()))
		} else if errors.Is(err, services.ErrInvalidRole) || errors.Is(err, services.ErrStaffDataValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Invalid registration data.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to register user.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, user)
}

// LoginUser handles user login.
func (h *AuthHandler) LoginUser(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}

	authResp, err := h.authService.LoginUser(req)
	if err != nil {
		utils.LogError(err, "LoginUser: Error from authService.LoginUser")
		if errors.Is(err, services.ErrInvalidCredentials) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Invalid email or password.", err.Error()))
		} else if errors.Is(err, services.ErrAccountInactive) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusForbidden, utils.ErrCodeForbidden, "Account is deactivated.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to login.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, authResp)
}

// RefreshToken exchanges a refresh token for a new token pair.
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}

	authResp, err := h.authService.RefreshTokens(req.RefreshToken)
	if err != nil {
		utils.LogError(err, "RefreshToken: Error from authService.RefreshTokens")
		if errors.Is(err, services.ErrInvalidCredentials) || errors.Is(err, services.ErrUserNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Invalid or expired refresh token.", err.Error()))
		} else if errors.Is(err, services.ErrAccountInactive) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusForbidden, utils.ErrCodeForbidden, "Account is deactivated.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to refresh tokens.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, authResp)
}

// GetCurrentUser retrieves the profile of the currently authenticated user.
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	user, err := h.authService.GetUserProfile(userID)
	if err != nil {
		utils.LogError(err, "GetCurrentUser: Error from authService.GetUserProfile")
		if errors.Is(err, services.ErrUserNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "User profile not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to retrieve user profile.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, user)
}

// LogoutUser handles user logout. With stateless JWTs the server only
// acknowledges; the client discards its tokens.
func (h *AuthHandler) LogoutUser(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully. Please discard your tokens."})
}
