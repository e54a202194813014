package handlers

import (
	"errors"
	"net/http"

	"workforce_backend/internal/middleware"
	"workforce_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// currentUserID pulls the authenticated user's ID out of the gin context.
// When it is missing or malformed the 401 response is already written, so
// callers just return on !ok.
func currentUserID(c *gin.Context) (int64, bool) {
	raw, exists := c.Get(middleware.ContextUserIDKey)
	if !exists {
		utils.LogError(errors.New("userID not found in context"), "currentUserID: missing context value")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "User not authenticated.", "Missing user ID in context"))
		return 0, false
	}
	userID, ok := raw.(int64)
	if !ok {
		utils.LogError(errors.New("userID is not int64"), "currentUserID: type assertion failed")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "User not authenticated.", "Invalid user ID in context"))
		return 0, false
	}
	return userID, true
}

// pathID parses a numeric path parameter, writing a 400 on failure.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := utils.StrToInt64(c.Param(name))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Invalid "+name+" path parameter.", err.Error()))
		return 0, false
	}
	return id, true
}
