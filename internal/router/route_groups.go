package router

import (
	"workforce_backend/internal/handlers"
	"workforce_backend/internal/middleware"
	"workforce_backend/internal/models"

	"github.com/gin-gonic/gin"
)

// SetupAuthRoutes sets up the authentication routes.
func SetupAuthRoutes(apiGroup *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	authRoutes := apiGroup.Group("/auth")
	{
		authRoutes.POST("/register", authHandler.RegisterUser)
		authRoutes.POST("/login", authHandler.LoginUser)
		authRoutes.POST("/refresh-token", authHandler.RefreshToken)

		authRequiredRoutes := authRoutes.Group("")
		authRequiredRoutes.Use(middleware.AuthMiddleware())
		{
			authRequiredRoutes.POST("/logout", authHandler.LogoutUser)
			authRequiredRoutes.GET("/me", authHandler.GetCurrentUser)
		}
	}
}

// SetupStaffRoutes sets up the staff management routes. Write operations
// and the password reset are admin only.
func SetupStaffRoutes(authenticatedGroup *gin.RouterGroup, staffHandler *handlers.StaffHandler) {
	staffWriteRoutes := authenticatedGroup.Group("/staff")
	staffWriteRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
	{
		staffWriteRoutes.POST("", staffHandler.CreateStaffMember)
		staffWriteRoutes.PUT("/:id", staffHandler.UpdateStaffMember)
		staffWriteRoutes.DELETE("/:id", staffHandler.DeactivateStaffMember)
		staffWriteRoutes.POST("/:id/reset-password", staffHandler.ResetStaffPassword)
	}

	authenticatedGroup.GET("/staff", middleware.RoleAuthMiddleware(models.RoleAdmin), staffHandler.GetStaffMembers)
	authenticatedGroup.GET("/staff/:id", middleware.RoleAuthMiddleware(models.RoleAdmin), staffHandler.GetStaffMemberByID)
}

// SetupAvailabilityRoutes sets up the availability routes. Staff manage
// their own week; admins read everyone's submissions for rostering.
func SetupAvailabilityRoutes(authenticatedGroup *gin.RouterGroup, availabilityHandler *handlers.AvailabilityHandler) {
	availabilityRoutes := authenticatedGroup.Group("/availability")
	{
		staffRoutes := availabilityRoutes.Group("")
		staffRoutes.Use(middleware.RoleAuthMiddleware(models.RoleStaff))
		{
			staffRoutes.POST("", availabilityHandler.SubmitAvailability)
			staffRoutes.GET("/me", availabilityHandler.GetMyAvailability)
			staffRoutes.GET("/copy-previous-week", availabilityHandler.CopyPreviousWeek)
		}

		availabilityRoutes.GET("/submitted", middleware.RoleAuthMiddleware(models.RoleAdmin), availabilityHandler.GetSubmittedForWeekDay)
	}
}

// SetupRosterRoutes sets up the shift roster routes. Mutations are admin
// only; staff read their own shifts via /shifts/me.
func SetupRosterRoutes(authenticatedGroup *gin.RouterGroup, rosterHandler *handlers.RosterHandler) {
	shiftRoutes := authenticatedGroup.Group("/shifts")
	{
		adminRoutes := shiftRoutes.Group("")
		adminRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
		{
			adminRoutes.POST("", rosterHandler.CreateShift)
			adminRoutes.GET("", rosterHandler.GetShifts)
			adminRoutes.PUT("/:id", rosterHandler.UpdateShift)
			adminRoutes.DELETE("/:id", rosterHandler.DeleteShift)
		}

		shiftRoutes.GET("/me", middleware.RoleAuthMiddleware(models.RoleStaff), rosterHandler.GetMyShifts)
	}
}

// SetupTimesheetRoutes sets up the timesheet routes. Staff submit and read
// their own; admins list and review.
func SetupTimesheetRoutes(authenticatedGroup *gin.RouterGroup, timesheetHandler *handlers.TimesheetHandler) {
	timesheetRoutes := authenticatedGroup.Group("/timesheets")
	{
		staffRoutes := timesheetRoutes.Group("")
		staffRoutes.Use(middleware.RoleAuthMiddleware(models.RoleStaff))
		{
			staffRoutes.POST("", timesheetHandler.SubmitTimesheet)
			staffRoutes.GET("/me", timesheetHandler.GetMyTimesheets)
		}

		adminRoutes := timesheetRoutes.Group("")
		adminRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
		{
			adminRoutes.GET("", timesheetHandler.GetTimesheets)
			adminRoutes.PATCH("/:id/review", timesheetHandler.ReviewTimesheet)
		}
	}
}

// SetupHoursRoutes sets up the aggregated hours report routes.
func SetupHoursRoutes(authenticatedGroup *gin.RouterGroup, payrollHandler *handlers.PayrollHandler) {
	hoursRoutes := authenticatedGroup.Group("/hours")
	{
		hoursRoutes.GET("", middleware.RoleAuthMiddleware(models.RoleAdmin), payrollHandler.GetWeeklyHours)
		hoursRoutes.GET("/me", middleware.RoleAuthMiddleware(models.RoleStaff), payrollHandler.GetMyWeeklyHours)
	}
}

// SetupClockRoutes sets up the clock in/out routes.
func SetupClockRoutes(authenticatedGroup *gin.RouterGroup, clockHandler *handlers.ClockHandler) {
	clockRoutes := authenticatedGroup.Group("/clock")
	clockRoutes.Use(middleware.RoleAuthMiddleware(models.RoleStaff))
	{
		clockRoutes.POST("/in", clockHandler.ClockIn)
		clockRoutes.POST("/out", clockHandler.ClockOut)
		clockRoutes.GET("/status", clockHandler.GetClockStatus)
		clockRoutes.GET("/records", clockHandler.GetMyTimeRecords)
	}
}
