package router

import (
	"database/sql"

	"workforce_backend/internal/handlers"
	"workforce_backend/internal/middleware"
	"workforce_backend/internal/repositories"
	"workforce_backend/internal/scheduling"
	"workforce_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// Config carries the scheduling configuration the services need.
type Config struct {
	OperatingHours scheduling.OperatingHours
	RatePolicy     scheduling.PayRateResolutionPolicy
}

// Setup initializes the routing for the application.
func Setup(engine *gin.Engine, db *sql.DB, cfg Config) {
	// Initialize Repositories
	authRepo := repositories.NewAuthRepository(db)
	availabilityRepo := repositories.NewAvailabilityRepository(db)
	shiftRepo := repositories.NewShiftRepository(db)
	timesheetRepo := repositories.NewTimesheetRepository(db)
	timeRecordRepo := repositories.NewTimeRecordRepository(db)

	// Initialize Services
	authService := services.NewAuthService(authRepo, db)
	staffService := services.NewStaffService(authRepo, db)
	availabilityService := services.NewAvailabilityService(availabilityRepo, db)
	rosterService := services.NewRosterService(shiftRepo, availabilityRepo, authRepo, cfg.OperatingHours, db)
	timesheetService := services.NewTimesheetService(timesheetRepo, shiftRepo, authRepo, db)
	payrollService := services.NewPayrollService(timesheetRepo, authRepo, cfg.RatePolicy)
	clockService := services.NewClockService(timeRecordRepo, db)

	// Initialize Handlers
	authHandler := handlers.NewAuthHandler(authService)
	staffHandler := handlers.NewStaffHandler(staffService)
	availabilityHandler := handlers.NewAvailabilityHandler(availabilityService)
	rosterHandler := handlers.NewRosterHandler(rosterService)
	timesheetHandler := handlers.NewTimesheetHandler(timesheetService)
	payrollHandler := handlers.NewPayrollHandler(payrollService)
	clockHandler := handlers.NewClockHandler(clockService)

	apiV1 := engine.Group("/api/v1")

	SetupAuthRoutes(apiV1, authHandler)

	authenticated := apiV1.Group("")
	authenticated.Use(middleware.AuthMiddleware())
	{
		SetupStaffRoutes(authenticated, staffHandler)
		SetupAvailabilityRoutes(authenticated, availabilityHandler)
		SetupRosterRoutes(authenticated, rosterHandler)
		SetupTimesheetRoutes(authenticated, timesheetHandler)
		SetupHoursRoutes(authenticated, payrollHandler)
		SetupClockRoutes(authenticated, clockHandler)
	}
}
