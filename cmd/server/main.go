package main

import (
	"net/http"
	"os"
	"strings"

	"workforce_backend/internal/database"
	routerpkg "workforce_backend/internal/router"
	"workforce_backend/internal/scheduling"
	"workforce_backend/pkg/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	// Initialize Logger
	utils.InitLogger()

	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, relying on environment")
	}

	utils.InitJWT(utils.Getenv("JWT_SECRET", "dev-only-secret-change-me"))

	// Load database configuration from environment variables
	dbHost := utils.Getenv("DB_HOST", "localhost")
	dbPort := utils.Getenv("DB_PORT", "5432")
	dbUser := utils.Getenv("DB_USER", "workforce_user")
	dbPassword := utils.Getenv("DB_PASSWORD", "workforce_password")
	dbName := utils.Getenv("DB_NAME", "workforce_db")
	dbSSLMode := utils.Getenv("DB_SSLMODE", "disable")
	dbSchemaPath := utils.Getenv("DB_SCHEMA_PATH", "")

	// Initialize Database
	database.InitDB(dbHost, dbPort, dbUser, dbPassword, dbName, dbSSLMode, dbSchemaPath)

	// Shop operating hours bound every shift on the roster.
	operatingHours, err := scheduling.ParseOperatingHours(
		utils.Getenv("SHOP_OPEN_TIME", "08:00"),
		utils.Getenv("SHOP_CLOSE_TIME", "22:00"),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid SHOP_OPEN_TIME/SHOP_CLOSE_TIME")
	}

	ratePolicy := scheduling.PayRateResolutionPolicy(utils.Getenv("PAY_RATE_POLICY", string(scheduling.RateCurrent)))
	if ratePolicy != scheduling.RateCurrent && ratePolicy != scheduling.RateSnapshotAtApproval {
		log.Fatal().Str("policy", string(ratePolicy)).Msg("PAY_RATE_POLICY must be CURRENT or SNAPSHOT_AT_APPROVAL")
	}

	registerValidators()

	engine := gin.Default()

	engine.Use(utils.RequestID())
	engine.Use(utils.GinLogger())

	// CORS configuration
	corsAllowedOriginsEnv := os.Getenv("CORS_ALLOWED_ORIGINS")
	var allowedOrigins []string
	if corsAllowedOriginsEnv != "" {
		allowedOrigins = strings.Split(corsAllowedOriginsEnv, ",")
	} else {
		allowedOrigins = []string{"http://localhost:3000", "http://localhost:3001"}
	}

	config := cors.DefaultConfig()
	config.AllowOrigins = allowedOrigins
	config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	config.AllowCredentials = true
	engine.Use(cors.New(config))

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Setup all application routes
	routerpkg.Setup(engine, database.GetDB(), routerpkg.Config{
		OperatingHours: operatingHours,
		RatePolicy:     ratePolicy,
	})

	// Server port configuration
	port := utils.Getenv("PORT", "8080")
	log.Info().Str("port", port).Msg("Server starting")

	if err := engine.Run(":" + port); err != nil {
		log.Fatal().Err(err).Msg("Failed to start server")
	}
}

// registerValidators wires the hhmm binding tag so request DTOs reject
// anything that is not a zero-padded HH:MM value.
func registerValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
			_, err := scheduling.ParseTime(fl.Field().String())
			return err == nil
		})
	}
}
