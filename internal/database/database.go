package database

import (
	"database/sql"
	"fmt"
	"os"

	_ "github.com/lib/pq" // PostgreSQL driver
	"github.com/rs/zerolog/log"
)

var DB *sql.DB

// InitDB initializes the database connection pool.
func InitDB(host, port, user, password, dbname, sslmode, dbSchemaPath string) {
	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbname, sslmode)

	var err error
	DB, err = sql.Open("postgres", connStr)
	if err != nil {
		log.Fatal().Err(err).Msg("Error opening database")
	}

	if err = DB.Ping(); err != nil {
		log.Fatal().Err(err).Msg("Error connecting to database")
	}

	log.Info().Str("host", host).Str("database", dbname).Msg("Connected to the database")

	if dbSchemaPath != "" {
		if err := applySchema(DB, dbSchemaPath); err != nil {
			log.Fatal().Err(err).Msg("Error applying database schema")
		}
	}
}

// applySchema reads and executes the db_schema.sql file.
func applySchema(db *sql.DB, schemaPath string) error {
	content, err := os.ReadFile(schemaPath)
	if err != nil {
		return fmt.Errorf("could not read schema file %s: %w", schemaPath, err)
	}

	if _, err = db.Exec(string(content)); err != nil {
		return fmt.Errorf("could not execute schema script: %w", err)
	}
	log.Info().Str("path", schemaPath).Msg("Database schema applied")
	return nil
}

// GetDB returns the database connection pool.
func GetDB() *sql.DB {
	return DB
}
