package utils

import "os"

// Getenv returns the environment variable named by key, or fallback when
// it is unset or empty.
func Getenv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
