package repository

import (
	"strings"
)

// isUniqueViolation detects unique-constraint violations across SQLite and
// PostgreSQL without driver-specific error types.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "duplicate key value")
}
