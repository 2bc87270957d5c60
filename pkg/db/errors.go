package db

import "strings"

// IsUniqueViolation reports whether the error came from a unique constraint.
// It recognizes both the Postgres and the SQLite (test driver) message forms.
// When constraintName is given, the helper matches that constraint only.
func IsUniqueViolation(err error, constraintName string) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	if constraintName != "" {
		return strings.Contains(msg, constraintName)
	}
	return strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
