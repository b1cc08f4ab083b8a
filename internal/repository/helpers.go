package repository

import (
	"database/sql"
	"time"
)

// dateLayout is how week boundaries are stored; timestamps use RFC3339.
const dateLayout = "2006-01-02"

// parseNullableTime parses a sql.NullString into a time.Time, returning the
// zero time if the value is NULL, empty, or fails to parse.
func parseNullableTime(s sql.NullString, layout string) time.Time {
	if !s.Valid || s.String == "" {
		return time.Time{}
	}
	t, err := time.Parse(layout, s.String)
	if err != nil {
		return time.Time{}
	}
	return t
}

// timeToNullable converts a time.Time to a value suitable for SQLite
// storage. The zero time becomes SQL NULL.
func timeToNullable(t time.Time, layout string) interface{} {
	if t.IsZero() {
		return nil
	}
	return t.Format(layout)
}

// boolToInt converts a Go bool to an integer (0 or 1) for SQLite storage.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
