// Package dateutil works with canonical day keys: YYYY-MM-DD strings in
// local calendar time. All date math in the app goes through these helpers
// so that day boundaries are consistent everywhere.
package dateutil

import (
	"time"

	"github.com/ritualhq/ritual/internal/constants"
)

// Today returns the current local date as a day key.
func Today() string {
	return time.Now().Format(constants.DateFormat)
}

// Yesterday returns yesterday's local date as a day key.
func Yesterday() string {
	return Offset(Today(), 1)
}

// Offset returns the day key shifted by the given number of days into the
// past. Negative values move forward. Month and year boundaries roll
// correctly via time.AddDate.
func Offset(day string, days int) string {
	t, err := time.ParseInLocation(constants.DateFormat, day, time.Local)
	if err != nil {
		return day
	}
	return t.AddDate(0, 0, -days).Format(constants.DateFormat)
}

// Weekday returns the day-of-week index for a day key, 0=Sunday..6=Saturday.
func Weekday(day string) int {
	t, err := time.ParseInLocation(constants.DateFormat, day, time.Local)
	if err != nil {
		return 0
	}
	return int(t.Weekday())
}

// Timestamp returns the current instant as an RFC3339 string, used for
// audit fields (created_at, updated_at, completed_at).
func Timestamp() string {
	return time.Now().Format(time.RFC3339)
}

// Valid reports whether the string is a well-formed day key.
func Valid(day string) bool {
	_, err := time.ParseInLocation(constants.DateFormat, day, time.Local)
	return err == nil
}

// Parse converts a day key to a time.Time at local midnight.
func Parse(day string) (time.Time, error) {
	return time.ParseInLocation(constants.DateFormat, day, time.Local)
}
