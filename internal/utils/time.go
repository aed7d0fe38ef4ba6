package utils

import (
	"time"
)

const layoutDateTime = "2006-01-02 15:04"

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// FormatDateTime formats t as "YYYY-MM-DD HH:MM" in loc (Local when nil).
func FormatDateTime(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(layoutDateTime)
}
