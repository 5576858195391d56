package utils

import (
	"time"
)

const layoutDateTime = "2006-01-02 15:04"

// NowUTC returns current time in UTC, truncated to the store's precision.
func NowUTC() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

// FormatDateTime formats t as "YYYY-MM-DD HH:MM" UTC, or "-" when nil.
func FormatDateTime(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "-"
	}
	return t.UTC().Format(layoutDateTime)
}
