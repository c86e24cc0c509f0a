// utils/timeutil.go
package utils

import "time"

// Use explicit "seconds" variant for DB storage
func NowUnixSeconds() int64 { return time.Now().Unix() }

// Convert an epoch value in **seconds** to UTC.
// Returns zero time if t<=0 to let callers decide how to render.
func FromUnixSeconds(t int64) time.Time {
	if t <= 0 {
		return time.Time{}
	}
	return time.Unix(t, 0).UTC()
}

func FormatRFC3339(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339) // e.g. 2025-09-24T08:12:00Z
}

// FormatUnixRFC3339 renders an epoch-seconds column for API responses.
func FormatUnixRFC3339(t int64) string {
	return FormatRFC3339(FromUnixSeconds(t))
}
