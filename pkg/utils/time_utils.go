// utils/timeutil.go
package utils

import "time"

// LoadLocation resolves the business time zone used in outgoing mail, falling
// back to UTC when the zone database does not know name.
func LoadLocation(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	if loc, err := time.LoadLocation(name); err == nil {
		return loc
	}
	return time.UTC
}

func FormatRFC3339In(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return ""
	}
	return t.In(loc).Format(time.RFC3339) // e.g. 2026-09-24T15:12:00+04:00
}

func FormatDisplayIn(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return ""
	}
	return t.In(loc).Format("2006-01-02 15:04 MST")
}
