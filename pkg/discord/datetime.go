package discord

import "time"

const dateTimeLayout = "02.01.2006 15:04"

// FormatDateTime renders t in loc; the zero time renders empty.
func FormatDateTime(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return ""
	}
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(dateTimeLayout)
}
