package tz

import "time"

// Load returns the named location, falling back to UTC when the name is
// empty or unknown to the tz database.
func Load(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}
