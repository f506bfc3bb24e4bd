package entities

import "time"

// Event is an announced happening users can register for.
type Event struct {
	ID              int64
	Title           string
	Description     string
	ScheduledAt     string // free-form, as typed by the operator
	Location        string
	CreatedBy       int64
	AnnouncementRef string // empty until the announcement is posted
	CreatedAt       time.Time
}

func (e *Event) IsAnnounced() bool {
	return e.AnnouncementRef != ""
}
