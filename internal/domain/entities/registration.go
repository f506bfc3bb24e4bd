package entities

import "time"

// Registration is unique per (UserID, EventID).
type Registration struct {
	UserID       int64
	EventID      int64
	RegisteredAt time.Time
	Status       string
}

// RegistrationWithEvent is a registration joined with its event.
type RegistrationWithEvent struct {
	Registration
	Event Event
}

// Stats are operator-facing aggregate counts.
type Stats struct {
	Users         int64
	Events        int64
	Registrations int64
}
