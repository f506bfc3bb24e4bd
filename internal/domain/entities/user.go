package entities

import "time"

// User is keyed by the front-end identity and refreshed on every interaction.
type User struct {
	ID          int64
	DisplayName string
	Handle      string
	Role        string
	JoinedAt    time.Time
}

// NotificationPreference holds a user's opt-in flags.
type NotificationPreference struct {
	UserID        int64
	EventsEnabled bool
	NewsEnabled   bool
}

// DefaultPreference is what a user without a stored row gets.
func DefaultPreference(userID int64) NotificationPreference {
	return NotificationPreference{UserID: userID, EventsEnabled: true, NewsEnabled: true}
}

// Profile is what a user sees about themselves.
type Profile struct {
	User          User
	EventsEnabled bool
	Registrations int64
}
