package output

import (
	"context"

	"eventpass/internal/domain/entities"
)

type PreferenceRepository interface {
	// FindByUserID returns domain.ErrNotFound when no row exists yet.
	FindByUserID(ctx context.Context, userID int64) (*entities.NotificationPreference, error)
	// ToggleEvents flips events_enabled in a single statement and returns the new value.
	ToggleEvents(ctx context.Context, userID int64) (bool, error)
	// EventRecipients returns the ids of every user with events enabled.
	EventRecipients(ctx context.Context) ([]int64, error)
}
