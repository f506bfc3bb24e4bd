package input

import (
	"context"

	"eventpass/internal/domain/entities"
)

type UserUseCase interface {
	Touch(ctx context.Context, user entities.User) error
	Profile(ctx context.Context, userID int64) (*entities.Profile, error)
}

type PreferenceUseCase interface {
	EventsEnabled(ctx context.Context, userID int64) (bool, error)
	ToggleEvents(ctx context.Context, userID int64) (bool, error)
}

type StatsUseCase interface {
	// SnapshotAs returns domain.ErrPermissionDenied unless actorID is the operator.
	SnapshotAs(ctx context.Context, actorID int64) (entities.Stats, error)
}
