package input

import (
	"context"

	"eventpass/internal/domain/entities"
)

type RegistrationUseCase interface {
	Register(ctx context.Context, userID, eventID int64) (*entities.Pass, error)
	Reissue(ctx context.Context, userID int64) (*entities.Pass, error)
	PassFor(ctx context.Context, userID, eventID int64) (*entities.Pass, error)
	ListByUser(ctx context.Context, userID int64) ([]entities.RegistrationWithEvent, error)
	Verify(ctx context.Context, token string) (*entities.Pass, error)
}
