package output

import (
	"context"

	"eventpass/internal/domain/entities"
)

type RegistrationRepository interface {
	// Create inserts a registration. A second insert for the same
	// (UserID, EventID) fails with domain.ErrDuplicateKey.
	Create(ctx context.Context, registration *entities.Registration) error
	Find(ctx context.Context, userID, eventID int64) (*entities.RegistrationWithEvent, error)
	// FindByUserID returns the user's registrations, most recent first.
	FindByUserID(ctx context.Context, userID int64) ([]entities.RegistrationWithEvent, error)
	Count(ctx context.Context) (int64, error)
	CountByUserID(ctx context.Context, userID int64) (int64, error)
}
