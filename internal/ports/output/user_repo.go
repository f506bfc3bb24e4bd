package output

import (
	"context"

	"eventpass/internal/domain/entities"
)

type UserRepository interface {
	// Touch upserts the user (refreshing name and handle) and lazily creates
	// the notification preference row, atomically.
	Touch(ctx context.Context, user *entities.User) error
	FindByID(ctx context.Context, id int64) (*entities.User, error)
	Count(ctx context.Context) (int64, error)
}
