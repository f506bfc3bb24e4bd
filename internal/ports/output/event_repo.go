package output

import (
	"context"

	"eventpass/internal/domain/entities"
)

type EventRepository interface {
	Create(ctx context.Context, event *entities.Event) error
	FindByID(ctx context.Context, id int64) (*entities.Event, error)
	// SetAnnouncementRef sets the ref once; a second call returns domain.ErrNotFound.
	SetAnnouncementRef(ctx context.Context, id int64, ref string) error
	Count(ctx context.Context) (int64, error)
}
