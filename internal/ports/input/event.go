package input

import (
	"context"

	"eventpass/internal/domain/entities"
)

type EventUseCase interface {
	// CreateEvent parses the "title|description|schedule|location" payload,
	// persists the event, posts the announcement and starts the broadcast.
	CreateEvent(ctx context.Context, actorID int64, payload string) (*entities.Event, error)
	GetEvent(ctx context.Context, id int64) (*entities.Event, error)
}

type Broadcaster interface {
	Broadcast(ctx context.Context, event *entities.Event) (entities.BroadcastReport, error)
}
