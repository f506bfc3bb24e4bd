package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"eventpass/internal/domain"
	"eventpass/internal/domain/entities"
	"eventpass/internal/ports/output"
)

var _ output.EventRepository = (*EventRepository)(nil)

type EventRepository struct {
	pool *pgxpool.Pool
}

func NewEventRepository(pool *pgxpool.Pool) *EventRepository {
	return &EventRepository{pool: pool}
}

func (r *EventRepository) Create(ctx context.Context, event *entities.Event) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO events (title, description, scheduled_at, location, created_by)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		event.Title, event.Description, event.ScheduledAt, event.Location, event.CreatedBy,
	).Scan(&event.ID, &event.CreatedAt)
	if err != nil {
		return translateError("create event", err)
	}
	return nil
}

func (r *EventRepository) FindByID(ctx context.Context, id int64) (*entities.Event, error) {
	e, err := scanEvent(r.pool.QueryRow(ctx,
		`SELECT `+eventColumns+` FROM events e WHERE e.id = $1`,
		id,
	))
	if err != nil {
		return nil, translateError("get event by id", err)
	}
	return e, nil
}

func (r *EventRepository) SetAnnouncementRef(ctx context.Context, id int64, ref string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE events SET announcement_ref = $2
		 WHERE id = $1 AND announcement_ref IS NULL`,
		id, ref,
	)
	if err != nil {
		return translateError("set announcement ref", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("set announcement ref: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *EventRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM events`).Scan(&n); err != nil {
		return 0, translateError("count events", err)
	}
	return n, nil
}
