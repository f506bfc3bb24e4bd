package database

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"eventpass/internal/domain/entities"
	"eventpass/internal/ports/output"
)

var _ output.PreferenceRepository = (*PreferenceRepository)(nil)

type PreferenceRepository struct {
	pool *pgxpool.Pool
}

func NewPreferenceRepository(pool *pgxpool.Pool) *PreferenceRepository {
	return &PreferenceRepository{pool: pool}
}

func (r *PreferenceRepository) FindByUserID(ctx context.Context, userID int64) (*entities.NotificationPreference, error) {
	p := entities.NotificationPreference{UserID: userID}
	err := r.pool.QueryRow(ctx,
		`SELECT events_enabled, news_enabled FROM notification_prefs WHERE user_id = $1`,
		userID,
	).Scan(&p.EventsEnabled, &p.NewsEnabled)
	if err != nil {
		return nil, translateError("get notification prefs", err)
	}
	return &p, nil
}

// ToggleEvents flips the flag server-side so concurrent toggles serialize on
// the row lock instead of racing a read in the caller. A missing row counts
// as enabled and is toggled to disabled.
func (r *PreferenceRepository) ToggleEvents(ctx context.Context, userID int64) (bool, error) {
	var enabled bool
	err := r.pool.QueryRow(ctx,
		`INSERT INTO notification_prefs (user_id, events_enabled)
		 VALUES ($1, FALSE)
		 ON CONFLICT (user_id) DO UPDATE
		    SET events_enabled = NOT notification_prefs.events_enabled
		 RETURNING events_enabled`,
		userID,
	).Scan(&enabled)
	if err != nil {
		return false, translateError("toggle events notifications", err)
	}
	return enabled, nil
}

func (r *PreferenceRepository) EventRecipients(ctx context.Context) ([]int64, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT u.id
		   FROM users u
		   LEFT JOIN notification_prefs p ON p.user_id = u.id
		  WHERE COALESCE(p.events_enabled, TRUE)
		  ORDER BY u.id`,
	)
	if err != nil {
		return nil, translateError("list event recipients", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, translateError("scan event recipients", err)
	}
	return ids, nil
}
