package database

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"eventpass/internal/domain/entities"
	"eventpass/internal/ports/output"
)

var _ output.RegistrationRepository = (*RegistrationRepository)(nil)

// RegistrationRepository implements output.RegistrationRepository using pgx.
// Uniqueness per (user, event) is enforced by the table's primary key.
type RegistrationRepository struct {
	pool *pgxpool.Pool
}

func NewRegistrationRepository(pool *pgxpool.Pool) *RegistrationRepository {
	return &RegistrationRepository{pool: pool}
}

const registrationWithEventQuery = `
SELECT r.user_id, r.event_id, r.registered_at, r.status, ` + eventColumns + `
  FROM registrations r
  JOIN events e ON e.id = r.event_id`

func (r *RegistrationRepository) Create(ctx context.Context, registration *entities.Registration) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO registrations (user_id, event_id, status)
		 VALUES ($1, $2, $3)
		 RETURNING registered_at`,
		registration.UserID, registration.EventID, registration.Status,
	).Scan(&registration.RegisteredAt)
	if err != nil {
		return translateError("create registration", err)
	}
	return nil
}

func (r *RegistrationRepository) Find(ctx context.Context, userID, eventID int64) (*entities.RegistrationWithEvent, error) {
	reg, err := scanRegistrationWithEvent(r.pool.QueryRow(ctx,
		registrationWithEventQuery+` WHERE r.user_id = $1 AND r.event_id = $2`,
		userID, eventID,
	))
	if err != nil {
		return nil, translateError("get registration", err)
	}
	return &reg, nil
}

func (r *RegistrationRepository) FindByUserID(ctx context.Context, userID int64) ([]entities.RegistrationWithEvent, error) {
	rows, err := r.pool.Query(ctx,
		registrationWithEventQuery+` WHERE r.user_id = $1 ORDER BY r.registered_at DESC, r.event_id DESC`,
		userID,
	)
	if err != nil {
		return nil, translateError("list registrations by user", err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entities.RegistrationWithEvent, error) {
		return scanRegistrationWithEvent(row)
	})
	if err != nil {
		return nil, translateError("scan registrations", err)
	}
	return out, nil
}

func (r *RegistrationRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM registrations`).Scan(&n); err != nil {
		return 0, translateError("count registrations", err)
	}
	return n, nil
}

func (r *RegistrationRepository) CountByUserID(ctx context.Context, userID int64) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM registrations WHERE user_id = $1`, userID).Scan(&n)
	if err != nil {
		return 0, translateError("count registrations by user", err)
	}
	return n, nil
}
