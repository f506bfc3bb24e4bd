package database

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"eventpass/internal/domain/entities"
	"eventpass/internal/ports/output"
)

var _ output.UserRepository = (*UserRepository)(nil)

// UserRepository implements output.UserRepository using pgx.
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Touch(ctx context.Context, user *entities.User) error {
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			`INSERT INTO users (id, display_name, handle)
			 VALUES ($1, $2, $3)
			 ON CONFLICT (id) DO UPDATE
			    SET display_name = EXCLUDED.display_name,
			        handle       = EXCLUDED.handle
			 RETURNING role, joined_at`,
			user.ID, user.DisplayName, stringToPgtypeText(user.Handle),
		).Scan(&user.Role, &user.JoinedAt)
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO notification_prefs (user_id) VALUES ($1)
			 ON CONFLICT (user_id) DO NOTHING`,
			user.ID,
		)
		return err
	})
	return translateError("touch user", err)
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*entities.User, error) {
	var (
		u      entities.User
		handle pgtype.Text
	)
	err := r.pool.QueryRow(ctx,
		`SELECT id, display_name, handle, role, joined_at FROM users WHERE id = $1`,
		id,
	).Scan(&u.ID, &u.DisplayName, &handle, &u.Role, &u.JoinedAt)
	if err != nil {
		return nil, translateError("get user by id", err)
	}
	u.Handle = pgtypeTextToString(handle)
	return &u, nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, translateError("count users", err)
	}
	return n, nil
}
