package database

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"eventpass/internal/domain"
)

// SQLSTATE unique_violation.
const uniqueViolation = "23505"

// translateError maps driver errors onto the domain taxonomy. It is the only
// place that knows about SQLSTATE codes.
func translateError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%s: %w (%s)", op, domain.ErrDuplicateKey, pgErr.ConstraintName)
	}
	return &domain.PersistenceError{Op: op, Err: err}
}
