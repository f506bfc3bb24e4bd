package domain

import (
	"errors"
	"fmt"
)

// Domain errors.
var (
	ErrValidation        = errors.New("invalid input")
	ErrEventNotFound     = errors.New("event not found")
	ErrAlreadyRegistered = errors.New("already registered for this event")
	ErrNoRegistration    = errors.New("no registration found")
	ErrPermissionDenied  = errors.New("permission denied")
	ErrMalformedToken    = errors.New("malformed pass token")
	ErrNotFound          = errors.New("not found")
	ErrDuplicateKey      = errors.New("duplicate key")
	ErrPersistence       = errors.New("persistence failure")
)

// PersistenceError wraps an unexpected store failure.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func (e *PersistenceError) Is(target error) bool { return target == ErrPersistence }

// DeliveryError records a failed delivery to one recipient of a broadcast.
type DeliveryError struct {
	RecipientID int64
	Err         error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("deliver to %d: %v", e.RecipientID, e.Err)
}

func (e *DeliveryError) Unwrap() error { return e.Err }

var codes = []struct {
	err  error
	code string
}{
	{ErrValidation, "validation"},
	{ErrMalformedToken, "malformed_token"},
	{ErrEventNotFound, "event_not_found"},
	{ErrAlreadyRegistered, "already_registered"},
	{ErrNoRegistration, "no_registration"},
	{ErrPermissionDenied, "permission_denied"},
	{ErrDuplicateKey, "duplicate_key"},
	{ErrNotFound, "not_found"},
}

// Code returns the stable code of the domain error wrapped in err, used as an
// i18n key suffix. Unknown errors (including persistence failures) map to
// "generic"; nil maps to "".
func Code(err error) string {
	if err == nil {
		return ""
	}
	for _, c := range codes {
		if errors.Is(err, c.err) {
			return c.code
		}
	}
	return "generic"
}
