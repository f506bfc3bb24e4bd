package application

import (
	"fmt"

	"eventpass/internal/domain"
)

// authorize admits only the configured operator.
func authorize(operatorID, actorID int64) error {
	if operatorID == 0 || actorID != operatorID {
		return fmt.Errorf("%w: user %d is not the operator", domain.ErrPermissionDenied, actorID)
	}
	return nil
}
