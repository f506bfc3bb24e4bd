package application

import (
	"context"
	"fmt"

	"eventpass/internal/infrastructure/metrics"
	"eventpass/internal/ports/output"
)

type PreferenceService struct {
	preferenceRepo output.PreferenceRepository
}

func NewPreferenceService(preferenceRepo output.PreferenceRepository) *PreferenceService {
	return &PreferenceService{preferenceRepo: preferenceRepo}
}

// EventsEnabled defaults to true for users without a stored preference.
func (s *PreferenceService) EventsEnabled(ctx context.Context, userID int64) (bool, error) {
	return eventsEnabled(ctx, s.preferenceRepo, userID)
}

// ToggleEvents flips the flag atomically in the store and returns the new value.
func (s *PreferenceService) ToggleEvents(ctx context.Context, userID int64) (bool, error) {
	enabled, err := s.preferenceRepo.ToggleEvents(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("toggle events: %w", err)
	}
	metrics.Toggles.Inc()
	return enabled, nil
}
