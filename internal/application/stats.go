package application

import (
	"context"
	"fmt"

	"eventpass/internal/domain/entities"
	"eventpass/internal/ports/output"
)

type StatsService struct {
	userRepo         output.UserRepository
	eventRepo        output.EventRepository
	registrationRepo output.RegistrationRepository
	operatorID       int64
}

func NewStatsService(
	userRepo output.UserRepository,
	eventRepo output.EventRepository,
	registrationRepo output.RegistrationRepository,
	operatorID int64,
) *StatsService {
	return &StatsService{
		userRepo:         userRepo,
		eventRepo:        eventRepo,
		registrationRepo: registrationRepo,
		operatorID:       operatorID,
	}
}

// Snapshot runs three independent counts; they may be mutually skewed under
// concurrent writes.
func (s *StatsService) Snapshot(ctx context.Context) (entities.Stats, error) {
	var (
		stats entities.Stats
		err   error
	)
	if stats.Users, err = s.userRepo.Count(ctx); err != nil {
		return entities.Stats{}, fmt.Errorf("count users: %w", err)
	}
	if stats.Events, err = s.eventRepo.Count(ctx); err != nil {
		return entities.Stats{}, fmt.Errorf("count events: %w", err)
	}
	if stats.Registrations, err = s.registrationRepo.Count(ctx); err != nil {
		return entities.Stats{}, fmt.Errorf("count registrations: %w", err)
	}
	return stats, nil
}

func (s *StatsService) SnapshotAs(ctx context.Context, actorID int64) (entities.Stats, error) {
	if err := authorize(s.operatorID, actorID); err != nil {
		return entities.Stats{}, err
	}
	return s.Snapshot(ctx)
}
