package application

import (
	"context"
	"errors"
	"fmt"

	"eventpass/internal/domain"
	"eventpass/internal/domain/entities"
	"eventpass/internal/infrastructure/metrics"
	"eventpass/internal/ports/output"
	"eventpass/pkg/pass"
)

type RegistrationService struct {
	registrationRepo output.RegistrationRepository
	eventRepo        output.EventRepository
}

func NewRegistrationService(
	registrationRepo output.RegistrationRepository,
	eventRepo output.EventRepository,
) *RegistrationService {
	return &RegistrationService{
		registrationRepo: registrationRepo,
		eventRepo:        eventRepo,
	}
}

// Register commits a registration and issues its pass. Duplicates are caught
// by the store's uniqueness constraint, never by a prior read, so concurrent
// calls for one pair yield exactly one row and ErrAlreadyRegistered for the rest.
func (s *RegistrationService) Register(ctx context.Context, userID, eventID int64) (*entities.Pass, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			metrics.Registrations.WithLabelValues(metrics.OutcomeNoEvent).Inc()
			return nil, domain.ErrEventNotFound
		}
		metrics.Registrations.WithLabelValues(metrics.OutcomeError).Inc()
		return nil, fmt.Errorf("get event: %w", err)
	}

	registration := &entities.Registration{
		UserID:  userID,
		EventID: eventID,
		Status:  domain.StatusConfirmed,
	}
	if err := s.registrationRepo.Create(ctx, registration); err != nil {
		if errors.Is(err, domain.ErrDuplicateKey) {
			metrics.Registrations.WithLabelValues(metrics.OutcomeDuplicate).Inc()
			return nil, domain.ErrAlreadyRegistered
		}
		metrics.Registrations.WithLabelValues(metrics.OutcomeError).Inc()
		return nil, fmt.Errorf("create registration: %w", err)
	}

	metrics.Registrations.WithLabelValues(metrics.OutcomeRegistered).Inc()
	return &entities.Pass{
		Event:        *event,
		Registration: *registration,
		Token:        pass.Encode(userID, eventID),
	}, nil
}

// Reissue re-derives the pass of the user's most recent registration.
func (s *RegistrationService) Reissue(ctx context.Context, userID int64) (*entities.Pass, error) {
	registrations, err := s.registrationRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	if len(registrations) == 0 {
		return nil, domain.ErrNoRegistration
	}
	return passOf(registrations[0]), nil
}

// PassFor re-derives the pass for one specific registration.
func (s *RegistrationService) PassFor(ctx context.Context, userID, eventID int64) (*entities.Pass, error) {
	registration, err := s.registrationRepo.Find(ctx, userID, eventID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrNoRegistration
	}
	if err != nil {
		return nil, fmt.Errorf("get registration: %w", err)
	}
	return passOf(*registration), nil
}

func (s *RegistrationService) ListByUser(ctx context.Context, userID int64) ([]entities.RegistrationWithEvent, error) {
	registrations, err := s.registrationRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	return registrations, nil
}

// Verify checks a scanned token against the ledger.
func (s *RegistrationService) Verify(ctx context.Context, token string) (*entities.Pass, error) {
	userID, eventID, err := pass.Decode(token)
	if err != nil {
		return nil, err
	}
	return s.PassFor(ctx, userID, eventID)
}

func passOf(r entities.RegistrationWithEvent) *entities.Pass {
	return &entities.Pass{
		Event:        r.Event,
		Registration: r.Registration,
		Token:        pass.Encode(r.UserID, r.EventID),
	}
}
