package application

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"eventpass/internal/domain"
	"eventpass/internal/domain/entities"
	"eventpass/internal/ports/output"
)

type UserService struct {
	userRepo         output.UserRepository
	preferenceRepo   output.PreferenceRepository
	registrationRepo output.RegistrationRepository
}

func NewUserService(
	userRepo output.UserRepository,
	preferenceRepo output.PreferenceRepository,
	registrationRepo output.RegistrationRepository,
) *UserService {
	return &UserService{
		userRepo:         userRepo,
		preferenceRepo:   preferenceRepo,
		registrationRepo: registrationRepo,
	}
}

// Touch records an interaction: the user row is created or its name and
// handle refreshed, and the preference row is materialized if missing.
func (s *UserService) Touch(ctx context.Context, user entities.User) error {
	if user.ID <= 0 {
		return fmt.Errorf("%w: user id must be positive", domain.ErrValidation)
	}
	user.DisplayName = strings.TrimSpace(user.DisplayName)
	if user.DisplayName == "" {
		user.DisplayName = strconv.FormatInt(user.ID, 10)
	}
	user.Handle = strings.TrimPrefix(strings.TrimSpace(user.Handle), "@")
	if err := s.userRepo.Touch(ctx, &user); err != nil {
		return fmt.Errorf("touch user: %w", err)
	}
	return nil
}

func (s *UserService) Profile(ctx context.Context, userID int64) (*entities.Profile, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	enabled, err := eventsEnabled(ctx, s.preferenceRepo, userID)
	if err != nil {
		return nil, err
	}
	count, err := s.registrationRepo.CountByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count registrations: %w", err)
	}
	return &entities.Profile{User: *user, EventsEnabled: enabled, Registrations: count}, nil
}

// eventsEnabled reads the flag without materializing a row; absent means on.
func eventsEnabled(ctx context.Context, repo output.PreferenceRepository, userID int64) (bool, error) {
	pref, err := repo.FindByUserID(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return entities.DefaultPreference(userID).EventsEnabled, nil
	}
	if err != nil {
		return false, fmt.Errorf("get notification prefs: %w", err)
	}
	return pref.EventsEnabled, nil
}
