package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventpass/internal/domain"
	"eventpass/internal/domain/entities"
)

func newUserService(store *memStore) *UserService {
	return NewUserService(store, preferenceRepo{store}, registrationRepo{store})
}

func TestTouch(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	svc := newUserService(store)

	require.NoError(t, svc.Touch(ctx, entities.User{ID: 42, DisplayName: " Ann ", Handle: "@ann"}))
	u := store.users[42]
	assert.Equal(t, "Ann", u.DisplayName)
	assert.Equal(t, "ann", u.Handle)
	assert.Equal(t, domain.RoleApplicant, u.Role)
	joined := u.JoinedAt
	assert.Contains(t, store.prefs, int64(42))

	require.NoError(t, svc.Touch(ctx, entities.User{ID: 42}))
	u = store.users[42]
	assert.Equal(t, "42", u.DisplayName)
	assert.Empty(t, u.Handle)
	assert.Equal(t, joined, u.JoinedAt)

	assert.ErrorIs(t, svc.Touch(ctx, entities.User{ID: 0}), domain.ErrValidation)
}

func TestProfile(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	svc := newUserService(store)

	_, err := svc.Profile(ctx, 42)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, svc.Touch(ctx, entities.User{ID: 42, DisplayName: "Ann"}))
	event := store.addEvent("Open Day")
	_, err = newRegistrationService(store).Register(ctx, 42, event.ID)
	require.NoError(t, err)
	_, err = NewPreferenceService(preferenceRepo{store}).ToggleEvents(ctx, 42)
	require.NoError(t, err)

	profile, err := svc.Profile(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, "Ann", profile.User.DisplayName)
	assert.False(t, profile.EventsEnabled)
	assert.Equal(t, int64(1), profile.Registrations)
}
