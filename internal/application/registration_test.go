package application

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventpass/internal/domain"
)

func newRegistrationService(store *memStore) *RegistrationService {
	return NewRegistrationService(registrationRepo{store}, eventRepo{store})
}

func TestRegister_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	store.addUser(42)
	event := store.addEvent("Open Day")
	svc := newRegistrationService(store)

	p, err := svc.Register(ctx, 42, event.ID)
	require.NoError(t, err)
	assert.Equal(t, "42:1", p.Token)
	assert.Equal(t, "Open Day", p.Event.Title)
	assert.Equal(t, domain.StatusConfirmed, p.Registration.Status)

	_, err = svc.Register(ctx, 42, event.ID)
	assert.ErrorIs(t, err, domain.ErrAlreadyRegistered)
	assert.NotErrorIs(t, err, domain.ErrDuplicateKey, "the store error must not leak")

	n, err := registrationRepo{store}.CountByUserID(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestRegister_ConcurrentDuplicateTaps(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	store.addUser(42)
	event := store.addEvent("Open Day")
	svc := newRegistrationService(store)

	const taps = 50
	var registered, duplicates atomic.Int32
	var wg sync.WaitGroup
	for range taps {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Register(ctx, 42, event.ID)
			switch {
			case err == nil:
				registered.Add(1)
			case errors.Is(err, domain.ErrAlreadyRegistered):
				duplicates.Add(1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), registered.Load())
	assert.Equal(t, int32(taps-1), duplicates.Load())
	n, _ := registrationRepo{store}.Count(ctx)
	assert.Equal(t, int64(1), n)
}

func TestRegister_UnknownEvent(t *testing.T) {
	store := newMemStore()
	store.addUser(42)
	svc := newRegistrationService(store)

	_, err := svc.Register(context.Background(), 42, 7)
	assert.ErrorIs(t, err, domain.ErrEventNotFound)
	n, _ := registrationRepo{store}.Count(context.Background())
	assert.Zero(t, n)
}

func TestRegister_PersistenceFailure(t *testing.T) {
	store := newMemStore()
	store.addUser(42)
	event := store.addEvent("Open Day")
	store.failWith = errors.New("connection reset")
	svc := newRegistrationService(store)

	_, err := svc.Register(context.Background(), 42, event.ID)
	assert.ErrorIs(t, err, domain.ErrPersistence)
	assert.Equal(t, "generic", domain.Code(err))
}

func TestReissue(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	store.addUser(42)
	first := store.addEvent("First")
	second := store.addEvent("Second")
	svc := newRegistrationService(store)

	_, err := svc.Reissue(ctx, 42)
	assert.ErrorIs(t, err, domain.ErrNoRegistration)

	_, err = svc.Register(ctx, 42, first.ID)
	require.NoError(t, err)
	_, err = svc.Register(ctx, 42, second.ID)
	require.NoError(t, err)

	before, _ := registrationRepo{store}.Count(ctx)
	p, err := svc.Reissue(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, "Second", p.Event.Title)
	assert.Equal(t, "42:2", p.Token)

	again, err := svc.Reissue(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, p.Token, again.Token)

	after, _ := registrationRepo{store}.Count(ctx)
	assert.Equal(t, before, after, "reissue must not create state")
}

func TestPassForAndVerify(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	store.addUser(42)
	event := store.addEvent("Open Day")
	svc := newRegistrationService(store)

	_, err := svc.PassFor(ctx, 42, event.ID)
	assert.ErrorIs(t, err, domain.ErrNoRegistration)

	issued, err := svc.Register(ctx, 42, event.ID)
	require.NoError(t, err)

	p, err := svc.PassFor(ctx, 42, event.ID)
	require.NoError(t, err)
	assert.Equal(t, issued.Token, p.Token)

	verified, err := svc.Verify(ctx, issued.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), verified.Registration.UserID)
	assert.Equal(t, "Open Day", verified.Event.Title)

	_, err = svc.Verify(ctx, "42:9")
	assert.ErrorIs(t, err, domain.ErrNoRegistration)
	_, err = svc.Verify(ctx, "forty-two")
	assert.ErrorIs(t, err, domain.ErrMalformedToken)
}

func TestListByUser(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	store.addUser(42)
	a := store.addEvent("A")
	b := store.addEvent("B")
	svc := newRegistrationService(store)

	list, err := svc.ListByUser(ctx, 42)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, _ = svc.Register(ctx, 42, a.ID)
	_, _ = svc.Register(ctx, 42, b.ID)
	list, err = svc.ListByUser(ctx, 42)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "B", list[0].Event.Title)
}
