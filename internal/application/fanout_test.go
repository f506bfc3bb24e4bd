package application

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"eventpass/internal/domain"
	"eventpass/internal/ports/output"
)

func newFanout(store *memStore, notifier output.Notifier, opts FanoutOptions) *NotificationFanout {
	return NewNotificationFanout(preferenceRepo{store}, notifier, keyTranslator{}, opts, zerolog.Nop())
}

func TestBroadcast_PartialFailureDoesNotHaltBatch(t *testing.T) {
	store := newMemStore()
	for id := int64(1); id <= 10; id++ {
		store.addUser(id)
	}
	event := store.addEvent("Open Day")

	failing := map[int64]bool{2: true, 5: true, 9: true}
	notifier := &mockNotifier{}
	for id := int64(1); id <= 10; id++ {
		var err error
		if failing[id] {
			err = errors.New("bot was blocked by the user")
		}
		notifier.On("Send", mock.Anything, id, mock.Anything).Return(err).Once()
	}

	report, err := newFanout(store, notifier, FanoutOptions{Workers: 4}).Broadcast(context.Background(), event)
	require.NoError(t, err)

	assert.Equal(t, 10, report.Attempted)
	assert.Equal(t, 3, report.Failed)
	assert.Equal(t, 7, report.Delivered)
	notifier.AssertExpectations(t)

	failures := report.Failures()
	require.Len(t, failures, 3)
	for _, f := range failures {
		assert.True(t, failing[f.RecipientID])
		var derr *domain.DeliveryError
		require.ErrorAs(t, f.Err, &derr)
		assert.Equal(t, f.RecipientID, derr.RecipientID)
	}
}

func TestBroadcast_OnlyOptedInRecipients(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	store.addUser(1)
	store.addUser(2)
	store.addUser(3)
	_, _ = preferenceRepo{store}.ToggleEvents(ctx, 2)
	event := store.addEvent("Open Day")

	notifier := &mockNotifier{}
	notifier.On("Send", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	report, err := newFanout(store, notifier, FanoutOptions{}).Broadcast(ctx, event)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Attempted)
	notifier.AssertNotCalled(t, "Send", mock.Anything, int64(2), mock.Anything)
}

func TestBroadcast_MessageCarriesRegisterAction(t *testing.T) {
	store := newMemStore()
	store.addUser(1)
	store.addEvent("Filler")
	event := store.addEvent("Open Day")

	notifier := &mockNotifier{}
	notifier.On("Send", mock.Anything, int64(1), mock.MatchedBy(func(msg output.Message) bool {
		return msg.Text == "announcement.text" &&
			len(msg.Actions) == 1 &&
			msg.Actions[0].ActionID == "register:2"
	})).Return(nil).Once()

	_, err := newFanout(store, notifier, FanoutOptions{}).Broadcast(context.Background(), event)
	require.NoError(t, err)
	notifier.AssertExpectations(t)
}

func TestBroadcast_DeliveryTimeoutBoundsEachAttempt(t *testing.T) {
	store := newMemStore()
	store.addUser(1)
	event := store.addEvent("Open Day")

	notifier := &mockNotifier{}
	notifier.On("Send", mock.Anything, int64(1), mock.Anything).
		Run(func(args mock.Arguments) {
			ctx := args.Get(0).(context.Context)
			_, ok := ctx.Deadline()
			assert.True(t, ok, "send context must carry a deadline")
		}).
		Return(nil)

	report, err := newFanout(store, notifier, FanoutOptions{DeliveryTimeout: time.Second}).Broadcast(context.Background(), event)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Delivered)
}

func TestBroadcast_SnapshotFailure(t *testing.T) {
	store := newMemStore()
	store.addUser(1)
	event := store.addEvent("Open Day")
	store.failWith = errors.New("db down")

	notifier := &mockNotifier{}
	report, err := newFanout(store, notifier, FanoutOptions{}).Broadcast(context.Background(), event)
	assert.ErrorIs(t, err, domain.ErrPersistence)
	assert.Zero(t, report.Attempted)
	notifier.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
}

func TestBroadcast_NoRecipients(t *testing.T) {
	store := newMemStore()
	event := store.addEvent("Open Day")

	report, err := newFanout(store, &mockNotifier{}, FanoutOptions{Rate: 5}).Broadcast(context.Background(), event)
	require.NoError(t, err)
	assert.Zero(t, report.Attempted)
	assert.Zero(t, report.Delivered)
	assert.Zero(t, report.Failed)
}

func TestBroadcast_LogsEachFailedRecipient(t *testing.T) {
	store := newMemStore()
	store.addUser(1)
	store.addUser(2)
	event := store.addEvent("Open Day")

	notifier := &mockNotifier{}
	notifier.On("Send", mock.Anything, int64(1), mock.Anything).Return(nil)
	notifier.On("Send", mock.Anything, int64(2), mock.Anything).Return(errors.New("cannot send messages to this user"))

	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.InfoLevel)
	fanout := NewNotificationFanout(preferenceRepo{store}, notifier, keyTranslator{}, FanoutOptions{}, logger)

	report, err := fanout.Broadcast(context.Background(), event)
	require.NoError(t, err)
	require.Equal(t, 1, report.Failed)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "delivery failed", entry["message"])
	assert.EqualValues(t, 2, entry["recipient_id"])
	assert.EqualValues(t, event.ID, entry["event_id"])
}
