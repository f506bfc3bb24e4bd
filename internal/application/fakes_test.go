package application

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"eventpass/internal/domain"
	"eventpass/internal/domain/entities"
	"eventpass/internal/ports/output"
)

// memStore is an in-memory stand-in for the database that honours the same
// contracts: unique (user, event) registrations, atomic toggles and a
// set-once announcement ref.
type memStore struct {
	mu            sync.Mutex
	users         map[int64]entities.User
	prefs         map[int64]entities.NotificationPreference
	events        map[int64]entities.Event
	registrations map[[2]int64]entities.Registration
	nextEventID   int64
	clock         time.Time
	failWith      error // returned by every call when set
}

var _ output.UserRepository = (*memStore)(nil)

func newMemStore() *memStore {
	return &memStore{
		users:         map[int64]entities.User{},
		prefs:         map[int64]entities.NotificationPreference{},
		events:        map[int64]entities.Event{},
		registrations: map[[2]int64]entities.Registration{},
		clock:         time.Date(2025, 8, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (m *memStore) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

func (m *memStore) fail(op string) error {
	if m.failWith != nil {
		return &domain.PersistenceError{Op: op, Err: m.failWith}
	}
	return nil
}

func (m *memStore) Touch(_ context.Context, user *entities.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("touch user"); err != nil {
		return err
	}
	existing, ok := m.users[user.ID]
	if !ok {
		existing = entities.User{ID: user.ID, Role: domain.RoleApplicant, JoinedAt: m.tick()}
	}
	existing.DisplayName = user.DisplayName
	existing.Handle = user.Handle
	m.users[user.ID] = existing
	user.Role, user.JoinedAt = existing.Role, existing.JoinedAt
	if _, ok := m.prefs[user.ID]; !ok {
		m.prefs[user.ID] = entities.DefaultPreference(user.ID)
	}
	return nil
}

func (m *memStore) FindByID(_ context.Context, id int64) (*entities.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("get user"); err != nil {
		return nil, err
	}
	u, ok := m.users[id]
	if !ok {
		return nil, fmt.Errorf("get user: %w", domain.ErrNotFound)
	}
	return &u, nil
}

func (m *memStore) Count(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.users)), m.fail("count users")
}

// eventRepo exposes the event side of memStore; method names collide with
// the user side otherwise.
type eventRepo struct{ *memStore }

var _ output.EventRepository = eventRepo{}

func (r eventRepo) Create(_ context.Context, event *entities.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail("create event"); err != nil {
		return err
	}
	r.nextEventID++
	event.ID = r.nextEventID
	event.CreatedAt = r.tick()
	r.events[event.ID] = *event
	return nil
}

func (r eventRepo) FindByID(_ context.Context, id int64) (*entities.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail("get event"); err != nil {
		return nil, err
	}
	e, ok := r.events[id]
	if !ok {
		return nil, fmt.Errorf("get event: %w", domain.ErrNotFound)
	}
	return &e, nil
}

func (r eventRepo) SetAnnouncementRef(_ context.Context, id int64, ref string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.events[id]
	if !ok || e.AnnouncementRef != "" {
		return fmt.Errorf("set announcement ref: %w", domain.ErrNotFound)
	}
	e.AnnouncementRef = ref
	r.events[id] = e
	return nil
}

func (r eventRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.events)), r.fail("count events")
}

type registrationRepo struct{ *memStore }

var _ output.RegistrationRepository = registrationRepo{}

func (r registrationRepo) Create(_ context.Context, reg *entities.Registration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail("create registration"); err != nil {
		return err
	}
	key := [2]int64{reg.UserID, reg.EventID}
	if _, ok := r.registrations[key]; ok {
		return fmt.Errorf("create registration: %w", domain.ErrDuplicateKey)
	}
	reg.RegisteredAt = r.tick()
	r.registrations[key] = *reg
	return nil
}

func (r registrationRepo) Find(_ context.Context, userID, eventID int64) (*entities.RegistrationWithEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	reg, ok := r.registrations[[2]int64{userID, eventID}]
	if !ok {
		return nil, fmt.Errorf("get registration: %w", domain.ErrNotFound)
	}
	return &entities.RegistrationWithEvent{Registration: reg, Event: r.events[eventID]}, nil
}

func (r registrationRepo) FindByUserID(_ context.Context, userID int64) ([]entities.RegistrationWithEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail("list registrations"); err != nil {
		return nil, err
	}
	var out []entities.RegistrationWithEvent
	for key, reg := range r.registrations {
		if key[0] == userID {
			out = append(out, entities.RegistrationWithEvent{Registration: reg, Event: r.events[key[1]]})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RegisteredAt.After(out[j].RegisteredAt) })
	return out, nil
}

func (r registrationRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.registrations)), r.fail("count registrations")
}

func (r registrationRepo) CountByUserID(_ context.Context, userID int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for key := range r.registrations {
		if key[0] == userID {
			n++
		}
	}
	return n, nil
}

type preferenceRepo struct{ *memStore }

var _ output.PreferenceRepository = preferenceRepo{}

func (r preferenceRepo) FindByUserID(_ context.Context, userID int64) (*entities.NotificationPreference, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.prefs[userID]
	if !ok {
		return nil, fmt.Errorf("get prefs: %w", domain.ErrNotFound)
	}
	return &p, nil
}

func (r preferenceRepo) ToggleEvents(_ context.Context, userID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.prefs[userID]
	if !ok {
		p = entities.DefaultPreference(userID)
	}
	p.EventsEnabled = !p.EventsEnabled
	r.prefs[userID] = p
	return p.EventsEnabled, nil
}

func (r preferenceRepo) EventRecipients(_ context.Context) ([]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail("list recipients"); err != nil {
		return nil, err
	}
	var ids []int64
	for id := range r.users {
		p, ok := r.prefs[id]
		if !ok || p.EventsEnabled {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (m *memStore) addUser(id int64) {
	_ = m.Touch(context.Background(), &entities.User{ID: id, DisplayName: fmt.Sprintf("user-%d", id)})
}

func (m *memStore) addEvent(title string) *entities.Event {
	e := &entities.Event{Title: title, Description: "d", ScheduledAt: "soon", Location: "here", CreatedBy: 1}
	_ = eventRepo{m}.Create(context.Background(), e)
	return e
}

// keyTranslator renders the message key itself.
type keyTranslator struct{}

func (keyTranslator) T(_, key string, _ map[string]any) string { return key }

type mockNotifier struct{ mock.Mock }

func (m *mockNotifier) Send(ctx context.Context, recipientID int64, msg output.Message) error {
	return m.Called(ctx, recipientID, msg).Error(0)
}

type mockAnnouncer struct{ mock.Mock }

func (m *mockAnnouncer) Announce(ctx context.Context, msg output.Message) (string, error) {
	args := m.Called(ctx, msg)
	return args.String(0), args.Error(1)
}

// recordingBroadcaster captures broadcasts instead of delivering them.
type recordingBroadcaster struct {
	mu     sync.Mutex
	events []entities.Event
	err    error
}

func (b *recordingBroadcaster) Broadcast(_ context.Context, event *entities.Event) (entities.BroadcastReport, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, *event)
	return entities.BroadcastReport{EventID: event.ID}, b.err
}

func (b *recordingBroadcaster) broadcasts() []entities.Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]entities.Event(nil), b.events...)
}
