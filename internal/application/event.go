package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"eventpass/internal/domain"
	"eventpass/internal/domain/entities"
	"eventpass/internal/ports/input"
	"eventpass/internal/ports/output"
)

const draftFieldSeparator = "|"

// EventDraft is the parsed create-event payload.
type EventDraft struct {
	Title       string `validate:"required,max=200"`
	Description string `validate:"required,max=2000"`
	ScheduledAt string `validate:"required,max=100"`
	Location    string `validate:"required,max=200"`
}

// ParseEventDraft splits "title|description|schedule|location". Any other
// field count is a validation error.
func ParseEventDraft(payload string) (EventDraft, error) {
	fields := strings.Split(payload, draftFieldSeparator)
	if len(fields) != 4 {
		return EventDraft{}, fmt.Errorf("%w: expected 4 fields separated by %q, got %d",
			domain.ErrValidation, draftFieldSeparator, len(fields))
	}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	return EventDraft{
		Title:       fields[0],
		Description: fields[1],
		ScheduledAt: fields[2],
		Location:    fields[3],
	}, nil
}

type EventService struct {
	eventRepo   output.EventRepository
	announcer   output.Announcer
	broadcaster input.Broadcaster
	translator  output.T
	locale      string
	operatorID  int64
	validate    *validator.Validate
	logger      zerolog.Logger

	inflight sync.WaitGroup
}

func NewEventService(
	eventRepo output.EventRepository,
	announcer output.Announcer,
	broadcaster input.Broadcaster,
	translator output.T,
	locale string,
	operatorID int64,
	logger zerolog.Logger,
) *EventService {
	return &EventService{
		eventRepo:   eventRepo,
		announcer:   announcer,
		broadcaster: broadcaster,
		translator:  translator,
		locale:      locale,
		operatorID:  operatorID,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
		logger:      logger,
	}
}

// CreateEvent persists the event, posts its announcement, records the
// announcement reference and starts the broadcast in the background. The
// caller does not wait for delivery.
func (s *EventService) CreateEvent(ctx context.Context, actorID int64, payload string) (*entities.Event, error) {
	if err := authorize(s.operatorID, actorID); err != nil {
		return nil, err
	}
	draft, err := ParseEventDraft(payload)
	if err != nil {
		return nil, err
	}
	if err := s.validate.Struct(draft); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrValidation, describeValidation(err))
	}

	event := &entities.Event{
		Title:       draft.Title,
		Description: draft.Description,
		ScheduledAt: draft.ScheduledAt,
		Location:    draft.Location,
		CreatedBy:   actorID,
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	logger := s.logger.With().Int64("event_id", event.ID).Logger()

	ref, err := s.announcer.Announce(ctx, AnnouncementMessage(s.translator, s.locale, event))
	switch {
	case err != nil:
		logger.Warn().Err(err).Msg("announcement post failed, broadcasting without it")
	case ref != "":
		if err := s.eventRepo.SetAnnouncementRef(ctx, event.ID, ref); err != nil {
			logger.Error().Err(err).Str("ref", ref).Msg("store announcement ref")
		} else {
			event.AnnouncementRef = ref
		}
	}

	s.startBroadcast(ctx, *event, logger)
	return event, nil
}

func (s *EventService) GetEvent(ctx context.Context, id int64) (*entities.Event, error) {
	event, err := s.eventRepo.FindByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

// Wait blocks until every broadcast started by this service has finished.
func (s *EventService) Wait() {
	s.inflight.Wait()
}

func (s *EventService) startBroadcast(ctx context.Context, event entities.Event, logger zerolog.Logger) {
	// The broadcast outlives the request that triggered it.
	ctx = context.WithoutCancel(ctx)
	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		report, err := s.broadcaster.Broadcast(ctx, &event)
		if err != nil {
			logger.Error().Err(err).Msg("broadcast aborted")
			return
		}
		logger.Info().
			Int("attempted", report.Attempted).
			Int("delivered", report.Delivered).
			Int("failed", report.Failed).
			Msg("broadcast finished")
	}()
}

func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
	}
	return strings.Join(parts, ", ")
}
