package discord

import (
	"time"

	"github.com/rs/zerolog"

	"eventpass/internal/ports/input"
	"eventpass/internal/ports/output"
)

// Handler turns interactions into use-case calls and use-case results into
// replies.
type Handler struct {
	events        input.EventUseCase
	registrations input.RegistrationUseCase
	users         input.UserUseCase
	preferences   input.PreferenceUseCase
	stats         input.StatsUseCase
	translator    output.T
	locale        string
	location      *time.Location
	operatorID    int64
	logger        zerolog.Logger
}

// HandlerDeps groups the collaborators of a Handler.
type HandlerDeps struct {
	Events        input.EventUseCase
	Registrations input.RegistrationUseCase
	Users         input.UserUseCase
	Preferences   input.PreferenceUseCase
	Stats         input.StatsUseCase
	Translator    output.T
	Locale        string
	Location      *time.Location
	OperatorID    int64
}

func NewHandler(deps HandlerDeps, logger zerolog.Logger) *Handler {
	loc := deps.Location
	if loc == nil {
		loc = time.UTC
	}
	return &Handler{
		events:        deps.Events,
		registrations: deps.Registrations,
		users:         deps.Users,
		preferences:   deps.Preferences,
		stats:         deps.Stats,
		translator:    deps.Translator,
		locale:        deps.Locale,
		location:      loc,
		operatorID:    deps.OperatorID,
		logger:        logger,
	}
}

func (h *Handler) translate(key string, data map[string]any) string {
	return h.translator.T(h.locale, key, data)
}
