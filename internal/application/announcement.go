package application

import (
	"eventpass/internal/domain/entities"
	"eventpass/internal/ports/output"
	"eventpass/pkg/action"
)

// AnnouncementMessage renders an event announcement with a register button
// carrying the event id.
func AnnouncementMessage(t output.T, locale string, event *entities.Event) output.Message {
	return output.Message{
		Text: t.T(locale, "announcement.text", map[string]any{
			"Title":       event.Title,
			"Description": event.Description,
			"ScheduledAt": event.ScheduledAt,
			"Location":    event.Location,
		}),
		Actions: []output.CallToAction{{
			Label:    t.T(locale, "register.button", nil),
			ActionID: action.RegisterFor(event.ID),
		}},
	}
}
