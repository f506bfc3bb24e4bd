package discord

import (
	"context"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"

	"eventpass/internal/ports/output"
	"eventpass/pkg/action"
	pkgdiscord "eventpass/pkg/discord"
)

const (
	maxLabelRunes   = 80
	maxMessageRunes = 2000
	// One pass button per listed registration; Buttons renders at most 25.
	maxListedRegistrations = 25
)

func (h *Handler) menuReply(actorID int64, textKey string) reply {
	actions := []output.CallToAction{
		{Label: h.translate("menu.about", nil), ActionID: string(action.About)},
		{Label: h.translate("menu.profile", nil), ActionID: string(action.GetProfile)},
		{Label: h.translate("menu.registrations", nil), ActionID: string(action.ListMyRegistrations)},
		{Label: h.translate("menu.any_pass", nil), ActionID: string(action.GetAnyPass)},
		{Label: h.translate("menu.toggle_events", nil), ActionID: string(action.ToggleEvents)},
	}
	if actorID == h.operatorID {
		actions = append(actions,
			output.CallToAction{Label: h.translate("menu.stats", nil), ActionID: string(action.Stats)},
			output.CallToAction{Label: h.translate("menu.create_event", nil), ActionID: string(action.CreateEvent)},
		)
	}
	return reply{
		content:    h.translate(textKey, nil),
		components: pkgdiscord.Buttons(actions),
	}
}

func (h *Handler) backButton() []discordgo.MessageComponent {
	return pkgdiscord.Buttons([]output.CallToAction{
		{Label: h.translate("menu.back", nil), ActionID: string(action.Start)},
	})
}

func (h *Handler) passButton(eventID int64) []discordgo.MessageComponent {
	return pkgdiscord.Buttons([]output.CallToAction{
		{Label: h.translate("pass.button", nil), ActionID: action.PassFor(eventID)},
	})
}

func (h *Handler) profileReply(ctx context.Context, userID int64) reply {
	profile, err := h.users.Profile(ctx, userID)
	if err != nil {
		return h.errorReply(ctx, err)
	}
	handle := h.translate("profile.handle_unset", nil)
	if profile.User.Handle != "" {
		handle = "@" + profile.User.Handle
	}
	notifications := h.translate("notifications.off", nil)
	if profile.EventsEnabled {
		notifications = h.translate("notifications.on", nil)
	}
	return reply{
		content: h.translate("profile.text", map[string]any{
			"Name":          profile.User.DisplayName,
			"Handle":        handle,
			"ID":            strconv.FormatInt(profile.User.ID, 10),
			"Role":          h.translate("role."+profile.User.Role, nil),
			"JoinedAt":      pkgdiscord.FormatDateTime(profile.User.JoinedAt, h.location),
			"Notifications": notifications,
			"Registrations": profile.Registrations,
		}),
		components: h.backButton(),
	}
}

// registrationsReply lists the user's registrations, most recent first, with
// a pass button for each. The list stops where the message would exceed
// Discord's content limit or run out of buttons, and ends with a count of the
// rest.
func (h *Handler) registrationsReply(ctx context.Context, userID int64) reply {
	registrations, err := h.registrations.ListByUser(ctx, userID)
	if err != nil {
		return h.errorReply(ctx, err)
	}
	if len(registrations) == 0 {
		return reply{content: h.translate("registrations.empty", nil), components: h.backButton()}
	}

	more := func(n int) string {
		return "\n" + h.translate("registrations.more", map[string]any{"Count": n})
	}

	var b strings.Builder
	b.WriteString(h.translate("registrations.header", nil))
	used := utf8.RuneCountInString(b.String())
	actions := make([]output.CallToAction, 0, min(len(registrations), maxListedRegistrations))
	for i, r := range registrations {
		if i == maxListedRegistrations {
			break
		}
		line := "\n" + h.translate("registrations.item", map[string]any{
			"Title":       r.Event.Title,
			"ScheduledAt": r.Event.ScheduledAt,
			"Location":    r.Event.Location,
		})
		size := utf8.RuneCountInString(line)
		if rest := len(registrations) - i - 1; rest > 0 {
			size += utf8.RuneCountInString(more(rest))
		}
		if used+size > maxMessageRunes {
			break
		}
		b.WriteString(line)
		used += utf8.RuneCountInString(line)
		actions = append(actions, output.CallToAction{
			Label:    truncate("🎫 "+r.Event.Title, maxLabelRunes),
			ActionID: action.PassFor(r.EventID),
		})
	}
	if hidden := len(registrations) - len(actions); hidden > 0 {
		b.WriteString(more(hidden))
	}
	return reply{content: b.String(), components: pkgdiscord.Buttons(actions)}
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
