package discord

import (
	"github.com/bwmarrin/discordgo"

	"eventpass/pkg/action"
	pkgdiscord "eventpass/pkg/discord"
)

const (
	createEventModalID = "create_event_modal"
	payloadOption      = "payload"
)

var commands = []*discordgo.ApplicationCommand{
	{Name: "start", Description: "Open the menu"},
	{Name: "profile", Description: "Show my profile"},
	{Name: "registrations", Description: "List my registrations"},
	{Name: "pass", Description: "Show my latest pass"},
	{Name: "notifications", Description: "Turn event notifications on or off"},
	{Name: "stats", Description: "Show registration statistics"},
	{
		Name:        "newevent",
		Description: "Create and announce an event",
		Options: []*discordgo.ApplicationCommandOption{{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        payloadOption,
			Description: "title | description | date | location",
		}},
	},
}

var commandActions = map[string]action.Kind{
	"start":         action.Start,
	"profile":       action.GetProfile,
	"registrations": action.ListMyRegistrations,
	"pass":          action.GetAnyPass,
	"notifications": action.ToggleEvents,
	"stats":         action.Stats,
	"newevent":      action.CreateEvent,
}

func (h *Handler) createEventModal() reply {
	return reply{modal: pkgdiscord.TextModal(
		createEventModalID,
		h.translate("create_event.modal_title", nil),
		payloadOption,
		h.translate("create_event.label", nil),
		h.translate("create_event.placeholder", nil),
	)}
}

func commandOption(data discordgo.ApplicationCommandInteractionData, name string) string {
	for _, opt := range data.Options {
		if opt.Name == name && opt.Type == discordgo.ApplicationCommandOptionString {
			return opt.StringValue()
		}
	}
	return ""
}
