package discord

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/bwmarrin/discordgo"

	"eventpass/internal/domain"
	"eventpass/internal/domain/entities"
	"eventpass/pkg/action"
)

// Handle records the interacting user and routes the interaction.
func (h *Handler) Handle(ctx context.Context, i *discordgo.InteractionCreate) reply {
	actor, err := interactionUser(i)
	if err != nil {
		return h.errorReply(ctx, err)
	}
	if err := h.users.Touch(ctx, actor); err != nil {
		return h.errorReply(ctx, err)
	}

	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		data := i.ApplicationCommandData()
		kind, ok := commandActions[data.Name]
		if !ok {
			return h.errorReply(ctx, fmt.Errorf("%w: unknown command %q", domain.ErrValidation, data.Name))
		}
		if kind == action.CreateEvent {
			if payload := commandOption(data, payloadOption); payload != "" {
				return h.submitCreateEvent(ctx, actor.ID, payload)
			}
		}
		return h.dispatch(ctx, actor.ID, action.Action{Kind: kind})
	case discordgo.InteractionMessageComponent:
		act, err := action.Parse(i.MessageComponentData().CustomID)
		if err != nil {
			return h.errorReply(ctx, err)
		}
		return h.dispatch(ctx, actor.ID, act)
	case discordgo.InteractionModalSubmit:
		return h.handleModalSubmit(ctx, actor.ID, i.ModalSubmitData())
	default:
		return h.errorReply(ctx, fmt.Errorf("%w: unsupported interaction type %d", domain.ErrValidation, i.Type))
	}
}

func (h *Handler) dispatch(ctx context.Context, actorID int64, act action.Action) reply {
	if act.Privileged() && actorID != h.operatorID {
		return h.errorReply(ctx, domain.ErrPermissionDenied)
	}

	switch act.Kind {
	case action.Start:
		return h.menuReply(actorID, "menu.greeting")
	case action.About:
		return h.menuReply(actorID, "about.text")
	case action.Register:
		return h.register(ctx, actorID, act.EventID)
	case action.ToggleEvents:
		enabled, err := h.preferences.ToggleEvents(ctx, actorID)
		if err != nil {
			return h.errorReply(ctx, err)
		}
		if enabled {
			return textReply(h.translate("toggle.enabled", nil))
		}
		return textReply(h.translate("toggle.disabled", nil))
	case action.GetProfile:
		return h.profileReply(ctx, actorID)
	case action.ListMyRegistrations:
		return h.registrationsReply(ctx, actorID)
	case action.GetAnyPass:
		p, err := h.registrations.Reissue(ctx, actorID)
		if err != nil {
			return h.errorReply(ctx, err)
		}
		return h.passReply(ctx, "pass.caption", p)
	case action.GetPass:
		p, err := h.registrations.PassFor(ctx, actorID, act.EventID)
		if err != nil {
			return h.errorReply(ctx, err)
		}
		return h.passReply(ctx, "pass.caption", p)
	case action.Stats:
		stats, err := h.stats.SnapshotAs(ctx, actorID)
		if err != nil {
			return h.errorReply(ctx, err)
		}
		return textReply(h.translate("stats.text", map[string]any{
			"Users":         stats.Users,
			"Events":        stats.Events,
			"Registrations": stats.Registrations,
		}))
	case action.CreateEvent:
		return h.createEventModal()
	}
	return h.errorReply(ctx, fmt.Errorf("%w: unhandled action %q", domain.ErrValidation, act))
}

func (h *Handler) register(ctx context.Context, userID, eventID int64) reply {
	p, err := h.registrations.Register(ctx, userID, eventID)
	if errors.Is(err, domain.ErrAlreadyRegistered) {
		r := textReply(h.translate("errors.already_registered", nil))
		r.components = h.passButton(eventID)
		return r
	}
	if err != nil {
		return h.errorReply(ctx, err)
	}
	return h.passReply(ctx, "register.success", p)
}

// interactionUser reads the acting user from a guild or direct-message
// interaction.
func interactionUser(i *discordgo.InteractionCreate) (entities.User, error) {
	var (
		u    *discordgo.User
		name string
	)
	switch {
	case i.Member != nil && i.Member.User != nil:
		u, name = i.Member.User, resolveDisplayName(i.Member)
	case i.User != nil:
		u, name = i.User, userDisplayName(i.User)
	default:
		return entities.User{}, fmt.Errorf("%w: interaction has no user", domain.ErrValidation)
	}
	id, err := strconv.ParseInt(u.ID, 10, 64)
	if err != nil || id <= 0 {
		return entities.User{}, fmt.Errorf("%w: bad user id %q", domain.ErrValidation, u.ID)
	}
	return entities.User{ID: id, DisplayName: name, Handle: u.Username}, nil
}
