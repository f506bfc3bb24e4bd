package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"eventpass/internal/domain"
	pkgdiscord "eventpass/pkg/discord"
)

func (h *Handler) handleModalSubmit(ctx context.Context, actorID int64, data discordgo.ModalSubmitInteractionData) reply {
	switch data.CustomID {
	case createEventModalID:
		return h.submitCreateEvent(ctx, actorID, pkgdiscord.TextInputValue(data, payloadOption))
	default:
		return h.errorReply(ctx, fmt.Errorf("%w: unknown modal %q", domain.ErrValidation, data.CustomID))
	}
}
