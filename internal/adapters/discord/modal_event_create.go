package discord

import "context"

func (h *Handler) submitCreateEvent(ctx context.Context, actorID int64, payload string) reply {
	event, err := h.events.CreateEvent(ctx, actorID, payload)
	if err != nil {
		return h.errorReply(ctx, err)
	}
	return textReply(h.translate("create_event.created", map[string]any{
		"ID":    event.ID,
		"Title": event.Title,
	}))
}
