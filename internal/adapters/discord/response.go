package discord

import (
	"bytes"
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"

	"eventpass/internal/domain"
	"eventpass/internal/domain/entities"
	pkgdiscord "eventpass/pkg/discord"
	"eventpass/pkg/pass"
)

// reply is what a handled interaction answers with. Exactly one of modal
// or the message fields is used.
type reply struct {
	content    string
	components []discordgo.MessageComponent
	files      []*discordgo.File
	modal      *discordgo.InteractionResponseData
}

func textReply(content string) reply { return reply{content: content} }

// errorReply renders err for the user. Only unexpected failures are logged
// at error level; the rest are ordinary outcomes.
func (h *Handler) errorReply(ctx context.Context, err error) reply {
	if domain.Code(err) == "generic" {
		zerolog.Ctx(ctx).Error().Err(err).Msg("interaction failed")
	} else {
		zerolog.Ctx(ctx).Debug().Err(err).Msg("interaction rejected")
	}
	return textReply(h.translate(pkgdiscord.ErrorKey(err), nil))
}

// passReply attaches the QR image of p under the given caption.
func (h *Handler) passReply(ctx context.Context, captionKey string, p *entities.Pass) reply {
	png, err := pass.RenderPNG(p.Token, pass.DefaultImageSize)
	if err != nil {
		return h.errorReply(ctx, err)
	}
	return reply{
		content: h.translate(captionKey, map[string]any{
			"Title":       p.Event.Title,
			"ScheduledAt": p.Event.ScheduledAt,
			"Location":    p.Event.Location,
		}),
		files: []*discordgo.File{{
			Name:        fmt.Sprintf("pass-%d.png", p.Event.ID),
			ContentType: "image/png",
			Reader:      bytes.NewReader(png),
		}},
	}
}

func respond(s *discordgo.Session, i *discordgo.Interaction, r reply) error {
	if r.modal != nil {
		return s.InteractionRespond(i, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseModal,
			Data: r.modal,
		})
	}
	return s.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content:    r.content,
			Components: r.components,
			Files:      r.files,
			Flags:      discordgo.MessageFlagsEphemeral,
		},
	})
}

// Nick > GlobalName > Username
func resolveDisplayName(member *discordgo.Member) string {
	if member == nil || member.User == nil {
		return ""
	}
	if member.Nick != "" {
		return member.Nick
	}
	return userDisplayName(member.User)
}

func userDisplayName(u *discordgo.User) string {
	if u.GlobalName != "" {
		return u.GlobalName
	}
	return u.Username
}
