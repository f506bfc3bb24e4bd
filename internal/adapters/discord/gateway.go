package discord

import (
	"context"
	"fmt"
	"strconv"

	"github.com/bwmarrin/discordgo"

	"eventpass/internal/ports/output"
	pkgdiscord "eventpass/pkg/discord"
)

var (
	_ output.Notifier  = (*Gateway)(nil)
	_ output.Announcer = (*Gateway)(nil)
)

// Gateway delivers outbound messages: direct messages to users and public
// posts to the announcement channel.
type Gateway struct {
	session           *discordgo.Session
	announceChannelID string
}

func NewGateway(session *discordgo.Session, announceChannelID string) *Gateway {
	return &Gateway{session: session, announceChannelID: announceChannelID}
}

func (g *Gateway) Send(ctx context.Context, recipientID int64, msg output.Message) error {
	ch, err := g.session.UserChannelCreate(strconv.FormatInt(recipientID, 10), discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("open dm channel: %w", err)
	}
	if _, err := g.session.ChannelMessageSendComplex(ch.ID, pkgdiscord.BuildMessage(msg), discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("send dm: %w", err)
	}
	return nil
}

// Announce returns "<channel id>/<message id>".
func (g *Gateway) Announce(ctx context.Context, msg output.Message) (string, error) {
	m, err := g.session.ChannelMessageSendComplex(g.announceChannelID, pkgdiscord.BuildMessage(msg), discordgo.WithContext(ctx))
	if err != nil {
		return "", fmt.Errorf("post announcement: %w", err)
	}
	return m.ChannelID + "/" + m.ID, nil
}
