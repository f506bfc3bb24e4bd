package discord

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const interactionTimeout = 10 * time.Second

// NewSession creates an unopened gateway session for a bot token.
func NewSession(token string) (*discordgo.Session, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	s.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsDirectMessages
	return s, nil
}

type interactionHandler interface {
	Handle(ctx context.Context, i *discordgo.InteractionCreate) reply
}

type responder func(s *discordgo.Session, i *discordgo.Interaction, r reply) error

// Bot is the Discord adapter.
type Bot struct {
	session *discordgo.Session
	handler interactionHandler
	respond responder
	logger  zerolog.Logger

	mu       sync.Mutex
	draining bool
	inflight sync.WaitGroup
}

func NewBot(session *discordgo.Session, handler *Handler, logger zerolog.Logger) *Bot {
	return &Bot{session: session, handler: handler, respond: respond, logger: logger}
}

// Start opens the session, registers the slash commands and serves
// interactions until ctx is cancelled. It returns only after every
// interaction already accepted has been answered.
func (b *Bot) Start(ctx context.Context) error {
	remove := b.session.AddHandler(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		b.onInteraction(s, i)
	})
	defer remove()

	if err := b.session.Open(); err != nil {
		return fmt.Errorf("open discord session: %w", err)
	}

	if _, err := b.session.ApplicationCommandBulkOverwrite(b.session.State.User.ID, "", commands); err != nil {
		b.logger.Warn().Err(err).Msg("register slash commands")
	}

	b.logger.Info().Str("user", b.session.State.User.Username).Msg("bot online")
	<-ctx.Done()

	if err := b.session.Close(); err != nil {
		b.logger.Warn().Err(err).Msg("close discord session")
	}
	b.drain()
	return nil
}

// drain stops accepting interactions and waits for the accepted ones.
func (b *Bot) drain() {
	b.mu.Lock()
	b.draining = true
	b.mu.Unlock()
	b.inflight.Wait()
}

func (b *Bot) accept() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.draining {
		return false
	}
	b.inflight.Add(1)
	return true
}

// onInteraction runs on discordgo's per-event goroutine; each interaction is
// its own unit of work. Accepted interactions finish within their own
// timeout even after shutdown begins.
func (b *Bot) onInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.accept() {
		b.logger.Debug().Str("interaction_id", i.ID).Msg("interaction dropped during shutdown")
		return
	}
	defer b.inflight.Done()

	logger := b.logger.With().
		Str("unit", uuid.NewString()).
		Str("interaction_id", i.ID).
		Logger()
	ctx, cancel := context.WithTimeout(logger.WithContext(context.Background()), interactionTimeout)
	defer cancel()

	r := b.handler.Handle(ctx, i)
	if err := b.respond(s, i.Interaction, r); err != nil {
		logger.Warn().Err(err).Msg("respond to interaction")
	}
}
