package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"eventpass/internal/adapters/discord"
	"eventpass/internal/application"
	"eventpass/internal/config"
	"eventpass/internal/infrastructure/database"
	"eventpass/internal/infrastructure/httpapi"
	"eventpass/internal/infrastructure/i18n"
	"eventpass/pkg/tz"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the bot and the pass verification API",
	Long: `Run the bot and the pass verification API.

Configuration comes from the environment (optionally seeded from .env).
Pending migrations are applied on startup. SIGINT or SIGTERM stops
intake; broadcasts already under way are finished before exit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func runServe(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	applyLogFlags(&cfg.Logging)
	logger := config.NewLogger(cfg.Logging)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
		return err
	}
	pool, err := database.NewPool(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		return err
	}
	defer pool.Close()

	userRepo := database.NewUserRepository(pool)
	eventRepo := database.NewEventRepository(pool)
	registrationRepo := database.NewRegistrationRepository(pool)
	preferenceRepo := database.NewPreferenceRepository(pool)
	translator := i18n.NewTranslator(cfg.Locale, logger)

	session, err := discord.NewSession(cfg.Token)
	if err != nil {
		return err
	}
	gateway := discord.NewGateway(session, cfg.AnnounceChannelID)

	fanout := application.NewNotificationFanout(preferenceRepo, gateway, translator, application.FanoutOptions{
		Workers:         cfg.Fanout.Workers,
		Rate:            cfg.Fanout.Rate,
		DeliveryTimeout: cfg.Fanout.DeliveryTimeout,
		Locale:          cfg.Locale,
	}, logger.With().Str("component", "fanout").Logger())
	events := application.NewEventService(eventRepo, gateway, fanout, translator, cfg.Locale, cfg.OperatorID, logger)
	registrations := application.NewRegistrationService(registrationRepo, eventRepo)

	handler := discord.NewHandler(discord.HandlerDeps{
		Events:        events,
		Registrations: registrations,
		Users:         application.NewUserService(userRepo, preferenceRepo, registrationRepo),
		Preferences:   application.NewPreferenceService(preferenceRepo),
		Stats:         application.NewStatsService(userRepo, eventRepo, registrationRepo, cfg.OperatorID),
		Translator:    translator,
		Locale:        cfg.Locale,
		Location:      tz.Load(cfg.Timezone),
		OperatorID:    cfg.OperatorID,
	}, logger.With().Str("component", "discord").Logger())
	bot := discord.NewBot(session, handler, logger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return bot.Start(gctx) })
	if cfg.HTTPAddr != "" {
		srv := httpapi.NewServer(cfg.HTTPAddr, httpapi.NewRouter(registrations, pool, logger), logger)
		g.Go(func() error { return srv.Run(gctx) })
	}
	// Start drains accepted interactions before returning, so no broadcast
	// can begin once Wait is reached.
	runErr := g.Wait()

	logger.Info().Msg("waiting for in-flight broadcasts")
	events.Wait()
	if runErr != nil {
		return fmt.Errorf("serve: %w", runErr)
	}
	logger.Info().Msg("stopped")
	return nil
}
