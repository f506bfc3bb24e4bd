package application

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"eventpass/internal/domain"
	"eventpass/internal/domain/entities"
	"eventpass/internal/infrastructure/metrics"
	"eventpass/internal/ports/input"
	"eventpass/internal/ports/output"
)

var _ input.Broadcaster = (*NotificationFanout)(nil)

// FanoutOptions tunes delivery pacing. Zero values mean one worker, no rate
// limit and no per-delivery timeout beyond the gateway's own.
type FanoutOptions struct {
	Workers         int
	Rate            float64 // deliveries per second
	DeliveryTimeout time.Duration
	Locale          string
}

// NotificationFanout delivers event announcements to every opted-in user.
// Delivery is at most once: a failed recipient is recorded and skipped.
type NotificationFanout struct {
	preferenceRepo output.PreferenceRepository
	notifier       output.Notifier
	translator     output.T
	opts           FanoutOptions
	limiter        *rate.Limiter
	logger         zerolog.Logger
}

func NewNotificationFanout(
	preferenceRepo output.PreferenceRepository,
	notifier output.Notifier,
	translator output.T,
	opts FanoutOptions,
	logger zerolog.Logger,
) *NotificationFanout {
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	limit := rate.Inf
	if opts.Rate > 0 {
		limit = rate.Limit(opts.Rate)
	}
	return &NotificationFanout{
		preferenceRepo: preferenceRepo,
		notifier:       notifier,
		translator:     translator,
		opts:           opts,
		limiter:        rate.NewLimiter(limit, opts.Workers),
		logger:         logger,
	}
}

// Broadcast snapshots the recipient set, then attempts each delivery
// independently. The returned error is non-nil only when the snapshot itself
// could not be read; delivery failures live in the report.
func (f *NotificationFanout) Broadcast(ctx context.Context, event *entities.Event) (entities.BroadcastReport, error) {
	start := time.Now()
	report := entities.BroadcastReport{EventID: event.ID}

	recipients, err := f.preferenceRepo.EventRecipients(ctx)
	if err != nil {
		return report, fmt.Errorf("snapshot recipients: %w", err)
	}

	msg := AnnouncementMessage(f.translator, f.opts.Locale, event)
	results := make([]entities.DeliveryResult, len(recipients))

	var g errgroup.Group
	g.SetLimit(f.opts.Workers)
	for i, recipientID := range recipients {
		g.Go(func() error {
			results[i] = f.deliver(ctx, recipientID, msg)
			return nil
		})
	}
	_ = g.Wait()

	report.Attempted = len(results)
	report.Results = results
	for _, r := range results {
		if r.Err != nil {
			report.Failed++
			f.logger.Warn().Err(r.Err).
				Int64("event_id", event.ID).
				Int64("recipient_id", r.RecipientID).
				Msg("delivery failed")
			continue
		}
		report.Delivered++
	}

	metrics.FanoutDuration.Observe(time.Since(start).Seconds())
	return report, nil
}

func (f *NotificationFanout) deliver(ctx context.Context, recipientID int64, msg output.Message) entities.DeliveryResult {
	result := entities.DeliveryResult{RecipientID: recipientID}
	if err := f.limiter.Wait(ctx); err != nil {
		result.Err = &domain.DeliveryError{RecipientID: recipientID, Err: err}
		metrics.FanoutDeliveries.WithLabelValues(metrics.ResultFailed).Inc()
		return result
	}

	sendCtx := ctx
	if f.opts.DeliveryTimeout > 0 {
		var cancel context.CancelFunc
		sendCtx, cancel = context.WithTimeout(ctx, f.opts.DeliveryTimeout)
		defer cancel()
	}
	if err := f.notifier.Send(sendCtx, recipientID, msg); err != nil {
		result.Err = &domain.DeliveryError{RecipientID: recipientID, Err: err}
		metrics.FanoutDeliveries.WithLabelValues(metrics.ResultFailed).Inc()
		return result
	}
	metrics.FanoutDeliveries.WithLabelValues(metrics.ResultDelivered).Inc()
	return result
}
