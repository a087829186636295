package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// NotificationSweeper drops expired CRM notifications.
type NotificationSweeper interface {
	SweepExpired(ctx context.Context) (int, error)
}

// NotificationWorker periodically clears expired notifications.
type NotificationWorker struct {
	sweeper  NotificationSweeper
	interval time.Duration
}

// NewNotificationWorker constructs a NotificationWorker.
func NewNotificationWorker(sweeper NotificationSweeper, interval time.Duration) *NotificationWorker {
	return &NotificationWorker{
		sweeper:  sweeper,
		interval: interval,
	}
}

// Start runs the sweep loop until ctx is canceled.
func (w *NotificationWorker) Start(ctx context.Context) {
	log.Info().Dur("interval", w.interval).Msg("Starting notification worker")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.run(ctx)
		case <-ctx.Done():
			log.Info().Msg("Notification worker stopped")
			return
		}
	}
}

func (w *NotificationWorker) run(ctx context.Context) {
	removed, err := w.sweeper.SweepExpired(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to sweep notifications")
		return
	}
	if removed > 0 {
		log.Debug().Int("removed", removed).Msg("Expired notifications cleared")
	}
}
