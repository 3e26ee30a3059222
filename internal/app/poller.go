package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/five82/contactdesk/internal/desk"
)

const defaultPollInterval = 5 * time.Second

// StartPoller launches a background goroutine that calls RefreshAll at a
// fixed cadence until ctx ends. A failed poll is logged and reported to
// notifier; the next tick runs on schedule. The returned channel closes when
// the goroutine exits.
func StartPoller(ctx context.Context, refresher desk.Refresher, interval time.Duration, notifier desk.Notifier, logger *zap.Logger) <-chan struct{} {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	done := make(chan struct{})
	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
			if err := refresher.RefreshAll(ctx); err != nil {
				if ctx.Err() != nil {
					return
				}
				logger.Warn("poll failed", zap.Error(err))
				if notifier != nil {
					notifier.Notify(desk.Message(err), false)
				}
			}
		}
	}()
	return done
}
