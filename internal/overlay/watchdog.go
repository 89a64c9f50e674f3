package overlay

import (
	"context"
	"time"
)

// Watchdog periodically runs the full visibility recovery while the overlay
// is meant to be shown.
type Watchdog struct {
	service  *Service
	interval time.Duration
}

// NewWatchdog returns nil when interval is not positive.
func NewWatchdog(service *Service, interval time.Duration) *Watchdog {
	if interval <= 0 {
		return nil
	}
	return &Watchdog{service: service, interval: interval}
}

func (w *Watchdog) String() string { return "overlay-recovery" }

// Serve implements suture.Service.
func (w *Watchdog) Serve(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if w.service.IsVisible() {
				w.service.EnsureMainVisible()
			}
		}
	}
}
