package clickthrough

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/thejerf/suture/v4"

	"dictation-overlay/internal/region"
)

// Controller is the entry point used by the UI layer. It owns the region
// store for one window and the realizer for the running platform.
//
// Background work (the style realizer's tracker and any service added with
// Supervise) runs under a suture supervisor. The tracker stops on its own
// once the window handle is invalid; Close stops everything else.
type Controller struct {
	store    *region.Store
	realizer Realizer
	logger   *slog.Logger
	sup      *suture.Supervisor

	mu      sync.Mutex
	started bool
	cancel  context.CancelFunc
	done    <-chan error
}

// New creates a controller. Setup must be called before the realizer takes effect.
func New(store *region.Store, realizer Realizer, logger *slog.Logger) *Controller {
	c := &Controller{
		store:    store,
		realizer: realizer,
		logger:   logger,
	}
	c.sup = suture.New("clickthrough", suture.Spec{
		EventHook: func(e suture.Event) {
			logger.Warn("supervisor event", "event", e.String())
		},
	})
	return c
}

// Supervise runs svc alongside the realizer for the controller's lifetime.
func (c *Controller) Supervise(svc suture.Service) {
	c.sup.Add(svc)
}

// Setup initializes the realizer and starts background services. Calling it
// again is a no-op.
func (c *Controller) Setup(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.started {
		return nil
	}
	if err := c.realizer.Setup(); err != nil {
		return fmt.Errorf("setup %s realizer: %w", c.realizer.Kind(), err)
	}

	if svc, ok := c.realizer.(suture.Service); ok {
		c.sup.Add(svc)
	}
	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.done = c.sup.ServeBackground(ctx)
	c.started = true

	c.logger.Info("click-through ready", "realizer", c.realizer.Kind())
	return nil
}

// UpdateRegion replaces the interactive rectangles. It never fails: a
// rejected native update leaves the last applied shape in effect.
func (c *Controller) UpdateRegion(rects []region.Rect, scale float64) {
	if !region.ValidScale(scale) {
		c.logger.Warn("invalid scale factor, using 1.0", "scale", scale)
		scale = 1
	}
	c.store.Update(rects, scale)
	c.realizer.Refresh()
}

// EnsureVisible forces visibility recovery. Safe to call when nothing is wrong.
func (c *Controller) EnsureVisible() {
	c.realizer.EnsureVisible()
}

// Store returns the region store shared with the realizer.
func (c *Controller) Store() *region.Store {
	return c.store
}

// Status reports the current realizer state.
func (c *Controller) Status() Status {
	snap := c.store.Read()
	st := Status{
		Realizer: c.realizer.Kind(),
		Rects:    len(snap.Rects),
		Scale:    snap.Scale,
	}
	if sr, ok := c.realizer.(*StyleRealizer); ok {
		pt := sr.PassThrough()
		st.PassThrough = &pt
	}
	return st
}

// Close stops supervised services and releases native resources.
func (c *Controller) Close() error {
	c.mu.Lock()
	cancel, done := c.cancel, c.done
	c.cancel, c.done = nil, nil
	c.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
	if cl, ok := c.realizer.(io.Closer); ok {
		return cl.Close()
	}
	return nil
}
