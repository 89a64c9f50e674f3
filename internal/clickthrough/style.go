package clickthrough

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/thejerf/suture/v4"

	"dictation-overlay/internal/region"
)

// Win32 extended window style bits. Only the transparent bit is toggled by
// the tracker; the layered bit is only ever set, never cleared.
const (
	ExStyleTransparent uint32 = 0x00000020
	ExStyleLayered     uint32 = 0x00080000
)

// StyleWindow is the native window surface needed by StyleRealizer.
type StyleWindow interface {
	Valid() bool
	Visible() bool
	// Bounds returns the window rectangle in screen device pixels.
	Bounds() (region.DeviceRect, error)
	// CursorPos returns the global cursor position in screen device pixels.
	CursorPos() (x, y int, err error)
	ExStyle() (uint32, error)
	SetExStyle(style uint32) error
	SetLayeredAlpha(alpha uint8) error
	Invalidate() error
}

// StyleRealizer implements click-through by polling the cursor and toggling
// the ignore-input style bit. Its Serve loop is the only writer of that bit
// once Setup has returned.
type StyleRealizer struct {
	win    StyleWindow
	store  *region.Store
	logger *slog.Logger

	interval      time.Duration
	watchdogTicks uint32
	opacity       uint8

	// styleMu serializes read-modify-write of the extended style so the
	// watchdog and the tracker never clobber each other's bit.
	styleMu     sync.Mutex
	passThrough atomic.Bool
	ticks       uint32
}

var (
	_ Realizer       = (*StyleRealizer)(nil)
	_ suture.Service = (*StyleRealizer)(nil)
)

// NewStyleRealizer creates a style realizer for win.
func NewStyleRealizer(win StyleWindow, store *region.Store, opts Options, logger *slog.Logger) *StyleRealizer {
	opts = opts.withDefaults()
	return &StyleRealizer{
		win:           win,
		store:         store,
		logger:        logger,
		interval:      opts.PollInterval,
		watchdogTicks: opts.WatchdogTicks,
		opacity:       opts.Opacity,
	}
}

func (r *StyleRealizer) Kind() Kind { return KindStyle }

func (r *StyleRealizer) String() string { return "cursor-tracker" }

// Setup pins the window layered and opaque and starts in pass-through; the
// store is empty until the UI reports its first layout.
func (r *StyleRealizer) Setup() error {
	if !r.win.Valid() {
		return ErrInvalidWindow
	}
	r.ensureLayered()
	if err := r.toggleTransparent(true); err != nil {
		return err
	}
	r.passThrough.Store(true)
	return nil
}

// Refresh is a no-op: the next tick observes the new store contents.
func (r *StyleRealizer) Refresh() {}

// EnsureVisible re-asserts the layered attributes and forces a redraw.
func (r *StyleRealizer) EnsureVisible() {
	if !r.win.Valid() {
		return
	}
	r.ensureLayered()
	if err := r.win.Invalidate(); err != nil {
		r.logger.Warn("invalidate overlay window failed", "error", err)
	}
}

// PassThrough reports whether input currently passes through the window.
func (r *StyleRealizer) PassThrough() bool {
	return r.passThrough.Load()
}

// Serve runs the cursor tracker until the window handle becomes invalid.
func (r *StyleRealizer) Serve(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.logger.Debug("cursor tracker started", "interval", r.interval, "watchdog_ticks", r.watchdogTicks)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if !r.tick() {
				r.logger.Info("overlay window is gone, cursor tracker exiting")
				return suture.ErrDoNotRestart
			}
		}
	}
}

// tick runs one sampling step. It returns false once the window is invalid.
func (r *StyleRealizer) tick() bool {
	if !r.win.Valid() {
		return false
	}

	r.ticks++
	if r.watchdogTicks > 0 && r.ticks%r.watchdogTicks == 0 {
		r.ensureLayered()
	}

	if !r.win.Visible() {
		return true
	}

	// Query failures are transient: skip the tick without changing state.
	bounds, err := r.win.Bounds()
	if err != nil {
		return true
	}
	x, y, err := r.win.CursorPos()
	if err != nil {
		return true
	}

	snap := r.store.Read()
	inside := snap.ContainsPhysical(float64(x-bounds.X), float64(y-bounds.Y))
	r.setPassThrough(!inside)
	return true
}

func (r *StyleRealizer) setPassThrough(want bool) {
	if r.passThrough.Load() == want {
		return
	}
	if err := r.toggleTransparent(want); err != nil {
		r.logger.Warn("toggle pass-through failed", "pass_through", want, "error", err)
		return
	}
	r.passThrough.Store(want)
}

// toggleTransparent flips only the transparent bit, leaving layering alone.
func (r *StyleRealizer) toggleTransparent(enable bool) error {
	r.styleMu.Lock()
	defer r.styleMu.Unlock()

	cur, err := r.win.ExStyle()
	if err != nil {
		return err
	}
	next := cur &^ ExStyleTransparent
	if enable {
		next = cur | ExStyleTransparent
	}
	if next == cur {
		return nil
	}
	return r.win.SetExStyle(next)
}

func (r *StyleRealizer) ensureLayered() {
	r.styleMu.Lock()
	defer r.styleMu.Unlock()

	cur, err := r.win.ExStyle()
	if err != nil {
		r.logger.Warn("read overlay window style failed", "error", err)
		return
	}
	if cur&ExStyleLayered == 0 {
		if err := r.win.SetExStyle(cur | ExStyleLayered); err != nil {
			r.logger.Warn("set layered style failed", "error", err)
		}
	}
	if err := r.win.SetLayeredAlpha(r.opacity); err != nil {
		r.logger.Warn("set layered alpha failed", "error", err)
	}
}
