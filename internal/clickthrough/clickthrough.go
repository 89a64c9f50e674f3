// Package clickthrough makes the overlay window transparent to pointer input
// everywhere except over the interactive rectangles held in a region.Store.
//
// Each platform realizes the store differently:
//
//   - StyleRealizer samples the cursor on a ticker and toggles the window's
//     ignore-input style bit (Win32 WS_EX_TRANSPARENT).
//   - ShapeRealizer submits the union of the rectangles as the window's input
//     shape whenever the store changes (X11 SHAPE extension).
//   - CallbackRealizer answers the compositor's synchronous hit test (AppKit).
//
// NewPlatform picks the realizer for the running OS.
package clickthrough

import (
	"errors"
	"time"
)

// Kind names a realizer strategy.
type Kind string

const (
	KindStyle    Kind = "style"
	KindShape    Kind = "shape"
	KindCallback Kind = "callback"
)

var (
	// ErrUnsupported is returned by NewPlatform on platforms without a realizer.
	ErrUnsupported = errors.New("click-through not supported on this platform")
	// ErrWindowNotFound is returned when the overlay window cannot be resolved.
	ErrWindowNotFound = errors.New("overlay window not found")
	// ErrInvalidWindow is returned when the native window handle is no longer valid.
	ErrInvalidWindow = errors.New("overlay window handle is not valid")
)

// Realizer translates the region store into the OS click-through mechanism
// for one window.
type Realizer interface {
	Kind() Kind
	// Setup performs the one-time native initialization.
	Setup() error
	// Refresh is called after every store update.
	Refresh()
	// EnsureVisible re-asserts visibility/compositing attributes. It is
	// idempotent and safe to call at any time.
	EnsureVisible()
}

// Defaults used when Options leaves a field unset.
const (
	DefaultPollInterval  = 50 * time.Millisecond
	DefaultWatchdogTicks = 600 // 600 x 50ms = 30s
	DefaultOpacity       = 255
)

// Options configures the platform realizer.
type Options struct {
	// WindowTitle locates the native window.
	WindowTitle string
	// PollInterval is the cursor sampling cadence of the style realizer.
	PollInterval time.Duration
	// WatchdogTicks is the number of poll ticks between layered-attribute
	// re-assertions.
	WatchdogTicks uint32
	// Opacity is the layered window alpha pinned by the watchdog.
	Opacity uint8
}

func (o Options) withDefaults() Options {
	if o.PollInterval <= 0 {
		o.PollInterval = DefaultPollInterval
	}
	if o.WatchdogTicks == 0 {
		o.WatchdogTicks = DefaultWatchdogTicks
	}
	if o.Opacity == 0 {
		o.Opacity = DefaultOpacity
	}
	return o
}

// Status describes the controller for diagnostics.
type Status struct {
	Realizer    Kind    `json:"realizer"`
	Rects       int     `json:"rects"`
	Scale       float64 `json:"scale"`
	PassThrough *bool   `json:"pass_through,omitempty"`
}
