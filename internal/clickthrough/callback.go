package clickthrough

import (
	"log/slog"

	"dictation-overlay/internal/region"
)

// HitTestHost installs a synchronous hit-test callback on the native window.
// The callback receives logical pixels relative to the window's top-left.
type HitTestHost interface {
	InstallHitTest(fn func(x, y float64) bool) error
}

// CallbackRealizer answers hit tests straight from the store. It keeps no
// state of its own.
type CallbackRealizer struct {
	host   HitTestHost
	store  *region.Store
	logger *slog.Logger
}

var _ Realizer = (*CallbackRealizer)(nil)

// NewCallbackRealizer creates a callback realizer bound to host.
func NewCallbackRealizer(host HitTestHost, store *region.Store, logger *slog.Logger) *CallbackRealizer {
	return &CallbackRealizer{host: host, store: store, logger: logger}
}

func (r *CallbackRealizer) Kind() Kind { return KindCallback }

func (r *CallbackRealizer) Setup() error {
	return r.host.InstallHitTest(r.HitTest)
}

// HitTest reports whether the window should receive input at (x, y).
func (r *CallbackRealizer) HitTest(x, y float64) bool {
	return r.store.Contains(x, y)
}

func (r *CallbackRealizer) Refresh() {}

func (r *CallbackRealizer) EnsureVisible() {}
