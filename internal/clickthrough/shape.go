package clickthrough

import (
	"io"
	"log/slog"
	"sync"

	"dictation-overlay/internal/region"
)

// ShapeWindow is a window whose input shape can be replaced.
type ShapeWindow interface {
	Valid() bool
	// SetInputShape replaces the input shape with the union of rects at
	// offset (0,0). An empty slice makes the whole window ignore input.
	SetInputShape(rects []region.DeviceRect) error
	// Show maps the window and keeps it above other windows.
	Show() error
}

// ShapeRealizer pushes the store to the window's input shape on every
// update. No background work is needed.
type ShapeRealizer struct {
	win    ShapeWindow
	store  *region.Store
	logger *slog.Logger

	// mu orders submissions so the last store write is the last shape applied.
	mu sync.Mutex
}

var _ Realizer = (*ShapeRealizer)(nil)

// NewShapeRealizer creates a shape realizer for win.
func NewShapeRealizer(win ShapeWindow, store *region.Store, logger *slog.Logger) *ShapeRealizer {
	return &ShapeRealizer{win: win, store: store, logger: logger}
}

func (r *ShapeRealizer) Kind() Kind { return KindShape }

// Setup submits the initial shape, which is empty for a fresh store.
func (r *ShapeRealizer) Setup() error {
	return r.apply()
}

// Refresh rebuilds the input shape from the store.
func (r *ShapeRealizer) Refresh() {
	if err := r.apply(); err != nil {
		r.logger.Warn("update input shape failed", "error", err)
	}
}

// EnsureVisible maps the window and re-submits the current shape.
func (r *ShapeRealizer) EnsureVisible() {
	if !r.win.Valid() {
		return
	}
	if err := r.win.Show(); err != nil {
		r.logger.Warn("show overlay window failed", "error", err)
	}
	r.Refresh()
}

// Close releases the native window connection, if it holds one.
func (r *ShapeRealizer) Close() error {
	if c, ok := r.win.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (r *ShapeRealizer) apply() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.win.Valid() {
		return ErrInvalidWindow
	}
	return r.win.SetInputShape(r.store.Read().DeviceRects())
}
