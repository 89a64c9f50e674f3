//go:build linux

package clickthrough

import (
	"fmt"
	"log/slog"

	"dictation-overlay/internal/region"
	"dictation-overlay/internal/x11"
)

// NewPlatform returns the shape realizer backed by the X11 SHAPE extension.
func NewPlatform(store *region.Store, opts Options, logger *slog.Logger) (Realizer, error) {
	conn, err := x11.NewConnection()
	if err != nil {
		return nil, fmt.Errorf("connect to X11: %w", err)
	}

	win, err := conn.FindWindow(opts.WindowTitle)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("%w: %q: %v", ErrWindowNotFound, opts.WindowTitle, err)
	}
	return NewShapeRealizer(win, store, logger.With("realizer", KindShape)), nil
}
