//go:build windows

package clickthrough

import (
	"fmt"
	"log/slog"

	"dictation-overlay/internal/region"
	"dictation-overlay/internal/win32"
)

// NewPlatform returns the style realizer. WS_EX_TRANSPARENT is the only
// mechanism that passes clicks to other processes; HTTRANSPARENT from
// WM_NCHITTEST stays within the owning thread.
func NewPlatform(store *region.Store, opts Options, logger *slog.Logger) (Realizer, error) {
	win, err := win32.FindWindow(opts.WindowTitle)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrWindowNotFound, opts.WindowTitle, err)
	}
	return NewStyleRealizer(win, store, opts, logger.With("realizer", KindStyle)), nil
}
