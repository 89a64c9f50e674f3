//go:build darwin

package clickthrough

import (
	"fmt"
	"log/slog"

	"dictation-overlay/internal/darwin"
	"dictation-overlay/internal/region"
)

// NewPlatform returns the callback realizer answering AppKit hit tests.
func NewPlatform(store *region.Store, opts Options, logger *slog.Logger) (Realizer, error) {
	host, err := darwin.FindWindow(opts.WindowTitle)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrWindowNotFound, opts.WindowTitle, err)
	}
	return NewCallbackRealizer(host, store, logger.With("realizer", KindCallback)), nil
}
