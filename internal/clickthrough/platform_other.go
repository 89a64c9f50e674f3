//go:build !windows && !linux && !darwin

package clickthrough

import (
	"log/slog"

	"dictation-overlay/internal/region"
)

// NewPlatform reports ErrUnsupported.
func NewPlatform(store *region.Store, opts Options, logger *slog.Logger) (Realizer, error) {
	return nil, ErrUnsupported
}
