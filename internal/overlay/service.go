package overlay

import (
	"log/slog"
	"sync"
	"time"

	"dictation-overlay/internal/config"
)

// Window is the subset of the UI runtime used to manage the overlay window.
type Window interface {
	Show()
	Hide()
	SetAlwaysOnTop(onTop bool)
	SetPosition(x, y int)
}

// Recoverer re-asserts native compositing attributes of the overlay window.
type Recoverer interface {
	EnsureVisible()
}

// Service manages the overlay window's visibility and recovery
type Service struct {
	config *config.Service
	window Window
	logger *slog.Logger

	mu           sync.RWMutex
	recoverer    Recoverer
	isVisible    bool
	lastRecovery time.Time
}

// New creates a new overlay service
func New(configSvc *config.Service, window Window, logger *slog.Logger) (*Service, error) {
	service := &Service{
		config:    configSvc,
		window:    window,
		logger:    logger,
		isVisible: configSvc.Get().Overlay.Visible,
	}

	return service, nil
}

// SetRecoverer attaches the click-through controller once the native window exists.
func (s *Service) SetRecoverer(r Recoverer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recoverer = r
}

// EnsureMainVisible shows the window, pins it on top and re-applies the
// native layering attributes. It is safe to call at any time.
func (s *Service) EnsureMainVisible() {
	s.mu.Lock()
	recoverer := s.recoverer
	s.lastRecovery = time.Now()
	s.mu.Unlock()

	s.window.Show()
	s.window.SetAlwaysOnTop(true)
	if recoverer != nil {
		recoverer.EnsureVisible()
	}
}

// ResetPosition moves the window back to its configured position and recovers it.
func (s *Service) ResetPosition() {
	s.mu.Lock()
	cfg := s.config.Get().Overlay
	s.window.SetPosition(cfg.X, cfg.Y)
	s.isVisible = true
	s.apply(true)
	s.mu.Unlock()

	s.EnsureMainVisible()
	s.logger.Info("overlay position reset", "x", cfg.X, "y", cfg.Y)
}

// LastRecovery returns when EnsureMainVisible last ran.
func (s *Service) LastRecovery() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastRecovery
}

// ToggleVisibility toggles the overlay visibility
func (s *Service) ToggleVisibility() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.isVisible = !s.isVisible
	s.apply(s.isVisible)
	return s.isVisible
}

// IsVisible returns current visibility state
func (s *Service) IsVisible() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isVisible
}

// SetVisibility sets the overlay visibility
func (s *Service) SetVisibility(visible bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.isVisible = visible
	s.apply(visible)
}

// apply drives the window and persists the flag. Callers hold s.mu so the
// window and the saved config follow isVisible in order.
func (s *Service) apply(visible bool) {
	if visible {
		s.window.Show()
	} else {
		s.window.Hide()
	}

	cfg := s.config.Get().Overlay
	cfg.Visible = visible
	if err := s.config.UpdateOverlay(cfg); err != nil {
		s.logger.Warn("failed to persist overlay visibility", "error", err)
	}
}

// Shutdown performs cleanup
func (s *Service) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Save current state
	if err := s.config.Save(); err != nil {
		s.logger.Warn("failed to save config", "error", err)
	}
}
