package main

import (
	"context"
	"embed"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
	"github.com/wailsapp/wails/v2/pkg/options/linux"
	"github.com/wailsapp/wails/v2/pkg/options/mac"
	wailswindows "github.com/wailsapp/wails/v2/pkg/options/windows"

	"dictation-overlay/internal/clickthrough"
	"dictation-overlay/internal/config"
	"dictation-overlay/internal/logging"
	"dictation-overlay/internal/overlay"
	"dictation-overlay/internal/region"
)

//go:embed all:frontend/dist
var assets embed.FS

// App struct
type App struct {
	ctx       context.Context
	config    *config.Service
	logger    *slog.Logger
	logCloser io.Closer
	regions   *region.Store
	overlay   *overlay.Service

	mu           sync.RWMutex
	clickThrough *clickthrough.Controller
}

// NewApp creates a new App application struct
func NewApp(configSvc *config.Service, logger *slog.Logger, logCloser io.Closer) *App {
	return &App{
		config:    configSvc,
		logger:    logger,
		logCloser: logCloser,
		regions:   region.NewStore(),
	}
}

// OnStartup is called when the app starts up
func (a *App) OnStartup(ctx context.Context) {
	a.ctx = ctx

	overlaySvc, err := overlay.New(a.config, newWailsWindow(ctx), a.logger)
	if err != nil {
		a.logger.Error("failed to initialize overlay", "error", err)
		os.Exit(1)
	}
	a.overlay = overlaySvc
}

// OnDomReady is called once the page has loaded and the native window is
// mapped, which is when it can be resolved by title.
func (a *App) OnDomReady(ctx context.Context) {
	if a.controller() != nil {
		return
	}

	cfg := a.config.Get()
	newWailsWindow(ctx).SetPosition(cfg.Overlay.X, cfg.Overlay.Y)

	realizer, err := clickthrough.NewPlatform(a.regions, clickthrough.Options{
		WindowTitle:   cfg.Overlay.Title,
		PollInterval:  cfg.ClickThrough.PollInterval,
		WatchdogTicks: cfg.ClickThrough.WatchdogTicks(),
		Opacity:       cfg.ClickThrough.Opacity,
	}, a.logger)
	if err != nil {
		// the overlay still works, it just captures all input
		a.logger.Warn("click-through unavailable", "error", err)
		return
	}

	controller := clickthrough.New(a.regions, realizer, a.logger)
	if wd := overlay.NewWatchdog(a.overlay, cfg.Overlay.RecoveryInterval); wd != nil {
		controller.Supervise(wd)
	}
	if err := controller.Setup(ctx); err != nil {
		a.logger.Warn("click-through setup failed", "error", err)
		controller.Close()
		return
	}

	a.mu.Lock()
	a.clickThrough = controller
	a.mu.Unlock()
	a.overlay.SetRecoverer(controller)
}

// OnShutdown is called when the app is shutting down
func (a *App) OnShutdown(ctx context.Context) {
	if c := a.controller(); c != nil {
		if err := c.Close(); err != nil {
			a.logger.Warn("failed to release overlay window", "error", err)
		}
	}
	if a.overlay != nil {
		a.overlay.Shutdown()
	}
	if a.logCloser != nil {
		a.logCloser.Close()
	}
}

func (a *App) controller() *clickthrough.Controller {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.clickThrough
}

// UpdateHitRegion replaces the interactive rectangles, in CSS pixels. A
// non-positive scale is replaced by the current screen's pixel ratio.
func (a *App) UpdateHitRegion(rects []region.Rect, scale float64) {
	if !region.ValidScale(scale) {
		scale = currentScale(a.ctx)
	}

	if c := a.controller(); c != nil {
		c.UpdateRegion(rects, scale)
		return
	}
	// not set up yet: the realizer picks the store up during Setup
	a.regions.Update(rects, scale)
}

// EnsureMainVisible shows the overlay, keeps it on top and re-applies the
// native compositing attributes.
func (a *App) EnsureMainVisible() {
	if a.overlay == nil {
		return
	}
	a.overlay.EnsureMainVisible()
}

// ResetPosition moves the overlay back to its configured position.
func (a *App) ResetPosition() {
	if a.overlay == nil {
		return
	}
	a.overlay.ResetPosition()
}

// ToggleVisibility toggles overlay visibility
func (a *App) ToggleVisibility() bool {
	if a.overlay == nil {
		return false
	}
	return a.overlay.ToggleVisibility()
}

// ClickThroughStatus reports the click-through state for diagnostics.
func (a *App) ClickThroughStatus() clickthrough.Status {
	if c := a.controller(); c != nil {
		return c.Status()
	}
	snap := a.regions.Read()
	return clickthrough.Status{Rects: len(snap.Rects), Scale: snap.Scale}
}

func main() {
	configSvc, err := config.New()
	if err != nil {
		fmt.Printf("Failed to initialize config: %v\n", err)
		os.Exit(1)
	}

	logger, logCloser := logging.New(configSvc.Get().Log)
	app := NewApp(configSvc, logger, logCloser)
	ov := configSvc.Get().Overlay

	err = wails.Run(&options.App{
		Title:  ov.Title,
		Width:  ov.Width,
		Height: ov.Height,
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		Frameless:        true,
		AlwaysOnTop:      true,
		StartHidden:      !ov.Visible,
		BackgroundColour: &options.RGBA{R: 0, G: 0, B: 0, A: 0}, // Transparent
		Windows: &wailswindows.Options{
			WebviewIsTransparent: true,
			WindowIsTranslucent:  true,
		},
		Mac: &mac.Options{
			WebviewIsTransparent: true,
			WindowIsTranslucent:  true,
		},
		Linux: &linux.Options{
			WindowIsTranslucent: true,
		},
		OnStartup:  app.OnStartup,
		OnDomReady: app.OnDomReady,
		OnShutdown: app.OnShutdown,
		Bind:       []interface{}{app},
	})

	if err != nil {
		logger.Error("error starting application", "error", err)
		os.Exit(1)
	}
}
