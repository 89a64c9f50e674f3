package main

import (
	"context"

	"github.com/wailsapp/wails/v2/pkg/runtime"
)

// wailsWindow adapts the wails runtime to overlay.Window.
type wailsWindow struct {
	ctx context.Context
}

func newWailsWindow(ctx context.Context) wailsWindow {
	return wailsWindow{ctx: ctx}
}

func (w wailsWindow) Show() { runtime.WindowShow(w.ctx) }

func (w wailsWindow) Hide() { runtime.WindowHide(w.ctx) }

func (w wailsWindow) SetAlwaysOnTop(onTop bool) { runtime.WindowSetAlwaysOnTop(w.ctx, onTop) }

func (w wailsWindow) SetPosition(x, y int) { runtime.WindowSetPosition(w.ctx, x, y) }

// currentScale returns the device pixel ratio of the screen holding the
// window, or 1 when it cannot be determined.
func currentScale(ctx context.Context) float64 {
	if ctx == nil {
		return 1
	}
	screens, err := runtime.ScreenGetAll(ctx)
	if err != nil {
		return 1
	}
	return scaleFromScreens(screens)
}

func scaleFromScreens(screens []runtime.Screen) float64 {
	pick := -1
	for i, s := range screens {
		if s.IsCurrent {
			pick = i
			break
		}
		if s.IsPrimary && pick < 0 {
			pick = i
		}
	}
	if pick < 0 {
		return 1
	}

	s := screens[pick]
	if s.Size.Width <= 0 || s.PhysicalSize.Width <= 0 {
		return 1
	}
	return float64(s.PhysicalSize.Width) / float64(s.Size.Width)
}
