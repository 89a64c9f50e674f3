package main

import (
	"testing"

	"github.com/wailsapp/wails/v2/pkg/runtime"

	"dictation-overlay/internal/region"
)

func TestScaleFromScreens(t *testing.T) {
	// runtime.ScreenSize is not exported by wails (it lives in an internal
	// package), so sizes are set through field assignment.
	sized := func(s runtime.Screen, w, h, pw, ph int) runtime.Screen {
		s.Size.Width, s.Size.Height = w, h
		s.PhysicalSize.Width, s.PhysicalSize.Height = pw, ph
		return s
	}
	hiDPI := sized(runtime.Screen{IsCurrent: true}, 1440, 900, 2880, 1800)
	primary := sized(runtime.Screen{IsPrimary: true}, 1920, 1080, 2400, 1350)

	tests := []struct {
		name    string
		screens []runtime.Screen
		want    float64
	}{
		{"no screens", nil, 1},
		{"current wins", []runtime.Screen{primary, hiDPI}, 2},
		{"primary fallback", []runtime.Screen{primary}, 1.25},
		{"unknown size", []runtime.Screen{{IsCurrent: true}}, 1},
		{"no current or primary", []runtime.Screen{sized(runtime.Screen{}, 10, 0, 20, 0)}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := scaleFromScreens(tt.screens); got != tt.want {
				t.Errorf("scaleFromScreens() = %v; want %v", got, tt.want)
			}
		})
	}
}

func TestApp_UpdateHitRegionBeforeSetup(t *testing.T) {
	app := NewApp(nil, nil, nil)

	app.UpdateHitRegion([]region.Rect{{X: 0, Y: 0, W: 100, H: 40}}, 2)

	st := app.ClickThroughStatus()
	if st.Rects != 1 || st.Scale != 2 {
		t.Errorf("ClickThroughStatus() = %+v; want 1 rect at scale 2", st)
	}

	// nil ctx: falls back to scale 1
	app.UpdateHitRegion(nil, 0)
	if st := app.ClickThroughStatus(); st.Rects != 0 || st.Scale != 1 {
		t.Errorf("ClickThroughStatus() = %+v; want empty at scale 1", st)
	}
}
