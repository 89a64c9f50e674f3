// Package region holds the interactive hit rectangles reported by the UI and
// answers containment queries against them.
package region

import "math"

// Rect is an axis-aligned interactive area in logical pixels, relative to the
// window's top-left corner.
type Rect struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	W float64 `json:"w" yaml:"w"`
	H float64 `json:"h" yaml:"h"`
}

// Contains reports whether (px, py) lies inside the rectangle.
// The min edges are inclusive and the max edges exclusive.
func (r Rect) Contains(px, py float64) bool {
	return px >= r.X && px < r.X+r.W && py >= r.Y && py < r.Y+r.H
}

// Scale returns the rectangle multiplied by factor.
func (r Rect) Scale(factor float64) Rect {
	return Rect{X: r.X * factor, Y: r.Y * factor, W: r.W * factor, H: r.H * factor}
}

// DeviceRect is a rectangle in integer device pixels.
type DeviceRect struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
	W int `json:"w" yaml:"w"`
	H int `json:"h" yaml:"h"`
}

// maxDeviceEdge bounds device coordinates so that any width or height still
// fits in a 32-bit int.
const maxDeviceEdge = 1 << 29

// Device rasterizes r at the given scale. Edges are rounded independently so
// rectangles that touch in logical space still touch in device space.
// Out-of-range edges are clamped to ±maxDeviceEdge and NaN edges become 0.
func (r Rect) Device(scale float64) DeviceRect {
	x0 := deviceEdge(r.X * scale)
	y0 := deviceEdge(r.Y * scale)
	x1 := deviceEdge((r.X + r.W) * scale)
	y1 := deviceEdge((r.Y + r.H) * scale)
	return DeviceRect{X: int(x0), Y: int(y0), W: int(x1 - x0), H: int(y1 - y0)}
}

func deviceEdge(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(-maxDeviceEdge, math.Min(maxDeviceEdge, math.Round(v)))
}

// Contains reports whether any rectangle in rects holds (px, py). All values
// must be in the same pixel space.
func Contains(rects []Rect, px, py float64) bool {
	for _, r := range rects {
		if r.Contains(px, py) {
			return true
		}
	}
	return false
}

// ValidScale reports whether s can be used as a device pixel ratio.
func ValidScale(s float64) bool {
	return s > 0 && !math.IsInf(s, 0) && !math.IsNaN(s)
}
