package x11

import (
	"math"

	"github.com/BurntSushi/xgb/shape"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"

	"dictation-overlay/internal/region"
)

// Window is an X11 top-level window.
type Window struct {
	conn *Connection
	id   xproto.Window
}

// ID returns the X window id.
func (w *Window) ID() xproto.Window {
	return w.id
}

// Valid reports whether the window still exists on the server.
func (w *Window) Valid() bool {
	_, err := xproto.GetWindowAttributes(w.conn.XUtil.Conn(), w.id).Reply()
	return err == nil
}

// SetInputShape replaces the window's input shape with rects at offset (0,0).
// An empty list leaves an empty input shape, so every event falls through.
func (w *Window) SetInputShape(rects []region.DeviceRect) error {
	return shape.RectanglesChecked(
		w.conn.XUtil.Conn(),
		shape.SoSet,
		shape.SkInput,
		xproto.ClipOrderingUnsorted,
		w.id,
		0, 0,
		toXRectangles(rects),
	).Check()
}

// Show maps the window and asks the window manager to keep it above others.
func (w *Window) Show() error {
	if err := xproto.MapWindowChecked(w.conn.XUtil.Conn(), w.id).Check(); err != nil {
		return err
	}
	return ewmh.WmStateReq(w.conn.XUtil, w.id, ewmh.StateAdd, "_NET_WM_STATE_ABOVE")
}

// Close closes the underlying connection.
func (w *Window) Close() error {
	w.conn.Close()
	return nil
}

func toXRectangles(rects []region.DeviceRect) []xproto.Rectangle {
	out := make([]xproto.Rectangle, 0, len(rects))
	for _, r := range rects {
		if r.W <= 0 || r.H <= 0 {
			continue
		}
		out = append(out, xproto.Rectangle{
			X:      clampInt16(r.X),
			Y:      clampInt16(r.Y),
			Width:  clampUint16(r.W),
			Height: clampUint16(r.H),
		})
	}
	return out
}

func clampInt16(v int) int16 {
	switch {
	case v < math.MinInt16:
		return math.MinInt16
	case v > math.MaxInt16:
		return math.MaxInt16
	}
	return int16(v)
}

func clampUint16(v int) uint16 {
	switch {
	case v < 0:
		return 0
	case v > math.MaxUint16:
		return math.MaxUint16
	}
	return uint16(v)
}
