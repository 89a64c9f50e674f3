package clickthrough

import (
	"errors"
	"io"
	"log/slog"
	"sync"

	"dictation-overlay/internal/region"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeStyleWindow records every mutating call.
type fakeStyleWindow struct {
	mu sync.Mutex

	valid   bool
	visible bool
	bounds  region.DeviceRect
	cursorX int
	cursorY int
	style   uint32

	boundsErr   error
	cursorErr   error
	setStyleErr error

	setStyleCalls   int
	alphaCalls      int
	lastAlpha       uint8
	invalidateCalls int
}

func newFakeStyleWindow() *fakeStyleWindow {
	return &fakeStyleWindow{
		valid:   true,
		visible: true,
		bounds:  region.DeviceRect{X: 100, Y: 200, W: 400, H: 300},
	}
}

func (w *fakeStyleWindow) Valid() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.valid
}

func (w *fakeStyleWindow) Visible() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.visible
}

func (w *fakeStyleWindow) Bounds() (region.DeviceRect, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.bounds, w.boundsErr
}

func (w *fakeStyleWindow) CursorPos() (int, int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.cursorX, w.cursorY, w.cursorErr
}

func (w *fakeStyleWindow) ExStyle() (uint32, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.style, nil
}

func (w *fakeStyleWindow) SetExStyle(style uint32) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.setStyleCalls++
	if w.setStyleErr != nil {
		return w.setStyleErr
	}
	w.style = style
	return nil
}

func (w *fakeStyleWindow) SetLayeredAlpha(alpha uint8) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.alphaCalls++
	w.lastAlpha = alpha
	return nil
}

func (w *fakeStyleWindow) Invalidate() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.invalidateCalls++
	return nil
}

func (w *fakeStyleWindow) moveCursor(x, y int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.cursorX, w.cursorY = x, y
}

func (w *fakeStyleWindow) setValid(v bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.valid = v
}

func (w *fakeStyleWindow) counts() (setStyle, alpha, invalidate int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.setStyleCalls, w.alphaCalls, w.invalidateCalls
}

func (w *fakeStyleWindow) currentStyle() uint32 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.style
}

func (w *fakeStyleWindow) setStyle(style uint32) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.style = style
}

func (w *fakeStyleWindow) setVisible(v bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.visible = v
}

func (w *fakeStyleWindow) setQueryErrors(boundsErr, cursorErr error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.boundsErr, w.cursorErr = boundsErr, cursorErr
}

func (w *fakeStyleWindow) setStyleError(err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.setStyleErr = err
}

func (w *fakeStyleWindow) alpha() uint8 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastAlpha
}

// fakeShapeWindow records submitted input shapes.
type fakeShapeWindow struct {
	mu sync.Mutex

	valid    bool
	shapeErr error
	shapes   [][]region.DeviceRect
	shows    int
	closed   bool
}

func (w *fakeShapeWindow) Valid() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.valid
}

func (w *fakeShapeWindow) SetInputShape(rects []region.DeviceRect) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.shapeErr != nil {
		return w.shapeErr
	}
	w.shapes = append(w.shapes, rects)
	return nil
}

func (w *fakeShapeWindow) Show() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.shows++
	return nil
}

func (w *fakeShapeWindow) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	return nil
}

// fakeHost captures the installed hit-test callback.
type fakeHost struct {
	fn  func(x, y float64) bool
	err error
}

func (h *fakeHost) InstallHitTest(fn func(x, y float64) bool) error {
	if h.err != nil {
		return h.err
	}
	h.fn = fn
	return nil
}

var errRejected = errors.New("rejected")
