//go:build windows

// Package win32 exposes the overlay's native Win32 window to the
// click-through realizer.
package win32

import (
	"errors"
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"

	"dictation-overlay/internal/region"
)

const (
	gwlExStyle = -20
	lwaAlpha   = 0x00000002
)

var (
	user32 = windows.NewLazySystemDLL("user32.dll")

	procFindWindowW                = user32.NewProc("FindWindowW")
	procIsWindow                   = user32.NewProc("IsWindow")
	procIsWindowVisible            = user32.NewProc("IsWindowVisible")
	procGetWindowRect              = user32.NewProc("GetWindowRect")
	procGetCursorPos               = user32.NewProc("GetCursorPos")
	procGetWindowLongW             = user32.NewProc("GetWindowLongW")
	procSetWindowLongW             = user32.NewProc("SetWindowLongW")
	procSetLayeredWindowAttributes = user32.NewProc("SetLayeredWindowAttributes")
	procInvalidateRect             = user32.NewProc("InvalidateRect")
)

// ErrInvalidHandle is returned when the HWND no longer refers to a window.
var ErrInvalidHandle = errors.New("invalid window handle")

type rect struct {
	Left, Top, Right, Bottom int32
}

type point struct {
	X, Y int32
}

// Window wraps an HWND.
type Window struct {
	hwnd uintptr
}

// FindWindow resolves a top-level window by its exact title.
func FindWindow(title string) (*Window, error) {
	ptr, err := windows.UTF16PtrFromString(title)
	if err != nil {
		return nil, err
	}
	hwnd, _, callErr := procFindWindowW.Call(0, uintptr(unsafe.Pointer(ptr)))
	if hwnd == 0 {
		if e := lastError(callErr); e != nil {
			return nil, fmt.Errorf("FindWindowW: %w", e)
		}
		return nil, fmt.Errorf("no window titled %q", title)
	}
	return &Window{hwnd: hwnd}, nil
}

// Handle returns the raw HWND.
func (w *Window) Handle() uintptr {
	return w.hwnd
}

func (w *Window) Valid() bool {
	ret, _, _ := procIsWindow.Call(w.hwnd)
	return ret != 0
}

func (w *Window) Visible() bool {
	ret, _, _ := procIsWindowVisible.Call(w.hwnd)
	return ret != 0
}

// Bounds returns the window rectangle in screen coordinates.
func (w *Window) Bounds() (region.DeviceRect, error) {
	var r rect
	ret, _, err := procGetWindowRect.Call(w.hwnd, uintptr(unsafe.Pointer(&r)))
	if ret == 0 {
		return region.DeviceRect{}, callError("GetWindowRect", err)
	}
	return region.DeviceRect{
		X: int(r.Left),
		Y: int(r.Top),
		W: int(r.Right - r.Left),
		H: int(r.Bottom - r.Top),
	}, nil
}

// CursorPos returns the global cursor position.
func (w *Window) CursorPos() (int, int, error) {
	var p point
	ret, _, err := procGetCursorPos.Call(uintptr(unsafe.Pointer(&p)))
	if ret == 0 {
		return 0, 0, callError("GetCursorPos", err)
	}
	return int(p.X), int(p.Y), nil
}

// ExStyle reads GWL_EXSTYLE.
func (w *Window) ExStyle() (uint32, error) {
	if !w.Valid() {
		return 0, ErrInvalidHandle
	}
	idx := int32(gwlExStyle)
	ret, _, err := procGetWindowLongW.Call(w.hwnd, uintptr(idx))
	if ret == 0 {
		// zero is also a legitimate style; only fail on a real error code
		if e := lastError(err); e != nil {
			return 0, fmt.Errorf("GetWindowLongW: %w", e)
		}
	}
	return uint32(ret), nil
}

// SetExStyle writes GWL_EXSTYLE.
func (w *Window) SetExStyle(style uint32) error {
	idx := int32(gwlExStyle)
	ret, _, err := procSetWindowLongW.Call(w.hwnd, uintptr(idx), uintptr(style))
	if ret == 0 {
		if e := lastError(err); e != nil {
			return fmt.Errorf("SetWindowLongW: %w", e)
		}
	}
	return nil
}

// SetLayeredAlpha pins the layered window at a constant alpha.
func (w *Window) SetLayeredAlpha(alpha uint8) error {
	ret, _, err := procSetLayeredWindowAttributes.Call(w.hwnd, 0, uintptr(alpha), lwaAlpha)
	if ret == 0 {
		return callError("SetLayeredWindowAttributes", err)
	}
	return nil
}

// Invalidate schedules a full repaint with background erase.
func (w *Window) Invalidate() error {
	ret, _, err := procInvalidateRect.Call(w.hwnd, 0, 1)
	if ret == 0 {
		return callError("InvalidateRect", err)
	}
	return nil
}

// lastError converts the error returned by LazyProc.Call, which is always
// non-nil, into nil when the call did not set a Win32 error code.
func lastError(err error) error {
	var errno windows.Errno
	if err == nil || (errors.As(err, &errno) && errno == 0) {
		return nil
	}
	return err
}

// callError reports a failed call whose return value signalled an error.
func callError(name string, err error) error {
	if e := lastError(err); e != nil {
		return fmt.Errorf("%s: %w", name, e)
	}
	return fmt.Errorf("%s failed", name)
}
