//go:build darwin

// Package darwin installs the overlay's AppKit hit-test override. AppKit asks
// the content view synchronously for every pointer event; the answer comes
// from the Go callback installed with InstallHitTest.
package darwin

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework Cocoa
#include <stdlib.h>
#include "hittest_darwin.h"
*/
import "C"

import (
	"errors"
	"sync/atomic"
	"unsafe"
)

// ErrWindowNotFound is returned when no NSWindow has the wanted title.
var ErrWindowNotFound = errors.New("window not found")

type hitTestFunc func(x, y float64) bool

var current atomic.Pointer[hitTestFunc]

//export overlayHitTest
func overlayHitTest(x, y C.double) C.bool {
	return C.bool(hitTest(float64(x), float64(y)))
}

func hitTest(x, y float64) bool {
	fn := current.Load()
	if fn == nil {
		// nothing installed yet: behave like a normal window
		return true
	}
	return (*fn)(x, y)
}

// Host is the AppKit window receiving hit tests.
type Host struct {
	title string
}

// FindWindow returns a host for the window titled title. The lookup happens
// in InstallHitTest, once the window exists.
func FindWindow(title string) (*Host, error) {
	if title == "" {
		return nil, ErrWindowNotFound
	}
	return &Host{title: title}, nil
}

// InstallHitTest routes the window's hit tests to fn. Points are in logical
// pixels relative to the top-left of the content view.
func (h *Host) InstallHitTest(fn func(x, y float64) bool) error {
	f := hitTestFunc(fn)
	current.Store(&f)

	ctitle := C.CString(h.title)
	defer C.free(unsafe.Pointer(ctitle))

	if C.overlay_install_hit_test(ctitle) != 0 {
		current.Store(nil)
		return ErrWindowNotFound
	}
	return nil
}
