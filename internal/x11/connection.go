// Package x11 exposes the overlay's X11 window to the click-through realizer.
package x11

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/xgb/shape"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
)

// ErrWindowNotFound is returned when no top-level window has the wanted title.
var ErrWindowNotFound = errors.New("window not found")

// Connection manages the X11 connection and core X resources
type Connection struct {
	XUtil *xgbutil.XUtil
	Root  xproto.Window
}

// NewConnection connects to the X server and initializes the SHAPE extension.
func NewConnection() (*Connection, error) {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, err
	}

	if err := shape.Init(xu.Conn()); err != nil {
		xu.Conn().Close()
		return nil, fmt.Errorf("init SHAPE extension: %w", err)
	}

	return &Connection{
		XUtil: xu,
		Root:  xu.RootWin(),
	}, nil
}

// Close cleanly disconnects from the X11 server
func (c *Connection) Close() {
	c.XUtil.Conn().Close()
}

// FindWindow returns the top-level window titled title. The returned Window
// owns the connection.
func (c *Connection) FindWindow(title string) (*Window, error) {
	candidates, err := ewmh.ClientListGet(c.XUtil)
	if err != nil || len(candidates) == 0 {
		// no EWMH window manager: fall back to the root's children
		tree, treeErr := xproto.QueryTree(c.XUtil.Conn(), c.Root).Reply()
		if treeErr != nil {
			return nil, fmt.Errorf("list top-level windows: %w", treeErr)
		}
		candidates = tree.Children
	}

	for _, id := range candidates {
		if c.windowTitle(id) == title {
			return &Window{conn: c, id: id}, nil
		}
	}
	return nil, ErrWindowNotFound
}

func (c *Connection) windowTitle(id xproto.Window) string {
	if name, err := ewmh.WmNameGet(c.XUtil, id); err == nil && name != "" {
		return name
	}
	if name, err := icccm.WmNameGet(c.XUtil, id); err == nil {
		return name
	}
	return ""
}
