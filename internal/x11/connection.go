package x11

import (
	"sync"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/mousebind"
	"github.com/BurntSushi/xgbutil/xevent"
)

// Connection manages the X11 connection and core X resources
type Connection struct {
	XUtil *xgbutil.XUtil
	Root  xproto.Window

	// Motion and release handlers on the root are shared by all drag
	// bindings and installed once.
	dragHandlersOnce sync.Once
}

// NewConnection establishes a connection to the X11 server and initializes
// the key and mouse binding modules.
func NewConnection() (*Connection, error) {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, err
	}

	// Keysym lookups while the keyboard is grabbed need keybind; drag
	// gestures need mousebind.
	keybind.Initialize(xu)
	mousebind.Initialize(xu)

	return &Connection{
		XUtil: xu,
		Root:  xu.RootWin(),
	}, nil
}

// EventLoop runs the X11 event loop until Quit is called.
func (c *Connection) EventLoop() {
	xevent.Main(c.XUtil)
}

// Quit asks a running EventLoop to return.
func (c *Connection) Quit() {
	xevent.Quit(c.XUtil)
}

// Close cleanly disconnects from the X11 server
func (c *Connection) Close() {
	c.XUtil.Conn().Close()
}
