package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
)

// allDesktops is the _NET_WM_DESKTOP value of windows shown on every desktop.
const allDesktops = 0xFFFFFFFF

// CurrentDesktop returns the current virtual desktop number (0-indexed).
func (c *Connection) CurrentDesktop() (int, error) {
	desktop, err := ewmh.CurrentDesktopGet(c.XUtil)
	if err != nil {
		return 0, fmt.Errorf("failed to get current desktop: %w", err)
	}
	return int(desktop), nil
}

// VisibleOnDesktop reports whether a window shows on the given desktop.
// Windows without _NET_WM_DESKTOP are treated as visible.
func (c *Connection) VisibleOnDesktop(windowID xproto.Window, desktop int) bool {
	d, err := ewmh.WmDesktopGet(c.XUtil, windowID)
	if err != nil {
		return true
	}
	return d == allDesktops || int(d) == desktop
}

// FocusWindow activates and raises a window using _NET_ACTIVE_WINDOW.
// The message is built by hand because the xgbutil ewmh request helper
// panics on this library version.
func (c *Connection) FocusWindow(windowID xproto.Window) error {
	const sourceIndication = 2 // pager/direct action
	return c.sendRootMessage(windowID, "_NET_ACTIVE_WINDOW", sourceIndication, 0, 0, 0, 0)
}

// sendRootMessage sends an EWMH client message about windowID to the root
// window.
func (c *Connection) sendRootMessage(windowID xproto.Window, atom string, data ...uint32) error {
	reply, err := xproto.InternAtom(c.XUtil.Conn(), false, uint16(len(atom)), atom).Reply()
	if err != nil {
		return fmt.Errorf("failed to intern %s: %w", atom, err)
	}

	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: windowID,
		Type:   reply.Atom,
		Data:   xproto.ClientMessageDataUnionData32New(data),
	}

	return xproto.SendEventChecked(
		c.XUtil.Conn(),
		false,
		c.Root,
		xproto.EventMaskSubstructureRedirect|xproto.EventMaskSubstructureNotify,
		string(ev.Bytes()),
	).Check()
}
