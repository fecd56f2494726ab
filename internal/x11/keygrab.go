package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xevent"
)

// KeysymEscape is the X keysym of the Escape key.
const KeysymEscape xproto.Keysym = 0xff1b

// KeyGrab holds the keyboard for the duration of a gesture so keys reach
// the daemon instead of the focused client.
type KeyGrab struct {
	conn       *Connection
	grabWindow xproto.Window
	attached   bool
	onKey      func(xproto.Keysym)
}

// NewKeyGrab returns an inactive grab. onKey receives the keysym of each
// key press while the grab is held.
func NewKeyGrab(conn *Connection, onKey func(xproto.Keysym)) *KeyGrab {
	return &KeyGrab{conn: conn, onKey: onKey}
}

// Grab takes the keyboard and starts routing key presses to onKey.
func (g *KeyGrab) Grab() error {
	xu := g.conn.XUtil
	if err := g.ensureGrabWindow(); err != nil {
		return err
	}

	grab := func() (*xproto.GrabKeyboardReply, error) {
		return xproto.GrabKeyboard(
			xu.Conn(),
			false,                  // owner_events
			g.conn.Root,            // grab_window (must be viewable)
			xproto.TimeCurrentTime, // time
			xproto.GrabModeAsync,   // pointer_mode
			xproto.GrabModeAsync,   // keyboard_mode
		).Reply()
	}

	reply, err := grab()
	if err != nil {
		return err
	}
	// A previous grab by this client may still be active.
	if reply.Status == xproto.GrabStatusAlreadyGrabbed {
		xproto.UngrabKeyboard(xu.Conn(), xproto.TimeCurrentTime)
		if reply, err = grab(); err != nil {
			return err
		}
	}
	if reply.Status != xproto.GrabStatusSuccess {
		return fmt.Errorf("keyboard grab failed with status %d", reply.Status)
	}

	xevent.RedirectKeyEvents(xu, g.grabWindow)
	if !g.attached {
		xevent.KeyPressFun(g.handleKeyPress).Connect(xu, g.grabWindow)
		g.attached = true
	}
	return nil
}

// Release gives the keyboard back.
func (g *KeyGrab) Release() {
	xu := g.conn.XUtil
	xproto.UngrabKeyboard(xu.Conn(), xproto.TimeCurrentTime)
	xevent.RedirectKeyEvents(xu, 0)
	if g.attached && g.grabWindow != 0 {
		xevent.Detach(xu, g.grabWindow)
		g.attached = false
	}
}

func (g *KeyGrab) ensureGrabWindow() error {
	if g.grabWindow != 0 {
		return nil
	}
	conn := g.conn.XUtil.Conn()

	wid, err := xproto.NewWindowId(conn)
	if err != nil {
		return err
	}

	// InputOnly window used only as a target for key callbacks.
	err = xproto.CreateWindowChecked(
		conn,
		0, // depth (must be 0 for InputOnly)
		wid,
		g.conn.Root,
		0, 0, 1, 1, 0,
		xproto.WindowClassInputOnly,
		xproto.Visualid(0), // CopyFromParent
		xproto.CwEventMask,
		[]uint32{uint32(xproto.EventMaskKeyPress)},
	).Check()
	if err != nil {
		return err
	}
	xproto.MapWindow(conn, wid)

	g.grabWindow = wid
	return nil
}

func (g *KeyGrab) handleKeyPress(xu *xgbutil.XUtil, ev xevent.KeyPressEvent) {
	if g.onKey != nil {
		g.onKey(keybind.KeysymGet(xu, ev.Detail, 0))
	}
}
