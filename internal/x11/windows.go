package x11

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/xwindow"
)

// FrameExtents are the window manager decoration sizes around a client.
type FrameExtents struct {
	Left   int
	Right  int
	Top    int
	Bottom int
}

// SizeLimits are the ICCCM min/max size hints of a client. Zero means
// unconstrained.
type SizeLimits struct {
	MinWidth  int
	MinHeight int
	MaxWidth  int
	MaxHeight int
}

// MoveResizeWindow moves a window so its frame's top-left is at (x, y) and
// sets its client size to width x height.
func (c *Connection) MoveResizeWindow(windowID xproto.Window, x, y, width, height int) error {
	// Maximized windows ignore geometry requests.
	c.unmaximizeWindow(windowID)

	if err := ewmh.MoveresizeWindow(c.XUtil, windowID, x, y, width, height); err != nil {
		// Fallback to direct window manipulation
		xwindow.New(c.XUtil, windowID).MoveResize(x, y, width, height)
	}
	return nil
}

func (c *Connection) unmaximizeWindow(windowID xproto.Window) {
	states, err := ewmh.WmStateGet(c.XUtil, windowID)
	if err != nil {
		return
	}
	for _, state := range states {
		switch state {
		case "_NET_WM_STATE_MAXIMIZED_HORZ", "_NET_WM_STATE_MAXIMIZED_VERT":
			ewmh.WmStateReq(c.XUtil, windowID, ewmh.StateRemove, state)
		}
	}
}

// GetFrameExtents returns the window decoration sizes, or zeros when the
// window manager does not publish them.
func (c *Connection) GetFrameExtents(windowID xproto.Window) FrameExtents {
	extents, err := ewmh.FrameExtentsGet(c.XUtil, windowID)
	if err != nil {
		return FrameExtents{}
	}
	return FrameExtents{
		Left:   extents.Left,
		Right:  extents.Right,
		Top:    extents.Top,
		Bottom: extents.Bottom,
	}
}

// ClientGeometry returns the client area of a window in root coordinates.
func (c *Connection) ClientGeometry(windowID xproto.Window) (Geometry, error) {
	geom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(windowID)).Reply()
	if err != nil {
		return Geometry{}, fmt.Errorf("get geometry of 0x%x: %w", windowID, err)
	}

	translate, err := xproto.TranslateCoordinates(c.XUtil.Conn(), windowID, c.Root, 0, 0).Reply()
	if err != nil {
		return Geometry{}, fmt.Errorf("translate coordinates of 0x%x: %w", windowID, err)
	}

	return Geometry{
		X:      int(translate.DstX),
		Y:      int(translate.DstY),
		Width:  int(geom.Width),
		Height: int(geom.Height),
	}, nil
}

// FrameGeometry returns the outer bounds of a window including its
// decorations.
func (c *Connection) FrameGeometry(windowID xproto.Window) (Geometry, error) {
	client, err := c.ClientGeometry(windowID)
	if err != nil {
		return Geometry{}, err
	}
	ext := c.GetFrameExtents(windowID)
	return Geometry{
		X:      client.X - ext.Left,
		Y:      client.Y - ext.Top,
		Width:  client.Width + ext.Left + ext.Right,
		Height: client.Height + ext.Top + ext.Bottom,
	}, nil
}

// SizeLimits reads WM_NORMAL_HINTS. Missing hints yield zero limits.
func (c *Connection) SizeLimits(windowID xproto.Window) SizeLimits {
	hints, err := icccm.WmNormalHintsGet(c.XUtil, windowID)
	if err != nil {
		return SizeLimits{}
	}
	var lim SizeLimits
	if hints.Flags&icccm.SizeHintPMinSize != 0 {
		lim.MinWidth = int(hints.MinWidth)
		lim.MinHeight = int(hints.MinHeight)
	}
	if hints.Flags&icccm.SizeHintPMaxSize != 0 {
		lim.MaxWidth = int(hints.MaxWidth)
		lim.MaxHeight = int(hints.MaxHeight)
	}
	return lim
}

// IsNormalWindow checks if a window is a normal application window
func (c *Connection) IsNormalWindow(windowID xproto.Window) bool {
	types, err := ewmh.WmWindowTypeGet(c.XUtil, windowID)
	if err != nil {
		// If we can't determine type, assume it's normal
		return true
	}

	for _, t := range types {
		switch t {
		case "_NET_WM_WINDOW_TYPE_NORMAL", "_NET_WM_WINDOW_TYPE_DIALOG", "_NET_WM_WINDOW_TYPE_UTILITY":
			return true
		case "_NET_WM_WINDOW_TYPE_DESKTOP", "_NET_WM_WINDOW_TYPE_DOCK",
			"_NET_WM_WINDOW_TYPE_SPLASH", "_NET_WM_WINDOW_TYPE_NOTIFICATION":
			return false
		}
	}

	return len(types) == 0
}

func (c *Connection) hasWindowType(windowID xproto.Window, want string) bool {
	types, err := ewmh.WmWindowTypeGet(c.XUtil, windowID)
	if err != nil {
		return false
	}
	for _, t := range types {
		if t == want {
			return true
		}
	}
	return false
}

// IsHidden reports whether a window is minimized or fullscreen. Neither
// takes part in snapping.
func (c *Connection) IsHidden(windowID xproto.Window) bool {
	states, err := ewmh.WmStateGet(c.XUtil, windowID)
	if err != nil {
		return false
	}
	for _, state := range states {
		switch state {
		case "_NET_WM_STATE_HIDDEN", "_NET_WM_STATE_FULLSCREEN":
			return true
		}
	}
	return false
}

// ClientsStacked returns managed clients from bottom to top. It falls back
// to the unordered client list.
func (c *Connection) ClientsStacked() ([]xproto.Window, error) {
	if clients, err := ewmh.ClientListStackingGet(c.XUtil); err == nil {
		return clients, nil
	}
	clients, err := ewmh.ClientListGet(c.XUtil)
	if err != nil {
		return nil, fmt.Errorf("failed to get client list: %w", err)
	}
	return clients, nil
}

// WindowClass returns the WM_CLASS class of a window.
func (c *Connection) WindowClass(windowID xproto.Window) string {
	wmClass, err := icccm.WmClassGet(c.XUtil, windowID)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(wmClass.Class)
}

// WindowTitle returns _NET_WM_NAME, falling back to WM_NAME.
func (c *Connection) WindowTitle(windowID xproto.Window) string {
	if title, err := ewmh.WmNameGet(c.XUtil, windowID); err == nil {
		if title = strings.TrimSpace(title); title != "" {
			return title
		}
	}
	if title, err := icccm.WmNameGet(c.XUtil, windowID); err == nil {
		return strings.TrimSpace(title)
	}
	return ""
}

// ActiveWindow returns the focused window.
func (c *Connection) ActiveWindow() (xproto.Window, error) {
	return ewmh.ActiveWindowGet(c.XUtil)
}
