//go:build linux

package platform

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/1broseidon/stickywin/internal/sticky"
	"github.com/1broseidon/stickywin/internal/x11"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
)

// LinuxBackend wraps an existing X11 connection behind the platform Backend interface.
type LinuxBackend struct {
	conn    *x11.Connection
	logger  *slog.Logger
	screens *X11Screens
}

var _ Backend = (*LinuxBackend)(nil)

// NewLinuxBackend creates a Linux platform backend from an existing X11 connection.
func NewLinuxBackend(conn *x11.Connection, logger *slog.Logger) *LinuxBackend {
	if logger == nil {
		logger = slog.Default()
	}
	return &LinuxBackend{
		conn:    conn,
		logger:  logger,
		screens: &X11Screens{conn: conn, logger: logger},
	}
}

// ListWindows lists normal windows in stacking order. Minimized windows
// and windows on other desktops are included with Hidden set.
func (b *LinuxBackend) ListWindows() ([]Window, error) {
	conn, err := b.connection()
	if err != nil {
		return nil, err
	}

	clients, err := conn.ClientsStacked()
	if err != nil {
		return nil, err
	}

	desktop, desktopErr := conn.CurrentDesktop()

	windows := make([]Window, 0, len(clients))
	for _, windowID := range clients {
		if !conn.IsNormalWindow(windowID) {
			continue
		}
		hidden := conn.IsHidden(windowID) ||
			(desktopErr == nil && !conn.VisibleOnDesktop(windowID, desktop))

		var bounds sticky.Rect
		geom, err := conn.FrameGeometry(windowID)
		switch {
		case err == nil:
			bounds = rectFromGeometry(geom)
		case !hidden:
			continue
		}

		pid := 0
		if p, err := ewmh.WmPidGet(conn.XUtil, windowID); err == nil {
			pid = int(p)
		}

		windows = append(windows, Window{
			ID:     WindowID(windowID),
			PID:    pid,
			Class:  conn.WindowClass(windowID),
			Title:  conn.WindowTitle(windowID),
			Bounds: bounds,
			Hidden: hidden,
		})
	}
	return windows, nil
}

// Host returns the X11 adapter for a window. Its bounds are read once here
// and cached until the next Refresh.
func (b *LinuxBackend) Host(id WindowID) Host {
	h := &X11Host{
		conn:   b.conn,
		id:     xproto.Window(id),
		logger: b.logger.With("xid", fmt.Sprintf("0x%x", uint32(id))),
	}
	if err := h.Refresh(); err != nil {
		h.logger.Debug("initial geometry unavailable", "error", err)
	}
	return h
}

// Screens returns the work-area provider.
func (b *LinuxBackend) Screens() sticky.Screens {
	return b.screens
}

// InvalidateScreens forgets the cached monitor layout, for example after
// a dock appears or the RandR configuration changes.
func (b *LinuxBackend) InvalidateScreens() {
	b.screens.Invalidate()
}

func (b *LinuxBackend) connection() (*x11.Connection, error) {
	if b == nil || b.conn == nil {
		return nil, fmt.Errorf("x11 backend connection is nil")
	}
	return b.conn, nil
}

// X11Host adapts one managed X11 client to sticky.Host. Bounds are the
// outer frame in root coordinates; window-relative points are relative to
// the frame's top-left corner.
type X11Host struct {
	conn   *x11.Connection
	id     xproto.Window
	logger *slog.Logger

	bounds  sticky.Rect
	extents x11.FrameExtents
	minSize sticky.Size
	maxSize sticky.Size
	capture bool
}

var _ Host = (*X11Host)(nil)

// Refresh re-reads geometry, decorations and size hints from the server.
func (h *X11Host) Refresh() error {
	h.extents = h.conn.GetFrameExtents(h.id)
	h.minSize, h.maxSize = frameLimits(h.conn.SizeLimits(h.id), h.extents)

	geom, err := h.conn.FrameGeometry(h.id)
	if err != nil {
		return err
	}
	h.bounds = rectFromGeometry(geom)
	return nil
}

func (h *X11Host) Handle() sticky.Handle { return sticky.Handle(h.id) }

// Bounds returns the last known frame bounds. Requests to the window
// manager are asynchronous, so the value set by SetBounds is returned
// rather than a stale server read.
func (h *X11Host) Bounds() sticky.Rect { return h.bounds }

// SetBounds requests new frame bounds. Failures are logged.
func (h *X11Host) SetBounds(r sticky.Rect) {
	if r == h.bounds {
		return
	}
	h.bounds = r
	width, height := clientSize(r, h.extents)
	if err := h.conn.MoveResizeWindow(h.id, r.X, r.Y, width, height); err != nil {
		h.logger.Warn("move/resize failed", "bounds", r, "error", err)
	}
}

func (h *X11Host) MinimumSize() sticky.Size { return h.minSize }
func (h *X11Host) MaximumSize() sticky.Size { return h.maxSize }

// Capture reports whether the daemon's pointer grab is routed to this window.
func (h *X11Host) Capture() bool { return h.capture }

func (h *X11Host) SetCapture(c bool) { h.capture = c }

// Activate focuses and raises the window.
func (h *X11Host) Activate() {
	if err := h.conn.FocusWindow(h.id); err != nil {
		h.logger.Debug("activate failed", "error", err)
	}
}

// PointToScreen converts a frame-relative point to root coordinates.
func (h *X11Host) PointToScreen(p sticky.Point) sticky.Point {
	return sticky.Point{X: h.bounds.X + p.X, Y: h.bounds.Y + p.Y}
}

// X11Screens answers work-area questions from RandR and EWMH. Screen
// layouts are cached until Invalidate.
type X11Screens struct {
	conn   *x11.Connection
	logger *slog.Logger

	mu      sync.Mutex
	screens []x11.Screen
}

var _ sticky.Screens = (*X11Screens)(nil)

// Invalidate drops the cached layout; the next query re-reads it.
func (s *X11Screens) Invalidate() {
	s.mu.Lock()
	s.screens = nil
	s.mu.Unlock()
}

// WorkArea returns the usable area of the monitor containing p. When the
// server cannot answer, the whole root window is used.
func (s *X11Screens) WorkArea(p sticky.Point) sticky.Rect {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.screens == nil {
		screens, err := s.conn.Screens()
		if err != nil {
			s.logger.Debug("work area unavailable", "error", err)
			return s.rootArea()
		}
		s.screens = screens
	}
	screen, ok := x11.ScreenAt(s.screens, p.X, p.Y)
	if !ok {
		return s.rootArea()
	}
	return rectFromGeometry(screen.WorkArea)
}

func (s *X11Screens) rootArea() sticky.Rect {
	w, h, err := s.conn.RootSize()
	if err != nil {
		return sticky.Rect{Width: maxTrackSize, Height: maxTrackSize}
	}
	return sticky.Rect{Width: w, Height: h}
}

// TrackLimits returns the smallest and largest window size X11 allows.
func (s *X11Screens) TrackLimits() (sticky.Size, sticky.Size) {
	return sticky.Size{Width: 1, Height: 1}, sticky.Size{Width: maxTrackSize, Height: maxTrackSize}
}
