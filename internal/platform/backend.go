package platform

import "github.com/1broseidon/stickywin/internal/sticky"

// WindowID is a platform-neutral window identifier.
type WindowID uint32

// Window contains metadata and geometry for a top-level window.
type Window struct {
	ID     WindowID
	PID    int
	Class  string
	Title  string
	Bounds sticky.Rect
	// Hidden is set for minimized windows and windows on another desktop.
	Hidden bool
}

// Backend abstracts the window-system operations the daemon needs.
type Backend interface {
	// ListWindows returns every managed top-level window, bottom of the
	// stack first. Windows the user cannot currently see have Hidden set.
	ListWindows() ([]Window, error)
	// Host returns the sticky.Host adapter for a window.
	Host(id WindowID) Host
	// Screens returns the work-area provider.
	Screens() sticky.Screens
	// InvalidateScreens drops any cached monitor layout.
	InvalidateScreens()
}

// Host is a sticky.Host whose cached bounds can be re-read from the
// window system between gestures.
type Host interface {
	sticky.Host
	Refresh() error
}
