package platform

import (
	"github.com/1broseidon/stickywin/internal/sticky"
	"github.com/1broseidon/stickywin/internal/x11"
)

// maxTrackSize is the largest window dimension X11 can represent.
const maxTrackSize = 32767

func rectFromGeometry(g x11.Geometry) sticky.Rect {
	return sticky.Rect{X: g.X, Y: g.Y, Width: g.Width, Height: g.Height}
}

// clientSize converts outer frame bounds to the client size a move/resize
// request expects.
func clientSize(r sticky.Rect, ext x11.FrameExtents) (width, height int) {
	width = max(r.Width-ext.Left-ext.Right, 1)
	height = max(r.Height-ext.Top-ext.Bottom, 1)
	return width, height
}

// frameLimits converts client size hints to outer frame limits. Zero stays
// unconstrained.
func frameLimits(lim x11.SizeLimits, ext x11.FrameExtents) (minSize, maxSize sticky.Size) {
	dw := ext.Left + ext.Right
	dh := ext.Top + ext.Bottom
	grow := func(v, d int) int {
		if v <= 0 {
			return 0
		}
		return v + d
	}
	minSize = sticky.Size{Width: grow(lim.MinWidth, dw), Height: grow(lim.MinHeight, dh)}
	maxSize = sticky.Size{Width: grow(lim.MaxWidth, dw), Height: grow(lim.MaxHeight, dh)}
	return minSize, maxSize
}
