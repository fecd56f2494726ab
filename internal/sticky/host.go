package sticky

// Point is a position in pixels.
type Point struct {
	X int
	Y int
}

// Size is a width/height pair. A zero component means unconstrained when
// used as a limit.
type Size struct {
	Width  int
	Height int
}

// Rect describes a rectangular region in screen coordinates.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

func (r Rect) Left() int   { return r.X }
func (r Rect) Top() int    { return r.Y }
func (r Rect) Right() int  { return r.X + r.Width }
func (r Rect) Bottom() int { return r.Y + r.Height }

// Contains reports whether p lies inside r (right/bottom exclusive).
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}

// Offset returns r translated by (dx, dy).
func (r Rect) Offset(dx, dy int) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// Handle is the opaque native identity of a host window.
type Handle uintptr

// Host is the native window a Window is bound to. Bounds are in the
// host's screen coordinate space, already compensated for frame margins
// and scaling.
type Host interface {
	Handle() Handle
	Bounds() Rect
	SetBounds(Rect)
	MinimumSize() Size
	MaximumSize() Size
	Capture() bool
	SetCapture(bool)
	Activate()
	// PointToScreen converts a window-relative point to screen coordinates.
	PointToScreen(Point) Point
}

// Screens answers display questions for the geometry engine.
type Screens interface {
	// WorkArea returns the usable area of the screen containing p.
	WorkArea(p Point) Rect
	// TrackLimits returns the platform's minimum and maximum window sizes.
	// A zero maximum component means unconstrained.
	TrackLimits() (min, max Size)
}
