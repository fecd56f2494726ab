package sticky

type fakeHost struct {
	id        Handle
	bounds    Rect
	capture   bool
	minSize   Size
	maxSize   Size
	activated int
}

func (h *fakeHost) Handle() Handle    { return h.id }
func (h *fakeHost) Bounds() Rect      { return h.bounds }
func (h *fakeHost) SetBounds(r Rect)  { h.bounds = r }
func (h *fakeHost) MinimumSize() Size { return h.minSize }
func (h *fakeHost) MaximumSize() Size { return h.maxSize }
func (h *fakeHost) Capture() bool     { return h.capture }
func (h *fakeHost) SetCapture(c bool) { h.capture = c }
func (h *fakeHost) Activate()         { h.activated++ }
func (h *fakeHost) PointToScreen(p Point) Point {
	return Point{X: p.X + h.bounds.X, Y: p.Y + h.bounds.Y}
}

type fakeScreens struct {
	area     Rect
	trackMin Size
	trackMax Size
}

func (s fakeScreens) WorkArea(Point) Rect       { return s.area }
func (s fakeScreens) TrackLimits() (Size, Size) { return s.trackMin, s.trackMax }

var fullHD = fakeScreens{area: Rect{X: 0, Y: 0, Width: 1920, Height: 1080}}

type harness struct {
	reg     *Registry
	screens fakeScreens
	nextID  Handle
}

func newHarness() *harness {
	return &harness{reg: NewRegistry(), screens: fullHD, nextID: 1}
}

func (h *harness) window(t WindowType, bounds Rect, opts ...Option) (*Window, *fakeHost) {
	host := &fakeHost{id: h.nextID, bounds: bounds}
	h.nextID++
	opts = append([]Option{WithType(t)}, opts...)
	return NewWindow(host, h.reg, h.screens, opts...), host
}

// screenToLocal converts a screen point to the window-relative point the
// fake host maps back to it.
func screenToLocal(host *fakeHost, x, y int) Point {
	return Point{X: x - host.bounds.X, Y: y - host.bounds.Y}
}

// drag runs a caption move from grab to each screen point in turn.
func drag(w *Window, host *fakeHost, grabX, grabY int, to ...Point) {
	w.OnButtonDown(HitCaption, screenToLocal(host, grabX, grabY), ModNone)
	for _, p := range to {
		w.OnPointerMove(screenToLocal(host, p.X, p.Y))
	}
}
