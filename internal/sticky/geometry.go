package sticky

// Policy controls which alignments the snap geometry considers.
type Policy struct {
	// Gravity is the maximum edge distance, in pixels, that still snaps.
	// Negative values behave as zero.
	Gravity int
	// Inside enables same-side alignments against windows (left-to-left).
	Inside bool
	// Outside enables opposite-side alignments against windows (left-to-right).
	Outside bool
	// Corners applies X and Y offsets independently. When false only the
	// axis with the smaller offset is applied.
	Corners bool
}

func (p Policy) gravity() int {
	if p.Gravity < 0 {
		return 0
	}
	return p.Gravity
}

// Target is a rectangle to snap against.
type Target struct {
	Rect Rect
	// Screen marks a work area. Work areas only take inside alignments and
	// are not gated by Policy.Inside.
	Screen bool
}

// axisSnap tracks the best offset seen so far along one axis. The offset
// starts at a sentinel larger than the gravity so any eligible candidate
// replaces it.
type axisSnap struct {
	offset int
	found  bool
}

func newAxisSnap(gravity int) axisSnap {
	return axisSnap{offset: gravity + 1}
}

// consider keeps offset if it is within gravity and strictly closer than
// the current best, so the first candidate at the minimum distance wins.
func (a *axisSnap) consider(offset, gravity int) bool {
	d := abs(offset)
	if d > gravity || d >= abs(a.offset) {
		return false
	}
	a.offset = offset
	a.found = true
	return true
}

func (a axisSnap) value() int {
	if !a.found {
		return 0
	}
	return a.offset
}

// overlapsX reports whether the horizontal spans intersect within g.
func overlapsX(a, b Rect, g int) bool {
	return a.Right() >= b.Left()-g && a.Left() <= b.Right()+g
}

// overlapsY reports whether the vertical spans intersect within g.
func overlapsY(a, b Rect, g int) bool {
	return a.Bottom() >= b.Top()-g && a.Top() <= b.Bottom()+g
}

// MoveSnapper accumulates the best move offset across the targets of one
// gesture tick.
type MoveSnapper struct {
	policy Policy
	x      axisSnap
	y      axisSnap
}

// NewMoveSnapper returns a snapper with no offset found.
func NewMoveSnapper(p Policy) *MoveSnapper {
	g := p.gravity()
	return &MoveSnapper{policy: p, x: newAxisSnap(g), y: newAxisSnap(g)}
}

// Against compares win with one target and reports whether the target
// improved either axis.
func (s *MoveSnapper) Against(win Rect, t Target) bool {
	g := s.policy.gravity()
	to := t.Rect
	outside := !t.Screen && s.policy.Outside
	inside := t.Screen || s.policy.Inside
	stuck := false

	if overlapsY(win, to, g) {
		if outside {
			stuck = s.x.consider(to.Right()-win.Left(), g) || stuck // left to right
			stuck = s.x.consider(to.Left()-win.Right(), g) || stuck // right to left
		}
		if inside {
			stuck = s.x.consider(to.Left()-win.Left(), g) || stuck   // left to left
			stuck = s.x.consider(to.Right()-win.Right(), g) || stuck // right to right
		}
	}

	if overlapsX(win, to, g) {
		if outside {
			stuck = s.y.consider(to.Bottom()-win.Top(), g) || stuck // top to bottom
			stuck = s.y.consider(to.Top()-win.Bottom(), g) || stuck // bottom to top
		}
		if inside {
			stuck = s.y.consider(to.Top()-win.Top(), g) || stuck       // top to top
			stuck = s.y.consider(to.Bottom()-win.Bottom(), g) || stuck // bottom to bottom
		}
	}

	return stuck
}

// resolved applies the corner policy to the accumulated axes.
func (s *MoveSnapper) resolved() (x, y axisSnap) {
	x, y = s.x, s.y
	if !s.policy.Corners && x.found && y.found {
		if abs(y.offset) < abs(x.offset) {
			x.found = false
		} else {
			y.found = false
		}
	}
	return x, y
}

// Offset returns the offset to add to the window position and whether any
// snap occurred. Axes with nothing in range contribute zero.
func (s *MoveSnapper) Offset() (Point, bool) {
	x, y := s.resolved()
	return Point{X: x.value(), Y: y.value()}, x.found || y.found
}

// Distance returns the smallest applied edge distance, if any.
func (s *MoveSnapper) Distance() (int, bool) {
	x, y := s.resolved()
	switch {
	case x.found && y.found:
		return min(abs(x.offset), abs(y.offset)), true
	case x.found:
		return abs(x.offset), true
	case y.found:
		return abs(y.offset), true
	}
	return 0, false
}

// SnapMove returns the offset that snaps win against targets in order.
func SnapMove(win Rect, targets []Target, p Policy) (Point, bool) {
	s := NewMoveSnapper(p)
	for _, t := range targets {
		s.Against(win, t)
	}
	return s.Offset()
}

// ResizeSnapper accumulates per-edge snap deltas for the dragged edges of a
// resize tick.
type ResizeSnapper struct {
	policy Policy
	edges  ResizeEdge
	left   axisSnap
	top    axisSnap
	right  axisSnap
	bottom axisSnap
}

// NewResizeSnapper returns a snapper for the given dragged edges.
func NewResizeSnapper(edges ResizeEdge, p Policy) *ResizeSnapper {
	g := p.gravity()
	return &ResizeSnapper{
		policy: p,
		edges:  edges,
		left:   newAxisSnap(g),
		top:    newAxisSnap(g),
		right:  newAxisSnap(g),
		bottom: newAxisSnap(g),
	}
}

// Against compares the dragged edges of win with one target.
func (s *ResizeSnapper) Against(win Rect, t Target) bool {
	g := s.policy.gravity()
	to := t.Rect
	outside := !t.Screen && s.policy.Outside
	inside := t.Screen || s.policy.Inside
	stuck := false

	if overlapsX(win, to, g) {
		if s.edges.has(EdgeTop) {
			if outside {
				stuck = s.top.consider(to.Bottom()-win.Top(), g) || stuck
			}
			if inside {
				stuck = s.top.consider(to.Top()-win.Top(), g) || stuck
			}
		}
		if s.edges.has(EdgeBottom) {
			if outside {
				stuck = s.bottom.consider(to.Top()-win.Bottom(), g) || stuck
			}
			if inside {
				stuck = s.bottom.consider(to.Bottom()-win.Bottom(), g) || stuck
			}
		}
	}

	if overlapsY(win, to, g) {
		if s.edges.has(EdgeRight) {
			if outside {
				stuck = s.right.consider(to.Left()-win.Right(), g) || stuck
			}
			if inside {
				stuck = s.right.consider(to.Right()-win.Right(), g) || stuck
			}
		}
		if s.edges.has(EdgeLeft) {
			if outside {
				stuck = s.left.consider(to.Right()-win.Left(), g) || stuck
			}
			if inside {
				stuck = s.left.consider(to.Left()-win.Left(), g) || stuck
			}
		}
	}

	return stuck
}

// Apply moves the dragged edges of win by the accumulated deltas. Left and
// top deltas shift the position and shrink the size so the opposite edge
// stays put.
func (s *ResizeSnapper) Apply(win Rect) (Rect, bool) {
	r := win
	if d := s.left.value(); d != 0 {
		r.X += d
		r.Width -= d
	}
	if d := s.top.value(); d != 0 {
		r.Y += d
		r.Height -= d
	}
	r.Width += s.right.value()
	r.Height += s.bottom.value()
	return r, s.left.found || s.top.found || s.right.found || s.bottom.found
}

// SnapResize returns win with its dragged edges snapped against targets.
func SnapResize(win Rect, edges ResizeEdge, targets []Target, p Policy) (Rect, bool) {
	s := NewResizeSnapper(edges, p)
	for _, t := range targets {
		s.Against(win, t)
	}
	return s.Apply(win)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
