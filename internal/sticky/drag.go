package sticky

// EventSink is the input surface a host message pump drives. Points are
// window-relative. Each method reports whether the event was consumed; an
// unconsumed event should get the host's default handling.
type EventSink interface {
	OnButtonDown(hit HitTest, p Point, mods ModifierKey) bool
	OnPointerMove(p Point) bool
	OnButtonUp(p Point) bool
	OnKeyDown(k Key) bool
}

var _ EventSink = (*Window)(nil)

// OnButtonDown starts a move from the caption (or from the client area
// while ClientAreaMoveKey is held) or a resize from a border or corner.
func (w *Window) OnButtonDown(hit HitTest, p Point, mods ModifierKey) bool {
	if w.state != StateIdle {
		w.checkCapture()
		return false
	}

	switch hit {
	case HitCaption:
		w.host.Activate()
		return w.startMove(p)
	case HitClient:
		key := w.settings.ClientAreaMoveKey
		if key == ModNone || mods&key != key {
			return false
		}
		w.host.Activate()
		return w.startMove(p)
	}

	if edges := hit.Edges(); edges != 0 {
		return w.startResize(edges)
	}
	return false
}

// OnPointerMove advances the active gesture.
func (w *Window) OnPointerMove(p Point) bool {
	if w.state == StateIdle || !w.checkCapture() {
		return false
	}
	switch w.state {
	case StateMoving:
		w.move(p)
	case StateResizing:
		w.resize(p)
	}
	return true
}

// OnButtonUp ends the active gesture, keeping the last committed bounds.
func (w *Window) OnButtonUp(Point) bool {
	if w.state == StateIdle || !w.checkCapture() {
		return false
	}
	w.logger.Debug("gesture finished", "state", w.state.String(), "bounds", w.formRect)
	w.finish()
	return true
}

// OnKeyDown cancels the active gesture on Escape, restoring the bounds
// the gesture started from.
func (w *Window) OnKeyDown(k Key) bool {
	if w.state == StateIdle || !w.checkCapture() {
		return false
	}
	if k != KeyEscape {
		return false
	}

	current := w.host.Bounds()
	w.host.SetBounds(w.originalRect)
	if w.state == StateMoving && w.windowType.Capabilities().AcceptsAttachments {
		w.carryDependents(w.originalRect.X-current.X, w.originalRect.Y-current.Y)
	}
	w.logger.Debug("gesture cancelled", "state", w.state.String(), "restored", w.originalRect)
	w.finish()
	return true
}

// checkCapture cancels the gesture if the host lost pointer capture and
// reports whether the gesture is still alive.
func (w *Window) checkCapture() bool {
	if w.host.Capture() {
		return true
	}
	w.logger.Debug("capture lost", "state", w.state.String())
	w.finish()
	return false
}

func (w *Window) startMove(p Point) bool {
	if !w.settings.StickOnMove {
		return false
	}
	pt := w.host.PointToScreen(p)
	b := w.host.Bounds()
	w.grabOffset = Point{X: pt.X - b.X, Y: pt.Y - b.Y}
	w.begin(StateMoving, b)
	return true
}

func (w *Window) startResize(edges ResizeEdge) bool {
	if !w.settings.StickOnResize {
		return false
	}
	w.resizeEdges = edges
	w.begin(StateResizing, w.host.Bounds())
	return true
}

func (w *Window) begin(state DragState, b Rect) {
	w.formRect = b
	w.originalRect = b
	if !w.host.Capture() {
		w.host.SetCapture(true)
	}
	w.state = state
	w.logger.Debug("gesture started", "state", state.String(), "bounds", b)
}

// finish returns to idle and re-derives the anchor from the final position.
func (w *Window) finish() {
	w.cancel()
	w.Stick()
}

func (w *Window) cancel() {
	w.host.SetCapture(false)
	w.state = StateIdle
	w.resizeEdges = 0
}

func (w *Window) move(p Point) {
	pt := w.host.PointToScreen(p)
	area := w.screens.WorkArea(pt)
	if !area.Contains(pt) {
		pt.X = normalizeInside(pt.X, area.Left(), area.Right())
		pt.Y = normalizeInside(pt.Y, area.Top(), area.Bottom())
	}

	current := w.host.Bounds()
	r := Rect{
		X:      pt.X - w.grabOffset.X,
		Y:      pt.Y - w.grabOffset.Y,
		Width:  w.formRect.Width,
		Height: w.formRect.Height,
	}

	s := NewMoveSnapper(w.policy())
	if w.settings.StickToScreen {
		s.Against(r, Target{Rect: area, Screen: true})
	}
	if w.settings.StickToOther {
		members := w.registry.Members()
		carried := make(map[Handle]bool)
		for _, d := range w.dependents(members) {
			carried[d.Handle()] = true
		}
		for _, m := range members {
			if m == w || m.hidden || carried[m.Handle()] {
				continue
			}
			s.Against(r, Target{Rect: m.host.Bounds()})
		}
	}
	off, _ := s.Offset()
	r = r.Offset(off.X, off.Y)

	w.formRect = r
	w.host.SetBounds(r)
	if w.windowType.Capabilities().AcceptsAttachments {
		w.carryDependents(r.X-current.X, r.Y-current.Y)
	}
}

func (w *Window) resize(p Point) {
	pt := w.host.PointToScreen(p)
	area := w.screens.WorkArea(pt)

	r := w.host.Bounds()
	right, bottom := r.Right(), r.Bottom()
	edges := w.resizeEdges

	if edges.has(EdgeLeft) {
		r.X = pt.X
		r.Width = right - pt.X
	}
	if edges.has(EdgeRight) {
		r.Width = pt.X - r.X
	}
	if edges.has(EdgeTop) {
		r.Y = pt.Y
		r.Height = bottom - pt.Y
	}
	if edges.has(EdgeBottom) {
		r.Height = pt.Y - r.Y
	}

	s := NewResizeSnapper(edges, w.policy())
	if w.settings.StickToScreen {
		s.Against(r, Target{Rect: area, Screen: true})
	}
	if w.settings.StickToOther {
		for _, m := range w.registry.Members() {
			if m != w && !m.hidden {
				s.Against(r, Target{Rect: m.host.Bounds()})
			}
		}
	}
	r, _ = s.Apply(r)
	r = w.clampSize(r, right, bottom)

	// Follow geometry after an anchor resize is not re-derived.
	if w.windowType.Capabilities().AcceptsAttachments {
		w.detachDependents()
	}

	w.formRect = r
	w.host.SetBounds(r)
}

// clampSize applies host and platform size limits. For left/top drags the
// opposite edge (right, bottom) stays fixed.
func (w *Window) clampSize(r Rect, right, bottom int) Rect {
	minSize, maxSize := w.host.MinimumSize(), w.host.MaximumSize()
	trackMin, trackMax := w.screens.TrackLimits()

	width := clampDim(r.Width, minSize.Width, maxSize.Width, trackMin.Width, trackMax.Width)
	if w.resizeEdges.has(EdgeLeft) {
		r.X = right - width
	}
	r.Width = width

	height := clampDim(r.Height, minSize.Height, maxSize.Height, trackMin.Height, trackMax.Height)
	if w.resizeEdges.has(EdgeTop) {
		r.Y = bottom - height
	}
	r.Height = height
	return r
}

func clampDim(v, lo, hi, trackLo, trackHi int) int {
	if hi > 0 {
		v = min(v, hi)
	}
	if trackHi > 0 {
		v = min(v, trackHi)
	}
	return max(v, lo, trackLo, 0)
}

func normalizeInside(v, lo, hi int) int {
	if v <= lo {
		return lo
	}
	if v >= hi {
		return hi
	}
	return v
}
