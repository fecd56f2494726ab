package daemon

import (
	"github.com/1broseidon/stickywin/internal/sticky"
)

// Gesture is the kind of pointer drag a button binding starts.
type Gesture int

const (
	GestureMove Gesture = iota
	GestureResize
)

func (g Gesture) String() string {
	if g == GestureResize {
		return "resize"
	}
	return "move"
}

// BeginDrag starts a gesture at a root-window point on the topmost visible
// window under the pointer. mods is the modifier state of the button
// press. It reports whether a window took the gesture; when it did, the
// caller should grab the pointer until EndDrag.
func (m *Manager) BeginDrag(g Gesture, root sticky.Point, mods sticky.ModifierKey) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	// The pointer grab of an earlier gesture is gone once a new press
	// arrives, so that gesture can never see its release.
	if m.active != nil {
		m.logger.Debug("dropping stale gesture", "id", m.active.info.ID)
		m.dropGesture()
	}

	m.refreshHosts()
	mw := m.windowAt(root)
	if mw == nil {
		return false
	}

	b := mw.host.Bounds()
	local := localPoint(b, root)
	hit := sticky.HitClient
	if g == GestureResize {
		hit = resizeHit(b, local)
	}
	if !mw.win.OnButtonDown(hit, local, mods) {
		return false
	}

	m.active = mw
	if m.keys != nil {
		if err := m.keys.Grab(); err != nil {
			m.logger.Warn("keyboard grab failed; Escape will not cancel", "error", err)
		}
	}
	m.logger.Debug("drag started", "gesture", g.String(), "id", mw.info.ID, "hit", int(hit))
	return true
}

// AbortDrag ends the active gesture after the pointer grab was lost or
// never established. The window keeps its current bounds.
func (m *Manager) AbortDrag() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.active == nil {
		return
	}
	m.logger.Debug("gesture aborted", "id", m.active.info.ID)
	m.dropGesture()
}

// DragTo advances the active gesture to a root-window point.
func (m *Manager) DragTo(root sticky.Point) {
	m.mu.Lock()
	defer m.mu.Unlock()

	mw := m.active
	if mw == nil {
		return
	}
	mw.win.OnPointerMove(localPoint(mw.host.Bounds(), root))
	if mw.win.State() == sticky.StateIdle {
		m.endGesture()
	}
}

// EndDrag finishes the active gesture at a root-window point.
func (m *Manager) EndDrag(root sticky.Point) {
	m.mu.Lock()
	defer m.mu.Unlock()

	mw := m.active
	if mw == nil {
		return
	}
	mw.win.OnButtonUp(localPoint(mw.host.Bounds(), root))
	m.endGesture()
}

// KeyDown forwards a key press received during a gesture.
func (m *Manager) KeyDown(k sticky.Key) {
	m.mu.Lock()
	defer m.mu.Unlock()

	mw := m.active
	if mw == nil {
		return
	}
	mw.win.OnKeyDown(k)
	if mw.win.State() == sticky.StateIdle {
		m.endGesture()
	}
}

// Dragging reports whether a gesture is in progress.
func (m *Manager) Dragging() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active != nil
}

// dropGesture ends the active gesture through the capture-loss path of the
// window. mu must be held.
func (m *Manager) dropGesture() {
	mw := m.active
	mw.host.SetCapture(false)
	mw.win.OnButtonUp(sticky.Point{})
	m.endGesture()
}

// endGesture drops the active window and the keyboard grab. mu must be held.
func (m *Manager) endGesture() {
	m.active = nil
	if m.keys != nil {
		m.keys.Release()
	}
}

// windowAt returns the topmost visible managed window containing p. mu
// must be held.
func (m *Manager) windowAt(p sticky.Point) *managed {
	for i := len(m.order) - 1; i >= 0; i-- {
		mw := m.windows[m.order[i]]
		if mw != nil && !mw.win.Hidden() && mw.host.Bounds().Contains(p) {
			return mw
		}
	}
	return nil
}

func localPoint(b sticky.Rect, root sticky.Point) sticky.Point {
	return sticky.Point{X: root.X - b.X, Y: root.Y - b.Y}
}

// resizeHit splits the frame into a 3x3 grid and picks the border or
// corner nearest the pointer. The centre cell resizes the bottom-right
// corner.
func resizeHit(b sticky.Rect, p sticky.Point) sticky.HitTest {
	col := gridCell(p.X, b.Width)
	row := gridCell(p.Y, b.Height)

	grid := [3][3]sticky.HitTest{
		{sticky.HitTopLeft, sticky.HitTop, sticky.HitTopRight},
		{sticky.HitLeft, sticky.HitBottomRight, sticky.HitRight},
		{sticky.HitBottomLeft, sticky.HitBottom, sticky.HitBottomRight},
	}
	return grid[row][col]
}

func gridCell(v, size int) int {
	switch {
	case size <= 0 || v < size/3:
		return 0
	case v >= size-size/3:
		return 2
	default:
		return 1
	}
}
