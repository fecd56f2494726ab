package daemon

import (
	"testing"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/1broseidon/stickywin/internal/config"
	"github.com/1broseidon/stickywin/internal/ipc"
	"github.com/1broseidon/stickywin/internal/sticky"
)

func pt(x, y int) sticky.Point { return sticky.Point{X: x, Y: y} }

func TestDrag_MoveSnapsAndAttachesOnRelease(t *testing.T) {
	backend := newFakeBackend(
		testWindow(1, "Anchor", 100, 100, 200, 200),
		testWindow(2, "XTerm", 330, 100, 100, 100),
	)
	keys := &fakeKeys{}
	m := newTestManager(backend, keys)

	if !m.BeginDrag(GestureMove, pt(350, 150), sticky.ModSuper) {
		t.Fatalf("expected the move to start")
	}
	if keys.grabs != 1 || !m.Dragging() {
		t.Fatalf("keyboard should be grabbed during the gesture")
	}
	if backend.hosts[2].activated != 1 {
		t.Fatalf("dragged window should be activated")
	}

	m.DragTo(pt(335, 150))
	if got, want := backend.hosts[2].bounds, (sticky.Rect{X: 300, Y: 100, Width: 100, Height: 100}); got != want {
		t.Fatalf("bounds = %+v, want %+v", got, want)
	}

	m.EndDrag(pt(335, 150))
	if m.Dragging() || keys.releases != 1 {
		t.Fatalf("gesture should end and release the keyboard")
	}
	if got := findWindow(t, m, 2).Anchor; got != 1 {
		t.Fatalf("anchor = %d, want 1", got)
	}

	// Moving the anchor now carries the attached window.
	if !m.BeginDrag(GestureMove, pt(150, 150), sticky.ModSuper) {
		t.Fatalf("expected the anchor move to start")
	}
	m.DragTo(pt(160, 170))
	m.EndDrag(pt(160, 170))

	if got, want := backend.hosts[1].bounds, (sticky.Rect{X: 110, Y: 120, Width: 200, Height: 200}); got != want {
		t.Fatalf("anchor bounds = %+v, want %+v", got, want)
	}
	if got, want := backend.hosts[2].bounds, (sticky.Rect{X: 310, Y: 120, Width: 100, Height: 100}); got != want {
		t.Fatalf("dependent bounds = %+v, want %+v", got, want)
	}
}

func TestDrag_TopmostWindowWins(t *testing.T) {
	backend := newFakeBackend(
		testWindow(1, "XTerm", 0, 0, 500, 500),
		testWindow(2, "XTerm", 100, 100, 100, 100),
	)
	m := newTestManager(backend, &fakeKeys{})

	if !m.BeginDrag(GestureMove, pt(150, 150), sticky.ModSuper) {
		t.Fatalf("expected the move to start")
	}
	m.DragTo(pt(450, 450))
	m.EndDrag(pt(450, 450))

	if got := backend.hosts[2].bounds; got.X != 400 || got.Y != 400 {
		t.Fatalf("topmost window should move, got %+v", got)
	}
	if got := backend.hosts[1].bounds; got.X != 0 || got.Y != 0 {
		t.Fatalf("window below should stay, got %+v", got)
	}
}

func TestDrag_NothingUnderPointer(t *testing.T) {
	backend := newFakeBackend(testWindow(1, "XTerm", 0, 0, 100, 100))
	keys := &fakeKeys{}
	m := newTestManager(backend, keys)

	if m.BeginDrag(GestureMove, pt(500, 500), sticky.ModSuper) {
		t.Fatalf("drag on the desktop should not start")
	}
	if keys.grabs != 0 {
		t.Fatalf("no keyboard grab expected")
	}
	// Stray motion and release are ignored.
	m.DragTo(pt(10, 10))
	m.EndDrag(pt(10, 10))
	if keys.releases != 0 {
		t.Fatalf("no release expected without a gesture")
	}
}

func TestDrag_ClientAreaKeyComesFromTheEvent(t *testing.T) {
	backend := newFakeBackend(testWindow(1, "XTerm", 0, 0, 100, 100))
	m := newTestManager(backend, &fakeKeys{})

	if m.BeginDrag(GestureMove, pt(50, 50), sticky.ModNone) {
		t.Fatalf("press without the client-area key must not start a move")
	}
	if !m.BeginDrag(GestureMove, pt(50, 50), sticky.ModSuper|sticky.ModShift) {
		t.Fatalf("extra modifiers should not block the move")
	}
	m.EndDrag(pt(50, 50))
}

func TestDrag_PerWindowClientAreaKey(t *testing.T) {
	backend := newFakeBackend(
		testWindow(1, "XTerm", 0, 0, 100, 100),
		testWindow(2, "XTerm", 500, 500, 100, 100),
	)
	m := newTestManager(backend, &fakeKeys{})

	// The root grab only fires with mod4, so any other key could never
	// start a drag.
	shift := "shift"
	if _, err := m.SetWindow(ipc.SetWindowPayload{ID: 2, ClientAreaMoveKey: &shift}); err == nil {
		t.Fatalf("expected a key the button grab cannot deliver to be rejected")
	}
	if !m.BeginDrag(GestureMove, pt(550, 550), sticky.ModSuper) {
		t.Fatalf("window should still move with the global key")
	}
	m.EndDrag(pt(550, 550))

	none := "none"
	if _, err := m.SetWindow(ipc.SetWindowPayload{ID: 1, ClientAreaMoveKey: &none}); err != nil {
		t.Fatalf("set: %v", err)
	}
	if m.BeginDrag(GestureMove, pt(50, 50), sticky.ModSuper) {
		t.Fatalf("client-area move is disabled for this window")
	}
	if !m.BeginDrag(GestureResize, pt(90, 90), sticky.ModSuper) {
		t.Fatalf("resize should still start")
	}
}

func TestDrag_StickOnMoveDisabled(t *testing.T) {
	backend := newFakeBackend(testWindow(1, "XTerm", 0, 0, 100, 100))
	m := newTestManager(backend, &fakeKeys{})

	off := false
	if _, err := m.SetWindow(ipc.SetWindowPayload{ID: 1, StickOnMove: &off}); err != nil {
		t.Fatalf("set: %v", err)
	}
	if m.BeginDrag(GestureMove, pt(50, 50), sticky.ModSuper) {
		t.Fatalf("move must not start with stick_on_move disabled")
	}
	if !m.BeginDrag(GestureResize, pt(90, 90), sticky.ModSuper) {
		t.Fatalf("resize should still start")
	}
}

func TestDrag_ResizeFromBottomRight(t *testing.T) {
	backend := newFakeBackend(testWindow(1, "XTerm", 100, 100, 200, 200))
	m := newTestManager(backend, &fakeKeys{})

	if !m.BeginDrag(GestureResize, pt(290, 290), sticky.ModSuper) {
		t.Fatalf("expected the resize to start")
	}
	m.DragTo(pt(400, 350))
	m.EndDrag(pt(400, 350))

	if got, want := backend.hosts[1].bounds, (sticky.Rect{X: 100, Y: 100, Width: 300, Height: 250}); got != want {
		t.Fatalf("bounds = %+v, want %+v", got, want)
	}
}

func TestDrag_EscapeRestores(t *testing.T) {
	backend := newFakeBackend(testWindow(1, "XTerm", 500, 500, 100, 100))
	keys := &fakeKeys{}
	m := newTestManager(backend, keys)

	if !m.BeginDrag(GestureMove, pt(550, 550), sticky.ModSuper) {
		t.Fatalf("expected the move to start")
	}
	m.DragTo(pt(700, 650))
	if backend.hosts[1].bounds.X != 650 {
		t.Fatalf("window should follow the pointer, got %+v", backend.hosts[1].bounds)
	}

	m.KeyDown(sticky.KeyOther)
	if !m.Dragging() {
		t.Fatalf("other keys must not end the gesture")
	}

	m.KeyDown(sticky.KeyEscape)
	if m.Dragging() || keys.releases != 1 {
		t.Fatalf("escape should end the gesture and release the keyboard")
	}
	if got, want := backend.hosts[1].bounds, (sticky.Rect{X: 500, Y: 500, Width: 100, Height: 100}); got != want {
		t.Fatalf("bounds = %+v, want %+v", got, want)
	}

	// The pointer grab outlives the cancel; its remaining events are no-ops.
	m.DragTo(pt(800, 800))
	m.EndDrag(pt(800, 800))
	if got := backend.hosts[1].bounds; got.X != 500 {
		t.Fatalf("events after cancel moved the window: %+v", got)
	}
}

func TestDrag_WindowGoneDuringGesture(t *testing.T) {
	backend := newFakeBackend(testWindow(1, "XTerm", 0, 0, 100, 100))
	keys := &fakeKeys{}
	m := newTestManager(backend, keys)

	if !m.BeginDrag(GestureMove, pt(50, 50), sticky.ModSuper) {
		t.Fatalf("expected the move to start")
	}
	backend.remove(1)
	if err := m.Sync(); err != nil {
		t.Fatalf("sync: %v", err)
	}
	if m.Dragging() || keys.releases != 1 {
		t.Fatalf("gesture should end when its window goes away")
	}
}

func TestDrag_NewPressDropsStaleGesture(t *testing.T) {
	backend := newFakeBackend(
		testWindow(1, "XTerm", 0, 0, 100, 100),
		testWindow(2, "XTerm", 500, 0, 100, 100),
	)
	keys := &fakeKeys{}
	m := newTestManager(backend, keys)

	if !m.BeginDrag(GestureMove, pt(50, 50), sticky.ModSuper) {
		t.Fatalf("expected the move to start")
	}
	m.DragTo(pt(250, 350))

	// The release of the first gesture never arrives.
	if !m.BeginDrag(GestureResize, pt(550, 50), sticky.ModSuper) {
		t.Fatalf("a new press must start a gesture after a lost grab")
	}
	if keys.grabs != 2 || keys.releases != 1 {
		t.Fatalf("grabs = %d, releases = %d, want 2 and 1", keys.grabs, keys.releases)
	}
	if w := findWindow(t, m, 1); w.State != "idle" {
		t.Fatalf("stale window state = %q, want idle", w.State)
	}
	if got, want := backend.hosts[1].bounds, (sticky.Rect{X: 200, Y: 300, Width: 100, Height: 100}); got != want {
		t.Fatalf("stale window bounds = %+v, want %+v", got, want)
	}
	if backend.hosts[1].capture {
		t.Fatalf("stale window still holds capture")
	}

	m.EndDrag(pt(600, 100))
	if m.Dragging() || keys.releases != 2 {
		t.Fatalf("second gesture should end normally")
	}
}

func TestDrag_AbortKeepsBounds(t *testing.T) {
	backend := newFakeBackend(testWindow(1, "XTerm", 500, 500, 100, 100))
	keys := &fakeKeys{}
	m := newTestManager(backend, keys)

	if !m.BeginDrag(GestureMove, pt(550, 550), sticky.ModSuper) {
		t.Fatalf("expected the move to start")
	}
	m.DragTo(pt(700, 650))
	m.AbortDrag()

	if m.Dragging() || keys.releases != 1 {
		t.Fatalf("abort should end the gesture and release the keyboard")
	}
	if got := backend.hosts[1].bounds; got.X != 650 || got.Y != 600 {
		t.Fatalf("abort moved the window: %+v", got)
	}

	m.AbortDrag()
	if keys.releases != 1 {
		t.Fatalf("abort without a gesture must be a no-op")
	}
	if !m.BeginDrag(GestureMove, pt(700, 650), sticky.ModSuper) {
		t.Fatalf("a new gesture should start after an abort")
	}
}

func TestDrag_HiddenWindowIsSkipped(t *testing.T) {
	backend := newFakeBackend(
		testWindow(2, "XTerm", 100, 100, 100, 100),
		testWindow(1, "XTerm", 0, 0, 500, 500),
	)
	backend.setHidden(1, true)
	m := newTestManager(backend, &fakeKeys{})

	if !m.BeginDrag(GestureMove, pt(150, 150), sticky.ModSuper) {
		t.Fatalf("expected the visible window below to take the move")
	}
	m.DragTo(pt(250, 150))
	m.EndDrag(pt(250, 150))

	if got := backend.hosts[2].bounds; got.X != 200 {
		t.Fatalf("visible window should move, got %+v", got)
	}
	if got := backend.hosts[1].bounds; got.X != 0 {
		t.Fatalf("hidden window moved: %+v", got)
	}
}

func TestModifiersFromState(t *testing.T) {
	tests := []struct {
		state uint16
		want  sticky.ModifierKey
	}{
		{0, sticky.ModNone},
		{xproto.ModMask4, sticky.ModSuper},
		{xproto.ModMask4 | xproto.ModMaskShift, sticky.ModSuper | sticky.ModShift},
		{xproto.ModMaskControl | xproto.ModMask1, sticky.ModControl | sticky.ModAlt},
		// Lock modifiers and button state are ignored.
		{xproto.ModMask4 | xproto.ModMaskLock | xproto.ModMask2, sticky.ModSuper},
		{xproto.ModMask4 | xproto.KeyButMaskButton1, sticky.ModSuper},
	}
	for _, tt := range tests {
		if got := modifiersFromState(tt.state); got != tt.want {
			t.Errorf("modifiersFromState(%#x) = %v, want %v", tt.state, got, tt.want)
		}
	}
}

func TestResizeHit(t *testing.T) {
	b := sticky.Rect{X: 0, Y: 0, Width: 300, Height: 300}
	tests := []struct {
		p    sticky.Point
		want sticky.HitTest
	}{
		{pt(10, 10), sticky.HitTopLeft},
		{pt(150, 10), sticky.HitTop},
		{pt(290, 10), sticky.HitTopRight},
		{pt(10, 150), sticky.HitLeft},
		{pt(150, 150), sticky.HitBottomRight},
		{pt(290, 150), sticky.HitRight},
		{pt(10, 290), sticky.HitBottomLeft},
		{pt(150, 290), sticky.HitBottom},
		{pt(290, 290), sticky.HitBottomRight},
		{pt(99, 200), sticky.HitBottomLeft},
		{pt(100, 199), sticky.HitBottomRight},
	}
	for _, tt := range tests {
		if got := resizeHit(b, tt.p); got != tt.want {
			t.Errorf("resizeHit(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestBindingString(t *testing.T) {
	tests := []struct {
		mod    sticky.ModifierKey
		button int
		want   string
	}{
		{sticky.ModSuper, 1, "mod4-1"},
		{sticky.ModShift | sticky.ModSuper, 3, "shift-mod4-3"},
		{sticky.ModControl | sticky.ModAlt, 2, "control-mod1-2"},
		{sticky.ModNone, 2, "2"},
	}
	for _, tt := range tests {
		if got := bindingString(tt.mod, tt.button); got != tt.want {
			t.Errorf("bindingString(%v, %d) = %q, want %q", tt.mod, tt.button, got, tt.want)
		}
	}
}

func TestBindingsChanged(t *testing.T) {
	base := config.DefaultConfig()
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   bool
	}{
		{name: "same", mutate: func(*config.Config) {}, want: false},
		{name: "gravity only", mutate: func(c *config.Config) { c.Gravity = 3 }, want: false},
		{name: "modifier", mutate: func(c *config.Config) { c.ClientAreaMoveKey = "mod1" }, want: true},
		{name: "move button", mutate: func(c *config.Config) { c.MoveButton = 2 }, want: true},
		{name: "resize button", mutate: func(c *config.Config) { c.ResizeButton = 2 }, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := config.DefaultConfig()
			tt.mutate(next)
			if got := bindingsChanged(base, next); got != tt.want {
				t.Fatalf("bindingsChanged = %v, want %v", got, tt.want)
			}
		})
	}
	if !bindingsChanged(nil, base) {
		t.Fatalf("first bind must count as a change")
	}

	specs := buttonBindings(base)
	if len(specs) != 2 || specs[0].spec != "mod4-1" || specs[1].spec != "mod4-3" || specs[1].gesture != GestureResize {
		t.Fatalf("unexpected default bindings: %+v", specs)
	}
}
