package daemon

import (
	"errors"

	"github.com/1broseidon/stickywin/internal/config"
	"github.com/1broseidon/stickywin/internal/platform"
	"github.com/1broseidon/stickywin/internal/sticky"
)

// fakeHost caches bounds like the X11 host does. SetBounds writes through
// to the backend's window list and Refresh reads it back, so the list acts
// as the server-side geometry.
type fakeHost struct {
	id        platform.WindowID
	backend   *fakeBackend
	bounds    sticky.Rect
	capture   bool
	activated int
	refreshes int
}

func (h *fakeHost) Handle() sticky.Handle { return sticky.Handle(h.id) }
func (h *fakeHost) Bounds() sticky.Rect   { return h.bounds }
func (h *fakeHost) SetBounds(r sticky.Rect) {
	h.bounds = r
	h.backend.setBounds(h.id, r)
}
func (h *fakeHost) MinimumSize() sticky.Size { return sticky.Size{} }
func (h *fakeHost) MaximumSize() sticky.Size { return sticky.Size{} }
func (h *fakeHost) Capture() bool            { return h.capture }
func (h *fakeHost) SetCapture(c bool)        { h.capture = c }
func (h *fakeHost) Activate()                { h.activated++ }
func (h *fakeHost) Refresh() error {
	h.refreshes++
	if w, ok := h.backend.window(h.id); ok {
		h.bounds = w.Bounds
	}
	return nil
}
func (h *fakeHost) PointToScreen(p sticky.Point) sticky.Point {
	return sticky.Point{X: h.bounds.X + p.X, Y: h.bounds.Y + p.Y}
}

type fakeScreens struct{ area sticky.Rect }

func (s fakeScreens) WorkArea(sticky.Point) sticky.Rect       { return s.area }
func (s fakeScreens) TrackLimits() (sticky.Size, sticky.Size) { return sticky.Size{}, sticky.Size{} }

type fakeBackend struct {
	windows     []platform.Window
	hosts       map[platform.WindowID]*fakeHost
	listErr     error
	invalidated int
}

func newFakeBackend(windows ...platform.Window) *fakeBackend {
	return &fakeBackend{windows: windows, hosts: make(map[platform.WindowID]*fakeHost)}
}

func (b *fakeBackend) ListWindows() ([]platform.Window, error) {
	if b.listErr != nil {
		return nil, b.listErr
	}
	return append([]platform.Window(nil), b.windows...), nil
}

func (b *fakeBackend) Host(id platform.WindowID) platform.Host {
	if h, ok := b.hosts[id]; ok {
		return h
	}
	h := &fakeHost{id: id, backend: b}
	if w, ok := b.window(id); ok {
		h.bounds = w.Bounds
	}
	b.hosts[id] = h
	return h
}

func (b *fakeBackend) window(id platform.WindowID) (platform.Window, bool) {
	for _, w := range b.windows {
		if w.ID == id {
			return w, true
		}
	}
	return platform.Window{}, false
}

// setBounds changes a window's geometry as another client would.
func (b *fakeBackend) setBounds(id platform.WindowID, r sticky.Rect) {
	for i := range b.windows {
		if b.windows[i].ID == id {
			b.windows[i].Bounds = r
		}
	}
}

func (b *fakeBackend) setHidden(id platform.WindowID, hidden bool) {
	for i := range b.windows {
		if b.windows[i].ID == id {
			b.windows[i].Hidden = hidden
		}
	}
}

func (b *fakeBackend) Screens() sticky.Screens {
	return fakeScreens{area: sticky.Rect{Width: 1920, Height: 1080}}
}

func (b *fakeBackend) InvalidateScreens() { b.invalidated++ }

func (b *fakeBackend) remove(id platform.WindowID) {
	for i, w := range b.windows {
		if w.ID == id {
			b.windows = append(b.windows[:i], b.windows[i+1:]...)
			return
		}
	}
}

type fakeKeys struct {
	grabs    int
	releases int
	err      error
}

func (k *fakeKeys) Grab() error {
	k.grabs++
	return k.err
}

func (k *fakeKeys) Release() { k.releases++ }

var errListFailed = errors.New("list failed")

func testWindow(id platform.WindowID, class string, x, y, w, h int) platform.Window {
	return platform.Window{ID: id, Class: class, Title: class, Bounds: sticky.Rect{X: x, Y: y, Width: w, Height: h}}
}

// testConfig makes windows sticky by default and windows of class
// "Anchor" anchors.
func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.DefaultType = "sticky"
	cfg.Rules = []config.Rule{{Class: "Anchor", Type: "anchor"}}
	return cfg
}

func newTestManager(backend *fakeBackend, keys *fakeKeys) *Manager {
	mc := ManagerConfig{Backend: backend, Config: testConfig()}
	if keys != nil {
		mc.Keys = keys
	}
	m := NewManager(mc)
	if err := m.Sync(); err != nil {
		panic(err)
	}
	return m
}
