package sticky

import (
	"io"
	"log/slog"
)

// DefaultGravity is the default attach/detach distance in pixels.
const DefaultGravity = 20

// Settings are the per-window sticking knobs. They may change at any time
// and take effect on the next gesture.
type Settings struct {
	Gravity        int
	StickOnMove    bool
	StickOnResize  bool
	StickToScreen  bool
	StickToOther   bool
	StickToInside  bool
	StickToOutside bool
	StickToCorners bool
	// ClientAreaMoveKey, when held, lets a drag start from the client area.
	// ModNone disables client-area dragging.
	ClientAreaMoveKey ModifierKey
}

// DefaultSettings returns the settings a new Window starts with.
func DefaultSettings() Settings {
	return Settings{
		Gravity:        DefaultGravity,
		StickOnMove:    true,
		StickOnResize:  true,
		StickToScreen:  true,
		StickToOther:   true,
		StickToInside:  true,
		StickToOutside: true,
		StickToCorners: true,
	}
}

func (s Settings) normalized() Settings {
	if s.Gravity < 0 {
		s.Gravity = 0
	}
	return s
}

func (s Settings) policy() Policy {
	return Policy{
		Gravity: s.Gravity,
		Inside:  s.StickToInside,
		Outside: s.StickToOutside,
		Corners: s.StickToCorners,
	}
}

// Window makes one host window sticky. All methods must be called from the
// thread that delivers the host's input events.
type Window struct {
	host     Host
	registry *Registry
	screens  Screens
	logger   *slog.Logger

	windowType WindowType
	settings   Settings
	// hidden windows keep their registration and attachments but are not
	// snap or attach targets.
	hidden bool

	// anchor is a weak reference resolved through the registry.
	anchorID  Handle
	hasAnchor bool

	// gesture state; meaningful only while state != StateIdle
	state        DragState
	formRect     Rect
	originalRect Rect
	grabOffset   Point
	resizeEdges  ResizeEdge
}

// Option configures a Window at construction.
type Option func(*Window)

// WithType sets the initial window type (default TypeSticky).
func WithType(t WindowType) Option {
	return func(w *Window) { w.windowType = t }
}

// WithSettings sets the initial settings.
func WithSettings(s Settings) Option {
	return func(w *Window) { w.settings = s.normalized() }
}

// WithLogger sets the logger used for gesture and anchor diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(w *Window) {
		if l != nil {
			w.logger = l
		}
	}
}

// NewWindow binds a sticky window to host. It is registered with reg
// unless its type is TypeNone.
func NewWindow(host Host, reg *Registry, screens Screens, opts ...Option) *Window {
	w := &Window{
		host:       host,
		registry:   reg,
		screens:    screens,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		windowType: TypeSticky,
		settings:   DefaultSettings(),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.logger = w.logger.With("window", uint64(host.Handle()))
	if w.windowType != TypeNone {
		reg.Add(w)
	}
	return w
}

// Handle returns the host window's identity.
func (w *Window) Handle() Handle { return w.host.Handle() }

// Host returns the bound host window.
func (w *Window) Host() Host { return w.host }

// Type returns the window type.
func (w *Window) Type() WindowType { return w.windowType }

// SetType changes the window type. Moving to or from TypeNone registers or
// unregisters immediately; losing a capability drops the attachments that
// depended on it.
func (w *Window) SetType(t WindowType) {
	old := w.windowType
	if old == t {
		return
	}
	w.windowType = t

	switch {
	case t == TypeNone:
		w.registry.Remove(w)
	case old == TypeNone:
		w.registry.Add(w)
	}

	caps := t.Capabilities()
	if !caps.SeeksAttachments {
		w.clearAnchor()
	}
	if !caps.AcceptsAttachments {
		w.detachDependents()
	}
	w.logger.Debug("window type changed", "from", old.String(), "to", t.String())
}

// Settings returns the current settings.
func (w *Window) Settings() Settings { return w.settings }

// ApplySettings replaces all settings. Negative gravity is treated as zero.
func (w *Window) ApplySettings(s Settings) { w.settings = s.normalized() }

// SetGravity sets the snap distance. Negative values are treated as zero.
func (w *Window) SetGravity(g int) {
	w.settings.Gravity = g
	w.settings = w.settings.normalized()
}

// Hidden reports whether the window is excluded from snapping.
func (w *Window) Hidden() bool { return w.hidden }

// SetHidden marks the window as not visible, for example minimized or on
// another desktop. Hidden windows are skipped as snap and attach targets.
func (w *Window) SetHidden(hidden bool) { w.hidden = hidden }

// State returns the gesture state.
func (w *Window) State() DragState { return w.state }

// Anchor returns the window this one is stuck to, if it is still
// registered.
func (w *Window) Anchor() (*Window, bool) {
	if !w.hasAnchor {
		return nil, false
	}
	a, ok := w.registry.Lookup(w.anchorID)
	if !ok {
		w.clearAnchor()
		return nil, false
	}
	return a, true
}

// Release detaches the window from its host, for example when the host
// window is destroyed. Any gesture is cancelled.
func (w *Window) Release() {
	if w.state != StateIdle {
		w.cancel()
	}
	w.detachDependents()
	w.registry.Remove(w)
	w.windowType = TypeNone
}

func (w *Window) policy() Policy { return w.settings.policy() }

func (w *Window) anchoredTo(id Handle) bool {
	return w.hasAnchor && w.anchorID == id
}

func (w *Window) clearAnchor() {
	if w.hasAnchor {
		w.logger.Debug("detached", "anchor", uint64(w.anchorID))
	}
	w.hasAnchor = false
	w.anchorID = 0
}

func (w *Window) setAnchor(a *Window) {
	if a == nil {
		w.clearAnchor()
		return
	}
	id := a.Handle()
	if w.anchoredTo(id) {
		return
	}
	w.anchorID = id
	w.hasAnchor = true
	w.logger.Debug("attached", "anchor", uint64(id))
}
