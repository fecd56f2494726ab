package daemon

import (
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/1broseidon/stickywin/internal/config"
	"github.com/1broseidon/stickywin/internal/ipc"
	"github.com/1broseidon/stickywin/internal/platform"
	"github.com/1broseidon/stickywin/internal/sticky"
)

// KeyGrabber holds the keyboard while a gesture is active so Escape
// reaches the daemon.
type KeyGrabber interface {
	Grab() error
	Release()
}

// ManagerConfig holds the collaborators of a Manager.
type ManagerConfig struct {
	Backend    platform.Backend
	Config     *config.Config
	ConfigPath string
	Keys       KeyGrabber
	Logger     *slog.Logger
}

// managed is one window the daemon tracks.
type managed struct {
	info platform.Window
	host platform.Host
	win  *sticky.Window
	// pinned windows had their type or settings changed over IPC and keep
	// them across config reloads.
	pinned bool
}

// Manager owns the sticky registry and routes pointer gestures and IPC
// requests to the windows in it. All sticky calls happen under mu, so the
// X event loop and IPC goroutines never interleave inside the core.
type Manager struct {
	mu sync.Mutex

	backend    platform.Backend
	keys       KeyGrabber
	logger     *slog.Logger
	cfg        *config.Config
	configPath string

	registry *sticky.Registry
	windows  map[platform.WindowID]*managed
	order    []platform.WindowID // bottom of the stack first
	active   *managed
	started  time.Time

	// onConfig runs after a new config has been applied, outside mu.
	onConfig func(prev, next *config.Config)
}

var _ ipc.Handler = (*Manager)(nil)

// NewManager creates a manager with no windows. Call Sync to discover them.
func NewManager(mc ManagerConfig) *Manager {
	logger := mc.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	cfg := mc.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Manager{
		backend:    mc.Backend,
		keys:       mc.Keys,
		logger:     logger,
		cfg:        cfg,
		configPath: mc.ConfigPath,
		registry:   sticky.NewRegistry(),
		windows:    make(map[platform.WindowID]*managed),
		started:    time.Now(),
	}
}

// OnConfig registers a hook that runs after every applied config change.
func (m *Manager) OnConfig(fn func(prev, next *config.Config)) {
	m.mu.Lock()
	m.onConfig = fn
	m.mu.Unlock()
}

// Config returns the active configuration.
func (m *Manager) Config() *config.Config {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cfg
}

// Sync reconciles the managed set with the windows the backend reports.
// New windows get their type and settings from the config rules; windows
// that went away are released. Hidden windows stay managed but are not
// snap targets.
func (m *Manager) Sync() error {
	windows, err := m.backend.ListWindows()
	if err != nil {
		return fmt.Errorf("list windows: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	seen := make(map[platform.WindowID]bool, len(windows))
	order := make([]platform.WindowID, 0, len(windows))
	for _, w := range windows {
		seen[w.ID] = true
		order = append(order, w.ID)

		mw, ok := m.windows[w.ID]
		if !ok {
			mw = m.adopt(w)
			m.windows[w.ID] = mw
		} else {
			mw.info = w
			// The active window's bounds belong to the gesture.
			if mw != m.active {
				if err := mw.host.Refresh(); err != nil {
					m.logger.Debug("refresh failed", "id", w.ID, "error", err)
				}
			}
		}
		if mw.win.Hidden() != w.Hidden {
			mw.win.SetHidden(w.Hidden)
			m.logger.Debug("window visibility changed", "id", w.ID, "hidden", w.Hidden)
		}
	}

	for id, mw := range m.windows {
		if seen[id] {
			continue
		}
		if m.active == mw {
			m.endGesture()
		}
		mw.win.Release()
		delete(m.windows, id)
		m.logger.Debug("window released", "id", id, "class", mw.info.Class)
	}

	m.order = order
	return nil
}

func (m *Manager) adopt(w platform.Window) *managed {
	host := m.backend.Host(w.ID)
	typ, settings := m.cfg.Resolve(w.Class, w.Title)
	win := sticky.NewWindow(host, m.registry, m.backend.Screens(),
		sticky.WithType(typ),
		sticky.WithSettings(settings),
		sticky.WithLogger(m.logger),
	)
	m.logger.Debug("window adopted", "id", w.ID, "class", w.Class, "type", typ.String())
	return &managed{info: w, host: host, win: win}
}

// ApplyConfig switches to cfg and re-resolves every window that was not
// pinned over IPC. Pinned windows keep their settings except for a
// client-area key, which follows the global one.
func (m *Manager) ApplyConfig(cfg *config.Config) {
	m.mu.Lock()
	old := m.cfg
	m.cfg = cfg
	for _, id := range m.order {
		mw := m.windows[id]
		if mw == nil {
			continue
		}
		if mw.pinned {
			// Client-area drags only arrive through the global grab.
			s := mw.win.Settings()
			if s.ClientAreaMoveKey != sticky.ModNone {
				s.ClientAreaMoveKey = cfg.Modifier()
				mw.win.ApplySettings(s)
			}
			continue
		}
		typ, settings := cfg.Resolve(mw.info.Class, mw.info.Title)
		mw.win.ApplySettings(settings)
		mw.win.SetType(typ)
	}
	hook := m.onConfig
	m.mu.Unlock()

	m.logger.Info("configuration applied", "gravity", cfg.Gravity, "default_type", cfg.DefaultType, "rules", len(cfg.Rules))
	if hook != nil {
		hook(old, cfg)
	}
}

// Reload re-reads the config file and applies it. An invalid file leaves
// the running config untouched.
func (m *Manager) Reload() error {
	m.mu.Lock()
	path := m.configPath
	m.mu.Unlock()

	res, err := config.LoadFromPath(path)
	if err != nil {
		return err
	}
	m.ApplyConfig(res.Config)
	return nil
}

// refreshHosts re-reads every window's geometry so gestures and
// attachment checks see moves made by other clients.
func (m *Manager) refreshHosts() {
	for _, id := range m.order {
		mw := m.windows[id]
		if mw == nil {
			continue
		}
		if err := mw.host.Refresh(); err != nil {
			m.logger.Debug("refresh failed", "id", id, "error", err)
		}
	}
}

// Status reports daemon state for GET_STATUS.
func (m *Manager) Status() ipc.StatusData {
	m.mu.Lock()
	defer m.mu.Unlock()
	return ipc.StatusData{
		DaemonRunning: true,
		WindowCount:   len(m.windows),
		StickyCount:   m.registry.Len(),
		UptimeSeconds: int64(time.Since(m.started).Seconds()),
		ConfigPath:    m.configPath,
	}
}

// ListWindows describes the managed windows, bottom of the stack first.
func (m *Manager) ListWindows() []ipc.WindowInfo {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]ipc.WindowInfo, 0, len(m.order))
	for _, id := range m.order {
		if mw := m.windows[id]; mw != nil {
			out = append(out, windowInfo(mw))
		}
	}
	return out
}

// SetWindow changes one window's type and knobs. The window is pinned so
// a later reload does not undo the change.
func (m *Manager) SetWindow(p ipc.SetWindowPayload) (ipc.WindowInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	mw, err := m.lookup(p.ID)
	if err != nil {
		return ipc.WindowInfo{}, err
	}

	s := mw.win.Settings()
	if p.Gravity != nil {
		if *p.Gravity < 0 {
			return ipc.WindowInfo{}, fmt.Errorf("gravity must be >= 0")
		}
		s.Gravity = *p.Gravity
	}
	setFlag(&s.StickOnMove, p.StickOnMove)
	setFlag(&s.StickOnResize, p.StickOnResize)
	setFlag(&s.StickToScreen, p.StickToScreen)
	setFlag(&s.StickToOther, p.StickToOther)
	setFlag(&s.StickToInside, p.StickToInside)
	setFlag(&s.StickToOutside, p.StickToOutside)
	setFlag(&s.StickToCorners, p.StickToCorners)
	if p.ClientAreaMoveKey != nil {
		mod, err := sticky.ParseModifierKey(*p.ClientAreaMoveKey)
		if err != nil {
			return ipc.WindowInfo{}, err
		}
		// The root button grab only fires with the global key held.
		if global := m.cfg.Modifier(); mod != sticky.ModNone && mod != global {
			return ipc.WindowInfo{}, fmt.Errorf("client_area_move_key must be %q or \"none\", got %q", global.String(), mod.String())
		}
		s.ClientAreaMoveKey = mod
	}

	typ := mw.win.Type()
	if p.Type != nil {
		if typ, err = sticky.ParseWindowType(*p.Type); err != nil {
			return ipc.WindowInfo{}, err
		}
	}

	mw.win.ApplySettings(s)
	mw.win.SetType(typ)
	mw.pinned = true
	m.logger.Info("window updated", "id", mw.info.ID, "type", typ.String(), "gravity", s.Gravity)
	return windowInfo(mw), nil
}

// Stick re-evaluates one window's attachment from its current position.
func (m *Manager) Stick(id uint32) (ipc.StickData, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	mw, err := m.lookup(id)
	if err != nil {
		return ipc.StickData{}, err
	}
	if mw.win.State() != sticky.StateIdle {
		return ipc.StickData{}, fmt.Errorf("window 0x%x is being dragged", id)
	}

	m.refreshHosts()
	data := ipc.StickData{ID: id, Attached: mw.win.Stick()}
	if a, ok := mw.win.Anchor(); ok {
		data.Anchor = uint32(a.Handle())
	}
	return data, nil
}

func (m *Manager) lookup(id uint32) (*managed, error) {
	mw, ok := m.windows[platform.WindowID(id)]
	if !ok {
		return nil, fmt.Errorf("window 0x%x is not managed", id)
	}
	return mw, nil
}

func setFlag(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

func windowInfo(mw *managed) ipc.WindowInfo {
	b := mw.host.Bounds()
	s := mw.win.Settings()
	info := ipc.WindowInfo{
		ID:     uint32(mw.info.ID),
		Title:  mw.info.Title,
		Class:  mw.info.Class,
		Type:   mw.win.Type().String(),
		Bounds: ipc.Rect{X: b.X, Y: b.Y, Width: b.Width, Height: b.Height},
		State:  mw.win.State().String(),
		Pinned: mw.pinned,
		Hidden: mw.win.Hidden(),
		Settings: ipc.SettingsData{
			Gravity:           s.Gravity,
			StickOnMove:       s.StickOnMove,
			StickOnResize:     s.StickOnResize,
			StickToScreen:     s.StickToScreen,
			StickToOther:      s.StickToOther,
			StickToInside:     s.StickToInside,
			StickToOutside:    s.StickToOutside,
			StickToCorners:    s.StickToCorners,
			ClientAreaMoveKey: s.ClientAreaMoveKey.String(),
		},
	}
	if a, ok := mw.win.Anchor(); ok {
		info.Anchor = uint32(a.Handle())
	}
	return info
}
