//go:build linux

package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/thejerf/suture/v4"

	"github.com/1broseidon/stickywin/internal/config"
	"github.com/1broseidon/stickywin/internal/hotkeys"
	"github.com/1broseidon/stickywin/internal/ipc"
	"github.com/1broseidon/stickywin/internal/platform"
	"github.com/1broseidon/stickywin/internal/runtimepath"
	"github.com/1broseidon/stickywin/internal/sticky"
	"github.com/1broseidon/stickywin/internal/x11"
)

// Options configures Run.
type Options struct {
	ConfigPath string
	Logger     *slog.Logger
}

var errEventLoopStopped = errors.New("X event loop stopped")

// Run connects to the X server and serves until ctx is cancelled or the
// X connection goes away.
func Run(ctx context.Context, opts Options) error {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	res, err := config.LoadFromPath(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger.Info("configuration loaded", "path", opts.ConfigPath, "files", len(res.Files), "gravity", res.Config.Gravity)

	conn, err := x11.NewConnection()
	if err != nil {
		return fmt.Errorf("connect to X server: %w", err)
	}
	defer conn.Close()

	backend := platform.NewLinuxBackend(conn, logger.With("component", "x11"))

	var mgr *Manager
	keys := x11.NewKeyGrab(conn, func(sym xproto.Keysym) {
		mgr.KeyDown(keyFromKeysym(sym))
	})
	mgr = NewManager(ManagerConfig{
		Backend:    backend,
		Config:     res.Config,
		ConfigPath: opts.ConfigPath,
		Keys:       keys,
		Logger:     logger.With("component", "sticky"),
	})
	if err := mgr.Sync(); err != nil {
		return err
	}

	// The hotkey handler sets the lock-modifier masks the button grabs
	// rely on, so it comes first.
	keysHandler := hotkeys.NewHandler(conn)
	stickKey := &stickHotkey{handler: keysHandler, conn: conn, mgr: mgr, logger: logger}
	stickKey.bind(res.Config.StickHotkey)

	buttons := &buttonGrabs{conn: conn, mgr: mgr, logger: logger}
	if err := buttons.bind(res.Config); err != nil {
		return err
	}
	mgr.OnConfig(func(prev, next *config.Config) {
		if prev.StickHotkey != next.StickHotkey {
			stickKey.bind(next.StickHotkey)
		}
		if !bindingsChanged(prev, next) {
			return
		}
		if err := buttons.bind(next); err != nil {
			logger.Error("rebinding buttons failed", "error", err)
		}
	})

	err = conn.WatchRoot(func(atom string) {
		switch atom {
		// Minimizing or restoring a window usually moves the focus, so
		// _NET_ACTIVE_WINDOW is the cheapest hint that visibility changed.
		case "_NET_CLIENT_LIST", "_NET_CLIENT_LIST_STACKING", "_NET_CURRENT_DESKTOP", "_NET_ACTIVE_WINDOW":
			if err := mgr.Sync(); err != nil {
				logger.Warn("window sync failed", "error", err)
			}
		case "_NET_WORKAREA", "_NET_DESKTOP_GEOMETRY":
			backend.InvalidateScreens()
		}
	})
	if err != nil {
		return err
	}

	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		return fmt.Errorf("resolve IPC socket path: %w", err)
	}

	sup := newSupervisor(logger.With("component", "supervisor"))
	sup.Add(ipc.NewServer(socketPath, mgr, logger.With("component", "ipc")))
	sup.Add(NewConfigWatcher(append([]string{opts.ConfigPath}, res.Files...), mgr.Reload, logger.With("component", "config")))
	sup.Add(NewReconciler(ReconcilerConfig{Logger: logger.With("component", "reconciler")}, mgr))
	sup.Add(serviceFunc{name: "x11-events", fn: func(ctx context.Context) error {
		stop := context.AfterFunc(ctx, conn.Quit)
		defer stop()
		conn.EventLoop()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %w", errEventLoopStopped, suture.ErrTerminateSupervisorTree)
	}})

	logger.Info("stickywin daemon started", "windows", mgr.Status().WindowCount, "socket", socketPath)
	err = sup.Serve(ctx)
	if ctx.Err() != nil {
		logger.Info("stickywin daemon stopped")
		return nil
	}
	if errors.Is(err, suture.ErrTerminateSupervisorTree) {
		return errEventLoopStopped
	}
	return err
}

// buttonGrabs owns the move/resize button grabs on the root window.
type buttonGrabs struct {
	conn   *x11.Connection
	mgr    *Manager
	logger *slog.Logger

	mu    sync.Mutex
	specs []string
}

func (b *buttonGrabs) bind(cfg *config.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.conn.UnbindDrags(b.specs)
	b.specs = nil

	for _, bb := range buttonBindings(cfg) {
		gesture := bb.gesture
		err := b.conn.BindDrag(bb.spec, x11.DragFuncs{
			Begin: func(x, y int, state uint16) bool {
				return b.mgr.BeginDrag(gesture, sticky.Point{X: x, Y: y}, modifiersFromState(state))
			},
			Step:  func(x, y int) { b.mgr.DragTo(sticky.Point{X: x, Y: y}) },
			End:   func(x, y int) { b.mgr.EndDrag(sticky.Point{X: x, Y: y}) },
			Abort: b.mgr.AbortDrag,
		})
		if err != nil {
			return err
		}
		b.specs = append(b.specs, bb.spec)
		b.logger.Info("button bound", "gesture", gesture.String(), "binding", bb.spec)
	}
	return nil
}

// stickHotkey re-evaluates the focused window's attachment on a key press.
type stickHotkey struct {
	handler *hotkeys.Handler
	conn    *x11.Connection
	mgr     *Manager
	logger  *slog.Logger
}

// bind replaces the current hotkey. A bad sequence is logged and leaves
// the hotkey unbound; it does not stop the daemon.
func (k *stickHotkey) bind(seq string) {
	k.handler.UnregisterAll()
	if seq == "" {
		return
	}
	err := k.handler.RegisterFunc(seq, func() {
		id, err := k.conn.ActiveWindow()
		if err != nil || id == 0 {
			k.logger.Debug("stick hotkey: no active window", "error", err)
			return
		}
		res, err := k.mgr.Stick(uint32(id))
		if err != nil {
			k.logger.Info("stick hotkey ignored", "id", id, "error", err)
			return
		}
		k.logger.Info("stick hotkey", "id", id, "attached", res.Attached, "anchor", res.Anchor)
	})
	if err != nil {
		k.logger.Warn("stick hotkey not bound", "hotkey", seq, "error", err)
		return
	}
	k.logger.Info("stick hotkey bound", "hotkey", seq)
}

func keyFromKeysym(sym xproto.Keysym) sticky.Key {
	if sym == x11.KeysymEscape {
		return sticky.KeyEscape
	}
	return sticky.KeyOther
}
