package hotkeys

import (
	"fmt"
	"sync"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xevent"

	"github.com/1broseidon/stickywin/internal/x11"
)

// Handler manages global keyboard shortcuts on the root window.
type Handler struct {
	xu   *xgbutil.XUtil
	root xproto.Window

	mu    sync.Mutex
	bound []string
}

var ignoreModsOnce sync.Once

// NewHandler creates a hotkey handler. It also makes every later key and
// button grab ignore CapsLock, NumLock and ScrollLock, so it must run
// before the drag bindings are installed.
func NewHandler(conn *x11.Connection) *Handler {
	ignoreModsOnce.Do(func() {
		configureIgnoreMods(conn.XUtil)
	})

	return &Handler{
		xu:   conn.XUtil,
		root: conn.Root,
	}
}

// RegisterFunc binds keySequence (for example "Mod4-s") to callback.
func (h *Handler) RegisterFunc(keySequence string, callback func()) error {
	if _, _, err := keybind.ParseString(h.xu, keySequence); err != nil {
		return fmt.Errorf("invalid hotkey %q: %w", keySequence, err)
	}
	err := keybind.KeyPressFun(func(xu *xgbutil.XUtil, ev xevent.KeyPressEvent) {
		callback()
	}).Connect(h.xu, h.root, keySequence, true)
	if err != nil {
		return fmt.Errorf("grab hotkey %q: %w", keySequence, err)
	}

	h.mu.Lock()
	h.bound = append(h.bound, keySequence)
	h.mu.Unlock()
	return nil
}

// Bound returns the key sequences registered since the last UnregisterAll.
func (h *Handler) Bound() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.bound...)
}

// UnregisterAll drops every hotkey grab on the root window.
func (h *Handler) UnregisterAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.bound) == 0 {
		return
	}
	keybind.Detach(h.xu, h.root)
	h.bound = nil
}

func configureIgnoreMods(xu *xgbutil.XUtil) {
	numLock := modMaskForKeysym(xu, "Num_Lock")
	scrollLock := modMaskForKeysym(xu, "Scroll_Lock")
	xevent.IgnoreMods = ignoreMasks(numLock, scrollLock)
}

// ignoreMasks returns every combination of CapsLock and the given lock
// modifier masks, including no modifiers at all.
func ignoreMasks(numLock, scrollLock uint16) []uint16 {
	// Always ignore CapsLock.
	caps := uint16(xproto.ModMaskLock)

	base := []uint16{caps}
	if numLock != 0 && numLock != caps {
		base = append(base, numLock)
	}
	if scrollLock != 0 && scrollLock != caps && scrollLock != numLock {
		base = append(base, scrollLock)
	}

	ignore := []uint16{0}
	for subset := 1; subset < (1 << len(base)); subset++ {
		var mask uint16
		for bit := range base {
			if subset&(1<<bit) != 0 {
				mask |= base[bit]
			}
		}
		ignore = append(ignore, mask)
	}
	return ignore
}

func modMaskForKeysym(xu *xgbutil.XUtil, keysym string) uint16 {
	for _, keycode := range keybind.StrToKeycodes(xu, keysym) {
		if mask := keybind.ModGet(xu, keycode); mask != 0 {
			return mask
		}
	}
	return 0
}
