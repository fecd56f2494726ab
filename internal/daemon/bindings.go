package daemon

import (
	"strconv"
	"strings"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/1broseidon/stickywin/internal/config"
	"github.com/1broseidon/stickywin/internal/sticky"
)

// bindingString renders a modifier set and button in xgbutil's
// mousebind syntax, for example "shift-mod4-1".
func bindingString(mod sticky.ModifierKey, button int) string {
	parts := []string{}
	if mod != sticky.ModNone {
		parts = strings.Split(mod.String(), "+")
	}
	parts = append(parts, strconv.Itoa(button))
	return strings.Join(parts, "-")
}

// buttonBinding pairs a gesture with its mousebind spec.
type buttonBinding struct {
	gesture Gesture
	spec    string
}

func buttonBindings(cfg *config.Config) []buttonBinding {
	mod := cfg.Modifier()
	return []buttonBinding{
		{gesture: GestureMove, spec: bindingString(mod, cfg.MoveButton)},
		{gesture: GestureResize, spec: bindingString(mod, cfg.ResizeButton)},
	}
}

// bindingsChanged reports whether a config change needs new button grabs.
func bindingsChanged(prev, next *config.Config) bool {
	if prev == nil || next == nil {
		return true
	}
	return prev.Modifier() != next.Modifier() ||
		prev.MoveButton != next.MoveButton ||
		prev.ResizeButton != next.ResizeButton
}

// modifiersFromState maps the modifier mask of an X button event to the
// modifiers the sticky core understands. Lock modifiers are dropped.
func modifiersFromState(state uint16) sticky.ModifierKey {
	var mod sticky.ModifierKey
	if state&xproto.ModMaskShift != 0 {
		mod |= sticky.ModShift
	}
	if state&xproto.ModMaskControl != 0 {
		mod |= sticky.ModControl
	}
	if state&xproto.ModMask1 != 0 {
		mod |= sticky.ModAlt
	}
	if state&xproto.ModMask4 != 0 {
		mod |= sticky.ModSuper
	}
	return mod
}
