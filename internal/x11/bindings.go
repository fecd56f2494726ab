package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/mousebind"
	"github.com/BurntSushi/xgbutil/xevent"
	"github.com/BurntSushi/xgbutil/xprop"
	"github.com/BurntSushi/xgbutil/xwindow"
)

// DragFuncs receive root-window coordinates. Begin gets the modifier
// state of the button press and reports whether the drag should take the
// pointer. Abort runs instead of Step and End when Begin accepted the drag
// but the pointer grab could not be established.
type DragFuncs struct {
	Begin func(x, y int, state uint16) bool
	Step  func(x, y int)
	End   func(x, y int)
	Abort func()
}

// BindDrag installs a passive root grab for spec (for example "Mod4-1")
// that drives fns for every drag it starts.
func (c *Connection) BindDrag(spec string, fns DragFuncs) error {
	xu := c.XUtil
	if _, _, err := mousebind.ParseString(xu, spec); err != nil {
		return fmt.Errorf("invalid button binding %q: %w", spec, err)
	}

	step := func(xu *xgbutil.XUtil, rootX, rootY, eventX, eventY int) {
		fns.Step(rootX, rootY)
	}
	end := func(xu *xgbutil.XUtil, rootX, rootY, eventX, eventY int) {
		fns.End(rootX, rootY)
	}

	err := mousebind.ButtonPressFun(func(xu *xgbutil.XUtil, ev xevent.ButtonPressEvent) {
		if xu.InMouseDrag {
			return
		}
		accepted := false
		begin := func(xu *xgbutil.XUtil, rootX, rootY, eventX, eventY int) (bool, xproto.Cursor) {
			accepted = fns.Begin(rootX, rootY, ev.State)
			return accepted, 0
		}
		mousebind.DragBegin(xu, ev, c.Root, c.Root, begin, step, end)
		if accepted && !xu.InMouseDrag && fns.Abort != nil {
			fns.Abort()
		}
	}).Connect(xu, c.Root, spec, false, true)
	if err != nil {
		return fmt.Errorf("grab button %q: %w", spec, err)
	}

	c.dragHandlersOnce.Do(func() {
		xevent.MotionNotifyFun(func(xu *xgbutil.XUtil, ev xevent.MotionNotifyEvent) {
			if xu.InMouseDrag && xu.MouseDragStepFun != nil {
				xu.MouseDragStepFun(xu, int(ev.RootX), int(ev.RootY), int(ev.EventX), int(ev.EventY))
			}
		}).Connect(xu, c.Root)
		xevent.ButtonReleaseFun(mousebind.DragEnd).Connect(xu, c.Root)
	})
	return nil
}

// UnbindDrags removes the grabs installed for specs and every mouse
// callback on the root window.
func (c *Connection) UnbindDrags(specs []string) {
	xu := c.XUtil
	for _, spec := range specs {
		mods, button, err := mousebind.ParseString(xu, spec)
		if err != nil {
			continue
		}
		mousebind.Ungrab(xu, c.Root, mods, button)
	}
	mousebind.Detach(xu, c.Root)
}

// WatchRoot calls onChange with the atom name of every root window
// property change, for example _NET_CLIENT_LIST.
func (c *Connection) WatchRoot(onChange func(atom string)) error {
	xu := c.XUtil
	if err := xwindow.New(xu, c.Root).Listen(xproto.EventMaskPropertyChange); err != nil {
		return fmt.Errorf("listen on root window: %w", err)
	}

	xevent.PropertyNotifyFun(func(xu *xgbutil.XUtil, ev xevent.PropertyNotifyEvent) {
		name, err := xprop.AtomName(xu, ev.Atom)
		if err != nil {
			return
		}
		onChange(name)
	}).Connect(xu, c.Root)
	return nil
}
