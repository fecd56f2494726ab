package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
)

// Geometry is a rectangle in root window coordinates.
type Geometry struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Contains reports whether (x, y) lies inside g.
func (g Geometry) Contains(x, y int) bool {
	return x >= g.X && x < g.X+g.Width && y >= g.Y && y < g.Y+g.Height
}

// Intersect returns the overlap of g and o, or a zero Geometry.
func (g Geometry) Intersect(o Geometry) Geometry {
	x1 := max(g.X, o.X)
	y1 := max(g.Y, o.Y)
	x2 := min(g.X+g.Width, o.X+o.Width)
	y2 := min(g.Y+g.Height, o.Y+o.Height)
	if x2 <= x1 || y2 <= y1 {
		return Geometry{}
	}
	return Geometry{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}

func (g Geometry) empty() bool {
	return g.Width <= 0 || g.Height <= 0
}

// Monitor represents a physical display
type Monitor struct {
	ID     int
	Name   string
	Bounds Geometry
}

// Monitors retrieves all active monitors using XRandR
func (c *Connection) Monitors() ([]Monitor, error) {
	if err := randr.Init(c.XUtil.Conn()); err != nil {
		return nil, fmt.Errorf("randr init failed: %w", err)
	}

	resources, err := randr.GetScreenResources(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}

	var monitors []Monitor
	for i, crtc := range resources.Crtcs {
		info, err := randr.GetCrtcInfo(c.XUtil.Conn(), crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}
		// Disabled CRTC
		if info.Width == 0 || info.Height == 0 || len(info.Outputs) == 0 {
			continue
		}

		name := fmt.Sprintf("Monitor%d", i)
		if out, err := randr.GetOutputInfo(c.XUtil.Conn(), info.Outputs[0], resources.ConfigTimestamp).Reply(); err == nil {
			name = string(out.Name)
		}

		monitors = append(monitors, Monitor{
			ID:   i,
			Name: name,
			Bounds: Geometry{
				X:      int(info.X),
				Y:      int(info.Y),
				Width:  int(info.Width),
				Height: int(info.Height),
			},
		})
	}

	return monitors, nil
}

// Screen pairs a monitor with its usable work area.
type Screen struct {
	Monitor  Monitor
	WorkArea Geometry
}

// Screens returns every monitor with its work area: the monitor bounds
// minus dock struts, or intersected with the EWMH work area when no dock
// reserves space.
func (c *Connection) Screens() ([]Screen, error) {
	monitors, err := c.Monitors()
	if err != nil {
		return nil, err
	}
	if len(monitors) == 0 {
		return nil, fmt.Errorf("no monitors found")
	}

	desktopArea, hasDesktopArea := c.desktopWorkArea()
	screens := make([]Screen, 0, len(monitors))
	for _, mon := range monitors {
		area := mon.Bounds
		if struts, ok := c.dockStruts(area); ok {
			area.X += struts.left
			area.Y += struts.top
			area.Width = max(area.Width-struts.left-struts.right, 1)
			area.Height = max(area.Height-struts.top-struts.bottom, 1)
		} else if hasDesktopArea {
			if isect := area.Intersect(desktopArea); !isect.empty() {
				area = isect
			}
		}
		screens = append(screens, Screen{Monitor: mon, WorkArea: area})
	}
	return screens, nil
}

// ScreenAt returns the screen whose monitor contains (x, y), falling back
// to the first screen when the point is off every output.
func ScreenAt(screens []Screen, x, y int) (Screen, bool) {
	if len(screens) == 0 {
		return Screen{}, false
	}
	for _, s := range screens {
		if s.Monitor.Bounds.Contains(x, y) {
			return s, true
		}
	}
	return screens[0], true
}

// desktopWorkArea returns _NET_WORKAREA for the current desktop.
func (c *Connection) desktopWorkArea() (Geometry, bool) {
	areas, err := ewmh.WorkareaGet(c.XUtil)
	if err != nil || len(areas) == 0 {
		return Geometry{}, false
	}
	idx := 0
	if cur, err := ewmh.CurrentDesktopGet(c.XUtil); err == nil && int(cur) < len(areas) {
		idx = int(cur)
	}
	wa := areas[idx]
	return Geometry{X: wa.X, Y: wa.Y, Width: int(wa.Width), Height: int(wa.Height)}, true
}

type struts struct {
	left   int
	right  int
	top    int
	bottom int
}

// dockStruts accumulates the space reserved by dock windows on mon.
func (c *Connection) dockStruts(mon Geometry) (struts, bool) {
	rootGeom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(c.Root)).Reply()
	if err != nil {
		return struts{}, false
	}
	rootW, rootH := int(rootGeom.Width), int(rootGeom.Height)

	clients, err := ewmh.ClientListGet(c.XUtil)
	if err != nil {
		return struts{}, false
	}

	var acc struts
	for _, win := range clients {
		if !c.hasWindowType(win, "_NET_WM_WINDOW_TYPE_DOCK") {
			continue
		}

		sp, err := ewmh.WmStrutPartialGet(c.XUtil, win)
		if err != nil {
			// Some docks only set _NET_WM_STRUT, which spans the whole edge.
			s, err := ewmh.WmStrutGet(c.XUtil, win)
			if err != nil {
				continue
			}
			sp = &ewmh.WmStrutPartial{
				Left: s.Left, Right: s.Right, Top: s.Top, Bottom: s.Bottom,
				LeftEndY:   uint(rootH - 1),
				RightEndY:  uint(rootH - 1),
				TopEndX:    uint(rootW - 1),
				BottomEndX: uint(rootW - 1),
			}
		}
		acc.add(mon, rootW, rootH, sp)
	}

	if acc == (struts{}) {
		return struts{}, false
	}
	return acc, true
}

// add folds one dock's partial strut into acc, counting only the part
// that overlaps mon.
func (acc *struts) add(mon Geometry, rootW, rootH int, sp *ewmh.WmStrutPartial) {
	if sp.Top > 0 {
		r := Geometry{X: int(sp.TopStartX), Y: 0, Width: int(sp.TopEndX) - int(sp.TopStartX) + 1, Height: int(sp.Top)}
		acc.top = max(acc.top, mon.Intersect(r).Height)
	}
	if sp.Bottom > 0 {
		r := Geometry{X: int(sp.BottomStartX), Y: rootH - int(sp.Bottom), Width: int(sp.BottomEndX) - int(sp.BottomStartX) + 1, Height: int(sp.Bottom)}
		acc.bottom = max(acc.bottom, mon.Intersect(r).Height)
	}
	if sp.Left > 0 {
		r := Geometry{X: 0, Y: int(sp.LeftStartY), Width: int(sp.Left), Height: int(sp.LeftEndY) - int(sp.LeftStartY) + 1}
		acc.left = max(acc.left, mon.Intersect(r).Width)
	}
	if sp.Right > 0 {
		r := Geometry{X: rootW - int(sp.Right), Y: int(sp.RightStartY), Width: int(sp.Right), Height: int(sp.RightEndY) - int(sp.RightStartY) + 1}
		acc.right = max(acc.right, mon.Intersect(r).Width)
	}
}

// RootSize returns the size of the root window.
func (c *Connection) RootSize() (width, height int, err error) {
	geom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(c.Root)).Reply()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get root geometry: %w", err)
	}
	return int(geom.Width), int(geom.Height), nil
}
