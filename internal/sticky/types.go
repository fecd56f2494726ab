package sticky

import (
	"fmt"
	"strings"
)

// WindowType defines how a window participates in sticking.
type WindowType int

const (
	// TypeNone is not registered: it neither attaches nor accepts attachments.
	TypeNone WindowType = iota
	// TypeAnchor carries stuck windows with it when it moves.
	TypeAnchor
	// TypeGrabby grabs onto a nearby anchor but does not follow it.
	TypeGrabby
	// TypeSticky grabs onto a nearby anchor and follows it when it moves.
	TypeSticky
	// TypeCohesive is a sticky window that other windows can also stick to.
	TypeCohesive
)

var windowTypeNames = [...]string{"none", "anchor", "grabby", "sticky", "cohesive"}

// String returns the lower-case name of the type.
func (t WindowType) String() string {
	if t < 0 || int(t) >= len(windowTypeNames) {
		return "unknown"
	}
	return windowTypeNames[t]
}

// ParseWindowType parses a type name (case-insensitive).
func ParseWindowType(s string) (WindowType, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range windowTypeNames {
		if n == name {
			return WindowType(i), nil
		}
	}
	return TypeNone, fmt.Errorf("unknown window type %q (valid: %s)", s, strings.Join(windowTypeNames[:], ", "))
}

// Capabilities are the behaviors derived from a WindowType.
type Capabilities struct {
	// AcceptsAttachments: other windows may use this window as their anchor.
	AcceptsAttachments bool
	// SeeksAttachments: this window picks an anchor when it comes to rest.
	SeeksAttachments bool
	// Carried: this window follows its anchor when the anchor moves.
	Carried bool
}

var capabilityTable = [...]Capabilities{
	TypeNone:     {},
	TypeAnchor:   {AcceptsAttachments: true},
	TypeGrabby:   {SeeksAttachments: true},
	TypeSticky:   {SeeksAttachments: true, Carried: true},
	TypeCohesive: {AcceptsAttachments: true, SeeksAttachments: true, Carried: true},
}

// Capabilities returns the behavior flags for the type.
func (t WindowType) Capabilities() Capabilities {
	if t < 0 || int(t) >= len(capabilityTable) {
		return Capabilities{}
	}
	return capabilityTable[t]
}

// ModifierKey is a set of keyboard modifiers.
type ModifierKey uint8

const (
	ModNone    ModifierKey = 0
	ModShift   ModifierKey = 1 << 0
	ModControl ModifierKey = 1 << 1
	ModAlt     ModifierKey = 1 << 2
	ModSuper   ModifierKey = 1 << 3
)

var modifierNames = []struct {
	mod  ModifierKey
	name string
}{
	{ModShift, "shift"},
	{ModControl, "control"},
	{ModAlt, "mod1"},
	{ModSuper, "mod4"},
}

// String renders the set as names joined by '+', or "none".
func (m ModifierKey) String() string {
	if m == ModNone {
		return "none"
	}
	var parts []string
	for _, n := range modifierNames {
		if m&n.mod != 0 {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "+")
}

// ParseModifierKey parses "none" or names joined by '+'. Accepted names are
// shift, control (ctrl), mod1 (alt) and mod4 (super).
func ParseModifierKey(s string) (ModifierKey, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "none" {
		return ModNone, nil
	}
	var m ModifierKey
	for _, part := range strings.Split(s, "+") {
		switch strings.TrimSpace(part) {
		case "shift":
			m |= ModShift
		case "control", "ctrl":
			m |= ModControl
		case "mod1", "alt":
			m |= ModAlt
		case "mod4", "super":
			m |= ModSuper
		default:
			return ModNone, fmt.Errorf("unknown modifier %q", part)
		}
	}
	return m, nil
}

// ResizeEdge is a set of edges being dragged during a resize.
type ResizeEdge uint8

const (
	EdgeTop ResizeEdge = 1 << iota
	EdgeBottom
	EdgeLeft
	EdgeRight
)

func (e ResizeEdge) has(edge ResizeEdge) bool { return e&edge == edge }

// HitTest identifies the window region under the pointer on button-down.
type HitTest int

const (
	HitNowhere HitTest = iota
	HitClient
	HitCaption
	HitTop
	HitBottom
	HitLeft
	HitRight
	HitTopLeft
	HitTopRight
	HitBottomLeft
	HitBottomRight
)

// Edges returns the resize edges for a border or corner hit, or 0.
func (h HitTest) Edges() ResizeEdge {
	switch h {
	case HitTop:
		return EdgeTop
	case HitBottom:
		return EdgeBottom
	case HitLeft:
		return EdgeLeft
	case HitRight:
		return EdgeRight
	case HitTopLeft:
		return EdgeTop | EdgeLeft
	case HitTopRight:
		return EdgeTop | EdgeRight
	case HitBottomLeft:
		return EdgeBottom | EdgeLeft
	case HitBottomRight:
		return EdgeBottom | EdgeRight
	default:
		return 0
	}
}

// Key identifies a keyboard key relevant to gestures.
type Key int

const (
	KeyOther Key = iota
	KeyEscape
)

// DragState is the phase of the per-window gesture state machine.
type DragState int

const (
	StateIdle DragState = iota
	StateMoving
	StateResizing
)

// String returns the string representation of the state
func (s DragState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateMoving:
		return "moving"
	case StateResizing:
		return "resizing"
	default:
		return "unknown"
	}
}
