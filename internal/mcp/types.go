package mcp

import "github.com/1broseidon/stickywin/internal/ipc"

// StatusInput is the input for the sticky_status tool.
type StatusInput struct{}

// StatusOutput is the output for the sticky_status tool.
type StatusOutput struct {
	DaemonRunning bool   `json:"daemon_running"`
	WindowCount   int    `json:"window_count"`
	StickyCount   int    `json:"sticky_count"`
	UptimeSeconds int64  `json:"uptime_seconds"`
	ConfigPath    string `json:"config_path"`
}

// ListWindowsInput is the input for the list_sticky_windows tool.
type ListWindowsInput struct {
	Class string `json:"class,omitempty" jsonschema:"Only windows whose WM_CLASS contains this text (case-insensitive)"`
	Title string `json:"title,omitempty" jsonschema:"Only windows whose title contains this text (case-insensitive)"`
	Type  string `json:"type,omitempty" jsonschema:"Only windows of this sticky type (none, anchor, grabby, sticky, cohesive)"`
}

// ListWindowsOutput is the output for the list_sticky_windows tool.
type ListWindowsOutput struct {
	Windows []ipc.WindowInfo `json:"windows"`
}

// SetWindowInput is the input for the set_sticky_window tool.
type SetWindowInput struct {
	ID                uint32  `json:"id" jsonschema:"X11 window id as reported by list_sticky_windows"`
	Type              *string `json:"type,omitempty" jsonschema:"Sticky type: none, anchor, grabby, sticky or cohesive"`
	Gravity           *int    `json:"gravity,omitempty" jsonschema:"Snap distance in pixels (0 disables snapping)"`
	StickOnMove       *bool   `json:"stick_on_move,omitempty" jsonschema:"Snap and attach while the window is moved"`
	StickOnResize     *bool   `json:"stick_on_resize,omitempty" jsonschema:"Snap edges while the window is resized"`
	StickToScreen     *bool   `json:"stick_to_screen,omitempty" jsonschema:"Snap to monitor edges"`
	StickToOther      *bool   `json:"stick_to_other,omitempty" jsonschema:"Snap to other managed windows"`
	StickToInside     *bool   `json:"stick_to_inside,omitempty" jsonschema:"Align with the inside of other windows' edges"`
	StickToOutside    *bool   `json:"stick_to_outside,omitempty" jsonschema:"Abut the outside of other windows' edges"`
	StickToCorners    *bool   `json:"stick_to_corners,omitempty" jsonschema:"Also align the perpendicular edge when abutting another window"`
	ClientAreaMoveKey *string `json:"client_area_move_key,omitempty" jsonschema:"Client-area move key: none to disable, or the daemon's global key such as mod4"`
}

// SetWindowOutput is the output for the set_sticky_window tool.
type SetWindowOutput struct {
	Window ipc.WindowInfo `json:"window"`
}

// StickWindowInput is the input for the stick_window tool.
type StickWindowInput struct {
	ID uint32 `json:"id" jsonschema:"X11 window id as reported by list_sticky_windows"`
}

// StickWindowOutput is the output for the stick_window tool.
type StickWindowOutput struct {
	ID       uint32 `json:"id"`
	Attached bool   `json:"attached"`
	Anchor   uint32 `json:"anchor,omitempty"`
}

// ReloadInput is the input for the reload_sticky_config tool.
type ReloadInput struct{}

// ReloadOutput is the output for the reload_sticky_config tool.
type ReloadOutput struct {
	Reloaded bool `json:"reloaded"`
}
