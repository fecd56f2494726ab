package ipc

import (
	"encoding/json"
	"fmt"
)

// CommandType represents different IPC command types
type CommandType string

const (
	CommandReload      CommandType = "RELOAD"
	CommandGetStatus   CommandType = "GET_STATUS"
	CommandListWindows CommandType = "LIST_WINDOWS"
	CommandSetWindow   CommandType = "SET_WINDOW"
	CommandStick       CommandType = "STICK"
)

// Request represents an IPC request from client to server
type Request struct {
	Command CommandType     `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response represents an IPC response from server to client
type Response struct {
	Status string          `json:"status"` // "OK" or "ERROR"
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// StatusData represents the data returned by GET_STATUS
type StatusData struct {
	DaemonRunning bool   `json:"daemon_running"`
	WindowCount   int    `json:"window_count"`
	StickyCount   int    `json:"sticky_count"`
	UptimeSeconds int64  `json:"uptime_seconds"`
	ConfigPath    string `json:"config_path"`
}

type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// SettingsData mirrors the per-window sticking knobs.
type SettingsData struct {
	Gravity           int    `json:"gravity"`
	StickOnMove       bool   `json:"stick_on_move"`
	StickOnResize     bool   `json:"stick_on_resize"`
	StickToScreen     bool   `json:"stick_to_screen"`
	StickToOther      bool   `json:"stick_to_other"`
	StickToInside     bool   `json:"stick_to_inside"`
	StickToOutside    bool   `json:"stick_to_outside"`
	StickToCorners    bool   `json:"stick_to_corners"`
	ClientAreaMoveKey string `json:"client_area_move_key"`
}

// WindowInfo describes one managed window.
type WindowInfo struct {
	ID       uint32       `json:"id"`
	Title    string       `json:"title"`
	Class    string       `json:"class"`
	Type     string       `json:"type"`
	Anchor   uint32       `json:"anchor,omitempty"` // 0 when not attached
	Bounds   Rect         `json:"bounds"`
	State    string       `json:"state"`
	Pinned   bool         `json:"pinned,omitempty"` // settings set over IPC, kept across reloads
	Hidden   bool         `json:"hidden,omitempty"` // minimized or on another desktop
	Settings SettingsData `json:"settings"`
}

type WindowsData struct {
	Windows []WindowInfo `json:"windows"`
}

// SetWindowPayload changes a window's type and knobs. Nil fields are left
// unchanged.
type SetWindowPayload struct {
	ID                uint32  `json:"id"`
	Type              *string `json:"type,omitempty"`
	Gravity           *int    `json:"gravity,omitempty"`
	StickOnMove       *bool   `json:"stick_on_move,omitempty"`
	StickOnResize     *bool   `json:"stick_on_resize,omitempty"`
	StickToScreen     *bool   `json:"stick_to_screen,omitempty"`
	StickToOther      *bool   `json:"stick_to_other,omitempty"`
	StickToInside     *bool   `json:"stick_to_inside,omitempty"`
	StickToOutside    *bool   `json:"stick_to_outside,omitempty"`
	StickToCorners    *bool   `json:"stick_to_corners,omitempty"`
	ClientAreaMoveKey *string `json:"client_area_move_key,omitempty"`
}

type StickPayload struct {
	ID uint32 `json:"id"`
}

// StickData is the outcome of re-evaluating a window's attachment.
type StickData struct {
	ID       uint32 `json:"id"`
	Attached bool   `json:"attached"`
	Anchor   uint32 `json:"anchor,omitempty"`
}

// NewOKResponse creates a successful response with optional data
func NewOKResponse(data interface{}) (*Response, error) {
	var dataBytes json.RawMessage
	if data != nil {
		bytes, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response data: %w", err)
		}
		dataBytes = bytes
	}

	return &Response{
		Status: "OK",
		Data:   dataBytes,
	}, nil
}

// NewErrorResponse creates an error response with a message
func NewErrorResponse(errMsg string) *Response {
	return &Response{
		Status: "ERROR",
		Error:  errMsg,
	}
}

// ParseRequest parses a request from JSON bytes
func ParseRequest(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}
	return &req, nil
}

// Marshal converts a response to JSON bytes
func (r *Response) Marshal() ([]byte, error) {
	return json.Marshal(r)
}
