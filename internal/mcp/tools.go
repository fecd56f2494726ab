package mcp

import (
	"context"
	"fmt"
	"strings"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/stickywin/internal/ipc"
	"github.com/1broseidon/stickywin/internal/sticky"
)

func (s *Server) handleStatus(_ context.Context, _ *mcpsdk.CallToolRequest, _ StatusInput) (*mcpsdk.CallToolResult, StatusOutput, error) {
	st, err := s.client.GetStatus()
	if err != nil {
		return nil, StatusOutput{}, err
	}
	return nil, StatusOutput{
		DaemonRunning: st.DaemonRunning,
		WindowCount:   st.WindowCount,
		StickyCount:   st.StickyCount,
		UptimeSeconds: st.UptimeSeconds,
		ConfigPath:    st.ConfigPath,
	}, nil
}

func (s *Server) handleListWindows(_ context.Context, _ *mcpsdk.CallToolRequest, args ListWindowsInput) (*mcpsdk.CallToolResult, ListWindowsOutput, error) {
	if args.Type != "" {
		if _, err := sticky.ParseWindowType(args.Type); err != nil {
			return nil, ListWindowsOutput{}, err
		}
	}

	windows, err := s.client.ListWindows()
	if err != nil {
		return nil, ListWindowsOutput{}, err
	}

	out := make([]ipc.WindowInfo, 0, len(windows))
	for _, w := range windows {
		if !containsFold(w.Class, args.Class) || !containsFold(w.Title, args.Title) {
			continue
		}
		if args.Type != "" && !strings.EqualFold(w.Type, args.Type) {
			continue
		}
		out = append(out, w)
	}
	s.logger.Debug("listed windows", "total", len(windows), "matched", len(out))
	return nil, ListWindowsOutput{Windows: out}, nil
}

func (s *Server) handleSetWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args SetWindowInput) (*mcpsdk.CallToolResult, SetWindowOutput, error) {
	if args.ID == 0 {
		return nil, SetWindowOutput{}, fmt.Errorf("id is required")
	}
	if args.Type != nil {
		if _, err := sticky.ParseWindowType(*args.Type); err != nil {
			return nil, SetWindowOutput{}, err
		}
	}
	if args.Gravity != nil && *args.Gravity < 0 {
		return nil, SetWindowOutput{}, fmt.Errorf("gravity must be >= 0")
	}

	info, err := s.client.SetWindow(ipc.SetWindowPayload{
		ID:                args.ID,
		Type:              args.Type,
		Gravity:           args.Gravity,
		StickOnMove:       args.StickOnMove,
		StickOnResize:     args.StickOnResize,
		StickToScreen:     args.StickToScreen,
		StickToOther:      args.StickToOther,
		StickToInside:     args.StickToInside,
		StickToOutside:    args.StickToOutside,
		StickToCorners:    args.StickToCorners,
		ClientAreaMoveKey: args.ClientAreaMoveKey,
	})
	if err != nil {
		return nil, SetWindowOutput{}, err
	}
	s.logger.Info("window updated", "id", info.ID, "type", info.Type)
	return nil, SetWindowOutput{Window: *info}, nil
}

func (s *Server) handleStickWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args StickWindowInput) (*mcpsdk.CallToolResult, StickWindowOutput, error) {
	if args.ID == 0 {
		return nil, StickWindowOutput{}, fmt.Errorf("id is required")
	}
	res, err := s.client.Stick(args.ID)
	if err != nil {
		return nil, StickWindowOutput{}, err
	}
	return nil, StickWindowOutput{ID: res.ID, Attached: res.Attached, Anchor: res.Anchor}, nil
}

func (s *Server) handleReload(_ context.Context, _ *mcpsdk.CallToolRequest, _ ReloadInput) (*mcpsdk.CallToolResult, ReloadOutput, error) {
	if err := s.client.Reload(); err != nil {
		return nil, ReloadOutput{}, err
	}
	return nil, ReloadOutput{Reloaded: true}, nil
}

// containsFold reports whether substr is within s, ignoring case. An empty
// substr matches everything.
func containsFold(s, substr string) bool {
	if substr == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
