package mcp

import (
	"context"
	"io"
	"log/slog"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/stickywin/internal/ipc"
)

const (
	ServerName    = "stickywin"
	ServerVersion = "0.1.0"
)

// DaemonClient is the part of the IPC client the tools use.
type DaemonClient interface {
	GetStatus() (*ipc.StatusData, error)
	ListWindows() ([]ipc.WindowInfo, error)
	SetWindow(p ipc.SetWindowPayload) (*ipc.WindowInfo, error)
	Stick(id uint32) (*ipc.StickData, error)
	Reload() error
}

var _ DaemonClient = (*ipc.Client)(nil)

// Server exposes the daemon's window controls as MCP tools.
type Server struct {
	mcpServer *mcpsdk.Server
	client    DaemonClient
	logger    *slog.Logger
}

// NewServer creates an MCP server that forwards tool calls to the daemon
// over client.
func NewServer(client DaemonClient, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Server{
		client: client,
		logger: logger,
	}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)

	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "sticky_status",
		Description: "Report whether the stickywin daemon is running, how many windows it manages and how many are currently attached to an anchor.",
	}, s.handleStatus)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_sticky_windows",
		Description: "List the windows the daemon manages, bottom of the stacking order first, with their sticky type, bounds, drag state, anchor and snapping settings. Optionally filter by class or title substring.",
	}, s.handleListWindows)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "set_sticky_window",
		Description: "Change one window's sticky type (none, anchor, grabby, sticky, cohesive) and snapping settings. Omitted fields are left unchanged. The window keeps these settings across config reloads.",
	}, s.handleSetWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "stick_window",
		Description: "Re-evaluate a window's attachment from its current position: attach it to the anchor whose edge it touches, or detach it when it touches none.",
	}, s.handleStickWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "reload_sticky_config",
		Description: "Ask the daemon to re-read its configuration file. Windows set through set_sticky_window keep their settings.",
	}, s.handleReload)
}
