package ipc

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"sync"
)

// Handler answers IPC commands. The daemon's window manager implements it.
type Handler interface {
	Status() StatusData
	ListWindows() []WindowInfo
	SetWindow(SetWindowPayload) (WindowInfo, error)
	Stick(id uint32) (StickData, error)
	Reload() error
}

// Server handles IPC requests from clients
type Server struct {
	socketPath   string
	listener     net.Listener
	handler      Handler
	logger       *slog.Logger
	shuttingDown bool
	shutdownMu   sync.Mutex
	conns        sync.WaitGroup
}

// NewServer creates a server that will listen on socketPath.
func NewServer(socketPath string, handler Handler, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		socketPath: socketPath,
		handler:    handler,
		logger:     logger,
	}
}

// Start begins listening for IPC connections
func (s *Server) Start() error {
	// A stale socket from a crashed daemon blocks Listen.
	os.Remove(s.socketPath)

	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create IPC socket: %w", err)
	}
	s.shutdownMu.Lock()
	s.listener = listener
	s.shuttingDown = false
	s.shutdownMu.Unlock()

	if err := os.Chmod(s.socketPath, 0600); err != nil {
		listener.Close()
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	s.logger.Info("IPC server listening", "socket", s.socketPath)

	go s.acceptLoop()

	return nil
}

// String names the server in supervisor logs.
func (s *Server) String() string { return "ipc" }

// Serve runs the server until ctx is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	if err := s.Start(); err != nil {
		return err
	}
	<-ctx.Done()
	s.Stop()
	return ctx.Err()
}

// acceptLoop accepts incoming connections
func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			s.shutdownMu.Lock()
			if s.shuttingDown {
				s.shutdownMu.Unlock()
				return
			}
			s.shutdownMu.Unlock()
			s.logger.Warn("IPC accept error", "error", err)
			continue
		}

		s.conns.Add(1)
		go func() {
			defer s.conns.Done()
			s.handleConnection(conn)
		}()
	}
}

// handleConnection handles a single IPC connection
func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	reader := bufio.NewReader(conn)

	// One JSON request per line.
	data, err := reader.ReadBytes('\n')
	if err != nil && err != io.EOF {
		s.logger.Warn("IPC read error", "error", err)
		return
	}

	req, err := ParseRequest(data)
	if err != nil {
		s.sendError(conn, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	resp := s.handleCommand(req)

	respData, err := resp.Marshal()
	if err != nil {
		s.logger.Error("failed to marshal response", "error", err)
		return
	}

	respData = append(respData, '\n')
	if _, err := conn.Write(respData); err != nil {
		s.logger.Warn("failed to send response", "error", err)
	}
}

// handleCommand processes an IPC command and returns a response
func (s *Server) handleCommand(req *Request) *Response {
	s.logger.Debug("IPC request", "command", req.Command)

	switch req.Command {
	case CommandReload:
		return s.handleReload()
	case CommandGetStatus:
		return okResponse(s.handler.Status())
	case CommandListWindows:
		return okResponse(WindowsData{Windows: s.handler.ListWindows()})
	case CommandSetWindow:
		return s.handleSetWindow(req.Payload)
	case CommandStick:
		return s.handleStick(req.Payload)
	default:
		return NewErrorResponse(fmt.Sprintf("Unknown command: %s", req.Command))
	}
}

func (s *Server) handleReload() *Response {
	s.logger.Info("IPC: reload requested")
	if err := s.handler.Reload(); err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to reload config: %v", err))
	}
	return okResponse(nil)
}

func (s *Server) handleSetWindow(payload json.RawMessage) *Response {
	var req SetWindowPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid set payload: %v", err))
	}
	if req.ID == 0 {
		return NewErrorResponse("id is required")
	}

	info, err := s.handler.SetWindow(req)
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to update window: %v", err))
	}
	return okResponse(info)
}

func (s *Server) handleStick(payload json.RawMessage) *Response {
	var req StickPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid stick payload: %v", err))
	}
	if req.ID == 0 {
		return NewErrorResponse("id is required")
	}

	data, err := s.handler.Stick(req.ID)
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to stick window: %v", err))
	}
	return okResponse(data)
}

func okResponse(data interface{}) *Response {
	resp, err := NewOKResponse(data)
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	return resp
}

// sendError sends an error response
func (s *Server) sendError(conn net.Conn, errMsg string) {
	resp := NewErrorResponse(errMsg)
	data, _ := resp.Marshal()
	data = append(data, '\n')
	conn.Write(data)
}

// Stop gracefully shuts down the IPC server
func (s *Server) Stop() {
	s.shutdownMu.Lock()
	if s.shuttingDown {
		s.shutdownMu.Unlock()
		return
	}
	s.shuttingDown = true
	s.shutdownMu.Unlock()

	if s.listener != nil {
		s.listener.Close()
	}
	s.conns.Wait()
	os.Remove(s.socketPath)
}
