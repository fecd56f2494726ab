package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/1broseidon/stickywin/internal/runtimepath"
)

// Client handles IPC communication with the daemon
type Client struct {
	socketPath string
	timeout    time.Duration
}

// NewClient creates a new IPC client
func NewClient() *Client {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		// Keep constructor non-failing; sendRequest surfaces connection errors.
		socketPath = ""
	}

	return NewClientAt(socketPath)
}

// NewClientAt creates a client for an explicit socket path.
func NewClientAt(socketPath string) *Client {
	return &Client{
		socketPath: socketPath,
		timeout:    5 * time.Second,
	}
}

// sendRequest sends a request and waits for a response
func (c *Client) sendRequest(req *Request) (*Response, error) {
	// Connect to socket
	conn, err := net.DialTimeout("unix", c.socketPath, c.timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to daemon: %w (is the daemon running?)", err)
	}
	defer conn.Close()

	// Set deadline
	conn.SetDeadline(time.Now().Add(c.timeout))

	// Marshal request
	reqData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	// Send request
	reqData = append(reqData, '\n')
	if _, err := conn.Write(reqData); err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	// Read response
	reader := bufio.NewReader(conn)
	respData, err := reader.ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	// Parse response
	var resp Response
	if err := json.Unmarshal(respData, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	// Check for error response
	if resp.Status == "ERROR" {
		return nil, fmt.Errorf("daemon error: %s", resp.Error)
	}

	return &resp, nil
}

// Reload sends a RELOAD command to the daemon
func (c *Client) Reload() error {
	req := &Request{
		Command: CommandReload,
	}

	_, err := c.sendRequest(req)
	return err
}

// GetStatus retrieves daemon status
func (c *Client) GetStatus() (*StatusData, error) {
	req := &Request{
		Command: CommandGetStatus,
	}

	resp, err := c.sendRequest(req)
	if err != nil {
		return nil, err
	}

	var status StatusData
	if err := json.Unmarshal(resp.Data, &status); err != nil {
		return nil, fmt.Errorf("failed to parse status data: %w", err)
	}

	return &status, nil
}

// ListWindows retrieves the managed windows, bottom of the stack first.
func (c *Client) ListWindows() ([]WindowInfo, error) {
	req := &Request{
		Command: CommandListWindows,
	}

	resp, err := c.sendRequest(req)
	if err != nil {
		return nil, err
	}

	var data WindowsData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to parse windows data: %w", err)
	}

	return data.Windows, nil
}

// SetWindow changes a window's type or knobs and returns its new state.
func (c *Client) SetWindow(p SetWindowPayload) (*WindowInfo, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal set payload: %w", err)
	}

	resp, err := c.sendRequest(&Request{
		Command: CommandSetWindow,
		Payload: payload,
	})
	if err != nil {
		return nil, err
	}

	var info WindowInfo
	if err := json.Unmarshal(resp.Data, &info); err != nil {
		return nil, fmt.Errorf("failed to parse window data: %w", err)
	}

	return &info, nil
}

// Stick asks the daemon to re-evaluate a window's attachment.
func (c *Client) Stick(id uint32) (*StickData, error) {
	payload, err := json.Marshal(StickPayload{ID: id})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal stick payload: %w", err)
	}

	resp, err := c.sendRequest(&Request{
		Command: CommandStick,
		Payload: payload,
	})
	if err != nil {
		return nil, err
	}

	var data StickData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to parse stick data: %w", err)
	}

	return &data, nil
}

// Ping checks if the daemon is responding
func (c *Client) Ping() error {
	_, err := c.GetStatus()
	return err
}
