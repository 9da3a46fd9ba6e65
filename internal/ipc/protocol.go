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
	CommandGetMonitors CommandType = "GET_MONITORS"
	CommandGetCorners  CommandType = "GET_CORNERS"
	CommandPreviewSnap CommandType = "PREVIEW_SNAP"
	CommandHidePreview CommandType = "HIDE_PREVIEW"
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

// Rect is a rectangle in root window coordinates.
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// StatusData represents the data returned by GET_STATUS
type StatusData struct {
	Screen         int   `json:"screen"`
	MonitorCount   int   `json:"monitor_count"`
	Bounds         Rect  `json:"bounds"`
	PreviewVisible bool  `json:"preview_visible"`
	PreviewAlpha   bool  `json:"preview_alpha"`
	UptimeSeconds  int64 `json:"uptime_seconds"`
	DaemonRunning  bool  `json:"daemon_running"`
}

// MonitorInfo represents information about a single monitor
type MonitorInfo struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Rect Rect   `json:"rect"`
	// Neighbors maps a direction name to the adjacent monitor ID.
	Neighbors map[string]int `json:"neighbors,omitempty"`
}

// MonitorsData represents the data returned by GET_MONITORS
type MonitorsData struct {
	Monitors []MonitorInfo `json:"monitors"`
}

// CornerInfo is the state of one hot corner.
type CornerInfo struct {
	Corner        string `json:"corner"`
	Enabled       bool   `json:"enabled"`
	ActionEnabled bool   `json:"action_enabled"`
	Inside        bool   `json:"inside"`
	TriggerRect   Rect   `json:"trigger_rect"`
}

// CornersData represents the data returned by GET_CORNERS
type CornersData struct {
	ActionsEnabled bool         `json:"actions_enabled"`
	Corners        []CornerInfo `json:"corners"`
}

// PreviewSnapPayload represents the payload for PREVIEW_SNAP. Without a
// point the daemon uses the live pointer.
type PreviewSnapPayload struct {
	Mode    string `json:"mode"`
	X       *int   `json:"x,omitempty"`
	Y       *int   `json:"y,omitempty"`
	DelayMS *int   `json:"delay_ms,omitempty"`
}

// PreviewData is returned by PREVIEW_SNAP.
type PreviewData struct {
	Monitor int  `json:"monitor"`
	Target  Rect `json:"target"`
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
