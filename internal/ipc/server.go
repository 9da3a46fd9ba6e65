package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"sync"
	"time"

	"github.com/1broseidon/wmgeom/internal/screen"
	"github.com/1broseidon/wmgeom/internal/tiling"
)

// ServerOptions configures a Server.
type ServerOptions struct {
	SocketPath string
	// Reload re-reads the config and applies it to the screen.
	Reload func() error
	// Pointer returns the live pointer position for previews without a point.
	Pointer func() (tiling.Point, error)
	// ShowDelay is the default preview delay.
	ShowDelay func() time.Duration
	Logger    *slog.Logger
}

// Server handles IPC requests from clients
type Server struct {
	socketPath   string
	listener     net.Listener
	screen       *screen.Context
	reload       func() error
	pointer      func() (tiling.Point, error)
	showDelay    func() time.Duration
	logger       *slog.Logger
	startTime    time.Time
	shuttingDown bool
	shutdownMu   sync.Mutex
}

// NewServer creates a new IPC server for scr.
func NewServer(scr *screen.Context, opts ServerOptions) (*Server, error) {
	if opts.SocketPath == "" {
		return nil, fmt.Errorf("IPC socket path is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	showDelay := opts.ShowDelay
	if showDelay == nil {
		showDelay = func() time.Duration { return 0 }
	}

	// Remove existing socket if present
	os.Remove(opts.SocketPath)

	return &Server{
		socketPath: opts.SocketPath,
		screen:     scr,
		reload:     opts.Reload,
		pointer:    opts.Pointer,
		showDelay:  showDelay,
		logger:     logger.With("component", "ipc"),
		startTime:  time.Now(),
	}, nil
}

// Start begins listening for IPC connections
func (s *Server) Start() error {
	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create IPC socket: %w", err)
	}
	s.listener = listener

	// Set socket permissions
	if err := os.Chmod(s.socketPath, 0600); err != nil {
		listener.Close()
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	s.logger.Info("IPC server listening", "socket", s.socketPath)

	go s.acceptLoop()
	return nil
}

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

		go s.handleConnection(conn)
	}
}

// handleConnection serves one newline-terminated JSON request.
func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	reader := bufio.NewReader(conn)
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
		s.logger.Warn("failed to marshal response", "error", err)
		return
	}
	respData = append(respData, '\n')
	if _, err := conn.Write(respData); err != nil {
		s.logger.Warn("failed to send response", "error", err)
	}
}

func (s *Server) handleCommand(req *Request) *Response {
	s.logger.Debug("IPC request", "command", req.Command)
	switch req.Command {
	case CommandReload:
		return s.handleReload()
	case CommandGetStatus:
		return s.handleGetStatus()
	case CommandGetMonitors:
		return s.handleGetMonitors()
	case CommandGetCorners:
		return s.handleGetCorners()
	case CommandPreviewSnap:
		return s.handlePreviewSnap(req.Payload)
	case CommandHidePreview:
		return s.handleHidePreview()
	default:
		return NewErrorResponse(fmt.Sprintf("Unknown command: %s", req.Command))
	}
}

func (s *Server) handleReload() *Response {
	if s.reload == nil {
		return NewErrorResponse("reload is not supported")
	}
	if err := s.reload(); err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to reload config: %v", err))
	}
	s.logger.Info("config reloaded via IPC")
	return ok(nil)
}

func (s *Server) handleGetStatus() *Response {
	status := StatusData{
		Screen:        s.screen.Number(),
		MonitorCount:  s.screen.Monitors().Len(),
		Bounds:        rectFrom(s.screen.Bounds()),
		UptimeSeconds: int64(time.Since(s.startTime).Seconds()),
		DaemonRunning: true,
	}
	if st, ok := s.screen.TilePreviewState(); ok {
		status.PreviewVisible = st.Visible
		status.PreviewAlpha = st.HasAlpha
	}
	return ok(status)
}

func (s *Server) handleGetMonitors() *Response {
	set := s.screen.Monitors()
	infos := make([]MonitorInfo, 0, set.Len())
	for _, m := range set.All() {
		info := MonitorInfo{ID: m.Index, Name: m.Name, Rect: rectFrom(m.Rect)}
		for _, dir := range []tiling.Direction{tiling.DirUp, tiling.DirDown, tiling.DirLeft, tiling.DirRight} {
			if n, found := set.Neighbor(m.Index, dir); found {
				if info.Neighbors == nil {
					info.Neighbors = make(map[string]int)
				}
				info.Neighbors[dir.String()] = n.Index
			}
		}
		infos = append(infos, info)
	}
	return ok(MonitorsData{Monitors: infos})
}

func (s *Server) handleGetCorners() *Response {
	m := s.screen.Corners()
	data := CornersData{ActionsEnabled: m.ActionsEnabled()}
	for _, corner := range tiling.Corners {
		st := m.State(corner)
		data.Corners = append(data.Corners, CornerInfo{
			Corner:        corner.String(),
			Enabled:       st.Enabled,
			ActionEnabled: st.ActionEnabled,
			Inside:        m.Inside(corner),
			TriggerRect:   rectFrom(st.TriggerRect),
		})
	}
	return ok(data)
}

func (s *Server) handlePreviewSnap(payload json.RawMessage) *Response {
	var req PreviewSnapPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid preview payload: %v", err))
	}
	mode, err := tiling.ParseSnapMode(req.Mode)
	if err != nil {
		return NewErrorResponse(err.Error())
	}

	delay := s.showDelay()
	if req.DelayMS != nil {
		if *req.DelayMS < 0 {
			return NewErrorResponse("delay_ms must be >= 0")
		}
		delay = time.Duration(*req.DelayMS) * time.Millisecond
	}

	var p tiling.Point
	switch {
	case req.X != nil && req.Y != nil:
		p = tiling.Point{X: *req.X, Y: *req.Y}
	case s.pointer != nil:
		if p, err = s.pointer(); err != nil {
			return NewErrorResponse(fmt.Sprintf("Failed to query pointer: %v", err))
		}
	default:
		return NewErrorResponse("x and y are required")
	}

	mon, target, err := s.screen.SnapPreview(p, mode, delay)
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to show preview: %v", err))
	}
	return ok(PreviewData{Monitor: mon.Index, Target: rectFrom(target)})
}

func (s *Server) handleHidePreview() *Response {
	if err := s.screen.TilePreviewHide(); err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to hide preview: %v", err))
	}
	return ok(nil)
}

func (s *Server) sendError(conn net.Conn, errMsg string) {
	resp := NewErrorResponse(errMsg)
	data, _ := resp.Marshal()
	data = append(data, '\n')
	conn.Write(data)
}

// Stop gracefully shuts down the IPC server
func (s *Server) Stop() {
	s.shutdownMu.Lock()
	s.shuttingDown = true
	s.shutdownMu.Unlock()

	if s.listener != nil {
		s.listener.Close()
	}
	os.Remove(s.socketPath)
}

func ok(data any) *Response {
	resp, err := NewOKResponse(data)
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	return resp
}

func rectFrom(r tiling.Rect) Rect {
	return Rect{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
}
