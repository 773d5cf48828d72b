// Package livereload serves the webapp output folder during watch mode and
// pushes reload notifications to connected browsers over socket.io.
package livereload

import (
	"context"
	"net"
	"net/http"

	"github.com/zishang520/socket.io/v2/socket"

	"github.com/vk/packlane/internal/ctxlog"
)

// ReloadEvent is the event name broadcast to clients after a successful
// rebuild.
const ReloadEvent = "reload"

// Server serves the output folder at / and the conventional static subfolder
// at /static, and broadcasts rebuild notifications on a socket.io namespace.
type Server struct {
	addr      string
	root      string
	staticDir string

	io        *socket.Server
	httpSrv   *http.Server
	boundAddr string
}

// New creates a live-reload server for the given output folder. Nothing is
// bound until Start is called.
func New(root, staticDir, addr string) *Server {
	return &Server{
		addr:      addr,
		root:      root,
		staticDir: staticDir,
	}
}

// Start binds the listen address and begins serving in the background. A
// failure to bind is returned synchronously; later serve errors only get
// logged, the watch session owns process lifetime.
func (s *Server) Start(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	s.io = socket.NewServer(nil, nil)
	s.io.On("connection", func(clients ...any) {
		client := clients[0].(*socket.Socket)
		logger.Debug("Live-reload client connected.", "sid", client.Id())
	})

	mux := http.NewServeMux()
	mux.Handle("/socket.io/", s.io.ServeHandler(nil))
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir(s.staticDir))))
	mux.Handle("/", http.FileServer(http.Dir(s.root)))

	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.httpSrv = &http.Server{Handler: mux}
	s.boundAddr = ln.Addr().String()

	go func() {
		logger.Info("🔁 Live-reload server started", "address", ln.Addr().String(), "root", s.root)
		if err := s.httpSrv.Serve(ln); err != nil && err != http.ErrServerClosed {
			logger.Error("Live-reload server failed", "error", err)
		}
	}()
	return nil
}

// Addr returns the bound listen address once Start has succeeded, the
// configured address before that.
func (s *Server) Addr() string {
	if s.boundAddr != "" {
		return s.boundAddr
	}
	return s.addr
}

// Broadcast notifies every connected client that the bundle changed.
func (s *Server) Broadcast() {
	if s.io != nil {
		s.io.Emit(ReloadEvent)
	}
}

// Close stops the HTTP server and disconnects all clients.
func (s *Server) Close() error {
	if s.io != nil {
		s.io.Close(nil)
	}
	if s.httpSrv != nil {
		return s.httpSrv.Close()
	}
	return nil
}
