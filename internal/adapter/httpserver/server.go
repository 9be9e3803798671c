package httpserver

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/guillermoBallester/hzmeta/internal/core/service"
)

// Config holds HTTP server configuration.
type Config struct {
	ListenAddr        string
	CORSOrigin        string
	RateLimit         float64 // requests per minute per client IP; 0 disables
	ReadHeaderTimeout time.Duration
	IdleTimeout       time.Duration
}

// Server serves the metadata REST API and the streamable MCP endpoint.
type Server struct {
	httpServer *http.Server
	router     chi.Router
	logger     *slog.Logger
	cfg        Config
	limiter    *ipRateLimiter
}

// New creates a Server. mcpSrv may be nil, in which case /mcp is not mounted.
func New(cfg Config, metadata *service.MetadataService, mcpSrv *mcpserver.MCPServer, logger *slog.Logger) *Server {
	s := &Server{
		logger: logger,
		cfg:    cfg,
	}
	if cfg.RateLimit > 0 {
		s.limiter = newIPRateLimiter(cfg.RateLimit)
	}

	s.setupRoutes(metadata, mcpSrv)

	s.httpServer = &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           s.router,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}

	return s
}

// Handler returns the routed handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe starts the HTTP server and blocks until it stops.
// Returns nil if the server was shut down gracefully via Shutdown.
func (s *Server) ListenAndServe() error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ln)
}

// Serve accepts connections on ln until Shutdown.
func (s *Server) Serve(ln net.Listener) error {
	s.logger.Info("HTTP server listening",
		slog.String("addr", ln.Addr().String()),
	)
	if err := s.httpServer.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
