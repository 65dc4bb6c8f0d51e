package api

import (
	"context"
	"log/slog"
	"net"
	"net/http"
)

// APIServer serves the version endpoints.
type APIServer struct {
	versions VersionReader
	server   *Server
	logger   *slog.Logger
}

// NewAPIServer creates an APIServer backed by versions.
func NewAPIServer(addr string, versions VersionReader, logger *slog.Logger) *APIServer {
	if logger == nil {
		logger = slog.Default()
	}
	server := NewServer(addr, logger)
	server.Router().Mount("/", NewVersionRouter(versions, logger).Routes())

	return &APIServer{
		versions: versions,
		server:   &server,
		logger:   logger,
	}
}

// Handler returns the fully wired handler for use with custom servers and tests.
func (a *APIServer) Handler() http.Handler {
	return a.server.Handler()
}

// ListenAndServe listens on the configured address and blocks until Shutdown.
func (a *APIServer) ListenAndServe() error {
	return a.server.Start()
}

// Serve blocks serving on ln until Shutdown.
func (a *APIServer) Serve(ln net.Listener) error {
	return a.server.Serve(ln)
}

// Shutdown gracefully shuts down the server.
func (a *APIServer) Shutdown(ctx context.Context) error {
	return a.server.Shutdown(ctx)
}

// Addr returns the configured listen address.
func (a *APIServer) Addr() string {
	return a.server.Addr()
}
