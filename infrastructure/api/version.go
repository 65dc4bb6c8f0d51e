package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/helixml/campsite/domain/artifact"
	apimiddleware "github.com/helixml/campsite/infrastructure/api/middleware"
)

// MessageIndexNotFound is returned when no index has been published.
const MessageIndexNotFound = "Index file not found."

// VersionReader reports the current index generation.
type VersionReader interface {
	Current(ctx context.Context) (int64, error)
}

// VersionResponse is the body of a successful GET /version.
type VersionResponse struct {
	Version int64 `json:"version"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

// VersionRouter handles the version and health endpoints.
type VersionRouter struct {
	versions VersionReader
	logger   *slog.Logger
}

// NewVersionRouter creates a VersionRouter.
func NewVersionRouter(versions VersionReader, logger *slog.Logger) *VersionRouter {
	if logger == nil {
		logger = slog.Default()
	}
	return &VersionRouter{versions: versions, logger: logger}
}

// Routes returns the chi router.
func (v *VersionRouter) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/version", v.Version)
	r.Get("/health", v.Health)
	r.Get("/healthz", v.Health)
	return r
}

// Version handles GET /version.
func (v *VersionRouter) Version(w http.ResponseWriter, r *http.Request) {
	gen, err := v.versions.Current(r.Context())
	if errors.Is(err, artifact.ErrNotFound) {
		apimiddleware.WriteError(w, http.StatusNotFound, MessageIndexNotFound)
		return
	}
	if err != nil {
		v.logger.Error("read index version", slog.String("error", err.Error()))
		apimiddleware.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	apimiddleware.WriteJSON(w, http.StatusOK, VersionResponse{Version: gen})
}

// Health handles GET /health and GET /healthz.
func (v *VersionRouter) Health(w http.ResponseWriter, _ *http.Request) {
	apimiddleware.WriteJSON(w, http.StatusOK, HealthResponse{Status: "healthy"})
}
