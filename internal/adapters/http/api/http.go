// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	service "github.com/Adelson021/rfv/internal/app"

	"github.com/Adelson021/rfv/internal/adapters/ingest"
	"github.com/Adelson021/rfv/internal/adapters/repository"
	"github.com/Adelson021/rfv/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Upload runs the full pipeline on an uploaded file. A zero reference
	// means "use the dataset's most recent purchase date".
	Upload(ctx context.Context, r io.Reader, filename string, reference time.Time) (types.Summary, error)

	// Dataset read and lifecycle operations.
	Datasets(ctx context.Context) []types.Summary
	Dataset(ctx context.Context, id string) (types.Summary, error)
	DeleteDataset(ctx context.Context, id string) error
	Preview(ctx context.Context, id string, rows int) ([]types.TransactionRow, error)
	Segments(ctx context.Context, id, score string, limit, offset int) ([]types.SegmentRow, int, error)
	Distribution(ctx context.Context, id string) ([]types.ScoreCount, error)
	Top(ctx context.Context, id string, limit int) ([]types.SegmentRow, error)

	// Actions returns the effective marketing action catalog.
	Actions(ctx context.Context) (map[string]string, string)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler   *HealthHandler
	statsHandler    *StatsHandler
	datasetsHandler *DatasetsHandler
	actionsHandler  *ActionsHandler
}

// Default query limits.
const (
	defaultMaxPageSize = 1000
	defaultTopLimit    = 10
)

// Option applies a configuration option to the Server.
type Option func(*Server)

// WithMaxPageSize caps the segments endpoint's limit parameter.
func WithMaxPageSize(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.datasetsHandler.maxPageSize = n
		}
	}
}

// WithTopLimit sets the default size of the top-customers list.
func WithTopLimit(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.datasetsHandler.topLimit = n
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...Option) *Server {
	s := &Server{
		healthHandler:   NewHealthHandler(),
		statsHandler:    NewStatsHandler(statsProvider),
		datasetsHandler: NewDatasetsHandler(deps),
		actionsHandler:  NewActionsHandler(deps),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/actions", MetricsMiddleware(s.actionsHandler.HandleGetActions, "actions"))
	mux.HandleFunc("/datasets", MetricsMiddleware(s.datasetsHandler.HandleCollection, "datasets"))
	mux.HandleFunc("/datasets/", MetricsMiddleware(s.datasetsHandler.HandleResource, "dataset"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeDomainError translates pipeline errors into HTTP responses.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err)
	case errors.Is(err, service.ErrUploadTooLarge):
		writeError(w, http.StatusRequestEntityTooLarge, "upload_too_large", err)
	case errors.Is(err, service.ErrEmptyUpload),
		errors.Is(err, ingest.ErrEmptyFile):
		writeError(w, http.StatusBadRequest, "empty_upload", err)
	case errors.Is(err, ingest.ErrUnsupportedFormat):
		writeError(w, http.StatusBadRequest, "unsupported_format", err)
	case errors.Is(err, ingest.ErrMissingColumns):
		writeError(w, http.StatusBadRequest, "missing_columns", err)
	case errors.Is(err, ingest.ErrBadCell):
		writeError(w, http.StatusBadRequest, "malformed_cell", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}
