// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Upload form fields.
const (
	fileField      = "file"
	referenceField = "reference_date"
)

// maxMultipartMemory bounds the in-memory part of multipart parsing.
const maxMultipartMemory = 10 << 20

// DatasetsHandler handles dataset collection and resource requests.
type DatasetsHandler struct {
	deps        Dependencies
	maxPageSize int
	topLimit    int
}

// NewDatasetsHandler creates a new datasets handler.
func NewDatasetsHandler(deps Dependencies) *DatasetsHandler {
	return &DatasetsHandler{
		deps:        deps,
		maxPageSize: defaultMaxPageSize,
		topLimit:    defaultTopLimit,
	}
}

// HandleCollection handles POST /datasets (upload) and GET /datasets (list).
func (h *DatasetsHandler) HandleCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.handleUpload(w, r)
	case http.MethodGet:
		writeJSON(w, http.StatusOK, h.deps.Datasets(r.Context()))
	default:
		http.NotFound(w, r)
	}
}

// handleUpload accepts a multipart upload and runs the pipeline inline.
// The response carries the scored dataset's summary.
func (h *DatasetsHandler) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: %v", ErrBadRequest, err))
		return
	}

	file, header, err := r.FormFile(fileField)
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing_file", ErrMissingFile)
		return
	}
	defer func() { _ = file.Close() }()

	var reference time.Time
	if raw := strings.TrimSpace(r.FormValue(referenceField)); raw != "" {
		reference, err = time.Parse("2006-01-02", raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_reference_date", ErrBadReference)
			return
		}
	}

	summary, err := h.deps.Upload(r.Context(), file, header.Filename, reference)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	status := http.StatusCreated
	if summary.Duplicate {
		status = http.StatusOK
	}
	writeJSON(w, status, summary)
}

// HandleResource routes /datasets/{id} and its sub-resources.
func (h *DatasetsHandler) HandleResource(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/datasets/")
	if path == "" {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}

	id, sub, _ := strings.Cut(path, "/")
	if id == "" || strings.Contains(sub, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}

	switch sub {
	case "":
		h.handleDataset(w, r, id)
	case "preview":
		h.handlePreview(w, r, id)
	case "segments":
		h.handleSegments(w, r, id)
	case "distribution":
		h.handleDistribution(w, r, id)
	case "top":
		h.handleTop(w, r, id)
	case "export":
		h.handleExport(w, r, id)
	default:
		http.NotFound(w, r)
	}
}

// handleDataset handles GET and DELETE /datasets/{id}.
func (h *DatasetsHandler) handleDataset(w http.ResponseWriter, r *http.Request, id string) {
	switch r.Method {
	case http.MethodGet:
		summary, err := h.deps.Dataset(r.Context(), id)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, summary)
	case http.MethodDelete:
		if err := h.deps.DeleteDataset(r.Context(), id); err != nil {
			writeDomainError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		http.NotFound(w, r)
	}
}

// handlePreview handles GET /datasets/{id}/preview?rows=N.
func (h *DatasetsHandler) handlePreview(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	rows, ok := queryInt(w, r, "rows", 0)
	if !ok {
		return
	}
	preview, err := h.deps.Preview(r.Context(), id, rows)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, preview)
}

// handleSegments handles GET /datasets/{id}/segments?score=&limit=&offset=.
func (h *DatasetsHandler) handleSegments(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	limit, ok := queryInt(w, r, "limit", 0)
	if !ok {
		return
	}
	if limit > h.maxPageSize {
		writeError(w, http.StatusBadRequest, "limit_exceeded",
			fmt.Errorf("%w: limit must not exceed %d", ErrBadRequest, h.maxPageSize))
		return
	}
	offset, ok := queryInt(w, r, "offset", 0)
	if !ok {
		return
	}
	score := r.URL.Query().Get("score")

	rows, total, err := h.deps.Segments(r.Context(), id, score, limit, offset)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"total":  total,
		"limit":  limit,
		"offset": offset,
		"rows":   rows,
	})
}

// handleDistribution handles GET /datasets/{id}/distribution.
func (h *DatasetsHandler) handleDistribution(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	dist, err := h.deps.Distribution(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dist)
}

// handleTop handles GET /datasets/{id}/top?limit=N.
func (h *DatasetsHandler) handleTop(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	limit, ok := queryInt(w, r, "limit", h.topLimit)
	if !ok {
		return
	}
	rows, err := h.deps.Top(r.Context(), id, limit)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// queryInt parses an optional non-negative integer query parameter,
// writing a 400 response and returning false on bad input.
func queryInt(w http.ResponseWriter, r *http.Request, name string, def int) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		writeError(w, http.StatusBadRequest, "bad_request",
			fmt.Errorf("%w: %s must be a non-negative integer", ErrBadRequest, name))
		return 0, false
	}
	return n, true
}
