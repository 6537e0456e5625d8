// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"bytes"
	"net/http"
	"time"

	"github.com/Adelson021/rfv/internal/adapters/export"
	"github.com/Adelson021/rfv/pkg/metrics"
)

// Export formats and their media types.
const (
	formatCSV  = "csv"
	formatXLSX = "xlsx"

	csvContentType  = "text/csv; charset=utf-8"
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// handleExport handles GET /datasets/{id}/export?format=csv|xlsx&score=.
// The response is a file download preserving the original column order.
func (h *DatasetsHandler) handleExport(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = formatCSV
	}
	if format != formatCSV && format != formatXLSX {
		writeError(w, http.StatusBadRequest, "unknown_format", ErrUnknownFormat)
		return
	}

	score := r.URL.Query().Get("score")
	rows, _, err := h.deps.Segments(r.Context(), id, score, 0, 0)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	start := time.Now()
	var buf bytes.Buffer
	var filename, contentType string
	switch format {
	case formatCSV:
		filename, contentType = export.CSVFilename, csvContentType
		err = export.WriteCSV(&buf, rows)
	case formatXLSX:
		filename, contentType = export.XLSXFilename, xlsxContentType
		err = export.WriteXLSX(&buf, rows)
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "export_failed", err)
		return
	}
	metrics.RecordExport(format)
	metrics.RecordExportDuration(float64(time.Since(start).Milliseconds()))

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	_, _ = w.Write(buf.Bytes())
}
