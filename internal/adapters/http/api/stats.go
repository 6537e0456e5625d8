// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"

	"github.com/Adelson021/rfv/internal/domain/types"
)

// StatsProvider exposes the segmentation session counters served on /stats.
type StatsProvider interface {
	GetStats() types.ServiceStats
}

// StatsHandler serves the session counters: uploads so far, live datasets
// and customers, recall cache size, and the configured bounds.
type StatsHandler struct {
	provider StatsProvider
}

// NewStatsHandler creates a stats handler backed by provider.
func NewStatsHandler(provider StatsProvider) *StatsHandler {
	return &StatsHandler{provider: provider}
}

// HandleStats handles GET /stats.
func (h *StatsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.provider.GetStats())
}
