// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
)

// ActionsDependencies defines the interface for catalog reads.
type ActionsDependencies interface {
	Actions(ctx context.Context) (map[string]string, string)
}

// ActionsHandler handles marketing action catalog requests.
type ActionsHandler struct {
	deps ActionsDependencies
}

// NewActionsHandler creates a new actions handler.
func NewActionsHandler(deps ActionsDependencies) *ActionsHandler {
	return &ActionsHandler{deps: deps}
}

// actionsResponse mirrors the OpenAPI schema for GET /actions.
type actionsResponse struct {
	Actions map[string]string `json:"actions"`
	Default string            `json:"default"`
}

// HandleGetActions handles GET /actions requests.
func (h *ActionsHandler) HandleGetActions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	catalog, fallback := h.deps.Actions(r.Context())
	writeJSON(w, http.StatusOK, actionsResponse{Actions: catalog, Default: fallback})
}
