// Package site serves the embedded dashboard single-page app.
package site

import (
	"context"
	"errors"
	"net/http"
)

// Error constants
var (
	ErrServe = errors.New("dashboard site serve failed")
)

// Register attaches the embedded dashboard routes to mux.
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}

	// Serve the embedded dashboard at root /
	files := http.FileServer(FS())
	mux.Handle("/", files)
}
