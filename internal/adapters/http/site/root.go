// Package site handles the embedded student-facing web app.
package site

import (
	"context"
	"errors"
	"net/http"
)

// Error constants
var (
	ErrServe = errors.New("site serve failed")
)

// Register attaches the embedded student app routes to mux.
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}

	// Serve the embedded student app at root /
	files := http.FileServer(FS())
	mux.Handle("/", files)
}

// RootHandler handles root path requests
type RootHandler struct{}

// NewRootHandler creates a new root handler
func NewRootHandler() *RootHandler {
	return &RootHandler{}
}

// HandleRoot handles GET / requests and serves the embedded student app
func (h *RootHandler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	files := http.FileServer(FS())
	files.ServeHTTP(w, r)
}
