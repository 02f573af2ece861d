// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
	"strings"
)

// RankHandler handles rank requests.
type RankHandler struct {
	deps Dependencies
}

// NewRankHandler creates a new rank handler.
func NewRankHandler(deps Dependencies) *RankHandler {
	return &RankHandler{deps: deps}
}

// HandleGetRank handles GET /rank/{student_id} requests.
// Unknown ids are not an error here: they come back with the sentinel
// rank one past last place and a zero score.
func (h *RankHandler) HandleGetRank(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	// Extract path parameter after /rank/
	id := strings.TrimPrefix(r.URL.Path, "/rank/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	entry, err := h.deps.RankOf(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}
