// Package api declares HTTP contracts and route registration helpers.
package api

import "net/http"

// dashboardHandler serves the embedded operations dashboard page.
type dashboardHandler struct{}

func newDashboardHandler() *dashboardHandler {
	return &dashboardHandler{}
}

// HandleDashboard handles GET /dashboard requests.
func (h *dashboardHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	page, err := staticFS.ReadFile("static/dashboard.html")
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(page)
}
