// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"net/http"
	"strings"
)

// StudentsHandler handles student identification requests.
type StudentsHandler struct {
	deps Dependencies
}

// NewStudentsHandler creates a new students handler.
func NewStudentsHandler(deps Dependencies) *StudentsHandler {
	return &StudentsHandler{deps: deps}
}

// submitRequest mirrors the OpenAPI schema for POST /students.
type submitRequest struct {
	StudentID string `json:"student_id"`
}

// studentResponse is returned by both student endpoints.
type studentResponse struct {
	StudentID string `json:"student_id"`
	Score     int    `json:"score"`
	Rank      int    `json:"rank"`
}

// HandleSubmit handles POST /students requests: validates the submitted
// id, creates or touches its record and reports the current rank.
func (h *StudentsHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	const op = "api.submit_student"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	rec, err := h.deps.IdentifyOrCreate(r.Context(), req.StudentID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	entry, err := h.deps.RankOf(r.Context(), rec.StudentID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, studentResponse{
		StudentID: rec.StudentID,
		Score:     rec.Score,
		Rank:      entry.Rank,
	})
}

// HandleGetStudent handles GET /students/{student_id} requests. The
// capture page uses it as a guard: unknown ids send the student back to
// the entry page.
func (h *StudentsHandler) HandleGetStudent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	// Extract path parameter after /students/
	id := strings.TrimPrefix(r.URL.Path, "/students/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}

	rec, rank, err := h.deps.Student(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, studentResponse{
		StudentID: rec.StudentID,
		Score:     rec.Score,
		Rank:      rank,
	})
}
