// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	repository "github.com/greenbin/bunrigo/internal/adapters/repository"
	service "github.com/greenbin/bunrigo/internal/app"
	"github.com/greenbin/bunrigo/internal/domain/classify"
	"github.com/greenbin/bunrigo/internal/domain/model"
	"github.com/greenbin/bunrigo/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// IdentifyOrCreate validates a submitted id and creates or touches
	// its record.
	IdentifyOrCreate(ctx context.Context, studentID string) (model.StudentRecord, error)

	// Student returns an existing record plus rank, or a not-found error.
	Student(ctx context.Context, studentID string) (model.StudentRecord, int, error)

	// Capture runs one submission through the two-stage capture flow.
	Capture(ctx context.Context, req service.CaptureRequest) (service.CaptureResult, error)

	// Read operations expose leaderboard data.
	Leaderboard(ctx context.Context, n int) ([]types.Entry, error)
	RankOf(ctx context.Context, studentID string) (types.Entry, error)
}

// Entry mirrors the read shape returned by leaderboard queries.
type Entry = types.Entry

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	studentsHandler    *StudentsHandler
	captureHandler     *CaptureHandler
	leaderboardHandler *LeaderboardHandler
	rankHandler        *RankHandler
	dashboardHandler   *dashboardHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxLeaderboardLimit int) *Server {
	return &Server{
		healthHandler:      NewHealthHandler(),
		statsHandler:       NewStatsHandler(statsProvider),
		studentsHandler:    NewStudentsHandler(deps),
		captureHandler:     NewCaptureHandler(deps),
		leaderboardHandler: NewLeaderboardHandler(deps, maxLeaderboardLimit),
		rankHandler:        NewRankHandler(deps),
		dashboardHandler:   newDashboardHandler(),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/dashboard", s.dashboardHandler.HandleDashboard)
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/students", MetricsMiddleware(s.studentsHandler.HandleSubmit, "students"))
	mux.HandleFunc("/students/", MetricsMiddleware(s.studentsHandler.HandleGetStudent, "student"))
	mux.HandleFunc("/capture", MetricsMiddleware(s.captureHandler.HandleCapture, "capture"))
	mux.HandleFunc("/leaderboard", MetricsMiddleware(s.leaderboardHandler.HandleGetLeaderboard, "leaderboard"))
	mux.HandleFunc("/rank/", MetricsMiddleware(s.rankHandler.HandleGetRank, "rank"))
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

// writeServiceError is the single boundary translator: it maps every
// typed service error kind onto one user-facing outcome.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrInvalidStudentID),
		errors.Is(err, classify.ErrBadImage),
		errors.Is(err, classify.ErrUnknownStage),
		errors.Is(err, service.ErrMissingLabel),
		errors.Is(err, service.ErrMissingToken),
		errors.Is(err, service.ErrInvalidAward):
		writeError(w, http.StatusBadRequest, "invalid_input", err)
	case errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err)
	case errors.Is(err, repository.ErrSave), errors.Is(err, repository.ErrLoad):
		// Storage failures are retryable; tell the client so.
		writeError(w, http.StatusServiceUnavailable, "storage_unavailable", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}
