// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"net/http"
	"strings"

	service "github.com/greenbin/bunrigo/internal/app"
	"github.com/greenbin/bunrigo/internal/domain/classify"
)

// CaptureHandler handles capture flow submissions.
type CaptureHandler struct {
	deps Dependencies
}

// NewCaptureHandler creates a new capture handler.
func NewCaptureHandler(deps Dependencies) *CaptureHandler {
	return &CaptureHandler{deps: deps}
}

// captureRequest mirrors the OpenAPI schema for POST /capture.
type captureRequest struct {
	StudentID  string `json:"student_id"`
	Stage      string `json:"stage"`
	Image      string `json:"image"`
	Label      string `json:"label,omitempty"`
	AwardToken string `json:"award_token,omitempty"`
}

func (c captureRequest) validate() error {
	switch {
	case strings.TrimSpace(c.StudentID) == "":
		return NewKind("api.capture", ErrBadRequest)
	case strings.TrimSpace(c.Stage) == "":
		return NewKind("api.capture", ErrBadRequest)
	case strings.TrimSpace(c.Image) == "":
		return NewKind("api.capture", ErrBadRequest)
	}
	return nil
}

// captureResponse carries either a retry instruction or a stage result.
type captureResponse struct {
	Success bool   `json:"success"`
	Stage   string `json:"stage"`

	// Retry fields
	Reason string `json:"reason,omitempty"`
	Next   string `json:"next,omitempty"`

	// Identify stage fields
	Label      string  `json:"label,omitempty"`
	Confidence float64 `json:"confidence,omitempty"`
	Bin        string  `json:"bin,omitempty"`
	AwardToken string  `json:"award_token,omitempty"`

	// Confirm stage fields
	ScoreAwarded int  `json:"score_awarded,omitempty"`
	NewScore     int  `json:"new_score,omitempty"`
	Duplicate    bool `json:"duplicate,omitempty"`
}

// HandleCapture handles POST /capture requests for both stages of the flow.
func (h *CaptureHandler) HandleCapture(w http.ResponseWriter, r *http.Request) {
	const op = "api.capture"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req captureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	stage, err := classify.ParseStage(req.Stage)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	res, err := h.deps.Capture(r.Context(), service.CaptureRequest{
		StudentID:  req.StudentID,
		Stage:      stage,
		Image:      req.Image,
		Label:      req.Label,
		AwardToken: req.AwardToken,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toCaptureResponse(res))
}

func toCaptureResponse(res service.CaptureResult) captureResponse {
	if res.Retry {
		return captureResponse{
			Success: false,
			Stage:   res.Stage.String(),
			Reason:  res.Reason,
			Next:    "recapture",
		}
	}
	return captureResponse{
		Success:      true,
		Stage:        res.Stage.String(),
		Label:        res.Label,
		Confidence:   res.Confidence,
		Bin:          res.Bin,
		AwardToken:   res.AwardToken,
		ScoreAwarded: res.Awarded,
		NewScore:     res.Score,
		Duplicate:    res.Duplicate,
	}
}
