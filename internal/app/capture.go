package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/greenbin/bunrigo/internal/domain/classify"
	"github.com/greenbin/bunrigo/pkg/logger"
	"github.com/greenbin/bunrigo/pkg/metrics"
)

// Retry reasons shown to the student on a negative classification.
const (
	reasonUnknownTrash = "trash type could not be identified"
	reasonWrongBin     = "item was not placed in the correct bin"
)

// CaptureRequest carries one capture submission through the two-stage flow.
type CaptureRequest struct {
	StudentID string
	Stage     classify.Stage
	// Image is the raw payload from the camera page, a base64 data URL.
	Image string
	// Label is the trash type chosen in the identify stage. Confirm only.
	Label string
	// AwardToken is the single-use token minted by the identify stage.
	// Confirm only; replays never award twice.
	AwardToken string
}

// CaptureResult is the outcome of one capture submission. A negative
// classification is a normal result with Retry set, not an error.
type CaptureResult struct {
	Stage classify.Stage

	// Retry instructs the student to recapture, with a reason.
	Retry  bool
	Reason string

	// Identify stage outputs.
	Label      string
	Confidence float64
	Bin        string
	AwardToken string

	// Confirm stage outputs.
	Awarded   int
	Score     int
	Duplicate bool
}

// Capture runs one submission through the capture flow: identify mints an
// award token alongside the label, confirm spends it on a correct-bin
// verdict and awards the configured points exactly once per token.
func (s *Service) Capture(ctx context.Context, req CaptureRequest) (CaptureResult, error) {
	// The record must exist from a prior IdentifyOrCreate; the capture
	// flow never creates records.
	rec, _, err := s.Student(ctx, req.StudentID)
	if err != nil {
		return CaptureResult{}, err
	}

	image, err := classify.DecodeImage(req.Image)
	if err != nil {
		return CaptureResult{}, err
	}

	switch req.Stage {
	case classify.StageIdentify:
		return s.captureIdentify(ctx, image)
	case classify.StageConfirm:
		return s.captureConfirm(ctx, req, image, rec.Score)
	default:
		return CaptureResult{}, classify.ErrUnknownStage
	}
}

func (s *Service) captureIdentify(ctx context.Context, image []byte) (CaptureResult, error) {
	id, err := s.classifier.Identify(ctx, image)
	if err != nil {
		return CaptureResult{}, err
	}

	if id.Label == classify.LabelUnknown {
		metrics.RecordClassification("identify", "unknown")
		return CaptureResult{
			Stage:  classify.StageIdentify,
			Retry:  true,
			Reason: reasonUnknownTrash,
		}, nil
	}

	metrics.RecordClassification("identify", "identified")
	return CaptureResult{
		Stage:      classify.StageIdentify,
		Label:      id.Label,
		Confidence: id.Confidence,
		Bin:        s.bins.Lookup(id.Label),
		AwardToken: uuid.NewString(),
	}, nil
}

func (s *Service) captureConfirm(ctx context.Context, req CaptureRequest, image []byte, currentScore int) (CaptureResult, error) {
	if req.Label == "" {
		return CaptureResult{}, ErrMissingLabel
	}
	if req.AwardToken == "" {
		return CaptureResult{}, ErrMissingToken
	}

	verdict, err := s.classifier.Confirm(ctx, image, req.Label)
	if err != nil {
		return CaptureResult{}, err
	}

	if !verdict.Correct {
		metrics.RecordClassification("confirm", "wrong_bin")
		return CaptureResult{
			Stage:  classify.StageConfirm,
			Retry:  true,
			Reason: reasonWrongBin,
		}, nil
	}

	// Spend the token before awarding. A replayed confirm reports the
	// current score without a second award.
	if s.tokens.SeenAndRecord(ctx, req.AwardToken) {
		metrics.RecordDuplicateToken()
		s.logger.Warn(ctx, "replayed award token",
			logger.String("studentID", req.StudentID),
		)
		return CaptureResult{
			Stage:     classify.StageConfirm,
			Duplicate: true,
			Score:     currentScore,
		}, nil
	}

	rec, err := s.AwardPoints(ctx, req.StudentID, s.award)
	if err != nil {
		// Roll back the spent token so a retry can succeed.
		s.tokens.Forget(ctx, req.AwardToken)
		return CaptureResult{}, err
	}

	metrics.RecordClassification("confirm", "correct")
	return CaptureResult{
		Stage:   classify.StageConfirm,
		Awarded: s.award,
		Score:   rec.Score,
	}, nil
}
