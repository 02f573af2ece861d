// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"sync"
	"time"

	repository "github.com/greenbin/bunrigo/internal/adapters/repository"
	"github.com/greenbin/bunrigo/internal/domain/classify"
	"github.com/greenbin/bunrigo/internal/domain/model"
	"github.com/greenbin/bunrigo/internal/domain/ranking"
	"github.com/greenbin/bunrigo/internal/domain/token"
	"github.com/greenbin/bunrigo/internal/domain/types"
	"github.com/greenbin/bunrigo/pkg/logger"
	"github.com/greenbin/bunrigo/pkg/metrics"
)

// Default service configuration constants.
const (
	defaultAward           = 10
	defaultLeaderboardSize = 3
	defaultTokenCacheSize  = 10_000
)

// Service implements identification, scoring, ranking and the capture
// flow over a single record store.
//
// The store offers no concurrency control of its own, so the service
// serializes every load-modify-save sequence behind mu: concurrent awards
// for the same student are additive instead of last-writer-wins.
type Service struct {
	mu sync.RWMutex

	// Core components
	store      repository.Store
	classifier classify.Classifier
	tokens     token.Tracker
	bins       *classify.BinMap

	// Configuration
	award           int
	leaderboardSize int
	tokenCacheSize  int

	// State
	started bool

	now func() time.Time

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore sets the record store. Defaults to a file store on data.json.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithClassifier sets the classifier implementation.
func WithClassifier(c classify.Classifier) Option {
	return func(s *Service) {
		if c != nil {
			s.classifier = c
		}
	}
}

// WithBinMap sets the label-to-receptacle mapping.
func WithBinMap(m *classify.BinMap) Option {
	return func(s *Service) {
		if m != nil {
			s.bins = m
		}
	}
}

// WithAward sets the points granted per successful correct-bin event.
func WithAward(points int) Option {
	return func(s *Service) {
		if points > 0 {
			s.award = points
		}
	}
}

// WithLeaderboardSize sets the default top-N size.
func WithLeaderboardSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.leaderboardSize = n
		}
	}
}

// WithTokenCacheSize bounds the spent award-token tracker.
func WithTokenCacheSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.tokenCacheSize = n
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.logger = log
		}
	}
}

// WithClock overrides the time source. Used by tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		award:           defaultAward,
		leaderboardSize: defaultLeaderboardSize,
		tokenCacheSize:  defaultTokenCacheSize,
		now:             time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes components that were not injected via options.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}
	if s.store == nil {
		s.store = repository.NewFileStore(repository.WithLogger(s.logger))
	}
	if s.classifier == nil {
		s.classifier = classify.NewStubClassifier()
	}
	if s.bins == nil {
		s.bins = classify.NewBinMap(nil, "")
	}
	if s.tokens == nil {
		s.tokens = token.NewMemoryTracker(token.WithMaxSize(s.tokenCacheSize))
	}

	s.started = true
	s.logger.Info(ctx, "recycling service started",
		logger.Int("award", s.award),
		logger.Int("leaderboardSize", s.leaderboardSize),
	)
	return nil
}

// Stop shuts the service down. Present for lifecycle symmetry; the
// service holds no background goroutines or open handles.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "recycling service stopped")
}

// IdentifyOrCreate validates a submitted student id and returns its
// record, creating one with score zero on first sight or touching the
// activity timestamp otherwise. Either way the whole set is persisted.
func (s *Service) IdentifyOrCreate(ctx context.Context, studentID string) (model.StudentRecord, error) {
	if err := model.ValidateStudentID(studentID); err != nil {
		return model.StudentRecord{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	set, err := s.store.Load(ctx)
	if err != nil {
		return model.StudentRecord{}, err
	}

	idx := set.Find(studentID)
	if idx < 0 {
		rec := model.StudentRecord{
			StudentID:    studentID,
			Score:        0,
			LastActivity: s.now(),
		}
		set = append(set, rec)
		if err := s.store.Save(ctx, set); err != nil {
			return model.StudentRecord{}, err
		}
		metrics.RecordSubmission()
		metrics.RecordStudentCreated()
		s.logger.Info(ctx, "student record created", logger.String("studentID", studentID))
		return rec, nil
	}

	set[idx].LastActivity = s.now()
	if err := s.store.Save(ctx, set); err != nil {
		return model.StudentRecord{}, err
	}
	metrics.RecordSubmission()
	s.logger.Debug(ctx, "student record touched", logger.String("studentID", studentID))
	return set[idx], nil
}

// AwardPoints increments an existing student's score. The record must
// already exist from IdentifyOrCreate; awards never create records.
func (s *Service) AwardPoints(ctx context.Context, studentID string, amount int) (model.StudentRecord, error) {
	if err := model.ValidateStudentID(studentID); err != nil {
		return model.StudentRecord{}, err
	}
	if amount <= 0 {
		return model.StudentRecord{}, ErrInvalidAward
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	set, err := s.store.Load(ctx)
	if err != nil {
		return model.StudentRecord{}, err
	}

	idx := set.Find(studentID)
	if idx < 0 {
		return model.StudentRecord{}, ErrNotFound
	}

	set[idx].Score += amount
	set[idx].LastActivity = s.now()
	if err := s.store.Save(ctx, set); err != nil {
		return model.StudentRecord{}, err
	}

	metrics.RecordAward(amount)
	s.logger.Info(ctx, "points awarded",
		logger.String("studentID", studentID),
		logger.Int("amount", amount),
		logger.Int("score", set[idx].Score),
	)
	return set[idx], nil
}

// Student returns an existing record and its current rank, or ErrNotFound.
// Used as the capture page guard: no record, no camera.
func (s *Service) Student(ctx context.Context, studentID string) (model.StudentRecord, int, error) {
	if err := model.ValidateStudentID(studentID); err != nil {
		return model.StudentRecord{}, 0, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	set, err := s.store.Load(ctx)
	if err != nil {
		return model.StudentRecord{}, 0, err
	}
	idx := set.Find(studentID)
	if idx < 0 {
		return model.StudentRecord{}, 0, ErrNotFound
	}
	rank, _ := ranking.Rank(set, studentID)
	return set[idx], rank, nil
}

// Leaderboard returns the top n entries by descending score. A
// non-positive n falls back to the configured default size.
func (s *Service) Leaderboard(ctx context.Context, n int) ([]types.Entry, error) {
	if n <= 0 {
		n = s.leaderboardSize
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	set, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return ranking.TopN(set, n), nil
}

// RankOf returns the 1-based rank entry for a student id.
//
// Unknown ids keep the observed sentinel behavior: they rank one past
// last place (count+1) with a zero score instead of failing. Callers that
// need a hard not-found use Student instead.
func (s *Service) RankOf(ctx context.Context, studentID string) (types.Entry, error) {
	if err := model.ValidateStudentID(studentID); err != nil {
		return types.Entry{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	set, err := s.store.Load(ctx)
	if err != nil {
		return types.Entry{}, err
	}

	rank, ok := ranking.Rank(set, studentID)
	entry := types.Entry{Rank: rank, StudentID: studentID}
	if ok {
		entry.Score = set[set.Find(studentID)].Score
	}
	return entry, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":         s.started,
		"award":           s.award,
		"leaderboardSize": s.leaderboardSize,
	}

	if s.started {
		set, err := s.store.Load(context.Background())
		if err == nil {
			stats["records"] = len(set)
			metrics.UpdateRecordCount(len(set))
		}
		stats["spentTokens"] = s.tokens.Size()
	}

	return stats
}
