// Package classify defines the two-stage trash classification contract.
//
// Stage one identifies the trash type on an image; stage two confirms the
// item went into the correct receptacle. Implementations may call a remote
// model; the bundled stub stands in until one exists. Scoring and ranking
// never depend on a concrete implementation.
package classify

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

// LabelUnknown is the sentinel returned when the classifier cannot tell
// what kind of trash it is looking at. Callers must treat it as a
// retryable negative, not a hard error.
const LabelUnknown = "unknown"

// Identification is the result of the identify stage.
type Identification struct {
	Label      string
	Confidence float64
}

// Verdict is the result of the confirm stage.
type Verdict struct {
	Correct bool
}

// Classifier computes classification results for captured images.
// Implementations may simulate or incur real inference latency, so both
// methods honor ctx for cancellation.
type Classifier interface {
	// Identify returns the trash-type label for an image, or LabelUnknown.
	Identify(ctx context.Context, image []byte) (Identification, error)

	// Confirm checks whether the item labeled in stage one ended up in the
	// correct receptacle.
	Confirm(ctx context.Context, image []byte, label string) (Verdict, error)
}

// Default stub configuration constants.
const (
	defaultStubLabel      = "plastic"
	defaultStubConfidence = 0.95
	defaultMinLatency     = 20 * time.Millisecond
	defaultMaxLatency     = 60 * time.Millisecond
	defaultRandomSeed     = 42
)

// Option applies a configuration option to the StubClassifier.
type Option func(*StubClassifier)

// WithFixedResult sets the label and confidence the stub returns from
// Identify. An empty label is ignored.
func WithFixedResult(label string, confidence float64) Option {
	return func(c *StubClassifier) {
		if label != "" {
			c.label = label
			c.confidence = confidence
		}
	}
}

// WithVerdict sets the fixed correct-bin verdict the stub returns from Confirm.
func WithVerdict(correct bool) Option {
	return func(c *StubClassifier) {
		c.correct = correct
	}
}

// WithLatencyRange sets the simulated inference latency range.
func WithLatencyRange(minLatency, maxLatency time.Duration) Option {
	return func(c *StubClassifier) {
		if minLatency > 0 && maxLatency > minLatency {
			c.minLatency = minLatency
			c.maxLatency = maxLatency
		}
	}
}

// StubClassifier implements Classifier with fixed placeholder results.
// It keeps the call shape of a real model integration, including a
// simulated inference delay, so swapping in a remote classifier later
// does not change any caller.
type StubClassifier struct {
	label      string
	confidence float64
	correct    bool

	minLatency time.Duration
	maxLatency time.Duration

	// rng is shared between concurrent requests
	mu  sync.Mutex
	rng *rand.Rand
}

// NewStubClassifier creates a stub classifier with configuration options.
func NewStubClassifier(opts ...Option) *StubClassifier {
	c := &StubClassifier{
		label:      defaultStubLabel,
		confidence: defaultStubConfidence,
		correct:    true,
		minLatency: defaultMinLatency,
		maxLatency: defaultMaxLatency,
		rng:        rand.New(rand.NewSource(defaultRandomSeed)), //nolint:gosec // deterministic seed for reproducible testing
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Identify returns the configured fixed label after the simulated delay.
func (c *StubClassifier) Identify(ctx context.Context, _ []byte) (Identification, error) {
	if err := c.simulateLatency(ctx); err != nil {
		return Identification{}, err
	}
	return Identification{Label: c.label, Confidence: c.confidence}, nil
}

// Confirm returns the configured fixed verdict after the simulated delay.
func (c *StubClassifier) Confirm(ctx context.Context, _ []byte, _ string) (Verdict, error) {
	if err := c.simulateLatency(ctx); err != nil {
		return Verdict{}, err
	}
	return Verdict{Correct: c.correct}, nil
}

func (c *StubClassifier) simulateLatency(ctx context.Context) error {
	c.mu.Lock()
	latency := c.minLatency + time.Duration(c.rng.Int63n(int64(c.maxLatency-c.minLatency)))
	c.mu.Unlock()
	select {
	case <-ctx.Done():
		return WrapCancelled(ctx.Err())
	case <-time.After(latency):
		return nil
	}
}
