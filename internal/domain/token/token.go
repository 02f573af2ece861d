// Package token tracks spent award tokens so the confirm stage stays
// idempotent under client retries: each successful identify hands out a
// single-use token, and replaying a confirm with a spent token must not
// award points twice.
package token

import (
	"context"
	"sync"
)

// Tracker records spent award tokens.
type Tracker interface {
	// SeenAndRecord atomically checks whether a token was already spent and
	// records it if not. Returns true when the token was already seen.
	SeenAndRecord(ctx context.Context, token string) bool

	// Forget removes a token, allowing the award attempt to be retried.
	// Used when the award failed after the token was marked spent.
	Forget(ctx context.Context, token string)

	// Size returns the number of tokens currently tracked.
	Size() int
}

// Option applies a configuration option to the in-memory tracker.
type Option func(*memoryTracker)

// WithMaxSize bounds the number of tokens kept in memory. Once the bound
// is reached the oldest token is evicted first. Zero or negative keeps the
// tracker unbounded.
func WithMaxSize(n int) Option {
	return func(t *memoryTracker) {
		t.maxSize = n
	}
}

const defaultMaxSize = 10000

// memoryTracker implements Tracker with a map plus an insertion-order
// queue for oldest-first eviction.
type memoryTracker struct {
	mu      sync.Mutex
	seen    map[string]struct{}
	order   []string
	maxSize int
}

// NewMemoryTracker creates an in-memory tracker with configuration options.
func NewMemoryTracker(opts ...Option) Tracker {
	t := &memoryTracker{
		seen:    make(map[string]struct{}),
		maxSize: defaultMaxSize,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *memoryTracker) SeenAndRecord(_ context.Context, tok string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.seen[tok]; ok {
		return true
	}
	if t.maxSize > 0 && len(t.seen) >= t.maxSize {
		t.evictOldest()
	}
	t.seen[tok] = struct{}{}
	t.order = append(t.order, tok)
	return false
}

func (t *memoryTracker) Forget(_ context.Context, tok string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.seen[tok]; !ok {
		return
	}
	delete(t.seen, tok)
	for i := range t.order {
		if t.order[i] == tok {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
}

func (t *memoryTracker) Size() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.seen)
}

// evictOldest drops the front of the insertion queue. Must be called with
// t.mu held. Entries already removed by Forget are skipped.
func (t *memoryTracker) evictOldest() {
	for len(t.order) > 0 {
		oldest := t.order[0]
		t.order = t.order[1:]
		if _, ok := t.seen[oldest]; ok {
			delete(t.seen, oldest)
			return
		}
	}
}
