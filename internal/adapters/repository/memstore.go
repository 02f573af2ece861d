package repository

import (
	"context"
	"sync"

	"github.com/greenbin/bunrigo/internal/domain/model"
)

// MemStore is an in-memory Store used by tests and the traffic simulator.
// It keeps the same whole-document contract as the file store.
type MemStore struct {
	mu  sync.Mutex
	set model.RecordSet

	// SaveErr, when set, is returned by every Save. Lets tests exercise
	// the storage failure path.
	SaveErr error
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{}
}

// Load returns a copy of the held set.
func (s *MemStore) Load(_ context.Context) (model.RecordSet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.set == nil {
		return model.RecordSet{}, nil
	}
	return s.set.Clone(), nil
}

// Save replaces the held set with a copy of the given one.
func (s *MemStore) Save(_ context.Context, set model.RecordSet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.set = set.Clone()
	return nil
}
