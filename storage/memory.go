package storage

import (
	"context"
	"sync"
)

// MemoryStore keeps collections as in-memory slices, in insertion order.
// It backs tests that would otherwise need a BadgerDB on disk.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string][][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: make(map[string][][]byte)}
}

func (s *MemoryStore) Insert(_ context.Context, collection string, doc []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.collections[collection] = append(s.collections[collection], append([]byte(nil), doc...))
	return nil
}

func (s *MemoryStore) FindOne(_ context.Context, collection string, match Predicate) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, doc := range s.collections[collection] {
		if match(doc) {
			return append([]byte(nil), doc...), nil
		}
	}
	return nil, ErrNoDocument
}

func (s *MemoryStore) FindMany(_ context.Context, collection string, match Predicate) ([][]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var docs [][]byte
	for _, doc := range s.collections[collection] {
		if match(doc) {
			docs = append(docs, append([]byte(nil), doc...))
		}
	}
	return docs, nil
}

func (s *MemoryStore) DeleteMany(_ context.Context, collection string, match Predicate) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var kept [][]byte
	deleted := 0
	for _, doc := range s.collections[collection] {
		if match(doc) {
			deleted++
			continue
		}
		kept = append(kept, doc)
	}
	s.collections[collection] = kept
	return deleted, nil
}

func (s *MemoryStore) UpdateOne(_ context.Context, collection string, match Predicate, patch Patch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, doc := range s.collections[collection] {
		if !match(doc) {
			continue
		}
		patched, err := patch(append([]byte(nil), doc...))
		if err != nil {
			return err
		}
		s.collections[collection][i] = patched
		return nil
	}
	return ErrNoDocument
}
