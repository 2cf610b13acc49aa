package domain

import (
	"sync"

	m "github.com/mouse-blink/lintel/internal/model"
)

// CollectedStore holds what collecting rules gathered in the first phase,
// per rule and file. Writers run concurrently; readers only start after
// every writer has finished.
type CollectedStore struct {
	mu   sync.Mutex
	data map[string]map[m.Path]any
}

// NewCollectedStore creates an empty store.
func NewCollectedStore() *CollectedStore {
	return &CollectedStore{data: map[string]map[m.Path]any{}}
}

// Put records info collected by ruleID for file.
func (s *CollectedStore) Put(ruleID string, file m.Path, info any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	byFile, ok := s.data[ruleID]
	if !ok {
		byFile = map[m.Path]any{}
		s.data[ruleID] = byFile
	}

	byFile[file] = info
}

// For returns a copy of everything ruleID collected.
func (s *CollectedStore) For(ruleID string) map[m.Path]any {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[m.Path]any, len(s.data[ruleID]))
	for k, v := range s.data[ruleID] {
		out[k] = v
	}

	return out
}
