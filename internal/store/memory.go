package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ubck/survey-cli/internal/model"
)

// MemoryStore is an in-process Store for a single working session. The
// mutex keeps the serve command safe when a build and an edit race on the
// same day index.
type MemoryStore struct {
	mu   sync.RWMutex
	days map[int]model.DayRecord
}

// NewMemory creates an empty in-memory store.
func NewMemory() *MemoryStore {
	return &MemoryStore{days: make(map[int]model.DayRecord)}
}

func (s *MemoryStore) SaveDay(_ context.Context, rec model.DayRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	if prev, ok := s.days[rec.Day]; ok {
		rec.CreatedAt = prev.CreatedAt
	} else {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now
	s.days[rec.Day] = rec
	return nil
}

func (s *MemoryStore) GetDay(_ context.Context, day int) (*model.DayRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.days[day]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (s *MemoryStore) ListDays(_ context.Context) ([]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	days := make([]int, 0, len(s.days))
	for d := range s.days {
		days = append(days, d)
	}
	sort.Ints(days)
	return days, nil
}

func (s *MemoryStore) DeleteDay(_ context.Context, day int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.days, day)
	return nil
}

func (s *MemoryStore) Migrate(context.Context) error { return nil }

func (s *MemoryStore) Close() error { return nil }
