package repository

import (
	"context"
	"sync"

	"github.com/noah-isme/mergington-activities-api/internal/models"
)

// MemoryTeacherStore keeps staff accounts in process memory.
type MemoryTeacherStore struct {
	mu       sync.RWMutex
	teachers map[string]models.Teacher
}

// NewMemoryTeacherStore constructs an empty store.
func NewMemoryTeacherStore() *MemoryTeacherStore {
	return &MemoryTeacherStore{teachers: make(map[string]models.Teacher)}
}

// Seed inserts teachers that are not yet present.
func (s *MemoryTeacherStore) Seed(ctx context.Context, teachers []models.Teacher) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	added := 0
	for _, t := range teachers {
		if _, exists := s.teachers[t.Username]; exists {
			continue
		}
		s.teachers[t.Username] = t
		added++
	}
	return added, nil
}

// FindByUsername returns the teacher account for username.
func (s *MemoryTeacherStore) FindByUsername(ctx context.Context, username string) (*models.Teacher, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.teachers[username]
	if !ok {
		return nil, ErrTeacherNotFound
	}
	return &t, nil
}
