package repository

import (
	"context"
	"sync"

	"github.com/noah-isme/mergington-activities-api/internal/models"
	"github.com/noah-isme/mergington-activities-api/pkg/lock"
)

// MemoryActivityStore keeps the catalog in process memory. Each activity has
// its own RWMutex so signups on different activities never contend.
type MemoryActivityStore struct {
	mu         sync.RWMutex
	order      []string
	activities map[string]*models.Activity
	locks      *lock.KeyedLocker
}

// NewMemoryActivityStore constructs an empty store.
func NewMemoryActivityStore() *MemoryActivityStore {
	return &MemoryActivityStore{
		activities: make(map[string]*models.Activity),
		locks:      lock.NewKeyedLocker(),
	}
}

// Seed inserts activities that are not yet present and returns how many were added.
func (s *MemoryActivityStore) Seed(ctx context.Context, activities []models.Activity) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	added := 0
	for _, a := range activities {
		if _, exists := s.activities[a.Name]; exists {
			continue
		}
		clone := a.Clone()
		s.activities[a.Name] = &clone
		s.order = append(s.order, a.Name)
		added++
	}
	return added, nil
}

// Get returns a copy of the named activity.
func (s *MemoryActivityStore) Get(ctx context.Context, name string) (*models.Activity, error) {
	activity, ok := s.lookup(name)
	if !ok {
		return nil, ErrActivityNotFound
	}
	var out models.Activity
	_ = s.locks.WithRLock(name, func() error {
		out = activity.Clone()
		return nil
	})
	return &out, nil
}

// List returns copies of every activity in insertion order.
func (s *MemoryActivityStore) List(ctx context.Context) ([]models.Activity, error) {
	s.mu.RLock()
	names := make([]string, len(s.order))
	copy(names, s.order)
	s.mu.RUnlock()

	out := make([]models.Activity, 0, len(names))
	for _, name := range names {
		activity, _ := s.lookup(name)
		_ = s.locks.WithRLock(name, func() error {
			out = append(out, activity.Clone())
			return nil
		})
	}
	return out, nil
}

// AddParticipant registers email under the activity's exclusive lock.
func (s *MemoryActivityStore) AddParticipant(ctx context.Context, name, email string) (*models.Activity, error) {
	activity, ok := s.lookup(name)
	if !ok {
		return nil, ErrActivityNotFound
	}
	var out models.Activity
	err := s.locks.WithLock(name, func() error {
		if activity.HasParticipant(email) {
			return ErrAlreadyRegistered
		}
		if activity.IsFull() {
			return ErrCapacityExceeded
		}
		activity.AddParticipant(email)
		out = activity.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// RemoveParticipant drops email from the roster under the activity's exclusive lock.
func (s *MemoryActivityStore) RemoveParticipant(ctx context.Context, name, email string) (*models.Activity, error) {
	activity, ok := s.lookup(name)
	if !ok {
		return nil, ErrActivityNotFound
	}
	var out models.Activity
	err := s.locks.WithLock(name, func() error {
		if !activity.RemoveParticipant(email) {
			return ErrNotRegistered
		}
		out = activity.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Ping always succeeds for the in-memory store.
func (s *MemoryActivityStore) Ping(ctx context.Context) error {
	return nil
}

func (s *MemoryActivityStore) lookup(name string) (*models.Activity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	activity, ok := s.activities[name]
	return activity, ok
}
