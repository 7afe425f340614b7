package store

import (
	"context"
	"sync"
	"time"

	"github.com/mind-engage/pizzaquiz/internal/quiz"
)

type memoryRecord struct {
	state     quiz.UserState
	updatedAt time.Time
}

type memoryStore struct {
	mu    sync.RWMutex
	users map[string]memoryRecord
	now   func() time.Time
}

// NewMemory returns a process-local store. Records are deep-copied on the
// way in and out.
func NewMemory() Store {
	return &memoryStore{users: map[string]memoryRecord{}, now: time.Now}
}

func (m *memoryStore) Get(ctx context.Context, userID string) (quiz.UserState, error) {
	if err := ctx.Err(); err != nil {
		return quiz.UserState{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.users[userID]
	if !ok {
		return quiz.UserState{}, ErrNotFound
	}
	return rec.state.Clone(), nil
}

func (m *memoryStore) Put(ctx context.Context, userID string, s quiz.UserState) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[userID] = memoryRecord{state: s.Clone(), updatedAt: m.now()}
	return nil
}

func (m *memoryStore) Delete(ctx context.Context, userID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[userID]; !ok {
		return ErrNotFound
	}
	delete(m.users, userID)
	return nil
}

func (m *memoryStore) PruneIdle(ctx context.Context, before time.Time) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, rec := range m.users {
		if rec.updatedAt.Before(before) {
			delete(m.users, id)
			n++
		}
	}
	return n, nil
}

func (m *memoryStore) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.users), nil
}

func (m *memoryStore) Close() error { return nil }
