package auth

import (
	"context"
	"sync"
)

type memoryStore struct {
	mu    sync.RWMutex
	chats map[int64]string
}

// NewMemoryStore constructs an in-memory Store implementation. Authorizations
// are lost on restart, which matches single-instance deployments where asking
// users to identify again after a redeploy is acceptable.
func NewMemoryStore() Store {
	return &memoryStore{
		chats: make(map[int64]string),
	}
}

func (m *memoryStore) Authorize(_ context.Context, chatID int64, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.chats[chatID] = name
	return nil
}

func (m *memoryStore) Authorized(_ context.Context, chatID int64) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.chats[chatID]
	return ok, nil
}

func (m *memoryStore) Revoke(_ context.Context, chatID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.chats, chatID)
	return nil
}
