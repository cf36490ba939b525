package service

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/noah-isme/wakeup-planner-api/internal/models"
)

type memStoreRepo struct {
	mu      sync.Mutex
	entries map[string]models.StoreEntry
	getErr  error
	putErr  error
}

func newMemStoreRepo() *memStoreRepo {
	return &memStoreRepo{entries: make(map[string]models.StoreEntry)}
}

func (m *memStoreRepo) Get(ctx context.Context, key string) (*models.StoreEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	entry, ok := m.entries[key]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &entry, nil
}

func (m *memStoreRepo) Put(ctx context.Context, key, value string, updatedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.putErr != nil {
		return m.putErr
	}
	m.entries[key] = models.StoreEntry{Key: key, Value: value, UpdatedAt: updatedAt}
	return nil
}

func (m *memStoreRepo) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}

func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

func newTestStore(repo *memStoreRepo, now time.Time) *DocumentStore {
	return NewDocumentStore(repo, nil, nil, fixedClock(now))
}
