package usecase

import (
	"context"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"nueracare-api/internal/domain/entity"
	"nueracare-api/internal/domain/repository"
	"nueracare-api/internal/infrastructure/docstore"

	"github.com/sirupsen/logrus"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// mockStore delegates to an in-memory store unless a failure func is set.
type mockStore struct {
	*docstore.MemoryStore

	CreateOrReplaceFunc func(ctx context.Context, doc entity.Document) (entity.Document, error)
	PatchFunc           func(ctx context.Context, id string, set map[string]interface{}) (entity.Document, error)
	FetchFunc           func(ctx context.Context, q repository.Query) (entity.Document, error)

	mu      sync.Mutex
	patches []map[string]interface{}
	creates atomic.Int32
	fetches atomic.Int32
}

func newMockStore() *mockStore {
	return &mockStore{MemoryStore: docstore.NewMemoryStore()}
}

func (m *mockStore) CreateOrReplace(ctx context.Context, doc entity.Document) (entity.Document, error) {
	m.creates.Add(1)
	if m.CreateOrReplaceFunc != nil {
		return m.CreateOrReplaceFunc(ctx, doc)
	}
	return m.MemoryStore.CreateOrReplace(ctx, doc)
}

func (m *mockStore) Patch(ctx context.Context, id string, set map[string]interface{}) (entity.Document, error) {
	m.mu.Lock()
	m.patches = append(m.patches, set)
	m.mu.Unlock()
	if m.PatchFunc != nil {
		return m.PatchFunc(ctx, id, set)
	}
	return m.MemoryStore.Patch(ctx, id, set)
}

func (m *mockStore) Fetch(ctx context.Context, q repository.Query) (entity.Document, error) {
	m.fetches.Add(1)
	if m.FetchFunc != nil {
		return m.FetchFunc(ctx, q)
	}
	return m.MemoryStore.Fetch(ctx, q)
}

func (m *mockStore) Patches() []map[string]interface{} {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]map[string]interface{}(nil), m.patches...)
}

func failWith(kind error) func(ctx context.Context, id string, set map[string]interface{}) (entity.Document, error) {
	return func(ctx context.Context, id string, set map[string]interface{}) (entity.Document, error) {
		return nil, repository.NewStoreError(kind, "patch", id, nil)
	}
}

// fakeClock hands out strictly increasing times.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}
