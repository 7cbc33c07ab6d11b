package docstore

import (
	"context"
	"errors"
	"sort"
	"sync"

	"nueracare-api/internal/domain/entity"
	"nueracare-api/internal/domain/repository"
)

// MemoryStore keeps documents in process. It backs local development and
// use case tests.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]entity.Document
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		docs: make(map[string]entity.Document),
	}
}

func (s *MemoryStore) CreateOrReplace(ctx context.Context, doc entity.Document) (entity.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, repository.NewStoreError(repository.ErrNetwork, "createOrReplace", doc.ID(), err)
	}
	normalized, err := checkDocument("createOrReplace", doc)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[normalized.ID()] = normalized

	return normalized.Clone()
}

func (s *MemoryStore) Patch(ctx context.Context, id string, set map[string]interface{}) (entity.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, repository.NewStoreError(repository.ErrNetwork, "patch", id, err)
	}
	fields, err := normalizeSet("patch", id, set)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.docs[id]
	if !ok {
		return nil, repository.NewStoreError(repository.ErrNotFound, "patch", id, nil)
	}
	patched, err := applyPatch("patch", current, fields)
	if err != nil {
		return nil, err
	}
	s.docs[id] = patched

	return patched.Clone()
}

func (s *MemoryStore) Fetch(ctx context.Context, q repository.Query) (entity.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, repository.NewStoreError(repository.ErrNetwork, "fetch", "", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	// Map order is random; scan by key so "first" is stable.
	ids := make([]string, 0, len(s.docs))
	for id := range s.docs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		if q.Matches(s.docs[id]) {
			return s.docs[id].Clone()
		}
	}
	return nil, nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return repository.NewStoreError(repository.ErrNetwork, "delete", id, err)
	}
	if id == "" {
		return repository.NewStoreError(repository.ErrValidation, "delete", id, errors.New("missing id"))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, id)
	return nil
}

// Len reports the number of stored documents.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}
