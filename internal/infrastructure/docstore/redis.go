package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"

	"nueracare-api/internal/domain/entity"
	"nueracare-api/internal/domain/repository"

	"github.com/redis/go-redis/v9"
)

const (
	// Redis key prefixes for the document store
	RedisDocumentKeyPrefix = "docstore:doc:"
	RedisTypeKeyPrefix     = "docstore:type:"

	// Optimistic patch attempts before giving up on a contended key
	redisPatchAttempts = 5
)

// RedisStore keeps each document as a JSON string and a set of ids per
// _type for fetches. Patches run under WATCH so a concurrent writer forces
// a re-read instead of being overwritten.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func documentKey(id string) string {
	return RedisDocumentKeyPrefix + id
}

func typeKey(docType string) string {
	return RedisTypeKeyPrefix + docType
}

func (s *RedisStore) CreateOrReplace(ctx context.Context, doc entity.Document) (entity.Document, error) {
	normalized, err := checkDocument("createOrReplace", doc)
	if err != nil {
		return nil, err
	}
	raw, err := json.Marshal(normalized)
	if err != nil {
		return nil, repository.NewStoreError(repository.ErrValidation, "createOrReplace", normalized.ID(), err)
	}

	id := normalized.ID()
	key := documentKey(id)

	err = s.client.Watch(ctx, func(tx *redis.Tx) error {
		previous, err := tx.Get(ctx, key).Bytes()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		previousType := ""
		if err == nil {
			var old entity.Document
			if json.Unmarshal(previous, &old) == nil {
				previousType = old.Type()
			}
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, raw, 0)
			if previousType != "" && previousType != normalized.Type() {
				pipe.SRem(ctx, typeKey(previousType), id)
			}
			pipe.SAdd(ctx, typeKey(normalized.Type()), id)
			return nil
		})
		return err
	}, key)
	if err != nil {
		return nil, mapRedisError("createOrReplace", id, err)
	}

	return normalized, nil
}

func (s *RedisStore) Patch(ctx context.Context, id string, set map[string]interface{}) (entity.Document, error) {
	fields, err := normalizeSet("patch", id, set)
	if err != nil {
		return nil, err
	}

	key := documentKey(id)
	var patched entity.Document

	patch := func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return repository.NewStoreError(repository.ErrNotFound, "patch", id, nil)
			}
			return err
		}

		current := entity.Document{}
		if err := json.Unmarshal(raw, &current); err != nil {
			return repository.NewStoreError(repository.ErrValidation, "patch", id, err)
		}
		patched, err = applyPatch("patch", current, fields)
		if err != nil {
			return err
		}
		out, err := json.Marshal(patched)
		if err != nil {
			return repository.NewStoreError(repository.ErrValidation, "patch", id, err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, out, 0)
			return nil
		})
		return err
	}

	for attempt := 0; attempt < redisPatchAttempts; attempt++ {
		err = s.client.Watch(ctx, patch, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		break
	}
	if err != nil {
		var storeErr *repository.StoreError
		if errors.As(err, &storeErr) {
			return nil, err
		}
		return nil, mapRedisError("patch", id, err)
	}

	return patched, nil
}

func (s *RedisStore) Fetch(ctx context.Context, q repository.Query) (entity.Document, error) {
	ids, err := s.client.SMembers(ctx, typeKey(q.Type)).Result()
	if err != nil {
		return nil, mapRedisError("fetch", "", err)
	}
	if len(ids) == 0 {
		return nil, nil
	}
	sort.Strings(ids)

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = documentKey(id)
	}
	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, mapRedisError("fetch", "", err)
	}

	for _, v := range values {
		raw, ok := v.(string)
		if !ok {
			// Deleted between SMEMBERS and MGET.
			continue
		}
		doc := entity.Document{}
		if err := json.Unmarshal([]byte(raw), &doc); err != nil {
			continue
		}
		if q.Matches(doc) {
			return doc, nil
		}
	}
	return nil, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	key := documentKey(id)
	raw, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil
		}
		return mapRedisError("delete", id, err)
	}

	doc := entity.Document{}
	_ = json.Unmarshal(raw, &doc)

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		if doc.Type() != "" {
			pipe.SRem(ctx, typeKey(doc.Type()), id)
		}
		return nil
	})
	if err != nil {
		return mapRedisError("delete", id, err)
	}
	return nil
}

func mapRedisError(op, id string, err error) error {
	msg := err.Error()
	if strings.Contains(msg, "NOAUTH") || strings.Contains(msg, "WRONGPASS") || strings.Contains(msg, "NOPERM") {
		return repository.NewStoreError(repository.ErrAuth, op, id, err)
	}
	return repository.NewStoreError(repository.ErrNetwork, op, id, err)
}
