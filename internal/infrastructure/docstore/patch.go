package docstore

import (
	"errors"
	"fmt"
	"strings"

	"nueracare-api/internal/domain/entity"
	"nueracare-api/internal/domain/repository"
)

// checkDocument rejects documents without a key or type discriminator.
func checkDocument(op string, doc entity.Document) (entity.Document, error) {
	if doc.ID() == "" {
		return nil, repository.NewStoreError(repository.ErrValidation, op, "", errors.New("missing _id"))
	}
	if doc.Type() == "" {
		return nil, repository.NewStoreError(repository.ErrValidation, op, doc.ID(), errors.New("missing _type"))
	}
	normalized, err := doc.Clone()
	if err != nil {
		return nil, repository.NewStoreError(repository.ErrValidation, op, doc.ID(), err)
	}
	return normalized, nil
}

// normalizeSet converts patch values to plain JSON shapes and rejects writes
// to the reserved keys.
func normalizeSet(op, id string, set map[string]interface{}) (map[string]interface{}, error) {
	if len(set) == 0 {
		return nil, repository.NewStoreError(repository.ErrValidation, op, id, errors.New("empty patch"))
	}
	for path := range set {
		root := strings.SplitN(path, ".", 2)[0]
		if path == "" || root == entity.DocumentIDKey || root == entity.DocumentTypeKey {
			return nil, repository.NewStoreError(repository.ErrValidation, op, id, fmt.Errorf("field path %q is not writable", path))
		}
	}
	normalized, err := entity.NewDocument(set)
	if err != nil {
		return nil, repository.NewStoreError(repository.ErrValidation, op, id, err)
	}
	return normalized, nil
}

// applyPatch merges each dotted path of set into a copy of doc, creating
// intermediate objects as needed.
func applyPatch(op string, doc entity.Document, set map[string]interface{}) (entity.Document, error) {
	out, err := doc.Clone()
	if err != nil {
		return nil, repository.NewStoreError(repository.ErrValidation, op, doc.ID(), err)
	}
	for path, value := range set {
		if err := setPath(out, path, value); err != nil {
			return nil, repository.NewStoreError(repository.ErrValidation, op, doc.ID(), err)
		}
	}
	return out, nil
}

func setPath(doc map[string]interface{}, path string, value interface{}) error {
	segments := strings.Split(path, ".")
	node := doc
	for i, seg := range segments[:len(segments)-1] {
		if seg == "" {
			return fmt.Errorf("field path %q has an empty segment", path)
		}
		next, ok := node[seg]
		if !ok || next == nil {
			child := map[string]interface{}{}
			node[seg] = child
			node = child
			continue
		}
		child, ok := next.(map[string]interface{})
		if !ok {
			return fmt.Errorf("field %q is not an object", strings.Join(segments[:i+1], "."))
		}
		node = child
	}
	last := segments[len(segments)-1]
	if last == "" {
		return fmt.Errorf("field path %q has an empty segment", path)
	}
	node[last] = value
	return nil
}
