package repository

import (
	"context"
	"errors"
	"fmt"

	"nueracare-api/internal/domain/entity"
)

// Store error kinds. Match with errors.Is.
var (
	ErrAuth       = errors.New("document store: credential lacks required scope")
	ErrNetwork    = errors.New("document store: transport failure")
	ErrNotFound   = errors.New("document store: document not found")
	ErrValidation = errors.New("document store: document rejected")
)

// StoreError carries the failing operation and document key alongside the
// error kind.
type StoreError struct {
	Kind error
	Op   string
	ID   string
	Err  error
}

func (e *StoreError) Error() string {
	msg := e.Op
	if e.ID != "" {
		msg += " " + e.ID
	}
	msg += ": " + e.Kind.Error()
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *StoreError) Is(target error) bool {
	return e.Kind == target
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError wraps err as a store error of the given kind.
func NewStoreError(kind error, op, id string, err error) error {
	return &StoreError{Kind: kind, Op: op, ID: id, Err: err}
}

// Query selects the first document of Type whose top-level fields equal
// every entry of Where.
type Query struct {
	Type  string
	Where map[string]interface{}
}

func (q Query) String() string {
	return fmt.Sprintf("type=%s where=%v", q.Type, q.Where)
}

// Matches reports whether doc satisfies the query.
func (q Query) Matches(doc entity.Document) bool {
	if doc.Type() != q.Type {
		return false
	}
	for field, want := range q.Where {
		got, ok := doc[field]
		if !ok || fmt.Sprint(got) != fmt.Sprint(want) {
			return false
		}
	}
	return true
}

// DocumentStore is the sole transport to the remote structured store.
// Calls are at-most-once; no backend retries on its own.
type DocumentStore interface {
	// CreateOrReplace upserts a full document keyed by its _id.
	CreateOrReplace(ctx context.Context, doc entity.Document) (entity.Document, error)
	// Patch merges field paths (dot separated for nested fields) into an
	// existing document. Unlisted fields are left untouched. Fails with
	// ErrNotFound when no document exists at id.
	Patch(ctx context.Context, id string, set map[string]interface{}) (entity.Document, error)
	// Fetch returns the first match or nil when nothing matches.
	Fetch(ctx context.Context, q Query) (entity.Document, error)
	// Delete removes a document. Deleting a missing key is not an error.
	Delete(ctx context.Context, id string) error
}
