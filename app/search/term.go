package search

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Semior001/hnsearch/app/store"
)

// DefaultTerm is the search term used when nothing is stored yet.
const DefaultTerm = "React"

// TermKey is the storage key of the persisted search term.
const TermKey = "search"

//go:generate moq -out mock_kv.go . KV

// KV is a durable key-value storage.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// TermStore keeps the search term in a KV storage.
// The value read by Load is never written back; only later changes are.
type TermStore struct {
	kv  KV
	key string
	def string

	mu        sync.Mutex
	value     string
	hasLoaded bool
}

// NewTermStore makes a new TermStore for the key, with the default value in
// case the storage has nothing under the key.
func NewTermStore(kv KV, key, def string) *TermStore {
	return &TermStore{kv: kv, key: key, def: def, value: def}
}

// Load reads the term from the storage, falling back to the default.
func (t *TermStore) Load(ctx context.Context) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	v, err := t.kv.Get(ctx, t.key)
	switch {
	case errors.Is(err, store.ErrNotFound):
		v = t.def
	case err != nil:
		return "", fmt.Errorf("get %s: %w", t.key, err)
	case v == "":
		v = t.def
	}

	t.value = v
	t.hasLoaded = true
	return v, nil
}

// Value returns the current term.
func (t *TermStore) Value() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.value
}

// Save changes the term. The storage is written only after Load
// and only when the value differs from the current one.
func (t *TermStore) Save(ctx context.Context, v string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if v == t.value {
		return nil
	}
	t.value = v

	if !t.hasLoaded {
		return nil
	}

	if err := t.kv.Set(ctx, t.key, v); err != nil {
		return fmt.Errorf("set %s: %w", t.key, err)
	}

	return nil
}
