package store

import (
	"context"
	"errors"
	"sync"
)

// ErrNotFound is returned when no value exists under a key.
var ErrNotFound = errors.New("not found")

// Fixed keys the storefront persists its snapshots under.
const (
	KeySession  = "loczu_session"
	KeyCart     = "loczu_cart"
	KeyWishlist = "loczu_wishlist"
)

// KV is the persistence port: string-keyed, string-valued storage. Values are
// JSON snapshots serialized by the state managers; the store itself owns no
// entities and applies last-write-wins semantics.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// MemoryKV is an in-process KV used in tests and as the default backend.
type MemoryKV struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string]string)}
}

func (m *MemoryKV) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (m *MemoryKV) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *MemoryKV) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}
