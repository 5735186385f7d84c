// Package wishlist keeps saved business snapshots with set semantics keyed by
// business ID.
package wishlist

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/loczu/storefront/internal/models"
	"github.com/loczu/storefront/internal/store"
)

var ErrNotAuthenticated = errors.New("not authenticated")

type Gate interface {
	Authenticated() bool
}

type Manager struct {
	mu      sync.Mutex
	kv      store.KV
	gate    Gate
	entries []models.WishlistEntry
}

func NewManager(kv store.KV, gate Gate) *Manager {
	return &Manager{kv: kv, gate: gate}
}

func (m *Manager) Restore(ctx context.Context) {
	raw, err := m.kv.Get(ctx, store.KeyWishlist)
	if err != nil {
		return
	}
	var entries []models.WishlistEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return
	}
	m.mu.Lock()
	m.entries = entries
	m.mu.Unlock()
}

// Toggle removes the entry when the business is already saved and inserts a
// snapshot otherwise. It reports whether the business ended up in the list.
// Membership is decided by ID equality only.
func (m *Manager) Toggle(ctx context.Context, business models.Business) (bool, error) {
	if !m.gate.Authenticated() {
		return false, ErrNotAuthenticated
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.entries {
		if m.entries[i].BusinessID == business.ID {
			m.entries = append(m.entries[:i], m.entries[i+1:]...)
			return false, m.persist(ctx)
		}
	}

	m.entries = append(m.entries, models.SnapshotOf(business))
	return true, m.persist(ctx)
}

func (m *Manager) Contains(businessID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.entries {
		if m.entries[i].BusinessID == businessID {
			return true
		}
	}
	return false
}

func (m *Manager) Entries() []models.WishlistEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.WishlistEntry, len(m.entries))
	copy(out, m.entries)
	return out
}

func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Clear empties the wishlist; it runs on logout.
func (m *Manager) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = nil
	return m.persist(ctx)
}

func (m *Manager) persist(ctx context.Context) error {
	entries := m.entries
	if entries == nil {
		entries = []models.WishlistEntry{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	return m.kv.Set(ctx, store.KeyWishlist, string(data))
}
