// Package cart aggregates purchasable items into lines keyed by item ID.
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/loczu/storefront/internal/models"
	"github.com/loczu/storefront/internal/store"
)

var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrValidation       = errors.New("validation")
)

// Sentinel business reference used when an item carries no owning business.
const (
	UnknownBusinessID   = "unknown"
	UnknownBusinessName = "Unknown Business"
)

// Gate reports whether a session is currently authenticated. Mutations on an
// unauthenticated cart are rejected so the caller can prompt a login instead.
type Gate interface {
	Authenticated() bool
}

type Manager struct {
	mu    sync.Mutex
	kv    store.KV
	gate  Gate
	lines []models.CartLine
}

func NewManager(kv store.KV, gate Gate) *Manager {
	return &Manager{kv: kv, gate: gate}
}

// Restore loads the persisted cart snapshot. A malformed value is treated as
// an empty cart.
func (m *Manager) Restore(ctx context.Context) {
	raw, err := m.kv.Get(ctx, store.KeyCart)
	if err != nil {
		return
	}
	var lines []models.CartLine
	if err := json.Unmarshal([]byte(raw), &lines); err != nil {
		return
	}
	m.mu.Lock()
	m.lines = lines
	m.mu.Unlock()
}

// AddItem inserts a new line with quantity 1 or increments the existing line
// for the same item ID. Missing business references default to sentinels.
func (m *Manager) AddItem(ctx context.Context, item models.Item) (models.CartLine, error) {
	if !m.gate.Authenticated() {
		return models.CartLine{}, ErrNotAuthenticated
	}
	if item.ID == "" {
		return models.CartLine{}, fmt.Errorf("item id is required: %w", ErrValidation)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.lines {
		if m.lines[i].ItemID == item.ID {
			m.lines[i].Quantity++
			if err := m.persist(ctx); err != nil {
				return models.CartLine{}, err
			}
			return m.lines[i], nil
		}
	}

	line := models.CartLine{
		ItemID:       item.ID,
		Name:         item.Name,
		Price:        item.Price,
		Quantity:     1,
		Image:        item.Image,
		BusinessID:   item.BusinessID,
		BusinessName: item.BusinessName,
	}
	if line.BusinessID == "" {
		line.BusinessID = UnknownBusinessID
	}
	if line.BusinessName == "" {
		line.BusinessName = UnknownBusinessName
	}
	m.lines = append(m.lines, line)
	if err := m.persist(ctx); err != nil {
		return models.CartLine{}, err
	}
	return line, nil
}

// UpdateQuantity replaces the quantity of the matching line. A quantity below
// one is rejected; removal stays an explicit operation.
func (m *Manager) UpdateQuantity(ctx context.Context, itemID string, quantity int) error {
	if !m.gate.Authenticated() {
		return ErrNotAuthenticated
	}
	if quantity < 1 {
		return fmt.Errorf("quantity must be at least 1, remove the line instead: %w", ErrValidation)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.lines {
		if m.lines[i].ItemID == itemID {
			m.lines[i].Quantity = uint(quantity)
			return m.persist(ctx)
		}
	}
	return nil
}

// RemoveItem deletes the matching line. Removing an absent item is a no-op.
func (m *Manager) RemoveItem(ctx context.Context, itemID string) error {
	if !m.gate.Authenticated() {
		return ErrNotAuthenticated
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.lines {
		if m.lines[i].ItemID == itemID {
			m.lines = append(m.lines[:i], m.lines[i+1:]...)
			return m.persist(ctx)
		}
	}
	return nil
}

// Clear empties the cart unconditionally. It also runs on logout.
func (m *Manager) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lines = nil
	return m.persist(ctx)
}

// Lines returns a copy of the current cart snapshot in insertion order.
func (m *Manager) Lines() []models.CartLine {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.CartLine, len(m.lines))
	copy(out, m.lines)
	return out
}

func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.lines)
}

// persist writes the full snapshot; callers hold m.mu.
func (m *Manager) persist(ctx context.Context) error {
	lines := m.lines
	if lines == nil {
		lines = []models.CartLine{}
	}
	data, err := json.Marshal(lines)
	if err != nil {
		return err
	}
	return m.kv.Set(ctx, store.KeyCart, string(data))
}
