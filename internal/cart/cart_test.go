package cart

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/loczu/storefront/internal/models"
	"github.com/loczu/storefront/internal/store"
)

type stubGate struct {
	ok bool
}

func (g *stubGate) Authenticated() bool { return g.ok }

func newTestCart() (*Manager, *store.MemoryKV, *stubGate) {
	kv := store.NewMemoryKV()
	gate := &stubGate{ok: true}
	return NewManager(kv, gate), kv, gate
}

func pizza() models.Item {
	return models.Item{
		ID:           "101",
		Name:         "Margherita Pizza",
		Price:        18.99,
		BusinessID:   "1",
		BusinessName: "Mario's Italian Kitchen",
	}
}

func TestAddItemAggregatesByItemID(t *testing.T) {
	m, _, _ := newTestCart()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := m.AddItem(ctx, pizza())
		require.NoError(t, err)
	}

	lines := m.Lines()
	require.Len(t, lines, 1)
	require.Equal(t, "101", lines[0].ItemID)
	require.Equal(t, uint(3), lines[0].Quantity)
}

func TestAddItemDefaultsBusinessReference(t *testing.T) {
	m, _, _ := newTestCart()

	line, err := m.AddItem(context.Background(), models.Item{ID: "901", Name: "Mystery Item", Price: 4.20})
	require.NoError(t, err)
	require.Equal(t, UnknownBusinessID, line.BusinessID)
	require.Equal(t, UnknownBusinessName, line.BusinessName)
}

func TestAddItemRequiresAuthentication(t *testing.T) {
	m, kv, gate := newTestCart()
	gate.ok = false

	_, err := m.AddItem(context.Background(), pizza())
	require.ErrorIs(t, err, ErrNotAuthenticated)
	require.Zero(t, m.Count())

	// the rejected item is not queued anywhere
	_, err = kv.Get(context.Background(), store.KeyCart)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestRemoveThenAddStartsFresh(t *testing.T) {
	m, _, _ := newTestCart()
	ctx := context.Background()

	_, err := m.AddItem(ctx, pizza())
	require.NoError(t, err)
	_, err = m.AddItem(ctx, pizza())
	require.NoError(t, err)

	require.NoError(t, m.RemoveItem(ctx, "101"))
	require.Zero(t, m.Count())

	line, err := m.AddItem(ctx, pizza())
	require.NoError(t, err)
	require.Equal(t, uint(1), line.Quantity)
}

func TestRemoveAbsentItemIsNoOp(t *testing.T) {
	m, _, _ := newTestCart()
	require.NoError(t, m.RemoveItem(context.Background(), "nope"))
}

func TestUpdateQuantity(t *testing.T) {
	m, _, _ := newTestCart()
	ctx := context.Background()

	_, err := m.AddItem(ctx, pizza())
	require.NoError(t, err)

	require.NoError(t, m.UpdateQuantity(ctx, "101", 5))
	require.Equal(t, uint(5), m.Lines()[0].Quantity)

	err = m.UpdateQuantity(ctx, "101", 0)
	require.ErrorIs(t, err, ErrValidation)
	require.Equal(t, uint(5), m.Lines()[0].Quantity)

	// absent line is a no-op, not an error
	require.NoError(t, m.UpdateQuantity(ctx, "999", 2))
}

func TestClearPersistsEmptySnapshot(t *testing.T) {
	m, kv, _ := newTestCart()
	ctx := context.Background()

	_, err := m.AddItem(ctx, pizza())
	require.NoError(t, err)

	require.NoError(t, m.Clear(ctx))
	require.Empty(t, m.Lines())

	raw, err := kv.Get(ctx, store.KeyCart)
	require.NoError(t, err)
	require.JSONEq(t, `[]`, raw)
}

func TestEveryMutationPersistsFullSnapshot(t *testing.T) {
	m, kv, _ := newTestCart()
	ctx := context.Background()

	_, err := m.AddItem(ctx, pizza())
	require.NoError(t, err)

	raw, err := kv.Get(ctx, store.KeyCart)
	require.NoError(t, err)

	var persisted []models.CartLine
	require.NoError(t, json.Unmarshal([]byte(raw), &persisted))
	require.Len(t, persisted, 1)
	require.Equal(t, uint(1), persisted[0].Quantity)

	require.NoError(t, m.UpdateQuantity(ctx, "101", 4))
	raw, err = kv.Get(ctx, store.KeyCart)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(raw), &persisted))
	require.Equal(t, uint(4), persisted[0].Quantity)
}

func TestRestoreFallsBackOnMalformedSnapshot(t *testing.T) {
	m, kv, _ := newTestCart()
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, store.KeyCart, "{not json"))
	m.Restore(ctx)
	require.Empty(t, m.Lines())

	require.NoError(t, kv.Set(ctx, store.KeyCart, `[{"itemId":"103","name":"Tiramisu","price":8.99,"quantity":2}]`))
	m.Restore(ctx)
	require.Len(t, m.Lines(), 1)
	require.Equal(t, uint(2), m.Lines()[0].Quantity)
}
