package service

import (
	"math/rand"
	"testing"

	"hospital-ops-backend/internal/models"
	"hospital-ops-backend/internal/state"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOfflineInventoryService() *InventoryService {
	store := state.NewStore(rand.New(rand.NewSource(1)))
	store.Replace(state.DemoState())
	return NewInventoryService(store, nil)
}

func TestLowStockItems(t *testing.T) {
	svc := newOfflineInventoryService()

	low := svc.LowStockItems()
	require.Len(t, low, 1)
	assert.Equal(t, "INV-4", low[0].ID) // stock 3, threshold 5
}

func TestReorderSuggestions(t *testing.T) {
	svc := newOfflineInventoryService()

	suggestions := svc.ReorderSuggestions()
	require.Len(t, suggestions, 1)

	s := suggestions[0]
	assert.Equal(t, "O Negative Blood", s.ItemName)
	assert.Equal(t, 15, s.SuggestedQty) // threshold 5 * 3
	assert.Equal(t, models.UrgencyMedium, s.Urgency)
	assert.Contains(t, s.Reason, "below safety threshold")
}

func TestReorderSuggestionsHighUrgencyAtZeroStock(t *testing.T) {
	svc := newOfflineInventoryService()

	item := models.InventoryItem{ID: "INV-4", ItemName: "O Negative Blood", Category: models.CategoryConsumable, CurrentStock: 0, ReorderThreshold: 5, UsageRatePerSurgery: 1}
	_, err := svc.UpdateItem(item)
	require.NoError(t, err)

	suggestions := svc.ReorderSuggestions()
	require.Len(t, suggestions, 1)
	assert.Equal(t, models.UrgencyHigh, suggestions[0].Urgency)
}

func TestAddItemAssignsID(t *testing.T) {
	svc := newOfflineInventoryService()

	item, err := svc.AddItem(models.InventoryItem{ItemName: "Gauze", Category: models.CategoryConsumable, CurrentStock: 100, ReorderThreshold: 10})
	require.NoError(t, err)
	assert.NotEmpty(t, item.ID)

	snap := svc.store.Snapshot()
	assert.Len(t, snap.Inventory, 5)
}

func TestAddItemGeneratedIDsAreUnique(t *testing.T) {
	svc := newOfflineInventoryService()

	a, err := svc.AddItem(models.InventoryItem{ItemName: "A", Category: models.CategoryConsumable, ReorderThreshold: 1})
	require.NoError(t, err)
	b, err := svc.AddItem(models.InventoryItem{ItemName: "B", Category: models.CategoryConsumable, ReorderThreshold: 1})
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
}

func TestUpdateItemUnknownID(t *testing.T) {
	svc := newOfflineInventoryService()

	_, err := svc.UpdateItem(models.InventoryItem{ID: "INV-404", ItemName: "Ghost"})
	assert.ErrorIs(t, err, state.ErrItemNotFound)
}
