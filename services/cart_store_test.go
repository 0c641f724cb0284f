package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/accelconnect/restauration-gateway/models"
)

func newTestStore(snapshots SnapshotStore, today string) *CartStore {
	store := NewCartStore(snapshots)
	store.today = func() string { return today }
	return store
}

func line(mealID, restaurantID uint, price float64, qty int) models.CartLine {
	return models.CartLine{
		MealID:       mealID,
		RestaurantID: restaurantID,
		MealName:     "Meal",
		UnitPrice:    price,
		Quantity:     qty,
	}
}

func TestAddItemAggregatesSameIdentity(t *testing.T) {
	store := newTestStore(NewMemorySnapshotStore(), "2026-03-04")
	store.InitializeForUser("u1")

	store.AddItem(line(1, 1, 1500, 1))
	store.AddItem(line(1, 1, 1500, 2))

	lines := store.Lines()
	assert.Len(t, lines, 1)
	assert.Equal(t, 3, lines[0].Quantity)
}

func TestAddItemSameMealDifferentRestaurant(t *testing.T) {
	store := newTestStore(NewMemorySnapshotStore(), "2026-03-04")
	store.InitializeForUser("u1")

	store.AddItem(line(1, 1, 1500, 1))
	store.AddItem(line(1, 2, 1200, 1))

	assert.Len(t, store.Lines(), 2)
}

func TestAddItemIgnoresNonPositiveQuantity(t *testing.T) {
	store := newTestStore(NewMemorySnapshotStore(), "2026-03-04")
	store.InitializeForUser("u1")

	store.AddItem(line(1, 1, 1500, 0))
	store.AddItem(line(1, 1, 1500, -2))

	assert.Empty(t, store.Lines())
}

func TestUpdateQuantityZeroRemovesLine(t *testing.T) {
	store := newTestStore(NewMemorySnapshotStore(), "2026-03-04")
	store.InitializeForUser("u1")
	store.AddItem(line(1, 1, 1500, 2))

	store.UpdateQuantity(1, 1, 0)
	assert.Empty(t, store.Lines())
}

func TestUpdateQuantityUnknownIdentityIsNoOp(t *testing.T) {
	store := newTestStore(NewMemorySnapshotStore(), "2026-03-04")
	store.InitializeForUser("u1")
	store.AddItem(line(1, 1, 1500, 2))

	store.UpdateQuantity(9, 9, 5)

	lines := store.Lines()
	assert.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
}

func TestRemoveItem(t *testing.T) {
	store := newTestStore(NewMemorySnapshotStore(), "2026-03-04")
	store.InitializeForUser("u1")
	store.AddItem(line(1, 1, 1500, 1))
	store.AddItem(line(2, 1, 1000, 1))

	store.RemoveItem(1, 1)

	lines := store.Lines()
	assert.Len(t, lines, 1)
	assert.Equal(t, uint(2), lines[0].MealID)
}

func TestClearIsIdempotent(t *testing.T) {
	store := newTestStore(NewMemorySnapshotStore(), "2026-03-04")
	store.InitializeForUser("u1")
	store.AddItem(line(1, 1, 1500, 1))

	store.Clear()
	store.Clear()

	assert.Empty(t, store.Lines())
}

func TestSnapshotRoundTripSameDay(t *testing.T) {
	snapshots := NewMemorySnapshotStore()

	first := newTestStore(snapshots, "2026-03-04")
	first.InitializeForUser("u1")
	first.AddItem(line(1, 1, 1500, 2))
	first.AddItem(line(2, 1, 1000, 1))

	second := newTestStore(snapshots, "2026-03-04")
	second.InitializeForUser("u1")

	lines := second.Lines()
	assert.Len(t, lines, 2)
	assert.Equal(t, 2, lines[0].Quantity)
}

func TestSnapshotFromAnotherDayIsDiscarded(t *testing.T) {
	snapshots := NewMemorySnapshotStore()

	yesterday := newTestStore(snapshots, "2026-03-03")
	yesterday.InitializeForUser("u1")
	yesterday.AddItem(line(1, 1, 1500, 2))

	today := newTestStore(snapshots, "2026-03-04")
	today.InitializeForUser("u1")

	assert.Empty(t, today.Lines())

	// The stale snapshot is overwritten, not left behind.
	snap, err := snapshots.Load("u1")
	assert.NoError(t, err)
	assert.Equal(t, "2026-03-04", snap.SavedDate)
	assert.Empty(t, snap.Items)
}

func TestCorruptSnapshotResetsToEmpty(t *testing.T) {
	snapshots := NewMemorySnapshotStore()

	seed := newTestStore(snapshots, "2026-03-04")
	seed.InitializeForUser("u1")
	seed.AddItem(line(1, 1, 1500, 1))
	snapshots.Corrupt("u1")

	store := newTestStore(snapshots, "2026-03-04")
	store.InitializeForUser("u1")

	assert.Empty(t, store.Lines())

	snap, err := snapshots.Load("u1")
	assert.NoError(t, err)
	assert.Empty(t, snap.Items)
}

func TestLoadFiltersInvalidLinesAndRewritesSnapshot(t *testing.T) {
	snapshots := NewMemorySnapshotStore()
	assert.NoError(t, snapshots.Save("u1", PersistedCart{
		Items: []models.CartLine{
			line(1, 1, 1500, 2),
			line(2, 1, 1000, 0), // must never be stored, filtered on load
		},
		SavedDate: "2026-03-04",
	}))

	store := newTestStore(snapshots, "2026-03-04")
	store.InitializeForUser("u1")

	lines := store.Lines()
	assert.Len(t, lines, 1)
	assert.Equal(t, uint(1), lines[0].MealID)

	// Storage is rewritten to match memory right away, not on the next
	// mutation.
	snap, err := snapshots.Load("u1")
	assert.NoError(t, err)
	assert.Len(t, snap.Items, 1)
	assert.Equal(t, uint(1), snap.Items[0].MealID)
}

func TestClearUserSessionKeepsSnapshot(t *testing.T) {
	snapshots := NewMemorySnapshotStore()

	store := newTestStore(snapshots, "2026-03-04")
	store.InitializeForUser("u1")
	store.AddItem(line(1, 1, 1500, 2))

	store.ClearUserSession()
	assert.Empty(t, store.Lines())

	snap, err := snapshots.Load("u1")
	assert.NoError(t, err)
	assert.Len(t, snap.Items, 1)
}

func TestPrepareOrderData(t *testing.T) {
	store := newTestStore(NewMemorySnapshotStore(), "2026-03-04")
	store.InitializeForUser("u1")
	store.AddItem(line(1, 1, 1500, 2))
	store.AddItem(line(2, 2, 1000, 1))

	req := store.PrepareOrderData()

	assert.Len(t, req.Items, 2)
	assert.Equal(t, uint(1), req.Items[0].MealID)
	assert.Equal(t, 2, req.Items[0].Quantity)
	assert.Equal(t, 1500.0, req.Items[0].UnitPrice)
}

func TestApplyValidationSkipsEditedLines(t *testing.T) {
	store := newTestStore(NewMemorySnapshotStore(), "2026-03-04")
	store.InitializeForUser("u1")
	store.AddItem(line(1, 1, 1500, 2))
	store.AddItem(line(2, 1, 1000, 1))

	// The user bumped meal 1 to qty 3 while validation was in flight;
	// the stale result still says qty 2 so that line must survive.
	store.UpdateQuantity(1, 1, 3)

	removed := store.ApplyValidation(ValidationResult{
		RemovedItems: []models.CartLine{
			line(1, 1, 1500, 2),
			line(2, 1, 1000, 1),
		},
	})

	assert.Len(t, removed, 1)
	assert.Equal(t, uint(2), removed[0].MealID)

	lines := store.Lines()
	assert.Len(t, lines, 1)
	assert.Equal(t, uint(1), lines[0].MealID)
	assert.Equal(t, 3, lines[0].Quantity)
}

func TestRegistryReturnsSameStorePerUser(t *testing.T) {
	registry := NewCartRegistry(NewMemorySnapshotStore())

	a := registry.ForUser("u1")
	b := registry.ForUser("u1")
	other := registry.ForUser("u2")

	assert.Same(t, a, b)
	assert.NotSame(t, a, other)
}

func TestRegistryDrop(t *testing.T) {
	snapshots := NewMemorySnapshotStore()
	registry := NewCartRegistry(snapshots)

	store := registry.ForUser("u1")
	store.today = func() string { return "2026-03-04" }
	store.AddItem(line(1, 1, 1500, 1))

	registry.Drop("u1")

	// A fresh store reloads today's snapshot.
	reloaded := registry.ForUser("u1")
	assert.NotSame(t, store, reloaded)
}
