package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cartFixture(outletID uuid.UUID, name string, price float64) CartItem {
	return CartItem{
		MenuItemID: uuid.New(),
		OutletID:   outletID,
		OutletName: "Campus Cafe",
		Name:       name,
		Price:      price,
	}
}

func TestCartAddIncrementsExistingItem(t *testing.T) {
	store := NewCartStore()
	userID := uuid.New()
	item := cartFixture(uuid.New(), "Masala Dosa", 80)

	require.NoError(t, store.Add(userID, item))
	require.NoError(t, store.Add(userID, item))

	items := store.Items(userID)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, 2, store.TotalCount(userID))
	assert.InDelta(t, 160, store.TotalPrice(userID), 0.001)
}

func TestCartRejectsSecondOutlet(t *testing.T) {
	store := NewCartStore()
	userID := uuid.New()

	require.NoError(t, store.Add(userID, cartFixture(uuid.New(), "Masala Dosa", 80)))

	err := store.Add(userID, cartFixture(uuid.New(), "Veg Biryani", 120))
	assert.ErrorIs(t, err, ErrDifferentOutlet)
	assert.Equal(t, 1, store.TotalCount(userID))

	// clearing unlocks the other outlet
	store.Clear(userID)
	assert.NoError(t, store.Add(userID, cartFixture(uuid.New(), "Veg Biryani", 120)))
}

func TestCartSetQuantity(t *testing.T) {
	store := NewCartStore()
	userID := uuid.New()
	outletID := uuid.New()
	dosa := cartFixture(outletID, "Masala Dosa", 80)
	chai := cartFixture(outletID, "Chai", 15)

	require.NoError(t, store.Add(userID, dosa))
	require.NoError(t, store.Add(userID, chai))

	store.SetQuantity(userID, chai.MenuItemID, 4)
	assert.Equal(t, 5, store.TotalCount(userID))
	assert.InDelta(t, 140, store.TotalPrice(userID), 0.001)

	// zero removes the row entirely
	store.SetQuantity(userID, dosa.MenuItemID, 0)
	items := store.Items(userID)
	require.Len(t, items, 1)
	assert.Equal(t, "Chai", items[0].Name)

	store.Remove(userID, chai.MenuItemID)
	assert.Empty(t, store.Items(userID))
	assert.Zero(t, store.TotalPrice(userID))
}

func TestCartsAreScopedPerUser(t *testing.T) {
	store := NewCartStore()
	alice := uuid.New()
	bob := uuid.New()

	require.NoError(t, store.Add(alice, cartFixture(uuid.New(), "Masala Dosa", 80)))

	assert.Empty(t, store.Items(bob))
	assert.Zero(t, store.TotalCount(bob))

	store.Clear(bob)
	assert.Equal(t, 1, store.TotalCount(alice))
}

func TestCartItemsReturnsCopy(t *testing.T) {
	store := NewCartStore()
	userID := uuid.New()
	require.NoError(t, store.Add(userID, cartFixture(uuid.New(), "Masala Dosa", 80)))

	items := store.Items(userID)
	items[0].Quantity = 99

	assert.Equal(t, 1, store.TotalCount(userID))
}
