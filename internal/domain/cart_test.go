package domain

import (
	"strconv"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(id string, price int64) CartItem {
	return CartItem{ID: id, Name: "Frame " + id, Price: decimal.NewFromInt(price), Image: "/assets/" + id + ".jpg"}
}

func TestCart_AddDistinctIDs(t *testing.T) {
	cart := NewCart("s1")
	want := map[string]int{}
	for i := 0; i < 20; i++ {
		id := strconv.Itoa(gofakeit.IntRange(1, 6))
		qty := gofakeit.IntRange(1, 5)
		cart.AddItem(item(id, 10), qty)
		want[id] += qty
	}

	require.Len(t, cart.Items, len(want))
	for _, line := range cart.Items {
		assert.Equal(t, want[line.ID], line.Quantity, "quantity for id %s", line.ID)
	}
}

func TestCart_AddSameIDMerges(t *testing.T) {
	cart := NewCart("s1")
	cart.AddItem(item("1", 89), 2)
	cart.AddItem(item("1", 89), 3)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)
}

func TestCart_AddKeepsInsertionOrder(t *testing.T) {
	cart := NewCart("s1")
	cart.AddItem(item("3", 1), 1)
	cart.AddItem(item("1", 1), 1)
	cart.AddItem(item("3", 1), 1)

	require.Len(t, cart.Items, 2)
	assert.Equal(t, "3", cart.Items[0].ID)
	assert.Equal(t, "1", cart.Items[1].ID)
}

func TestCart_AddNonPositiveQuantityClamps(t *testing.T) {
	cart := NewCart("s1")
	cart.AddItem(item("1", 10), 0)
	assert.Equal(t, 1, cart.Items[0].Quantity)

	cart.AddItem(item("1", 10), -4)
	assert.Equal(t, 1, cart.Items[0].Quantity)
}

func TestCart_UpdateQuantity(t *testing.T) {
	cart := NewCart("s1")
	cart.AddItem(item("1", 10), 2)

	cart.UpdateQuantity("1", 7)
	assert.Equal(t, 7, cart.Items[0].Quantity)

	cart.UpdateQuantity("1", 0)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 1, cart.Items[0].Quantity)

	cart.UpdateQuantity("missing", 3)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 1, cart.Items[0].Quantity)
}

func TestCart_RemoveItem(t *testing.T) {
	cart := NewCart("s1")
	cart.AddItem(item("1", 10), 1)
	cart.AddItem(item("2", 10), 1)

	before := cart.Clone()
	cart.RemoveItem("missing")
	assert.Equal(t, before, cart)

	cart.RemoveItem("1")
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "2", cart.Items[0].ID)
}

func TestCart_Totals(t *testing.T) {
	cart := NewCart("s1")
	cart.AddItem(item("1", 89), 2)
	cart.AddItem(item("2", 75), 1)

	assert.Equal(t, 3, cart.TotalItems())
	assert.Equal(t, "253.00", cart.TotalPrice().StringFixed(2))
}

func TestCart_TotalsWithFractionalPrices(t *testing.T) {
	cart := NewCart("s1")
	cart.AddItem(CartItem{ID: "a", Price: decimal.RequireFromString("0.10")}, 3)
	assert.Equal(t, "0.30", cart.TotalPrice().StringFixed(2))
}

func TestCart_Clear(t *testing.T) {
	cart := NewCart("s1")
	for i := 0; i < 5; i++ {
		cart.AddItem(item(gofakeit.UUID(), int64(gofakeit.IntRange(1, 200))), gofakeit.IntRange(1, 4))
	}
	cart.UpdateQuantity(cart.Items[0].ID, 9)
	cart.RemoveItem(cart.Items[1].ID)

	cart.Clear()
	assert.True(t, cart.IsEmpty())
	assert.Equal(t, 0, cart.TotalItems())
	assert.True(t, cart.TotalPrice().IsZero())
}

func TestCart_CloneIsIndependent(t *testing.T) {
	cart := NewCart("s1")
	cart.AddItem(item("1", 10), 1)

	clone := cart.Clone()
	clone.UpdateQuantity("1", 4)

	assert.Equal(t, 1, cart.Items[0].Quantity)
	assert.Equal(t, 4, clone.Items[0].Quantity)
}

func TestMoney_String(t *testing.T) {
	assert.Equal(t, "TND 253.00", NewMoney(decimal.NewFromInt(253)).String())
}

func TestCustomerDetails_FullName(t *testing.T) {
	assert.Equal(t, "Salma Trabelsi", CustomerDetails{FirstName: "Salma", LastName: "Trabelsi"}.FullName())
	assert.Equal(t, "Salma", CustomerDetails{FirstName: "Salma"}.FullName())
	assert.Equal(t, "Trabelsi", CustomerDetails{LastName: "Trabelsi"}.FullName())
}
