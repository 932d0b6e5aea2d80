package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustProduct(t *testing.T, id string, price int64, qty int) CartItem {
	t.Helper()
	item, err := NewProduct(id, "product "+id, price, qty, "")
	require.NoError(t, err)
	return item
}

func mustService(t *testing.T, id string, price int64, pt PriceType) CartItem {
	t.Helper()
	item, err := NewService(id, "service "+id, price, pt, "")
	require.NoError(t, err)
	return item
}

func TestTotal_MixedLines(t *testing.T) {
	cart := &Cart{
		UserID: "u1",
		Items: []CartItem{
			mustProduct(t, "P1", 100, 2),
			mustService(t, "S1", 50, PriceHourly),
		},
	}
	assert.Equal(t, int64(250), cart.Total())
}

func TestTotal_EmptyCart(t *testing.T) {
	cart := &Cart{UserID: "u1"}
	assert.True(t, cart.IsEmpty())
	assert.Equal(t, int64(0), cart.Total())
}

func TestFind_ByKey(t *testing.T) {
	cart := &Cart{
		Items: []CartItem{
			mustProduct(t, "P1", 100, 1),
			mustService(t, "P1", 200, PriceDaily), // same id, different kind
		},
	}

	i, ok := cart.Find(LineKey{ID: "P1", Kind: KindService})
	require.True(t, ok)
	assert.Equal(t, 1, i)

	_, ok = cart.Find(LineKey{ID: "P2", Kind: KindProduct})
	assert.False(t, ok)
}

func TestProducts_FiltersServices(t *testing.T) {
	cart := &Cart{
		Items: []CartItem{
			mustService(t, "S1", 50, PriceHourly),
			mustProduct(t, "P1", 100, 2),
			mustProduct(t, "P2", 300, 1),
		},
	}

	products := cart.Products()
	require.Len(t, products, 2)
	assert.Equal(t, "P1", products[0].ID)
	assert.Equal(t, "P2", products[1].ID)
}

func TestRemoveAt_PreservesOrder(t *testing.T) {
	cart := &Cart{
		Items: []CartItem{
			mustProduct(t, "P1", 100, 1),
			mustProduct(t, "P2", 100, 1),
			mustProduct(t, "P3", 100, 1),
		},
	}

	cart.RemoveAt(1)
	require.Len(t, cart.Items, 2)
	assert.Equal(t, "P1", cart.Items[0].ID)
	assert.Equal(t, "P3", cart.Items[1].ID)
}
