package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct_Valid(t *testing.T) {
	item, err := NewProduct("p1", "Chew toy", 499, 3, "img/toy.png")
	require.NoError(t, err)
	assert.Equal(t, KindProduct, item.Kind)
	assert.Equal(t, 3, item.EffectiveQuantity())
	assert.Equal(t, int64(1497), item.Subtotal())
}

func TestNewProduct_QuantityBelowOne(t *testing.T) {
	_, err := NewProduct("p1", "Chew toy", 499, 0, "")
	assert.ErrorIs(t, err, ErrInvalidItem)

	_, err = NewProduct("p1", "Chew toy", 499, -2, "")
	assert.ErrorIs(t, err, ErrInvalidItem)
}

func TestNewProduct_NegativePrice(t *testing.T) {
	_, err := NewProduct("p1", "Chew toy", -1, 1, "")
	assert.ErrorIs(t, err, ErrInvalidItem)
}

func TestNewService_Valid(t *testing.T) {
	item, err := NewService("s1", "Grooming", 3000, PriceDaily, "")
	require.NoError(t, err)
	assert.Equal(t, KindService, item.Kind)

	// Services have no quantity axis.
	assert.Equal(t, 1, item.EffectiveQuantity())
	assert.Equal(t, int64(3000), item.Subtotal())
}

func TestNewService_UnknownPriceType(t *testing.T) {
	_, err := NewService("s1", "Grooming", 3000, "weekly", "")
	assert.ErrorIs(t, err, ErrInvalidItem)

	_, err = NewService("s1", "Grooming", 3000, "", "")
	assert.ErrorIs(t, err, ErrInvalidItem)
}

func TestValidate_UnknownKind(t *testing.T) {
	item := CartItem{ID: "x1", Kind: "bundle", UnitPrice: 100, Quantity: 1}
	assert.ErrorIs(t, item.Validate(), ErrInvalidItem)
}

func TestValidate_EmptyID(t *testing.T) {
	item := CartItem{Kind: KindProduct, UnitPrice: 100, Quantity: 1}
	assert.ErrorIs(t, item.Validate(), ErrInvalidItem)
}

func TestKey_DistinguishesKinds(t *testing.T) {
	product, err := NewProduct("same-id", "Toy", 100, 1, "")
	require.NoError(t, err)
	service, err := NewService("same-id", "Walk", 100, PriceHourly, "")
	require.NoError(t, err)

	assert.NotEqual(t, product.Key(), service.Key())
	assert.Equal(t, LineKey{ID: "same-id", Kind: KindProduct}, product.Key())
}
