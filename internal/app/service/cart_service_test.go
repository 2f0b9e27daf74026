package service

import (
	"testing"

	"github.com/ikkim/printcraft-backend/internal/app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartService_GetUserCart(t *testing.T) {
	f := setupFixture(t)
	cart := f.components.Cart

	// Initially empty
	items, err := cart.GetUserCart(testUserID)
	assert.NoError(t, err)
	assert.Len(t, items, 0)

	_, err = cart.AddToCart(testUserID, f.product.ID, nil, 2)
	require.NoError(t, err)

	items, err = cart.GetUserCart(testUserID)
	assert.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, "Classic Tee", items[0].Product.Name)
	assert.False(t, items[0].Customized)
}

func TestCartService_AddToCart_ProductNotFound(t *testing.T) {
	f := setupFixture(t)

	_, err := f.components.Cart.AddToCart(testUserID, 9999, nil, 1)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCartService_AddToCart_InvalidQuantity(t *testing.T) {
	f := setupFixture(t)

	_, err := f.components.Cart.AddToCart(testUserID, f.product.ID, nil, 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestCartService_AddToCart_InsufficientStock(t *testing.T) {
	f := setupFixture(t)

	_, err := f.components.Cart.AddToCart(testUserID, f.product.ID, nil, 11)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	// variant L only has 5
	_, err = f.components.Cart.AddToCart(testUserID, f.product.ID, &f.variant.ID, 6)
	assert.ErrorIs(t, err, ErrInsufficientStock)
}

func TestCartService_AddToCart_ForeignVariant(t *testing.T) {
	f := setupFixture(t)

	other := &model.Product{Name: "Mug", Variants: []model.ProductVariant{{Name: "size", Value: "11oz", StockQuantity: 3}}}
	require.NoError(t, f.components.Products.CreateProduct(other))

	_, err := f.components.Cart.AddToCart(testUserID, f.product.ID, &other.Variants[0].ID, 1)
	assert.ErrorIs(t, err, ErrInvalidVariant)
}

func TestCartService_AddToCart_MergesPlainLines(t *testing.T) {
	f := setupFixture(t)
	cart := f.components.Cart

	first, err := cart.AddToCart(testUserID, f.product.ID, &f.variant.ID, 2)
	require.NoError(t, err)
	second, err := cart.AddToCart(testUserID, f.product.ID, &f.variant.ID, 1)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 3, second.Quantity)

	// the merged total is checked against stock
	_, err = cart.AddToCart(testUserID, f.product.ID, &f.variant.ID, 3)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	// a different variant is a different line
	_, err = cart.AddToCart(testUserID, f.product.ID, nil, 1)
	require.NoError(t, err)

	items, err := cart.GetUserCart(testUserID)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestCartService_AddCustomizedItem_NeverMerges(t *testing.T) {
	f := setupFixture(t)
	cart := f.components.Cart

	_, err := cart.AddToCart(testUserID, f.product.ID, nil, 1)
	require.NoError(t, err)

	for _, key := range []string{"key-a", "key-b"} {
		k := key
		item := &model.CartItem{
			UserID:    testUserID,
			ProductID: f.product.ID,
			Quantity:  1,
			UniqueKey: &k,
			Design:    &model.CanonicalDesign{AttachmentIDs: []uint64{uint64(f.image.ID)}},
		}
		require.NoError(t, cart.AddCustomizedItem(item))
		assert.True(t, item.Customized)
		assert.NotZero(t, item.ID)
	}

	// a later plain add still merges into the plain line only
	merged, err := cart.AddToCart(testUserID, f.product.ID, nil, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, merged.Quantity)
	assert.Nil(t, merged.UniqueKey)

	items, err := cart.GetUserCart(testUserID)
	require.NoError(t, err)
	assert.Len(t, items, 3)
}

func TestCartService_AddCustomizedItem_Rejections(t *testing.T) {
	f := setupFixture(t)
	cart := f.components.Cart

	err := cart.AddCustomizedItem(&model.CartItem{UserID: testUserID, ProductID: f.product.ID, Quantity: 0})
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	err = cart.AddCustomizedItem(&model.CartItem{UserID: testUserID, ProductID: f.product.ID, VariantID: &f.variant.ID, Quantity: 6})
	assert.ErrorIs(t, err, ErrInsufficientStock)

	err = cart.AddCustomizedItem(&model.CartItem{UserID: testUserID, ProductID: 9999, Quantity: 1})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCartService_UpdateCartItem(t *testing.T) {
	f := setupFixture(t)
	cart := f.components.Cart

	item, err := cart.AddToCart(testUserID, f.product.ID, nil, 1)
	require.NoError(t, err)

	require.NoError(t, cart.UpdateCartItem(testUserID, item.ID, 4))
	items, err := cart.GetUserCart(testUserID)
	require.NoError(t, err)
	assert.Equal(t, 4, items[0].Quantity)

	assert.ErrorIs(t, cart.UpdateCartItem(testUserID, item.ID, 0), ErrInvalidQuantity)
	assert.ErrorIs(t, cart.UpdateCartItem(testUserID, item.ID, 11), ErrInsufficientStock)
	assert.ErrorIs(t, cart.UpdateCartItem(testUserID, 9999, 1), ErrCartItemNotFound)
}

func TestCartService_UpdateCartItem_WrongUser(t *testing.T) {
	f := setupFixture(t)

	item, err := f.components.Cart.AddToCart(testUserID, f.product.ID, nil, 1)
	require.NoError(t, err)

	err = f.components.Cart.UpdateCartItem(testUserID+1, item.ID, 2)
	assert.ErrorIs(t, err, ErrCartItemNotFound)
}

func TestCartService_RemoveFromCart(t *testing.T) {
	f := setupFixture(t)
	cart := f.components.Cart

	item, err := cart.AddToCart(testUserID, f.product.ID, nil, 1)
	require.NoError(t, err)

	assert.ErrorIs(t, cart.RemoveFromCart(testUserID+1, item.ID), ErrCartItemNotFound)
	require.NoError(t, cart.RemoveFromCart(testUserID, item.ID))
	assert.ErrorIs(t, cart.RemoveFromCart(testUserID, item.ID), ErrCartItemNotFound)

	items, err := cart.GetUserCart(testUserID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestCartService_ClearCart(t *testing.T) {
	f := setupFixture(t)
	cart := f.components.Cart

	_, err := cart.AddToCart(testUserID, f.product.ID, nil, 1)
	require.NoError(t, err)
	_, err = cart.AddToCart(testUserID, f.product.ID, &f.variant.ID, 1)
	require.NoError(t, err)
	_, err = cart.AddToCart(testUserID+1, f.product.ID, nil, 1)
	require.NoError(t, err)

	require.NoError(t, cart.ClearCart(testUserID))

	items, err := cart.GetUserCart(testUserID)
	require.NoError(t, err)
	assert.Empty(t, items)

	others, err := cart.GetUserCart(testUserID + 1)
	require.NoError(t, err)
	assert.Len(t, others, 1)
}
