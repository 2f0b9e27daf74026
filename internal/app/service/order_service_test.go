package service

import (
	"context"
	"testing"

	"github.com/ikkim/printcraft-backend/internal/app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// commitDesign pushes one customized line through the pipeline.
func commitDesign(t *testing.T, f *fixture, variantID *uint, quantity int) *CustomizationResult {
	t.Helper()
	result, err := f.components.Customization.Commit(context.Background(), CustomizationRequest{
		UserID:      testUserID,
		ProductID:   f.product.ID,
		VariationID: variantID,
		Quantity:    quantity,
		Design:      fittingDesign(t, f.image.ID, 0),
	})
	require.NoError(t, err)
	return result
}

func TestOrderService_Checkout_TransfersDesigns(t *testing.T) {
	f := setupFixture(t)
	f.setArea(t, nil, 0.3, 0.3, 0.4, 0.4)

	committed := commitDesign(t, f, nil, 2)
	_, err := f.components.Cart.AddToCart(testUserID, f.product.ID, &f.variant.ID, 1)
	require.NoError(t, err)

	order, err := f.components.Orders.Checkout(testUserID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusPending, order.Status)
	assert.Equal(t, 2, order.ItemCount)
	require.Len(t, order.OrderItems, 2)

	custom := order.OrderItems[0]
	assert.True(t, custom.IsCustomized)
	assert.Equal(t, 2, custom.Quantity)
	assert.Equal(t, *committed.CartItem.UniqueKey, custom.UniqueKey)
	assert.Equal(t, "dtg", custom.PrintType)
	assert.Equal(t, "cotton", custom.FabricType)
	assert.Equal(t, "black", custom.Color)
	assert.Equal(t, committed.Design.AttachmentIDs, custom.AttachmentIDs)
	require.NotNil(t, custom.Design)
	assert.Equal(t, committed.Design, *custom.Design)
	assert.Equal(t, committed.Design.AppliedTransform, custom.Design.AppliedTransform)
	require.NotNil(t, custom.PrintAreaSnapshot)
	assert.Equal(t, model.PrintAreaRect{X: 0.3, Y: 0.3, W: 0.4, H: 0.4}, *custom.PrintAreaSnapshot)

	plain := order.OrderItems[1]
	assert.False(t, plain.IsCustomized)
	assert.Nil(t, plain.Design)
	assert.Empty(t, plain.UniqueKey)
	require.NotNil(t, plain.VariantID)
	assert.Equal(t, f.variant.ID, *plain.VariantID)

	// cart is emptied
	items, err := f.components.Cart.GetUserCart(testUserID)
	require.NoError(t, err)
	assert.Empty(t, items)

	// stock taken from the product and the variant
	product, err := f.components.Products.GetProductByID(f.product.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, product.StockQuantity)
	require.Len(t, product.Variants, 1)
	assert.Equal(t, 4, product.Variants[0].StockQuantity)
}

func TestOrderService_Checkout_SnapshotSurvivesAreaChange(t *testing.T) {
	f := setupFixture(t)
	f.setArea(t, nil, 0.3, 0.3, 0.4, 0.4)

	commitDesign(t, f, nil, 1)
	f.setArea(t, nil, 0, 0, 0.1, 0.1)

	order, err := f.components.Orders.Checkout(testUserID)
	require.NoError(t, err)
	require.Len(t, order.OrderItems, 1)
	assert.Equal(t, model.PrintAreaRect{X: 0.3, Y: 0.3, W: 0.4, H: 0.4}, *order.OrderItems[0].PrintAreaSnapshot)
}

func TestOrderService_Checkout_EmptyCart(t *testing.T) {
	f := setupFixture(t)

	order, err := f.components.Orders.Checkout(testUserID)
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Nil(t, order)
}

func TestOrderService_Checkout_InsufficientStockRollsBack(t *testing.T) {
	f := setupFixture(t)

	commitDesign(t, f, nil, 3)
	_, err := f.components.Cart.AddToCart(testUserID, f.product.ID, &f.variant.ID, 5)
	require.NoError(t, err)

	// stock drops under the cart's variant line before checkout
	require.NoError(t, f.db.Model(&model.ProductVariant{}).Where("id = ?", f.variant.ID).
		Update("stock_quantity", 2).Error)

	_, err = f.components.Orders.Checkout(testUserID)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	// nothing changed: product stock intact, cart intact, no order
	product, err := f.components.Products.GetProductByID(f.product.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, product.StockQuantity)

	items, err := f.components.Cart.GetUserCart(testUserID)
	require.NoError(t, err)
	assert.Len(t, items, 2)

	orders, err := f.components.Orders.GetUserOrders(testUserID)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestOrderService_GetOrderByID(t *testing.T) {
	f := setupFixture(t)
	commitDesign(t, f, nil, 1)

	order, err := f.components.Orders.Checkout(testUserID)
	require.NoError(t, err)

	found, err := f.components.Orders.GetOrderByID(testUserID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, found.ID)
	assert.Len(t, found.OrderItems, 1)

	_, err = f.components.Orders.GetOrderByID(testUserID+1, order.ID)
	assert.ErrorIs(t, err, ErrOrderNotFound)

	_, err = f.components.Orders.GetOrderByID(testUserID, 9999)
	assert.ErrorIs(t, err, ErrOrderNotFound)

	admin, err := f.components.Orders.GetOrder(order.ID)
	require.NoError(t, err)
	assert.Equal(t, testUserID, admin.UserID)
}

func TestOrderService_GetUserOrders(t *testing.T) {
	f := setupFixture(t)

	commitDesign(t, f, nil, 1)
	_, err := f.components.Orders.Checkout(testUserID)
	require.NoError(t, err)
	commitDesign(t, f, nil, 1)
	_, err = f.components.Orders.Checkout(testUserID)
	require.NoError(t, err)

	orders, err := f.components.Orders.GetUserOrders(testUserID)
	require.NoError(t, err)
	assert.Len(t, orders, 2)

	others, err := f.components.Orders.GetUserOrders(testUserID + 1)
	require.NoError(t, err)
	assert.Empty(t, others)
}

func TestOrderService_UpdateOrderStatus_LeavesItemsUntouched(t *testing.T) {
	f := setupFixture(t)
	f.setArea(t, nil, 0.3, 0.3, 0.4, 0.4)
	commitDesign(t, f, nil, 1)

	order, err := f.components.Orders.Checkout(testUserID)
	require.NoError(t, err)
	before := order.OrderItems[0]

	require.NoError(t, f.components.Orders.UpdateOrderStatus(order.ID, model.OrderStatusPrinting))

	after, err := f.components.Orders.GetOrder(order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusPrinting, after.Status)
	require.Len(t, after.OrderItems, 1)
	assert.Equal(t, before.Design, after.OrderItems[0].Design)
	assert.Equal(t, before.AttachmentIDs, after.OrderItems[0].AttachmentIDs)
	assert.Equal(t, before.UniqueKey, after.OrderItems[0].UniqueKey)

	assert.ErrorIs(t, f.components.Orders.UpdateOrderStatus(order.ID, "lost"), ErrInvalidOrderStatus)
	assert.ErrorIs(t, f.components.Orders.UpdateOrderStatus(9999, model.OrderStatusShipped), ErrOrderNotFound)
}
