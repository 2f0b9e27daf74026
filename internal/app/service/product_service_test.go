package service

import (
	"testing"

	"github.com/ikkim/printcraft-backend/internal/app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductService_ListProducts(t *testing.T) {
	f := setupFixture(t)
	products := f.components.Products

	require.NoError(t, products.CreateProduct(&model.Product{Name: "Plain Mug", StockQuantity: 3}))
	require.NoError(t, products.CreateProduct(&model.Product{Name: "Tote Bag", Customizable: true}))

	all, total, err := products.ListProducts(ProductListOptions{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, all, 3)

	custom, total, err := products.ListProducts(ProductListOptions{CustomizableOnly: true})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	for _, p := range custom {
		assert.True(t, p.Customizable)
	}

	found, total, err := products.ListProducts(ProductListOptions{Search: "mug"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, found, 1)
	assert.Equal(t, "Plain Mug", found[0].Name)

	page, total, err := products.ListProducts(ProductListOptions{Limit: 1, Offset: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, page, 1)
}

func TestProductService_GetProductByID(t *testing.T) {
	f := setupFixture(t)

	product, err := f.components.Products.GetProductByID(f.product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Classic Tee", product.Name)
	require.Len(t, product.Variants, 1)
	assert.Equal(t, "L", product.Variants[0].Value)

	_, err = f.components.Products.GetProductByID(9999)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestProductService_AddVariant(t *testing.T) {
	f := setupFixture(t)

	variant := &model.ProductVariant{Name: "size", Value: "XL", StockQuantity: 2}
	require.NoError(t, f.components.Products.AddVariant(f.product.ID, variant))
	assert.NotZero(t, variant.ID)
	assert.Equal(t, f.product.ID, variant.ProductID)

	product, err := f.components.Products.GetProductByID(f.product.ID)
	require.NoError(t, err)
	assert.Len(t, product.Variants, 2)

	err = f.components.Products.AddVariant(9999, &model.ProductVariant{Name: "size", Value: "S"})
	assert.ErrorIs(t, err, ErrProductNotFound)
}
