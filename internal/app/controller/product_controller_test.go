package controller

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupProductRoutes(t *testing.T) *testEnv {
	env := setupTestEnv(t)
	ctrl := NewProductController(env.components.Products)

	env.router.GET("/products", ctrl.GetAllProducts)
	env.router.GET("/products/:id", ctrl.GetProductByID)
	env.router.POST("/products", ctrl.CreateProduct)
	env.router.POST("/products/:id/variants", ctrl.AddVariant)
	return env
}

func TestProductController_CreateAndList(t *testing.T) {
	env := setupProductRoutes(t)

	w := doJSON(t, env.router, http.MethodPost, "/products", map[string]interface{}{
		"name":           "Canvas Tote",
		"customizable":   true,
		"stock_quantity": 7,
		"variants": []map[string]interface{}{
			{"name": "color", "value": "natural", "stock_quantity": 3},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	product := decode(t, w)["product"].(map[string]interface{})
	assert.Len(t, product["variants"], 1)

	w = doJSON(t, env.router, http.MethodGet, "/products?customizable=true&search=tote", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, float64(1), body["total"])

	w = doJSON(t, env.router, http.MethodGet, "/products", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(2), decode(t, w)["total"])
}

func TestProductController_Validation(t *testing.T) {
	env := setupProductRoutes(t)

	w := doJSON(t, env.router, http.MethodPost, "/products", map[string]interface{}{"description": "no name"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, env.router, http.MethodPost, "/products", map[string]interface{}{
		"name":     "Cap",
		"variants": []map[string]interface{}{{"name": "size"}},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, env.router, http.MethodGet, "/products/9999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProductController_AddVariant(t *testing.T) {
	env := setupProductRoutes(t)

	w := doJSON(t, env.router, http.MethodPost, fmt.Sprintf("/products/%d/variants", env.product.ID), map[string]interface{}{
		"name": "size", "value": "XL", "stock_quantity": 2,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, env.router, http.MethodGet, fmt.Sprintf("/products/%d", env.product.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	product := decode(t, w)["product"].(map[string]interface{})
	assert.Len(t, product["variants"], 2)

	w = doJSON(t, env.router, http.MethodPost, "/products/9999/variants", map[string]interface{}{"name": "size", "value": "S"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
