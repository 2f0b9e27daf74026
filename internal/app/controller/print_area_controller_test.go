package controller

import (
	"fmt"
	"net/http"
	"testing"

	apperrors "github.com/ikkim/printcraft-backend/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupPrintAreaRoutes(t *testing.T) *testEnv {
	env := setupTestEnv(t)
	ctrl := NewPrintAreaController(env.components.PrintAreas)

	env.router.GET("/products/:id/print-area", ctrl.GetPrintArea)
	env.router.GET("/products/:id/print-areas", ctrl.ListPrintAreas)
	env.router.PUT("/products/:id/print-area", ctrl.SetPrintArea)
	return env
}

func TestPrintAreaController_GetMissing(t *testing.T) {
	env := setupPrintAreaRoutes(t)

	w := doJSON(t, env.router, http.MethodGet, fmt.Sprintf("/products/%d/print-area", env.product.ID), nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, apperrors.MissingPrintArea, decode(t, w)["error_code"])
}

func TestPrintAreaController_SetThenGet(t *testing.T) {
	env := setupPrintAreaRoutes(t)
	base := fmt.Sprintf("/products/%d", env.product.ID)

	w := doJSON(t, env.router, http.MethodPut, base+"/print-area", map[string]interface{}{
		"x": 0.1, "y": 0.2, "w": 0.5, "h": 0.6,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, env.router, http.MethodPut, base+"/print-area", map[string]interface{}{
		"variation_id": env.variant.ID,
		"x":            0.25, "y": 0.25, "w": 0.5, "h": 0.5,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, env.router, http.MethodGet, base+"/print-area", nil)
	require.Equal(t, http.StatusOK, w.Code)
	area := decode(t, w)["print_area"].(map[string]interface{})
	assert.Equal(t, 0.1, area["x"])
	assert.Equal(t, 0.6, area["h"])

	w = doJSON(t, env.router, http.MethodGet, fmt.Sprintf("%s/print-area?variation_id=%d", base, env.variant.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	area = decode(t, w)["print_area"].(map[string]interface{})
	assert.Equal(t, 0.25, area["x"])

	w = doJSON(t, env.router, http.MethodGet, base+"/print-areas", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(2), decode(t, w)["count"])
}

func TestPrintAreaController_SetInvalid(t *testing.T) {
	env := setupPrintAreaRoutes(t)
	path := fmt.Sprintf("/products/%d/print-area", env.product.ID)

	w := doJSON(t, env.router, http.MethodPut, path, map[string]interface{}{"x": 0.8, "y": 0, "w": 0.5, "h": 0.5})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decode(t, w)
	assert.Equal(t, apperrors.InvalidPrintArea, body["error_code"])
	assert.Equal(t, "w", body["field"])

	w = doJSON(t, env.router, http.MethodPut, path, map[string]interface{}{"x": 0, "y": 0, "w": 0.5})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "h", decode(t, w)["field"])

	w = doJSON(t, env.router, http.MethodPut, path, `{"x": "left"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apperrors.InvalidPrintArea, decode(t, w)["error_code"])

	w = doJSON(t, env.router, http.MethodPut, "/products/9999/print-area", map[string]interface{}{"x": 0, "y": 0, "w": 1, "h": 1})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPrintAreaController_BadIDs(t *testing.T) {
	env := setupPrintAreaRoutes(t)

	w := doJSON(t, env.router, http.MethodGet, "/products/abc/print-area", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apperrors.ValidationInvalidID, decode(t, w)["error_code"])

	w = doJSON(t, env.router, http.MethodGet, fmt.Sprintf("/products/%d/print-area?variation_id=x", env.product.ID), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
