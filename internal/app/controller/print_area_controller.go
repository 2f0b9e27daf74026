package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/printcraft-backend/internal/app/model"
	"github.com/ikkim/printcraft-backend/internal/app/service"
	apperrors "github.com/ikkim/printcraft-backend/internal/errors"
	"github.com/ikkim/printcraft-backend/internal/middleware"
)

type PrintAreaController struct {
	printAreas service.PrintAreaService
}

func NewPrintAreaController(printAreas service.PrintAreaService) *PrintAreaController {
	return &PrintAreaController{
		printAreas: printAreas,
	}
}

type SetPrintAreaRequest struct {
	VariationID *uint    `json:"variation_id"`
	Name        string   `json:"name" binding:"max=64"`
	X           *float64 `json:"x"`
	Y           *float64 `json:"y"`
	W           *float64 `json:"w"`
	H           *float64 `json:"h"`
}

// GetPrintArea returns the area a design for this product/variation is checked against
// GET /api/v1/products/:id/print-area?variation_id=
func (ctrl *PrintAreaController) GetPrintArea(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	variationID, ok := parseOptionalID(c, "variation_id")
	if !ok {
		return
	}

	area, err := ctrl.printAreas.Get(c.Request.Context(), productID, variationID)
	if err != nil {
		log.Error("Failed to resolve print area", err, map[string]interface{}{
			"product_id": productID,
		})
		respondError(c, err, "print area")
		return
	}
	if area == nil {
		apperrors.NotFound(c, apperrors.MissingPrintArea, "No print area is configured for this product")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product_id":   productID,
		"variation_id": variationID,
		"print_area":   area,
	})
}

// ListPrintAreas returns every stored area of a product
// GET /api/v1/products/:id/print-areas
func (ctrl *PrintAreaController) ListPrintAreas(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	areas, err := ctrl.printAreas.List(productID)
	if err != nil {
		respondError(c, err, "print area")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"print_areas": areas,
		"count":       len(areas),
	})
}

// SetPrintArea stores the product default or a variation's own area
// PUT /api/v1/products/:id/print-area
func (ctrl *PrintAreaController) SetPrintArea(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req SetPrintAreaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid print area request", map[string]interface{}{
			"product_id": productID,
			"error":      err.Error(),
		})
		apperrors.BadRequest(c, apperrors.InvalidPrintArea, "Invalid print area payload")
		return
	}

	area, err := ctrl.printAreas.Set(c.Request.Context(), productID, req.VariationID, req.Name, model.PrintAreaInput{
		X: req.X,
		Y: req.Y,
		W: req.W,
		H: req.H,
	})
	if err != nil {
		respondError(c, err, "print area")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"print_area": area,
	})
}
