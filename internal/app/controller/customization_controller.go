package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/printcraft-backend/internal/app/model"
	"github.com/ikkim/printcraft-backend/internal/app/service"
	apperrors "github.com/ikkim/printcraft-backend/internal/errors"
	"github.com/ikkim/printcraft-backend/internal/middleware"
)

type CustomizationController struct {
	customization service.CustomizationService
}

func NewCustomizationController(customization service.CustomizationService) *CustomizationController {
	return &CustomizationController{
		customization: customization,
	}
}

type ValidateDesignRequest struct {
	ProductID   uint                    `json:"product_id" binding:"required"`
	VariationID *uint                   `json:"variation_id"`
	DesignData  *model.DesignSubmission `json:"design_data"`
}

type AddCustomizedRequest struct {
	ProductID   uint                    `json:"product_id" binding:"required"`
	VariationID *uint                   `json:"variation_id"`
	Quantity    int                     `json:"quantity" binding:"omitempty,gt=0"`
	DesignData  *model.DesignSubmission `json:"design_data"`
}

// ValidateDesign checks a design without storing anything
// POST /api/v1/customizations/validate
func (ctrl *CustomizationController) ValidateDesign(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req ValidateDesignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid validate request", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		apperrors.BadRequest(c, apperrors.InvalidData, "Invalid request data")
		return
	}

	result, err := ctrl.customization.Validate(c.Request.Context(), service.CustomizationRequest{
		UserID:      userID,
		ProductID:   req.ProductID,
		VariationID: req.VariationID,
		Design:      req.DesignData,
	})
	if err != nil {
		respondError(c, err, "design")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"valid":      true,
		"design":     result.Design,
		"print_area": result.PrintArea,
	})
}

// AddCustomizedToCart validates a design and adds it to the cart as its own line
// POST /api/v1/cart/customized
func (ctrl *CustomizationController) AddCustomizedToCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req AddCustomizedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid customized cart request", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		apperrors.BadRequest(c, apperrors.InvalidData, "Invalid request data")
		return
	}

	result, err := ctrl.customization.Commit(c.Request.Context(), service.CustomizationRequest{
		UserID:      userID,
		ProductID:   req.ProductID,
		VariationID: req.VariationID,
		Quantity:    req.Quantity,
		Design:      req.DesignData,
	})
	if err != nil {
		respondError(c, err, "cart item")
		return
	}

	log.Info("Customized item added to cart", map[string]interface{}{
		"user_id":      userID,
		"cart_line_id": result.CartItem.ID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"cart_line_id": result.CartItem.ID,
		"unique_key":   result.CartItem.UniqueKey,
		"design":       result.Design,
	})
}
