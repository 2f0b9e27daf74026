package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/printcraft-backend/internal/app/model"
	"github.com/ikkim/printcraft-backend/internal/app/service"
	apperrors "github.com/ikkim/printcraft-backend/internal/errors"
	"github.com/ikkim/printcraft-backend/internal/middleware"
)

type ProductController struct {
	productService service.ProductService
}

func NewProductController(productService service.ProductService) *ProductController {
	return &ProductController{
		productService: productService,
	}
}

type VariantRequest struct {
	Name          string `json:"name" binding:"required"`
	Value         string `json:"value" binding:"required"`
	SKU           string `json:"sku" binding:"max=64"`
	StockQuantity int    `json:"stock_quantity" binding:"gte=0"`
	MockupURL     string `json:"mockup_url"`
	IsDefault     bool   `json:"is_default"`
}

type CreateProductRequest struct {
	Name          string           `json:"name" binding:"required"`
	Description   string           `json:"description"`
	Customizable  bool             `json:"customizable"`
	MockupURL     string           `json:"mockup_url"`
	StockQuantity int              `json:"stock_quantity" binding:"gte=0"`
	Variants      []VariantRequest `json:"variants" binding:"dive"`
}

func (r VariantRequest) toModel() model.ProductVariant {
	return model.ProductVariant{
		Name:          r.Name,
		Value:         r.Value,
		SKU:           r.SKU,
		StockQuantity: r.StockQuantity,
		MockupURL:     r.MockupURL,
		IsDefault:     r.IsDefault,
	}
}

// GetAllProducts lists products
// GET /api/v1/products?search=&customizable=true&limit=&offset=
func (ctrl *ProductController) GetAllProducts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if offset < 0 {
		offset = 0
	}
	customizable, _ := strconv.ParseBool(c.Query("customizable"))

	products, total, err := ctrl.productService.ListProducts(service.ProductListOptions{
		Search:           c.Query("search"),
		CustomizableOnly: customizable,
		Limit:            limit,
		Offset:           offset,
	})
	if err != nil {
		respondError(c, err, "product")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"count":    len(products),
		"total":    total,
	})
}

// GetProductByID returns a product with its variants
// GET /api/v1/products/:id
func (ctrl *ProductController) GetProductByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	product, err := ctrl.productService.GetProductByID(id)
	if err != nil {
		respondError(c, err, "product")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product": product,
	})
}

// CreateProduct creates a product and its variants (admin)
// POST /api/v1/products
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid create product request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.InvalidData, "Invalid request data")
		return
	}

	product := &model.Product{
		Name:          req.Name,
		Description:   req.Description,
		Customizable:  req.Customizable,
		MockupURL:     req.MockupURL,
		StockQuantity: req.StockQuantity,
	}
	for _, v := range req.Variants {
		product.Variants = append(product.Variants, v.toModel())
	}

	if err := ctrl.productService.CreateProduct(product); err != nil {
		respondError(c, err, "product")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"product": product,
	})
}

// AddVariant adds a variant to an existing product (admin)
// POST /api/v1/products/:id/variants
func (ctrl *ProductController) AddVariant(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req VariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid variant request", map[string]interface{}{
			"product_id": productID,
			"error":      err.Error(),
		})
		apperrors.BadRequest(c, apperrors.InvalidData, "Invalid request data")
		return
	}

	variant := req.toModel()
	if err := ctrl.productService.AddVariant(productID, &variant); err != nil {
		respondError(c, err, "variant")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"variant": variant,
	})
}
