package router

import (
	"github.com/gin-gonic/gin"
	"github.com/ikkim/printcraft-backend/config"
	"github.com/ikkim/printcraft-backend/internal/app/controller"
	"github.com/ikkim/printcraft-backend/internal/app/service"
	"github.com/ikkim/printcraft-backend/internal/middleware"
)

type Router struct {
	productController       *controller.ProductController
	printAreaController     *controller.PrintAreaController
	customizationController *controller.CustomizationController
	cartController          *controller.CartController
	orderController         *controller.OrderController
	uploadController        *controller.UploadController
	authMiddleware          *middleware.AuthMiddleware
	config                  *config.Config
}

// NewRouter builds every controller from the shared components.
func NewRouter(components *service.Components, authMiddleware *middleware.AuthMiddleware, cfg *config.Config) *Router {
	return &Router{
		productController:       controller.NewProductController(components.Products),
		printAreaController:     controller.NewPrintAreaController(components.PrintAreas),
		customizationController: controller.NewCustomizationController(components.Customization),
		cartController:          controller.NewCartController(components.Cart),
		orderController:         controller.NewOrderController(components.Orders, components.OrderExport),
		uploadController:        controller.NewUploadController(components.Media),
		authMiddleware:          authMiddleware,
		config:                  cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "PrintCraft API is running",
		})
	})

	authenticated := r.authMiddleware.Authenticate()
	adminOnly := r.authMiddleware.RequireRole(middleware.RoleAdmin)

	v1 := router.Group("/api/v1")
	{
		products := v1.Group("/products")
		{
			products.GET("", r.productController.GetAllProducts)
			products.GET("/:id", r.productController.GetProductByID)
			products.GET("/:id/print-area", r.printAreaController.GetPrintArea)

			products.POST("", authenticated, adminOnly, r.productController.CreateProduct)
			products.POST("/:id/variants", authenticated, adminOnly, r.productController.AddVariant)
			products.GET("/:id/print-areas", authenticated, adminOnly, r.printAreaController.ListPrintAreas)
			products.PUT("/:id/print-area", authenticated, adminOnly, r.printAreaController.SetPrintArea)
		}

		customizations := v1.Group("/customizations", authenticated)
		{
			customizations.POST("/validate", r.customizationController.ValidateDesign)
		}

		uploads := v1.Group("/uploads")
		{
			uploads.POST("", authenticated, r.uploadController.Upload)
			uploads.GET("/:id", r.uploadController.GetAttachment)
		}

		cart := v1.Group("/cart", authenticated)
		{
			cart.GET("", r.cartController.GetCart)
			cart.POST("", r.cartController.AddToCart)
			cart.POST("/customized", r.customizationController.AddCustomizedToCart)
			cart.PUT("/:id", r.cartController.UpdateCartItem)
			cart.DELETE("/:id", r.cartController.RemoveFromCart)
			cart.DELETE("", r.cartController.ClearCart)
		}

		orders := v1.Group("/orders", authenticated)
		{
			orders.POST("", r.orderController.Checkout)
			orders.GET("", r.orderController.GetOrders)
			orders.GET("/:id", r.orderController.GetOrderByID)
			orders.PUT("/:id/status", adminOnly, r.orderController.UpdateOrderStatus)
			orders.GET("/:id/designs.xlsx", adminOnly, r.orderController.ExportDesigns)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
