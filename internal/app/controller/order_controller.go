package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/printcraft-backend/internal/app/model"
	"github.com/ikkim/printcraft-backend/internal/app/service"
	apperrors "github.com/ikkim/printcraft-backend/internal/errors"
	"github.com/ikkim/printcraft-backend/internal/middleware"
)

type OrderController struct {
	orderService  service.OrderService
	exportService service.OrderExportService
}

func NewOrderController(orderService service.OrderService, exportService service.OrderExportService) *OrderController {
	return &OrderController{
		orderService:  orderService,
		exportService: exportService,
	}
}

type UpdateOrderStatusRequest struct {
	Status model.OrderStatus `json:"status" binding:"required"`
}

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Checkout turns the cart into an order
// POST /api/v1/orders
func (ctrl *OrderController) Checkout(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := requireUser(c)
	if !ok {
		return
	}

	order, err := ctrl.orderService.Checkout(userID)
	if err != nil {
		respondError(c, err, "order")
		return
	}

	log.Info("Order created", map[string]interface{}{
		"user_id":  userID,
		"order_id": order.ID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"order": order,
	})
}

// GetOrders returns user's orders
// GET /api/v1/orders
func (ctrl *OrderController) GetOrders(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	orders, err := ctrl.orderService.GetUserOrders(userID)
	if err != nil {
		respondError(c, err, "order")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"count":  len(orders),
	})
}

// GetOrderByID returns one of the user's orders
// GET /api/v1/orders/:id
func (ctrl *OrderController) GetOrderByID(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	order, err := ctrl.orderService.GetOrderByID(userID, orderID)
	if err != nil {
		respondError(c, err, "order")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order": order,
	})
}

// UpdateOrderStatus moves an order along (admin)
// PUT /api/v1/orders/:id/status
func (ctrl *OrderController) UpdateOrderStatus(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid order status request", map[string]interface{}{
			"order_id": orderID,
			"error":    err.Error(),
		})
		apperrors.BadRequest(c, apperrors.InvalidData, "Invalid request data")
		return
	}

	if err := ctrl.orderService.UpdateOrderStatus(orderID, req.Status); err != nil {
		respondError(c, err, "order")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order status updated successfully",
	})
}

// ExportDesigns downloads the design geometry of an order (admin)
// GET /api/v1/orders/:id/designs.xlsx
func (ctrl *OrderController) ExportDesigns(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	order, err := ctrl.orderService.GetOrder(orderID)
	if err != nil {
		respondError(c, err, "order")
		return
	}

	data, err := ctrl.exportService.ExportDesigns(order)
	if err != nil {
		respondError(c, err, "order export")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+service.ExportFilename(order.ID)+`"`)
	c.Data(http.StatusOK, xlsxContentType, data)
}
