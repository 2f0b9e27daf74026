package service

import (
	"errors"

	"github.com/ikkim/printcraft-backend/internal/app/model"
	"github.com/ikkim/printcraft-backend/internal/app/repository"
	"github.com/ikkim/printcraft-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderService interface {
	// Checkout converts the user's whole cart into one order and empties the cart.
	Checkout(userID uint) (*model.Order, error)
	GetUserOrders(userID uint) ([]model.Order, error)
	GetOrderByID(userID, orderID uint) (*model.Order, error)
	// GetOrder skips the ownership check; admin use only.
	GetOrder(orderID uint) (*model.Order, error)
	UpdateOrderStatus(orderID uint, status model.OrderStatus) error
}

type orderService struct {
	orderRepo repository.OrderRepository
	transfer  OrderTransfer
	db        *gorm.DB
}

func NewOrderService(orderRepo repository.OrderRepository, transfer OrderTransfer, db *gorm.DB) OrderService {
	return &orderService{
		orderRepo: orderRepo,
		transfer:  transfer,
		db:        db,
	}
}

func (s *orderService) Checkout(userID uint) (*model.Order, error) {
	logger.Info("Checking out cart", map[string]interface{}{
		"user_id": userID,
	})

	var order *model.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var cartItems []model.CartItem
		if err := tx.Where("user_id = ?", userID).Order("id ASC").Find(&cartItems).Error; err != nil {
			return err
		}
		if len(cartItems) == 0 {
			return ErrEmptyCart
		}

		orderItems := make([]model.OrderItem, 0, len(cartItems))
		for i := range cartItems {
			if err := reserveStock(tx, &cartItems[i]); err != nil {
				return err
			}
			orderItems = append(orderItems, s.transfer.Transfer(&cartItems[i]))
		}

		order = &model.Order{
			UserID:     userID,
			Status:     model.OrderStatusPending,
			ItemCount:  len(orderItems),
			OrderItems: orderItems,
		}
		if err := s.orderRepo.WithTx(tx).Create(order); err != nil {
			return err
		}

		if err := tx.Where("user_id = ?", userID).Delete(&model.CartItem{}).Error; err != nil {
			logger.Error("Failed to clear cart after checkout", err, map[string]interface{}{
				"user_id": userID,
			})
			return err
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrEmptyCart) || errors.Is(err, ErrInsufficientStock) || errors.Is(err, ErrProductNotFound) {
			logger.Warn("Checkout refused", map[string]interface{}{
				"user_id": userID,
				"reason":  err.Error(),
			})
		} else {
			logger.Error("Checkout failed", err, map[string]interface{}{
				"user_id": userID,
			})
		}
		return nil, err
	}

	logger.Info("Order created successfully", map[string]interface{}{
		"user_id":    userID,
		"order_id":   order.ID,
		"item_count": order.ItemCount,
	})
	return s.orderRepo.FindByID(order.ID)
}

// reserveStock locks the product (and variant) row and takes the line's quantity.
func reserveStock(tx *gorm.DB, item *model.CartItem) error {
	var product model.Product
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&product, item.ProductID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	if item.VariantID == nil {
		if product.StockQuantity < item.Quantity {
			return ErrInsufficientStock
		}
		return tx.Model(&model.Product{}).
			Where("id = ?", product.ID).
			Update("stock_quantity", gorm.Expr("stock_quantity - ?", item.Quantity)).Error
	}

	var variant model.ProductVariant
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&variant, *item.VariantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidVariant
		}
		return err
	}
	if variant.StockQuantity < item.Quantity {
		return ErrInsufficientStock
	}
	return tx.Model(&model.ProductVariant{}).
		Where("id = ?", variant.ID).
		Update("stock_quantity", gorm.Expr("stock_quantity - ?", item.Quantity)).Error
}

func (s *orderService) GetUserOrders(userID uint) ([]model.Order, error) {
	orders, err := s.orderRepo.FindByUserID(userID)
	if err != nil {
		logger.Error("Failed to fetch user orders", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Info("User orders fetched successfully", map[string]interface{}{
		"user_id": userID,
		"count":   len(orders),
	})
	return orders, nil
}

func (s *orderService) GetOrderByID(userID, orderID uint) (*model.Order, error) {
	order, err := s.GetOrder(orderID)
	if err != nil {
		return nil, err
	}

	if order.UserID != userID {
		logger.Warn("Order access denied: ownership mismatch", map[string]interface{}{
			"user_id":  userID,
			"order_id": orderID,
			"owner_id": order.UserID,
		})
		return nil, ErrOrderNotFound
	}
	return order, nil
}

func (s *orderService) GetOrder(orderID uint) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		logger.Error("Failed to fetch order", err, map[string]interface{}{
			"order_id": orderID,
		})
		return nil, err
	}
	return order, nil
}

// UpdateOrderStatus changes the order row only; order lines stay as written.
func (s *orderService) UpdateOrderStatus(orderID uint, status model.OrderStatus) error {
	if !status.Valid() {
		return ErrInvalidOrderStatus
	}

	if err := s.orderRepo.UpdateStatus(orderID, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderNotFound
		}
		logger.Error("Failed to update order status", err, map[string]interface{}{
			"order_id":   orderID,
			"new_status": status,
		})
		return err
	}

	logger.Info("Order status updated successfully", map[string]interface{}{
		"order_id": orderID,
		"status":   status,
	})
	return nil
}
