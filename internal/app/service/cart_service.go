package service

import (
	"errors"

	"github.com/ikkim/printcraft-backend/internal/app/model"
	"github.com/ikkim/printcraft-backend/internal/app/repository"
	"github.com/ikkim/printcraft-backend/pkg/logger"
	"gorm.io/gorm"
)

// CartHost receives fully formed customized lines from the customization pipeline.
type CartHost interface {
	AddCustomizedItem(item *model.CartItem) error
}

type CartService interface {
	CartHost
	GetUserCart(userID uint) ([]model.CartItem, error)
	AddToCart(userID, productID uint, variantID *uint, quantity int) (*model.CartItem, error)
	UpdateCartItem(userID, cartItemID uint, quantity int) error
	RemoveFromCart(userID, cartItemID uint) error
	ClearCart(userID uint) error
}

type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	variantRepo repository.ProductVariantRepository
}

func NewCartService(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	variantRepo repository.ProductVariantRepository,
) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		variantRepo: variantRepo,
	}
}

func (s *cartService) GetUserCart(userID uint) ([]model.CartItem, error) {
	logger.Debug("Fetching user cart", map[string]interface{}{
		"user_id": userID,
	})

	cartItems, err := s.cartRepo.FindByUserID(userID)
	if err != nil {
		logger.Error("Failed to fetch user cart", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Info("User cart fetched successfully", map[string]interface{}{
		"user_id": userID,
		"count":   len(cartItems),
	})
	return cartItems, nil
}

// AddToCart adds a plain line. An existing plain line for the same product and
// variant absorbs the quantity.
func (s *cartService) AddToCart(userID, productID uint, variantID *uint, quantity int) (*model.CartItem, error) {
	logger.Info("Adding item to cart", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
		"variant_id": variantID,
		"quantity":   quantity,
	})

	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	product, variant, err := s.loadProduct(productID, variantID)
	if err != nil {
		return nil, err
	}

	existing, err := s.cartRepo.FindMergeable(userID, productID, variantID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("Failed to check existing cart item", err, map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		return nil, err
	}

	requested := quantity
	if existing != nil {
		requested += existing.Quantity
	}
	if available := stockOf(product, variant); available < requested {
		logger.Warn("Cannot add to cart: insufficient stock", map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
			"requested":  requested,
			"available":  available,
		})
		return nil, ErrInsufficientStock
	}

	if existing != nil {
		existing.Quantity = requested
		if err := s.cartRepo.Update(existing); err != nil {
			return nil, err
		}
		logger.Info("Cart item quantity merged", map[string]interface{}{
			"cart_item_id": existing.ID,
			"quantity":     existing.Quantity,
		})
		return existing, nil
	}

	item := &model.CartItem{
		UserID:    userID,
		ProductID: productID,
		VariantID: variantID,
		Quantity:  quantity,
	}
	if err := s.cartRepo.Create(item); err != nil {
		return nil, err
	}

	logger.Info("Item added to cart", map[string]interface{}{
		"cart_item_id": item.ID,
		"user_id":      userID,
	})
	return item, nil
}

// AddCustomizedItem stores item as its own line. Customized lines are never merged.
func (s *cartService) AddCustomizedItem(item *model.CartItem) error {
	if item.Quantity <= 0 {
		return ErrInvalidQuantity
	}

	product, variant, err := s.loadProduct(item.ProductID, item.VariantID)
	if err != nil {
		return err
	}
	if available := stockOf(product, variant); available < item.Quantity {
		logger.Warn("Cannot add customized item: insufficient stock", map[string]interface{}{
			"user_id":    item.UserID,
			"product_id": item.ProductID,
			"requested":  item.Quantity,
			"available":  available,
		})
		return ErrInsufficientStock
	}

	item.Customized = true
	if err := s.cartRepo.Create(item); err != nil {
		logger.Error("Failed to store customized cart item", err, map[string]interface{}{
			"user_id":    item.UserID,
			"product_id": item.ProductID,
		})
		return err
	}

	logger.Info("Customized item added to cart", map[string]interface{}{
		"cart_item_id": item.ID,
		"user_id":      item.UserID,
		"product_id":   item.ProductID,
	})
	return nil
}

func (s *cartService) UpdateCartItem(userID, cartItemID uint, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}

	item, err := s.ownedItem(userID, cartItemID)
	if err != nil {
		return err
	}

	product, variant, err := s.loadProduct(item.ProductID, item.VariantID)
	if err != nil {
		return err
	}
	if stockOf(product, variant) < quantity {
		return ErrInsufficientStock
	}

	item.Quantity = quantity
	if err := s.cartRepo.Update(item); err != nil {
		return err
	}

	logger.Info("Cart item updated", map[string]interface{}{
		"cart_item_id": cartItemID,
		"quantity":     quantity,
	})
	return nil
}

func (s *cartService) RemoveFromCart(userID, cartItemID uint) error {
	if _, err := s.ownedItem(userID, cartItemID); err != nil {
		return err
	}
	if err := s.cartRepo.Delete(cartItemID); err != nil {
		return err
	}

	logger.Info("Cart item removed", map[string]interface{}{
		"cart_item_id": cartItemID,
		"user_id":      userID,
	})
	return nil
}

func (s *cartService) ClearCart(userID uint) error {
	if err := s.cartRepo.DeleteByUserID(userID); err != nil {
		return err
	}
	logger.Info("Cart cleared", map[string]interface{}{
		"user_id": userID,
	})
	return nil
}

// ownedItem hides other users' lines behind ErrCartItemNotFound.
func (s *cartService) ownedItem(userID, cartItemID uint) (*model.CartItem, error) {
	item, err := s.cartRepo.FindByID(cartItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartItemNotFound
		}
		return nil, err
	}
	if item.UserID != userID {
		logger.Warn("Cart item belongs to another user", map[string]interface{}{
			"cart_item_id": cartItemID,
			"user_id":      userID,
		})
		return nil, ErrCartItemNotFound
	}
	return item, nil
}

func (s *cartService) loadProduct(productID uint, variantID *uint) (*model.Product, *model.ProductVariant, error) {
	product, err := s.productRepo.FindByID(productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrProductNotFound
		}
		return nil, nil, err
	}
	if variantID == nil {
		return product, nil, nil
	}

	variant, err := s.variantRepo.FindByID(*variantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrInvalidVariant
		}
		return nil, nil, err
	}
	if variant.ProductID != productID {
		return nil, nil, ErrInvalidVariant
	}
	return product, variant, nil
}

// stockOf counts the variant's stock when one is chosen.
func stockOf(product *model.Product, variant *model.ProductVariant) int {
	if variant != nil {
		return variant.StockQuantity
	}
	return product.StockQuantity
}
