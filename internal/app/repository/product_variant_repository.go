package repository

import (
	"github.com/ikkim/printcraft-backend/internal/app/model"
	"github.com/ikkim/printcraft-backend/pkg/logger"
	"gorm.io/gorm"
)

type ProductVariantRepository interface {
	Create(variant *model.ProductVariant) error
	FindByID(id uint) (*model.ProductVariant, error)
	FindByProductID(productID uint) ([]model.ProductVariant, error)
}

type productVariantRepository struct {
	db *gorm.DB
}

func NewProductVariantRepository(db *gorm.DB) ProductVariantRepository {
	return &productVariantRepository{db: db}
}

func (r *productVariantRepository) Create(variant *model.ProductVariant) error {
	logger.Debug("Creating product variant", map[string]interface{}{
		"product_id": variant.ProductID,
		"name":       variant.Name,
		"value":      variant.Value,
	})

	if err := r.db.Omit("Product").Create(variant).Error; err != nil {
		logger.Error("Failed to create product variant", err, map[string]interface{}{
			"product_id": variant.ProductID,
			"name":       variant.Name,
		})
		return err
	}

	logger.Debug("Product variant created", map[string]interface{}{
		"variant_id": variant.ID,
	})
	return nil
}

func (r *productVariantRepository) FindByID(id uint) (*model.ProductVariant, error) {
	logger.Debug("Finding product variant by ID", map[string]interface{}{
		"variant_id": id,
	})

	var variant model.ProductVariant
	if err := r.db.First(&variant, id).Error; err != nil {
		logger.Error("Failed to find product variant", err, map[string]interface{}{
			"variant_id": id,
		})
		return nil, err
	}

	logger.Debug("Product variant found", map[string]interface{}{
		"variant_id": variant.ID,
		"product_id": variant.ProductID,
	})
	return &variant, nil
}

func (r *productVariantRepository) FindByProductID(productID uint) ([]model.ProductVariant, error) {
	var variants []model.ProductVariant
	if err := r.db.Where("product_id = ?", productID).Order("id ASC").Find(&variants).Error; err != nil {
		logger.Error("Failed to find product variants", err, map[string]interface{}{
			"product_id": productID,
		})
		return nil, err
	}
	return variants, nil
}
