package repository

import (
	"errors"
	"time"

	"github.com/ikkim/printcraft-backend/internal/app/model"
	"github.com/ikkim/printcraft-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PrintAreaRepository interface {
	// FindForScope returns the earliest stored area for (product, variant);
	// variantID 0 is the product-level scope. Returns nil, nil when none exists.
	FindForScope(productID, variantID uint) (*model.PrintArea, error)
	FindByProductID(productID uint) ([]model.PrintArea, error)
	Upsert(area *model.PrintArea) error
}

type printAreaRepository struct {
	db *gorm.DB
}

func NewPrintAreaRepository(db *gorm.DB) PrintAreaRepository {
	return &printAreaRepository{db: db}
}

func (r *printAreaRepository) FindForScope(productID, variantID uint) (*model.PrintArea, error) {
	logger.Debug("Finding print area in database", map[string]interface{}{
		"product_id": productID,
		"variant_id": variantID,
	})

	var area model.PrintArea
	err := r.db.
		Where("product_id = ? AND variant_id = ?", productID, variantID).
		Order("id ASC").
		First(&area).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		logger.Error("Failed to find print area in database", err, map[string]interface{}{
			"product_id": productID,
			"variant_id": variantID,
		})
		return nil, err
	}
	return &area, nil
}

func (r *printAreaRepository) FindByProductID(productID uint) ([]model.PrintArea, error) {
	var areas []model.PrintArea
	if err := r.db.Where("product_id = ?", productID).
		Order("variant_id ASC, id ASC").
		Find(&areas).Error; err != nil {
		logger.Error("Failed to list print areas", err, map[string]interface{}{
			"product_id": productID,
		})
		return nil, err
	}
	return areas, nil
}

// Upsert writes the area, replacing any stored one with the same
// (product, variant, name). area is reloaded so its ID is the stored row's.
func (r *printAreaRepository) Upsert(area *model.PrintArea) error {
	if area.Name == "" {
		area.Name = model.DefaultPrintAreaName
	}
	area.UpdatedAt = time.Now()

	logger.Debug("Upserting print area in database", map[string]interface{}{
		"product_id": area.ProductID,
		"variant_id": area.VariantID,
		"name":       area.Name,
	})

	err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "product_id"},
			{Name: "variant_id"},
			{Name: "name"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"x", "y", "w", "h", "updated_at"}),
	}).Create(area).Error
	if err != nil {
		logger.Error("Failed to upsert print area in database", err, map[string]interface{}{
			"product_id": area.ProductID,
			"variant_id": area.VariantID,
		})
		return err
	}

	var stored model.PrintArea
	if err := r.db.Where("product_id = ? AND variant_id = ? AND name = ?",
		area.ProductID, area.VariantID, area.Name).First(&stored).Error; err != nil {
		return err
	}
	*area = stored

	logger.Debug("Print area stored in database", map[string]interface{}{
		"print_area_id": area.ID,
		"product_id":    area.ProductID,
		"variant_id":    area.VariantID,
	})
	return nil
}
