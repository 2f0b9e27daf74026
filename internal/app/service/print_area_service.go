package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/ikkim/printcraft-backend/internal/app/model"
	"github.com/ikkim/printcraft-backend/internal/app/repository"
	"github.com/ikkim/printcraft-backend/internal/cache"
	apperrors "github.com/ikkim/printcraft-backend/internal/errors"
	"github.com/ikkim/printcraft-backend/pkg/logger"
	"gorm.io/gorm"
)

// rangeSlack absorbs float noise in x+w and y+h sums such as 0.7+0.3.
const rangeSlack = 1e-9

type PrintAreaService interface {
	// Get resolves the area for a product and optional variant: the variant's
	// own area first, then the product default. nil, nil means none is set.
	Get(ctx context.Context, productID uint, variantID *uint) (*model.PrintAreaRect, error)
	Set(ctx context.Context, productID uint, variantID *uint, name string, input model.PrintAreaInput) (*model.PrintArea, error)
	List(productID uint) ([]model.PrintArea, error)
}

type printAreaService struct {
	areaRepo    repository.PrintAreaRepository
	productRepo repository.ProductRepository
	variantRepo repository.ProductVariantRepository
	cache       cache.PrintAreaCache
}

// NewPrintAreaService builds the registry. areaCache may be nil.
func NewPrintAreaService(
	areaRepo repository.PrintAreaRepository,
	productRepo repository.ProductRepository,
	variantRepo repository.ProductVariantRepository,
	areaCache cache.PrintAreaCache,
) PrintAreaService {
	return &printAreaService{
		areaRepo:    areaRepo,
		productRepo: productRepo,
		variantRepo: variantRepo,
		cache:       areaCache,
	}
}

func (s *printAreaService) Get(ctx context.Context, productID uint, variantID *uint) (*model.PrintAreaRect, error) {
	vid := derefID(variantID)

	if s.cache != nil {
		rect, err := s.cache.Get(ctx, productID, vid)
		if err == nil {
			return rect, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			logger.Warn("Print area cache read failed, falling back to database", map[string]interface{}{
				"product_id": productID,
				"variant_id": vid,
				"error":      err.Error(),
			})
		}
	}

	// read before the database so a concurrent Set makes our write stale
	var generation int64
	cacheable := s.cache != nil
	if cacheable {
		gen, err := s.cache.Generation(ctx, productID)
		if err != nil {
			cacheable = false
		}
		generation = gen
	}

	rect, err := s.resolve(productID, vid)
	if err != nil {
		return nil, err
	}

	if cacheable {
		err := s.cache.Set(ctx, productID, vid, generation, rect)
		switch {
		case errors.Is(err, cache.ErrStaleGeneration):
			logger.Debug("Print area changed while resolving, not cached", map[string]interface{}{
				"product_id": productID,
				"variant_id": vid,
			})
		case err != nil:
			logger.Warn("Failed to cache print area", map[string]interface{}{
				"product_id": productID,
				"variant_id": vid,
				"error":      err.Error(),
			})
		}
	}
	return rect, nil
}

func (s *printAreaService) resolve(productID, variantID uint) (*model.PrintAreaRect, error) {
	if variantID != 0 {
		area, err := s.areaRepo.FindForScope(productID, variantID)
		if err != nil {
			return nil, err
		}
		if area != nil {
			rect := area.Rect()
			return &rect, nil
		}
	}

	area, err := s.areaRepo.FindForScope(productID, 0)
	if err != nil {
		return nil, err
	}
	if area == nil {
		logger.Debug("No print area configured", map[string]interface{}{
			"product_id": productID,
			"variant_id": variantID,
		})
		return nil, nil
	}
	rect := area.Rect()
	return &rect, nil
}

func (s *printAreaService) Set(ctx context.Context, productID uint, variantID *uint, name string, input model.PrintAreaInput) (*model.PrintArea, error) {
	rect, err := CheckPrintArea(input)
	if err != nil {
		logger.Warn("Rejected print area", map[string]interface{}{
			"product_id": productID,
			"variant_id": variantID,
			"error":      err.Error(),
		})
		return nil, err
	}

	if _, err := s.productRepo.FindByID(productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	vid := derefID(variantID)
	if vid != 0 {
		variant, err := s.variantRepo.FindByID(vid)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrInvalidVariant
			}
			return nil, err
		}
		if variant.ProductID != productID {
			return nil, ErrInvalidVariant
		}
	}

	area := &model.PrintArea{
		ProductID: productID,
		VariantID: vid,
		Name:      name,
		X:         rect.X,
		Y:         rect.Y,
		W:         rect.W,
		H:         rect.H,
	}
	if err := s.areaRepo.Upsert(area); err != nil {
		logger.Error("Failed to store print area", err, map[string]interface{}{
			"product_id": productID,
			"variant_id": vid,
		})
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.InvalidateProduct(ctx, productID); err != nil {
			logger.Warn("Failed to invalidate print area cache", map[string]interface{}{
				"product_id": productID,
				"error":      err.Error(),
			})
		}
	}

	logger.Info("Print area stored", map[string]interface{}{
		"product_id":    productID,
		"variant_id":    vid,
		"print_area_id": area.ID,
		"name":          area.Name,
	})
	return area, nil
}

func (s *printAreaService) List(productID uint) ([]model.PrintArea, error) {
	if _, err := s.productRepo.FindByID(productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return s.areaRepo.FindByProductID(productID)
}

// CheckPrintArea requires all four fields, each within [0,1], and the
// rectangle to stay on the mockup.
func CheckPrintArea(input model.PrintAreaInput) (model.PrintAreaRect, error) {
	fields := []struct {
		name  string
		value *float64
	}{
		{"x", input.X},
		{"y", input.Y},
		{"w", input.W},
		{"h", input.H},
	}
	for _, f := range fields {
		if f.value == nil {
			return model.PrintAreaRect{}, newDesignError(apperrors.InvalidPrintArea, f.name,
				fmt.Sprintf("print area field %q is required", f.name))
		}
		if *f.value < 0 || *f.value > 1 {
			return model.PrintAreaRect{}, newDesignError(apperrors.InvalidPrintArea, f.name,
				fmt.Sprintf("print area field %q must be between 0 and 1", f.name))
		}
	}

	rect := model.PrintAreaRect{X: *input.X, Y: *input.Y, W: *input.W, H: *input.H}
	if rect.X+rect.W > 1+rangeSlack {
		return model.PrintAreaRect{}, newDesignError(apperrors.InvalidPrintArea, "w", "print area extends past the right edge")
	}
	if rect.Y+rect.H > 1+rangeSlack {
		return model.PrintAreaRect{}, newDesignError(apperrors.InvalidPrintArea, "h", "print area extends past the bottom edge")
	}
	return rect, nil
}

func derefID(id *uint) uint {
	if id == nil {
		return 0
	}
	return *id
}
