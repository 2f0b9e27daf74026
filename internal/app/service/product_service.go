package service

import (
	"errors"

	"github.com/ikkim/printcraft-backend/internal/app/model"
	"github.com/ikkim/printcraft-backend/internal/app/repository"
	"github.com/ikkim/printcraft-backend/pkg/logger"
	"gorm.io/gorm"
)

type ProductListOptions struct {
	Search           string
	CustomizableOnly bool
	Limit            int
	Offset           int
}

type ProductService interface {
	ListProducts(opts ProductListOptions) ([]model.Product, int64, error)
	GetProductByID(id uint) (*model.Product, error)
	CreateProduct(product *model.Product) error
	AddVariant(productID uint, variant *model.ProductVariant) error
}

type productService struct {
	productRepo repository.ProductRepository
	variantRepo repository.ProductVariantRepository
}

func NewProductService(productRepo repository.ProductRepository, variantRepo repository.ProductVariantRepository) ProductService {
	return &productService{
		productRepo: productRepo,
		variantRepo: variantRepo,
	}
}

func (s *productService) ListProducts(opts ProductListOptions) ([]model.Product, int64, error) {
	limit := opts.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	products, total, err := s.productRepo.FindWithFilter(repository.ProductFilter{
		Search:           opts.Search,
		CustomizableOnly: opts.CustomizableOnly,
		IncludeVariants:  true,
		Limit:            limit,
		Offset:           opts.Offset,
	})
	if err != nil {
		logger.Error("Failed to list products", err)
		return nil, 0, err
	}

	logger.Debug("Products listed", map[string]interface{}{
		"count": len(products),
		"total": total,
	})
	return products, total, nil
}

func (s *productService) GetProductByID(id uint) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Product not found", map[string]interface{}{
				"product_id": id,
			})
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *productService) CreateProduct(product *model.Product) error {
	if err := s.productRepo.Create(product); err != nil {
		logger.Error("Failed to create product", err, map[string]interface{}{
			"name": product.Name,
		})
		return err
	}

	logger.Info("Product created", map[string]interface{}{
		"product_id":   product.ID,
		"customizable": product.Customizable,
		"variants":     len(product.Variants),
	})
	return nil
}

func (s *productService) AddVariant(productID uint, variant *model.ProductVariant) error {
	if _, err := s.GetProductByID(productID); err != nil {
		return err
	}

	variant.ProductID = productID
	if err := s.variantRepo.Create(variant); err != nil {
		return err
	}

	logger.Info("Product variant created", map[string]interface{}{
		"product_id": productID,
		"variant_id": variant.ID,
	})
	return nil
}
