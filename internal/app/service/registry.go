package service

import (
	"fmt"

	"github.com/ikkim/printcraft-backend/config"
	"github.com/ikkim/printcraft-backend/internal/app/repository"
	"github.com/ikkim/printcraft-backend/internal/cache"
	"gorm.io/gorm"
)

// ComponentKind names one service of the composition root.
type ComponentKind int

const (
	KindPrintAreas ComponentKind = iota + 1
	KindSchemaValidator
	KindBoundsValidator
	KindSanitizer
	KindCustomization
	KindOrderTransfer
	KindMedia
	KindProducts
	KindCart
	KindOrders
	KindOrderExport
)

func (k ComponentKind) String() string {
	switch k {
	case KindPrintAreas:
		return "print_areas"
	case KindSchemaValidator:
		return "schema_validator"
	case KindBoundsValidator:
		return "bounds_validator"
	case KindSanitizer:
		return "sanitizer"
	case KindCustomization:
		return "customization"
	case KindOrderTransfer:
		return "order_transfer"
	case KindMedia:
		return "media"
	case KindProducts:
		return "products"
	case KindCart:
		return "cart"
	case KindOrders:
		return "orders"
	case KindOrderExport:
		return "order_export"
	}
	return fmt.Sprintf("component(%d)", int(k))
}

// Dependencies are the outside resources the services are built on.
// PrintAreaCache and Uploader may be nil.
type Dependencies struct {
	DB             *gorm.DB
	PrintAreaCache cache.PrintAreaCache
	Uploader       ObjectUploader
	Media          config.MediaConfig
}

// Components holds each service exactly once.
type Components struct {
	PrintAreas      PrintAreaService
	SchemaValidator SchemaValidator
	BoundsValidator BoundsValidator
	Sanitizer       Sanitizer
	Customization   CustomizationService
	OrderTransfer   OrderTransfer
	Media           MediaService
	Products        ProductService
	Cart            CartService
	Orders          OrderService
	OrderExport     OrderExportService
}

// NewComponents wires every service from deps, leaves first.
func NewComponents(deps Dependencies) *Components {
	productRepo := repository.NewProductRepository(deps.DB)
	variantRepo := repository.NewProductVariantRepository(deps.DB)
	areaRepo := repository.NewPrintAreaRepository(deps.DB)
	attachmentRepo := repository.NewAttachmentRepository(deps.DB)
	cartRepo := repository.NewCartRepository(deps.DB)
	orderRepo := repository.NewOrderRepository(deps.DB)

	c := &Components{}
	c.PrintAreas = NewPrintAreaService(areaRepo, productRepo, variantRepo, deps.PrintAreaCache)
	c.Media = NewMediaService(attachmentRepo, deps.Uploader, deps.Media)
	c.SchemaValidator = NewSchemaValidator(c.Media)
	c.BoundsValidator = NewBoundsValidator()
	c.Sanitizer = NewSanitizer()
	c.Products = NewProductService(productRepo, variantRepo)
	c.Cart = NewCartService(cartRepo, productRepo, variantRepo)
	c.Customization = NewCustomizationService(c.SchemaValidator, c.BoundsValidator, c.Sanitizer, c.PrintAreas, c.Cart)
	c.OrderTransfer = NewOrderTransfer()
	c.Orders = NewOrderService(orderRepo, c.OrderTransfer, deps.DB)
	c.OrderExport = NewOrderExportService()
	return c
}

// Lookup returns the component of the given kind, or false for an unknown kind.
func (c *Components) Lookup(kind ComponentKind) (interface{}, bool) {
	switch kind {
	case KindPrintAreas:
		return c.PrintAreas, true
	case KindSchemaValidator:
		return c.SchemaValidator, true
	case KindBoundsValidator:
		return c.BoundsValidator, true
	case KindSanitizer:
		return c.Sanitizer, true
	case KindCustomization:
		return c.Customization, true
	case KindOrderTransfer:
		return c.OrderTransfer, true
	case KindMedia:
		return c.Media, true
	case KindProducts:
		return c.Products, true
	case KindCart:
		return c.Cart, true
	case KindOrders:
		return c.Orders, true
	case KindOrderExport:
		return c.OrderExport, true
	}
	return nil, false
}
