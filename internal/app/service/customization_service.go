package service

import (
	"context"
	"fmt"

	"github.com/ikkim/printcraft-backend/internal/app/model"
	apperrors "github.com/ikkim/printcraft-backend/internal/errors"
	"github.com/ikkim/printcraft-backend/pkg/logger"
	"github.com/ikkim/printcraft-backend/pkg/util"
)

// PipelineState is where a submission stopped. Rejected is reachable from
// Received, SchemaChecked and BoundsChecked; nothing is stored before Committed.
type PipelineState string

const (
	StateReceived      PipelineState = "received"
	StateSchemaChecked PipelineState = "schema_checked"
	StateBoundsChecked PipelineState = "bounds_checked"
	StateSanitized     PipelineState = "sanitized"
	StateCommitted     PipelineState = "committed"
	StateRejected      PipelineState = "rejected"
)

type CustomizationRequest struct {
	UserID      uint
	ProductID   uint
	VariationID *uint
	Quantity    int
	Design      *model.DesignSubmission
}

type CustomizationResult struct {
	State     PipelineState
	Design    model.CanonicalDesign
	PrintArea *model.PrintAreaRect
	CartItem  *model.CartItem
}

type CustomizationService interface {
	// Validate runs a submission up to Sanitized and returns the canonical design.
	Validate(ctx context.Context, req CustomizationRequest) (*CustomizationResult, error)
	// Commit validates and hands the line to the cart. Every call makes a new line.
	Commit(ctx context.Context, req CustomizationRequest) (*CustomizationResult, error)
}

type customizationService struct {
	schema     SchemaValidator
	bounds     BoundsValidator
	sanitizer  Sanitizer
	printAreas PrintAreaService
	cart       CartHost
}

func NewCustomizationService(
	schema SchemaValidator,
	bounds BoundsValidator,
	sanitizer Sanitizer,
	printAreas PrintAreaService,
	cart CartHost,
) CustomizationService {
	return &customizationService{
		schema:     schema,
		bounds:     bounds,
		sanitizer:  sanitizer,
		printAreas: printAreas,
		cart:       cart,
	}
}

func (s *customizationService) Validate(ctx context.Context, req CustomizationRequest) (*CustomizationResult, error) {
	result := &CustomizationResult{State: StateReceived}

	if req.Design == nil {
		return s.reject(result, req, newDesignError(apperrors.InvalidData, "design_data", "design data is required"))
	}

	// The request's variant decides the print area and the cart line, so the
	// stored design has to name the same one.
	sub := *req.Design
	if req.VariationID != nil && *req.VariationID != 0 {
		v := model.NewScalar(*req.VariationID)
		sub.VariationID = &v
	}

	if err := s.schema.Validate(ctx, &sub); err != nil {
		return s.reject(result, req, err)
	}
	result.State = StateSchemaChecked

	area, err := s.printAreas.Get(ctx, req.ProductID, variantFor(req, &sub))
	if err != nil {
		logger.Error("Failed to resolve print area", err, map[string]interface{}{
			"product_id": req.ProductID,
		})
		return s.reject(result, req, err)
	}

	// Bounds are checked on the geometry that will be stored.
	design := s.sanitizer.Sanitize(&sub)
	if err := s.bounds.ValidateBounds(design.AppliedTransform, design.Size(), area); err != nil {
		return s.reject(result, req, err)
	}
	result.State = StateBoundsChecked
	result.PrintArea = area

	result.Design = design
	result.State = StateSanitized

	logger.Debug("Design validated", map[string]interface{}{
		"product_id":  req.ProductID,
		"attachments": len(result.Design.AttachmentIDs),
		"print_area":  area != nil,
	})
	return result, nil
}

func (s *customizationService) Commit(ctx context.Context, req CustomizationRequest) (*CustomizationResult, error) {
	result, err := s.Validate(ctx, req)
	if err != nil {
		return result, err
	}

	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}

	key := util.GenerateUniqueKey()
	item := &model.CartItem{
		UserID:            req.UserID,
		ProductID:         req.ProductID,
		VariantID:         designVariant(result.Design),
		Quantity:          quantity,
		UniqueKey:         &key,
		Customized:        true,
		Design:            result.Design.Clone(),
		PrintAreaSnapshot: copyRect(result.PrintArea),
	}

	if err := s.cart.AddCustomizedItem(item); err != nil {
		logger.Warn("Cart refused customized line", map[string]interface{}{
			"user_id":    req.UserID,
			"product_id": req.ProductID,
			"error":      err.Error(),
		})
		result.State = StateRejected
		return result, fmt.Errorf("%w: %w", ErrCouldNotAdd, err)
	}

	result.State = StateCommitted
	result.CartItem = item

	logger.Info("Customized line committed", map[string]interface{}{
		"user_id":      req.UserID,
		"product_id":   req.ProductID,
		"cart_item_id": item.ID,
		"unique_key":   key,
	})
	return result, nil
}

func (s *customizationService) reject(result *CustomizationResult, req CustomizationRequest, err error) (*CustomizationResult, error) {
	fields := map[string]interface{}{
		"product_id": req.ProductID,
		"from_state": result.State,
	}
	if de, ok := AsDesignError(err); ok {
		fields["error_code"] = de.Code
		fields["field"] = de.Field
	} else {
		fields["error"] = err.Error()
	}
	logger.Info("Design rejected", fields)

	result.State = StateRejected
	return result, err
}

// variantFor prefers the request's variant and falls back to the design's variation_id.
func variantFor(req CustomizationRequest, sub *model.DesignSubmission) *uint {
	if req.VariationID != nil && *req.VariationID != 0 {
		v := *req.VariationID
		return &v
	}
	if sub == nil {
		return nil
	}
	if id, ok := nonNegativeID(sub.VariationID); ok && id != 0 {
		v := uint(id)
		return &v
	}
	return nil
}

func designVariant(d model.CanonicalDesign) *uint {
	if d.VariationID == 0 {
		return nil
	}
	v := uint(d.VariationID)
	return &v
}

func copyRect(r *model.PrintAreaRect) *model.PrintAreaRect {
	if r == nil {
		return nil
	}
	out := *r
	return &out
}
