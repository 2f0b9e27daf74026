package cache

import (
	"context"
	"errors"

	"github.com/ikkim/printcraft-backend/internal/app/model"
)

// PrintAreaCache remembers resolved print areas per (product, variant).
// A nil rect with a nil error is a cached "no area configured".
//
// Writers read Generation before resolving from the database and hand it to
// Set; Set refuses with ErrStaleGeneration once InvalidateProduct has run in
// between, so a slow reader cannot put back an area that was just replaced.
type PrintAreaCache interface {
	Get(ctx context.Context, productID, variantID uint) (*model.PrintAreaRect, error)
	Generation(ctx context.Context, productID uint) (int64, error)
	Set(ctx context.Context, productID, variantID uint, generation int64, area *model.PrintAreaRect) error
	InvalidateProduct(ctx context.Context, productID uint) error
}

var (
	ErrCacheMiss       = errors.New("cache miss")
	ErrStaleGeneration = errors.New("print area generation changed")
)
