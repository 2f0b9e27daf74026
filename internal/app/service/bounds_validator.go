package service

import (
	"github.com/ikkim/printcraft-backend/internal/app/model"
	apperrors "github.com/ikkim/printcraft-backend/internal/errors"
	"github.com/ikkim/printcraft-backend/pkg/logger"
	"github.com/ikkim/printcraft-backend/pkg/util"
)

// outOfBoundsMessage stays fixed; the measured overshoot is only logged.
const outOfBoundsMessage = "The design extends beyond the printable area. Move or scale it down to fit."

type BoundsValidator interface {
	// ValidateBounds checks a placed design against area. A nil area passes.
	ValidateBounds(transform model.Transform, size model.DesignSize, area *model.PrintAreaRect) error
}

type boundsValidator struct{}

func NewBoundsValidator() BoundsValidator {
	return boundsValidator{}
}

func (boundsValidator) ValidateBounds(transform model.Transform, size model.DesignSize, area *model.PrintAreaRect) error {
	var outer *util.Rect
	if area != nil {
		outer = &util.Rect{X: area.X, Y: area.Y, W: area.W, H: area.H}
	}

	ok, reason := util.ValidateBounds(
		transform.X, transform.Y, transform.Scale, transform.Rotation,
		size.Width, size.Height, outer,
	)
	if ok {
		return nil
	}

	logger.Debug("Design out of bounds", map[string]interface{}{
		"reason":   reason,
		"x":        transform.X,
		"y":        transform.Y,
		"scale":    transform.Scale,
		"rotation": transform.Rotation,
	})
	return newDesignError(apperrors.DesignOutOfBounds, "", outOfBoundsMessage)
}
