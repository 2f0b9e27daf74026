package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/ikkim/printcraft-backend/internal/app/model"
	apperrors "github.com/ikkim/printcraft-backend/internal/errors"
	"github.com/ikkim/printcraft-backend/pkg/logger"
)

// MediaResolver looks up attachment metadata in the media store. It returns
// ErrAttachmentNotFound for unknown ids and ErrMediaUnavailable when the store
// cannot be reached.
type MediaResolver interface {
	Resolve(ctx context.Context, id uint) (*model.Attachment, error)
}

type SchemaValidator interface {
	Validate(ctx context.Context, sub *model.DesignSubmission) error
}

type schemaValidator struct {
	media MediaResolver
}

func NewSchemaValidator(media MediaResolver) SchemaValidator {
	return &schemaValidator{media: media}
}

// Validate is the structural gate: required keys, their shapes, then every
// attachment against the media store. It stops at the first problem.
func (v *schemaValidator) Validate(ctx context.Context, sub *model.DesignSubmission) error {
	if sub == nil {
		return newDesignError(apperrors.InvalidData, "design_data", "design data is required")
	}

	if sub.AttachmentIDs == nil {
		return missingField("attachment_ids")
	}
	if sub.AttachmentIDs.Malformed {
		return newDesignError(apperrors.InvalidAttachments, "attachment_ids", "attachment_ids must be a list")
	}
	if len(sub.AttachmentIDs.IDs) == 0 {
		return newDesignError(apperrors.InvalidAttachments, "attachment_ids", "at least one attachment is required")
	}

	if sub.AppliedTransform == nil {
		return missingField("applied_transform")
	}
	if sub.AppliedTransform.Malformed {
		return newDesignError(apperrors.InvalidTransform, "applied_transform", "applied_transform must be an object")
	}
	if scale, ok := sub.AppliedTransform.Scale.Float(); ok && scale < 0 {
		return newDesignError(apperrors.InvalidTransform, "applied_transform.scale", "scale must not be negative")
	}

	if sub.PrintAreaMeta == nil {
		return missingField("print_area_meta")
	}
	if sub.PrintAreaMeta.Malformed {
		return newDesignError(apperrors.InvalidPrintArea, "print_area_meta", "print_area_meta must be an object")
	}

	if w, ok := sub.Width.Float(); ok && w < 0 {
		return newDesignError(apperrors.InvalidData, "width", "width must not be negative")
	}
	if h, ok := sub.Height.Float(); ok && h < 0 {
		return newDesignError(apperrors.InvalidData, "height", "height must not be negative")
	}

	for i := range sub.AttachmentIDs.IDs {
		if err := v.checkAttachment(ctx, &sub.AttachmentIDs.IDs[i]); err != nil {
			return err
		}
	}
	return nil
}

func (v *schemaValidator) checkAttachment(ctx context.Context, raw *model.Scalar) error {
	text, _ := raw.Text()

	id, ok := nonNegativeID(raw)
	if !ok || id == 0 {
		return newDesignError(apperrors.InvalidAttachment, "attachment_ids",
			fmt.Sprintf("attachment %q is not a valid id", text))
	}

	attachment, err := v.media.Resolve(ctx, uint(id))
	switch {
	case errors.Is(err, ErrAttachmentNotFound):
		return newDesignError(apperrors.InvalidAttachment, "attachment_ids",
			fmt.Sprintf("attachment %d does not exist", id))
	case err != nil:
		logger.Error("Media store lookup failed", err, map[string]interface{}{
			"attachment_id": id,
		})
		if errors.Is(err, ErrMediaUnavailable) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrMediaUnavailable, err)
	}

	if !attachment.IsImage() {
		return newDesignError(apperrors.InvalidAttachment, "attachment_ids",
			fmt.Sprintf("attachment %d is not an image", id))
	}
	return nil
}

func missingField(field string) error {
	return newDesignError(apperrors.MissingField, field, fmt.Sprintf("%s is required", field))
}
