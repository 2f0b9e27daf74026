package service

import (
	"errors"
	"fmt"

	apperrors "github.com/ikkim/printcraft-backend/internal/errors"
)

var (
	ErrProductNotFound    = errors.New("product not found")
	ErrInvalidVariant     = errors.New("variant does not belong to product")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrCartItemNotFound   = errors.New("cart item not found")
	ErrInvalidQuantity    = errors.New("quantity must be positive")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrOrderNotFound      = errors.New("order not found")
	ErrInvalidOrderStatus = errors.New("invalid order status")
	ErrAttachmentNotFound = errors.New("attachment not found")
	ErrUnsupportedMedia   = errors.New("unsupported media type")
	ErrFileTooLarge       = errors.New("file too large")

	// ErrMediaUnavailable means the media store could not be asked at all.
	// It is never a verdict on the design.
	ErrMediaUnavailable = errors.New("media store unavailable")

	// ErrCouldNotAdd wraps whatever the cart host returned when it refused a line.
	ErrCouldNotAdd = errors.New("could not add item to cart")
)

// DesignError is a rejected design. Code is one of the design codes in
// internal/errors; Field names the offending input when there is one.
type DesignError struct {
	Code    string
	Field   string
	Message string
}

func (e *DesignError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s (%s): %s", e.Code, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsGeometry reports whether the design was well formed but did not fit.
func (e *DesignError) IsGeometry() bool {
	return e.Code == apperrors.DesignOutOfBounds
}

func newDesignError(code, field, message string) *DesignError {
	return &DesignError{Code: code, Field: field, Message: message}
}

// AsDesignError unwraps err to a *DesignError.
func AsDesignError(err error) (*DesignError, bool) {
	var de *DesignError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}
