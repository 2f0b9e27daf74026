package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/printcraft-backend/internal/app/model"
	"github.com/ikkim/printcraft-backend/internal/app/service"
	apperrors "github.com/ikkim/printcraft-backend/internal/errors"
	"github.com/ikkim/printcraft-backend/internal/middleware"
)

// respondError writes the response for an error returned by a service.
// subject names the resource for not-found and storage messages.
func respondError(c *gin.Context, err error, subject string) {
	log := middleware.GetLoggerFromContext(c)

	if de, ok := service.AsDesignError(err); ok {
		status := http.StatusBadRequest
		switch {
		case de.IsGeometry():
			status = http.StatusUnprocessableEntity
		case de.Code == apperrors.MissingPrintArea:
			status = http.StatusNotFound
		}
		log.Info("Design rejected", map[string]interface{}{
			"error_code": de.Code,
			"field":      de.Field,
		})
		apperrors.RespondWithFieldError(c, status, de.Code, de.Field, de.Message)
		return
	}

	switch {
	case errors.Is(err, service.ErrCouldNotAdd):
		message := "The item could not be added to the cart"
		if errors.Is(err, service.ErrInsufficientStock) {
			message = "The item could not be added to the cart: insufficient stock"
		}
		apperrors.Conflict(c, apperrors.CouldNotAdd, message)
	case errors.Is(err, service.ErrMediaUnavailable):
		log.Error("Media store unavailable", err)
		apperrors.RespondWithError(c, http.StatusServiceUnavailable, apperrors.MediaUnavailable,
			"The media store is unavailable, please try again later")
	case errors.Is(err, service.ErrProductNotFound):
		apperrors.NotFound(c, apperrors.ResourceNotFound, "Product not found")
	case errors.Is(err, service.ErrOrderNotFound):
		apperrors.NotFound(c, apperrors.ResourceNotFound, "Order not found")
	case errors.Is(err, service.ErrCartItemNotFound):
		apperrors.NotFound(c, apperrors.ResourceNotFound, "Cart item not found")
	case errors.Is(err, service.ErrAttachmentNotFound):
		apperrors.NotFound(c, apperrors.ResourceNotFound, "Attachment not found")
	case errors.Is(err, service.ErrInvalidVariant):
		apperrors.BadRequest(c, apperrors.InvalidVariant, "Variant does not belong to the product")
	case errors.Is(err, service.ErrInsufficientStock):
		apperrors.Conflict(c, apperrors.InsufficientStock, "Insufficient stock")
	case errors.Is(err, service.ErrInvalidQuantity):
		apperrors.BadRequest(c, apperrors.InvalidData, "Quantity must be positive")
	case errors.Is(err, service.ErrEmptyCart):
		apperrors.BadRequest(c, apperrors.CartEmpty, "Cart is empty")
	case errors.Is(err, service.ErrInvalidOrderStatus):
		apperrors.BadRequest(c, apperrors.InvalidData, "Unknown order status")
	case errors.Is(err, service.ErrUnsupportedMedia):
		apperrors.RespondWithError(c, http.StatusUnsupportedMediaType, apperrors.UploadInvalidFileType,
			"Only JPEG, PNG and GIF images are accepted")
	case errors.Is(err, service.ErrFileTooLarge):
		apperrors.RespondWithError(c, http.StatusRequestEntityTooLarge, apperrors.UploadFileTooLarge,
			"File is too large")
	case errors.Is(err, model.ErrOrderItemImmutable):
		apperrors.Conflict(c, apperrors.OrderImmutable, "Order items cannot be changed")
	default:
		info := apperrors.ParseError(err, subject)
		status := statusForCode(info.Code)
		if status >= http.StatusInternalServerError {
			log.Error("Request failed", err, map[string]interface{}{
				"subject": subject,
			})
		}
		apperrors.RespondWithError(c, status, info.Code, info.Message)
	}
}

func statusForCode(code string) int {
	switch code {
	case apperrors.ResourceNotFound:
		return http.StatusNotFound
	case apperrors.ResourceAlreadyExists, apperrors.ResourceConflict, apperrors.CouldNotAdd:
		return http.StatusConflict
	case apperrors.InvalidData:
		return http.StatusBadRequest
	case apperrors.InternalDatabaseError:
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// parseIDParam reads a positive integer path parameter.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// parseOptionalID reads an optional positive integer query parameter.
func parseOptionalID(c *gin.Context, name string) (*uint, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid "+name)
		return nil, false
	}
	if id == 0 {
		return nil, true
	}
	v := uint(id)
	return &v, true
}

// requireUser writes 401 when the request carries no session.
func requireUser(c *gin.Context) (uint, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		middleware.GetLoggerFromContext(c).Warn("Unauthenticated request", map[string]interface{}{
			"path": c.Request.URL.Path,
		})
		apperrors.Unauthorized(c, "")
		return 0, false
	}
	return userID, true
}
