package errors

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrorInfo is a code/message pair ready for ErrorResponse.
type ErrorInfo struct {
	Code    string
	Message string
}

// ParseError maps storage-level failures to a client-safe code and message.
// Driver details are never echoed back.
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{
			Code:    InternalServerError,
			Message: "Internal server error",
		}
	}

	errStrLower := strings.ToLower(err.Error())

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{
			Code:    ResourceNotFound,
			Message: getNotFoundMessage(context),
		}
	}

	// Postgres 23505 / SQLite UNIQUE
	if strings.Contains(errStrLower, "duplicate key") || strings.Contains(errStrLower, "unique constraint") {
		return parseDuplicateKeyError(errStrLower)
	}

	// Postgres 23503
	if strings.Contains(errStrLower, "foreign key constraint") {
		return ErrorInfo{
			Code:    ResourceNotFound,
			Message: "Referenced " + subject(context) + " does not exist",
		}
	}

	// Postgres 23514
	if strings.Contains(errStrLower, "check constraint") {
		return ErrorInfo{
			Code:    InvalidData,
			Message: "Input value is out of range",
		}
	}

	if strings.Contains(errStrLower, "connection refused") ||
		strings.Contains(errStrLower, "no such host") ||
		strings.Contains(errStrLower, "timeout") {
		return ErrorInfo{
			Code:    InternalDatabaseError,
			Message: "Storage is temporarily unavailable, please try again later",
		}
	}

	return ErrorInfo{
		Code:    InternalServerError,
		Message: getDefaultErrorMessage(context),
	}
}

func parseDuplicateKeyError(errLower string) ErrorInfo {
	if strings.Contains(errLower, "unique_key") {
		return ErrorInfo{
			Code:    CouldNotAdd,
			Message: "Cart line already exists, please retry",
		}
	}
	if strings.Contains(errLower, "idx_print_area_scope") {
		return ErrorInfo{
			Code:    ResourceConflict,
			Message: "Print area was changed concurrently, please retry",
		}
	}
	if strings.Contains(errLower, "sku") {
		return ErrorInfo{
			Code:    ResourceAlreadyExists,
			Message: "Variant SKU is already in use",
		}
	}
	return ErrorInfo{
		Code:    ResourceAlreadyExists,
		Message: "Resource already exists",
	}
}

func subject(context string) string {
	contextLower := strings.ToLower(context)
	switch {
	case strings.Contains(contextLower, "variant"):
		return "variant"
	case strings.Contains(contextLower, "product"):
		return "product"
	case strings.Contains(contextLower, "attachment"):
		return "attachment"
	case strings.Contains(contextLower, "cart"):
		return "cart item"
	case strings.Contains(contextLower, "order"):
		return "order"
	case strings.Contains(contextLower, "print area"):
		return "print area"
	}
	return "resource"
}

func getNotFoundMessage(context string) string {
	s := subject(context)
	return strings.ToUpper(s[:1]) + s[1:] + " not found"
}

func getDefaultErrorMessage(context string) string {
	contextLower := strings.ToLower(context)

	if strings.Contains(contextLower, "create") {
		return "Failed to create " + subject(context) + ", please try again later"
	}
	if strings.Contains(contextLower, "update") {
		return "Failed to update " + subject(context) + ", please try again later"
	}
	if strings.Contains(contextLower, "delete") {
		return "Failed to delete " + subject(context) + ", please try again later"
	}
	return "Internal server error, please try again later"
}

// ParseAndRespond parses err and writes it with statusCode.
func ParseAndRespond(c interface{ JSON(int, interface{}) }, statusCode int, err error, context string) {
	errorInfo := ParseError(err, context)
	c.JSON(statusCode, ErrorResponse{
		ErrorCode: errorInfo.Code,
		Message:   errorInfo.Message,
	})
}
