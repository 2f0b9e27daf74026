package errors

// Error codes returned in ErrorResponse.ErrorCode.
// Clients map these to messages; the message text is informational only.

const (
	// ==================== Design validation ====================
	MissingPrintArea   = "missing_print_area"   // no print area configured (read endpoints only)
	DesignOutOfBounds  = "design_out_of_bounds" // design exceeds the print area
	InvalidData        = "invalid_data"         // payload could not be read at all
	MissingField       = "missing_field"        // required design field absent
	InvalidAttachments = "invalid_attachments"  // attachment list is not a list or is empty
	InvalidAttachment  = "invalid_attachment"   // one attachment is not an image
	InvalidTransform   = "invalid_transform"    // applied_transform has the wrong shape
	InvalidPrintArea   = "invalid_print_area"   // print area record has the wrong shape or range
	CouldNotAdd        = "could_not_add"        // cart host refused the line

	// ==================== Session ====================
	AuthUnauthorized = "unauthorized"
	AuthTokenExpired = "token_expired"
	AuthTokenInvalid = "token_invalid"
	AuthzForbidden   = "forbidden"
	AuthzRoleMissing = "role_missing"

	// ==================== Resources ====================
	ResourceNotFound      = "not_found"
	ResourceAlreadyExists = "already_exists"
	ResourceConflict      = "conflict"
	ValidationInvalidID   = "invalid_id"

	// ==================== Cart / order host ====================
	CartEmpty         = "cart_empty"
	InsufficientStock = "insufficient_stock"
	InvalidVariant    = "invalid_variant"
	OrderImmutable    = "order_item_immutable"

	// ==================== Upload ====================
	UploadInvalidFileType = "upload_invalid_file_type"
	UploadFileTooLarge    = "upload_file_too_large"
	UploadFailed          = "upload_failed"
	MediaUnavailable      = "media_unavailable"

	// ==================== Internal ====================
	InternalServerError   = "internal_error"
	InternalDatabaseError = "internal_database_error"
)
