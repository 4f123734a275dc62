package models

// APIError represents a standardized error response for the API
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Error code constants
const (
	// General errors
	ErrBadRequest       = "BAD_REQUEST"
	ErrUnauthorized     = "UNAUTHORIZED"
	ErrForbidden        = "FORBIDDEN"
	ErrNotFound         = "NOT_FOUND"
	ErrConflict         = "CONFLICT"
	ErrInternalServer   = "INTERNAL_SERVER_ERROR"
	ErrValidationFailed = "VALIDATION_FAILED"

	// Domain-specific errors
	ErrPizzaNotFound       = "PIZZA_NOT_FOUND"
	ErrOrderNotFound       = "ORDER_NOT_FOUND"
	ErrInventoryNotFound   = "INVENTORY_ITEM_NOT_FOUND"
	ErrInvalidIngredient   = "INVALID_INGREDIENT"
	ErrInvalidOrderStatus  = "INVALID_ORDER_STATUS"
	ErrOrderNotCancellable = "ORDER_NOT_CANCELLABLE"
	ErrPaymentVerification = "PAYMENT_VERIFICATION_FAILED"
)

// NewAPIError creates a new API error with the given code and message
func NewAPIError(code, message string, details ...map[string]interface{}) APIError {
	err := APIError{
		Code:    code,
		Message: message,
	}
	if len(details) > 0 {
		err.Details = details[0]
	}
	return err
}
