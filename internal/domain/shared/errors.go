package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound           = NewDomainError("NOT_FOUND", "Resource not found")
	ErrInvalidInput       = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrFlavorMismatch     = NewDomainError("FLAVOR_MISMATCH", "Flavor does not belong to the given product")
	ErrFlavorOutOfStock   = NewDomainError("FLAVOR_OUT_OF_STOCK", "Flavor is out of stock")
	ErrMinimumOrderNotMet = NewDomainError("MINIMUM_ORDER_NOT_MET", "Cart subtotal is below the minimum order")
)
