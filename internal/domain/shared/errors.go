package shared

import "fmt"

// DomainError represents a business-level error with a stable code.
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	cause   error
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap exposes the underlying cause, if any.
func (e *DomainError) Unwrap() error {
	return e.cause
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WrapPersistence wraps a storage fault. The cause is kept for server-side
// logging; only the generic message is safe to surface to callers.
func WrapPersistence(err error) *DomainError {
	return &DomainError{
		Code:    "PERSISTENCE_ERROR",
		Message: "A storage error occurred",
		cause:   err,
	}
}

// WrapGateway wraps a payment/subscription gateway fault.
func WrapGateway(err error) *DomainError {
	return &DomainError{
		Code:    "GATEWAY_ERROR",
		Message: "Payment gateway request failed",
		cause:   err,
	}
}

// WrapExport wraps a document rendering fault.
func WrapExport(err error) *DomainError {
	return &DomainError{
		Code:    "EXPORT_ERROR",
		Message: "Export rendering failed",
		cause:   err,
	}
}

// WrapDelivery wraps an outbound email delivery fault.
func WrapDelivery(err error) *DomainError {
	return &DomainError{
		Code:    "DELIVERY_ERROR",
		Message: "Email delivery failed",
		cause:   err,
	}
}

// Common domain errors
var (
	ErrNotFound = NewDomainError("NOT_FOUND", "Resource not found")

	// ErrMissingTenant marks a repository call issued without a tenant
	// context. This is an integration bug, never a user-facing condition.
	ErrMissingTenant = NewDomainError("MISSING_TENANT", "Operation requires a tenant context")

	ErrDuplicateDocument = NewDomainError("DUPLICATE_DOCUMENT", "A record with this document already exists")
	ErrUnauthorized      = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrInvalidInput      = NewDomainError("INVALID_INPUT", "Invalid input provided")
)

// ValidationError carries the full list of business-rule violations found in
// a submitted entity. It is only constructed when at least one rule failed.
type ValidationError struct {
	Failures []string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if len(e.Failures) == 1 {
		return e.Failures[0]
	}
	return fmt.Sprintf("validation failed with %d errors", len(e.Failures))
}

// NewValidationError creates a ValidationError from failure messages.
func NewValidationError(failures []string) *ValidationError {
	return &ValidationError{Failures: failures}
}
