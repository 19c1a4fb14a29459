package dto

import "net/http"

// Error codes surfaced by the HTTP layer itself. Domain and application
// errors carry their own codes; both families share the status map below.
const (
	// ErrCodeBadRequest is used for malformed requests and failed bindings
	ErrCodeBadRequest = "BAD_REQUEST"
	// ErrCodeValidationFailed is used when business-rule validation rejects an entity
	ErrCodeValidationFailed = "VALIDATION_FAILED"
	// ErrCodeUnauthorized is used when authentication is required but missing/invalid
	ErrCodeUnauthorized = "UNAUTHORIZED"
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "NOT_FOUND"
	// ErrCodeInternal is used when no safer classification applies
	ErrCodeInternal = "INTERNAL_ERROR"
	// ErrCodeRateLimited is used when the per-client request budget is exhausted
	ErrCodeRateLimited = "RATE_LIMITED"
)

// errorCodeHTTPStatus maps error codes to HTTP status codes.
//
// MISSING_TENANT and PERSISTENCE_ERROR deliberately map to 500: the former
// is a wiring bug, the latter a storage fault, and neither is actionable by
// the caller. Gateway and mail delivery faults map to 502 because the
// failure sits behind this service, not inside it.
var errorCodeHTTPStatus = map[string]int{
	ErrCodeBadRequest:       http.StatusBadRequest,
	ErrCodeValidationFailed: http.StatusBadRequest,
	ErrCodeUnauthorized:     http.StatusUnauthorized,
	ErrCodeNotFound:         http.StatusNotFound,
	ErrCodeInternal:         http.StatusInternalServerError,
	ErrCodeRateLimited:      http.StatusTooManyRequests,

	// Domain entity construction and mutation rejections
	"INVALID_INPUT":       http.StatusBadRequest,
	"INVALID_KIND":        http.StatusBadRequest,
	"INVALID_NAME":        http.StatusBadRequest,
	"INVALID_EMAIL":       http.StatusBadRequest,
	"INVALID_PASSWORD":    http.StatusBadRequest,
	"INVALID_PRICE":       http.StatusBadRequest,
	"INVALID_CONVERSION":  http.StatusBadRequest,
	"INVALID_COMPOSITION": http.StatusBadRequest,
	"INVALID_ITEM":        http.StatusBadRequest,
	"INVALID_ITEM_KIND":   http.StatusBadRequest,

	// Uniqueness conflicts
	"DUPLICATE_DOCUMENT": http.StatusConflict,
	"DUPLICATE_EMAIL":    http.StatusConflict,

	// Server-side faults
	"MISSING_TENANT":    http.StatusInternalServerError,
	"PERSISTENCE_ERROR": http.StatusInternalServerError,
	"EXPORT_ERROR":      http.StatusInternalServerError,

	// Upstream dependency faults
	"GATEWAY_ERROR":  http.StatusBadGateway,
	"DELIVERY_ERROR": http.StatusBadGateway,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unknown codes fall back to 500 Internal Server Error.
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
