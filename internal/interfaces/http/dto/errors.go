package dto

import (
	"net/http"
	"strings"
)

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
)

// Input error codes
const (
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidInput is used for invalid input data
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	// ErrCodeValidation is used when request validation fails
	ErrCodeValidation = "ERR_VALIDATION"
)

// Resource error codes
const (
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeAlreadyExists is used when trying to create a duplicate resource
	ErrCodeAlreadyExists = "ERR_ALREADY_EXISTS"
	// ErrCodeConcurrencyConflict is used when optimistic locking fails
	ErrCodeConcurrencyConflict = "ERR_CONCURRENCY_CONFLICT"
)

// Configuration error codes. These fire at the write boundary: invalid
// mappings are rejected on the way in, never during fact computation.
const (
	// ErrCodeDanglingTarget is used when a mapping points at a SKU or
	// master box code that does not exist
	ErrCodeDanglingTarget = "ERR_DANGLING_TARGET_SKU"
	// ErrCodeDuplicateMasterCode is used when a master box code is
	// already linked to a different product
	ErrCodeDuplicateMasterCode = "ERR_DUPLICATE_MASTER_CODE"
	// ErrCodeDuplicateMappingRule is used when an active exact rule for
	// the same pattern and channel already exists
	ErrCodeDuplicateMappingRule = "ERR_DUPLICATE_MAPPING_RULE"
)

// Business rule error codes
const (
	// ErrCodeInvalidState is used when an operation is invalid for current state
	ErrCodeInvalidState = "ERR_INVALID_STATE"
	// ErrCodeRefreshInProgress is used when a refresh request cannot be
	// accepted while another run holds the store
	ErrCodeRefreshInProgress = "ERR_REFRESH_IN_PROGRESS"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,
	ErrCodeValidation:   http.StatusBadRequest,

	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,

	// Configuration errors -> 422 Unprocessable Entity
	ErrCodeDanglingTarget:       http.StatusUnprocessableEntity,
	ErrCodeDuplicateMasterCode:  http.StatusUnprocessableEntity,
	ErrCodeDuplicateMappingRule: http.StatusUnprocessableEntity,

	ErrCodeInvalidState:      http.StatusUnprocessableEntity,
	ErrCodeRefreshInProgress: http.StatusConflict,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Returns 500 Internal Server Error if the error code is not found.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// domainErrorCodeMapping maps domain error codes to the API format
var domainErrorCodeMapping = map[string]string{
	"NOT_FOUND":              ErrCodeNotFound,
	"ALREADY_EXISTS":         ErrCodeAlreadyExists,
	"CONCURRENCY_CONFLICT":   ErrCodeConcurrencyConflict,
	"INVALID_STATE":          ErrCodeInvalidState,
	"REFRESH_IN_PROGRESS":    ErrCodeRefreshInProgress,
	"DANGLING_TARGET_SKU":    ErrCodeDanglingTarget,
	"DUPLICATE_MASTER_CODE":  ErrCodeDuplicateMasterCode,
	"DUPLICATE_MAPPING_RULE": ErrCodeDuplicateMappingRule,
}

// NormalizeErrorCode converts a domain error code to the API format.
// Validation codes like INVALID_SKU or INVALID_QUANTITY all collapse to
// ERR_INVALID_INPUT; unknown codes map to ERR_UNKNOWN.
func NormalizeErrorCode(code string) string {
	if normalized, ok := domainErrorCodeMapping[code]; ok {
		return normalized
	}
	if strings.HasPrefix(code, "INVALID_") {
		return ErrCodeInvalidInput
	}
	if strings.HasPrefix(code, "ERR_") {
		return code
	}
	return ErrCodeUnknown
}
