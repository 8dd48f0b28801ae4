package dto

import (
	"net/http"

	"github.com/opsuite/backend/internal/domain/shared"
)

// HTTP-layer error codes for failures that never reach the domain.
const (
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "BAD_REQUEST"
	// ErrCodeInvalidJSON is used when JSON parsing fails
	ErrCodeInvalidJSON = "INVALID_JSON"
	// ErrCodeUnauthorized is used when tenant identification is missing
	ErrCodeUnauthorized = "UNAUTHORIZED"
	// ErrCodeNotFound is used when a route or resource is not found
	ErrCodeNotFound = shared.CodeNotFound
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = shared.CodeInternal
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes. Business rule
// rejections map to 422 so clients can tell them apart from malformed input;
// transient conflicts and duplicate requests map to 409 as retry signals.
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeBadRequest:  http.StatusBadRequest,
	ErrCodeInvalidJSON: http.StatusBadRequest,

	shared.CodeValidation: http.StatusBadRequest,

	ErrCodeUnauthorized: http.StatusUnauthorized,

	shared.CodeNotFound: http.StatusNotFound,

	shared.CodeAlreadyExists:     http.StatusConflict,
	shared.CodeTransientConflict: http.StatusConflict,
	shared.CodeDuplicateRequest:  http.StatusConflict,

	shared.CodeInvalidState:          http.StatusUnprocessableEntity,
	shared.CodeInsufficientStock:     http.StatusUnprocessableEntity,
	shared.CodeExpiredLotBlocked:     http.StatusUnprocessableEntity,
	shared.CodeJustificationRequired: http.StatusUnprocessableEntity,

	shared.CodeDataIntegrity: http.StatusInternalServerError,
	shared.CodeInternal:      http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Returns 500 Internal Server Error if the error code is not found.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
