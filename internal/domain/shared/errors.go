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

// Error codes shared across bounded contexts. Business errors that carry
// structured payloads (shortfall quantities, offending lots) live in their
// owning domain package and reuse these codes.
const (
	CodeNotFound              = "NOT_FOUND"
	CodeAlreadyExists         = "ALREADY_EXISTS"
	CodeValidation            = "VALIDATION_ERROR"
	CodeInvalidState          = "INVALID_STATE"
	CodeInsufficientStock     = "INSUFFICIENT_STOCK"
	CodeExpiredLotBlocked     = "EXPIRED_LOT_BLOCKED"
	CodeJustificationRequired = "JUSTIFICATION_REQUIRED"
	CodeTransientConflict     = "TRANSIENT_CONFLICT"
	CodeDataIntegrity         = "DATA_INTEGRITY"
	CodeDuplicateRequest      = "DUPLICATE_REQUEST"
	CodeInternal              = "INTERNAL_ERROR"
)

// Common domain errors
var (
	ErrNotFound         = NewDomainError(CodeNotFound, "Resource not found")
	ErrAlreadyExists    = NewDomainError(CodeAlreadyExists, "Resource already exists")
	ErrInvalidInput     = NewDomainError(CodeValidation, "Invalid input provided")
	ErrInvalidState     = NewDomainError(CodeInvalidState, "Operation not allowed in current state")
	ErrDuplicateRequest = NewDomainError(CodeDuplicateRequest, "Request was already processed")
)
