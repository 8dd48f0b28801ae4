package inventory

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/opsuite/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// InsufficientStockError is returned when a product's total balance across
// lots is smaller than the requested quantity. It carries the shortfall so
// callers can report exactly how much is missing.
type InsufficientStockError struct {
	ProductID uuid.UUID
	Requested decimal.Decimal
	Available decimal.Decimal
}

// Error implements the error interface
func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s: requested %s, available %s",
		e.ProductID, e.Requested, e.Available)
}

// Code returns the stable error code for this error
func (e *InsufficientStockError) Code() string {
	return shared.CodeInsufficientStock
}

// Shortfall returns how much quantity is missing
func (e *InsufficientStockError) Shortfall() decimal.Decimal {
	return e.Requested.Sub(e.Available)
}

// ExpiredLotBlockedError is returned when the tenant policy is BLOCK and the
// allocation plan touches at least one already-expired lot. This is a
// terminal business rule, never a transient fault.
type ExpiredLotBlockedError struct {
	Lots []ExpiryWarning
}

// Error implements the error interface
func (e *ExpiredLotBlockedError) Error() string {
	return fmt.Sprintf("allocation blocked: %d expired lot(s) in plan", len(e.Lots))
}

// Code returns the stable error code for this error
func (e *ExpiredLotBlockedError) Code() string {
	return shared.CodeExpiredLotBlocked
}

// JustificationRequiredError is returned when the tenant policy is JUSTIFY,
// the plan touches an expired lot, and no justification text was supplied.
// Callers are expected to prompt the operator and resubmit.
type JustificationRequiredError struct {
	Lots []ExpiryWarning
}

// Error implements the error interface
func (e *JustificationRequiredError) Error() string {
	return fmt.Sprintf("justification required: %d expired lot(s) in plan", len(e.Lots))
}

// Code returns the stable error code for this error
func (e *JustificationRequiredError) Code() string {
	return shared.CodeJustificationRequired
}
