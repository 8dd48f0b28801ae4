package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/opsuite/backend/internal/domain/shared"
)

// Lot represents a distinct receipt of stock for a product, optionally
// dated with an expiration. A lot never stores a mutable balance: its
// balance is always derived from the movement ledger.
type Lot struct {
	shared.TenantEntity
	ProductID uuid.UUID
	Code      string     // human-readable lot code, optional
	ExpiresAt *time.Time // nil means the lot never expires
}

// NewLot creates a lot for a product
func NewLot(tenantID, productID uuid.UUID, code string, expiresAt *time.Time) *Lot {
	return &Lot{
		TenantEntity: shared.NewTenantEntity(tenantID),
		ProductID:    productID,
		Code:         code,
		ExpiresAt:    expiresAt,
	}
}

// IsExpiredAt returns true if the lot is already expired as of the given date.
// Lots without an expiration date never expire.
func (l *Lot) IsExpiredAt(asOf time.Time) bool {
	if l.ExpiresAt == nil {
		return false
	}
	return l.ExpiresAt.Before(truncateToDay(asOf))
}

// DaysUntilExpiry returns the whole days until expiry as of the given date.
// Negative values mean the lot is already expired. Returns false when the
// lot has no expiration date.
func (l *Lot) DaysUntilExpiry(asOf time.Time) (int, bool) {
	if l.ExpiresAt == nil {
		return 0, false
	}
	days := int(l.ExpiresAt.Sub(truncateToDay(asOf)).Hours() / 24)
	return days, true
}

// DisplayCode returns the lot code, falling back to a shortened ID
func (l *Lot) DisplayCode() string {
	if l.Code != "" {
		return l.Code
	}
	return l.ID.String()[:8]
}

// truncateToDay drops the time-of-day component. Expiration is a date-level
// concept: a lot expiring 2024-06-01 is still sellable during that whole day.
func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
