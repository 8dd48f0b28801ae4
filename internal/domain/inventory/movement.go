package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/opsuite/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// MovementDirection represents the direction of a stock movement
type MovementDirection string

const (
	// MovementIn represents stock entering inventory (receiving, returns)
	MovementIn MovementDirection = "IN"
	// MovementOut represents stock leaving inventory (sales, withdrawals)
	MovementOut MovementDirection = "OUT"
)

// IsValid returns true if the direction is a known direction
func (d MovementDirection) IsValid() bool {
	switch d {
	case MovementIn, MovementOut:
		return true
	}
	return false
}

// String returns the string representation of MovementDirection
func (d MovementDirection) String() string {
	return string(d)
}

// Movement is one append-only ledger entry for a product, optionally tied
// to a lot. Movements are the single source of truth for all balances and
// are never updated or deleted; corrections are made by offsetting entries.
type Movement struct {
	shared.TenantEntity
	ProductID  uuid.UUID
	LotID      *uuid.UUID
	Direction  MovementDirection
	Quantity   decimal.Decimal // always positive; direction carries the sign
	OccurredAt time.Time
	Note       string
}

// NewMovement creates a ledger entry. Quantity must be strictly positive.
func NewMovement(tenantID, productID uuid.UUID, lotID *uuid.UUID, direction MovementDirection, quantity decimal.Decimal, occurredAt time.Time, note string) (*Movement, error) {
	if !direction.IsValid() {
		return nil, shared.NewDomainError(shared.CodeValidation, "unknown movement direction: "+string(direction))
	}
	if !quantity.IsPositive() {
		return nil, shared.NewDomainError(shared.CodeValidation, "movement quantity must be positive")
	}
	if occurredAt.IsZero() {
		occurredAt = time.Now()
	}
	return &Movement{
		TenantEntity: shared.NewTenantEntity(tenantID),
		ProductID:    productID,
		LotID:        lotID,
		Direction:    direction,
		Quantity:     quantity,
		OccurredAt:   occurredAt,
		Note:         note,
	}, nil
}

// Signed returns the quantity with its direction applied
func (m *Movement) Signed() decimal.Decimal {
	if m.Direction == MovementOut {
		return m.Quantity.Neg()
	}
	return m.Quantity
}

// BalanceOf folds a slice of movements into a balance (Σ in − Σ out).
// It returns a data-integrity error instead of clamping when the fold goes
// negative: outbound movements that would overdraw a lot are never supposed
// to be committed in the first place.
func BalanceOf(movements []Movement) (decimal.Decimal, error) {
	balance := decimal.Zero
	for i := range movements {
		balance = balance.Add(movements[i].Signed())
	}
	if balance.IsNegative() {
		return balance, shared.NewDomainError(shared.CodeDataIntegrity, "derived balance is negative: the movement ledger is inconsistent")
	}
	return balance, nil
}
