package sales

import (
	"time"

	"github.com/google/uuid"
	"github.com/opsuite/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PaymentMethod represents how a sale was paid
type PaymentMethod string

const (
	// PaymentCash is cash payment
	PaymentCash PaymentMethod = "CASH"
	// PaymentPix is an instant bank transfer
	PaymentPix PaymentMethod = "PIX"
	// PaymentCard is debit or credit card
	PaymentCard PaymentMethod = "CARD"
	// PaymentMixed is a combination of methods
	PaymentMixed PaymentMethod = "MIXED"
)

// IsValid returns true if the payment method is a known method
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentCash, PaymentPix, PaymentCard, PaymentMixed:
		return true
	}
	return false
}

// String returns the string representation of PaymentMethod
func (m PaymentMethod) String() string {
	return string(m)
}

// SaleStatus represents the lifecycle state of a sale
type SaleStatus string

const (
	// SaleStatusOpen is the in-flight state while a finalization runs
	SaleStatusOpen SaleStatus = "OPEN"
	// SaleStatusCompleted is the success terminal state; completed sales are immutable
	SaleStatusCompleted SaleStatus = "COMPLETED"
	// SaleStatusFailed is the failure terminal state; failed sales are never persisted
	SaleStatusFailed SaleStatus = "FAILED"
)

// String returns the string representation of SaleStatus
func (s SaleStatus) String() string {
	return string(s)
}

// SaleLineItem is one product line of a sale
type SaleLineItem struct {
	shared.BaseEntity
	SaleID    uuid.UUID
	ProductID uuid.UUID
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
}

// Subtotal returns quantity times unit price
func (i *SaleLineItem) Subtotal() decimal.Decimal {
	return i.Quantity.Mul(i.UnitPrice)
}

// Sale is the point-of-sale aggregate. Only completed sales reach the
// database; a finalization that fails for any reason leaves no trace.
type Sale struct {
	shared.TenantEntity
	OperatorID    uuid.UUID
	OccurredAt    time.Time
	Total         decimal.Decimal
	PaymentMethod PaymentMethod
	Note          string
	Justification string // filled when an expired-lot override was justified
	Status        SaleStatus
	Items         []SaleLineItem
}

// NewSale opens a sale for a tenant and operator
func NewSale(tenantID, operatorID uuid.UUID, paymentMethod PaymentMethod, occurredAt time.Time, note string) (*Sale, error) {
	if !paymentMethod.IsValid() {
		return nil, shared.NewDomainError(shared.CodeValidation, "unknown payment method: "+string(paymentMethod))
	}
	if occurredAt.IsZero() {
		occurredAt = time.Now()
	}
	return &Sale{
		TenantEntity:  shared.NewTenantEntity(tenantID),
		OperatorID:    operatorID,
		OccurredAt:    occurredAt,
		Total:         decimal.Zero,
		PaymentMethod: paymentMethod,
		Note:          note,
		Status:        SaleStatusOpen,
		Items:         make([]SaleLineItem, 0),
	}, nil
}

// AddItem appends a line item to an open sale and updates the total
func (s *Sale) AddItem(productID uuid.UUID, quantity, unitPrice decimal.Decimal) error {
	if s.Status != SaleStatusOpen {
		return shared.ErrInvalidState
	}
	if !quantity.IsPositive() {
		return shared.NewDomainError(shared.CodeValidation, "line item quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return shared.NewDomainError(shared.CodeValidation, "line item unit price cannot be negative")
	}
	item := SaleLineItem{
		BaseEntity: shared.NewBaseEntity(),
		SaleID:     s.ID,
		ProductID:  productID,
		Quantity:   quantity,
		UnitPrice:  unitPrice,
	}
	s.Items = append(s.Items, item)
	s.Total = s.Total.Add(item.Subtotal())
	return nil
}

// Complete transitions the sale to its immutable terminal state. A sale may
// only be completed once and must have at least one item.
func (s *Sale) Complete(justification string) error {
	if s.Status != SaleStatusOpen {
		return shared.ErrInvalidState
	}
	if len(s.Items) == 0 {
		return shared.NewDomainError(shared.CodeValidation, "sale has no items")
	}
	s.Justification = justification
	s.Status = SaleStatusCompleted
	s.UpdatedAt = time.Now()
	return nil
}

// Fail transitions the sale to the failure terminal state. Failed sales
// exist only in memory: the orchestrator rolls back instead of persisting
// them.
func (s *Sale) Fail() error {
	if s.Status != SaleStatusOpen {
		return shared.ErrInvalidState
	}
	s.Status = SaleStatusFailed
	return nil
}

// IsCompleted returns true for the success terminal state
func (s *Sale) IsCompleted() bool {
	return s.Status == SaleStatusCompleted
}
