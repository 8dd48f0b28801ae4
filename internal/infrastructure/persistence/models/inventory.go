package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/opsuite/backend/internal/domain/inventory"
	"github.com/shopspring/decimal"
)

// LotModel is the persistence model for Lot
type LotModel struct {
	TenantScopedModel
	ProductID uuid.UUID  `gorm:"type:uuid;not null;index:idx_lots_product"`
	Code      string     `gorm:"size:64"`
	ExpiresAt *time.Time `gorm:"index:idx_lots_expires_at"`
}

// TableName returns the table name for GORM
func (LotModel) TableName() string {
	return "lots"
}

// ToDomain converts the persistence model to a domain Lot
func (m *LotModel) ToDomain() *inventory.Lot {
	return &inventory.Lot{
		TenantEntity: m.ToDomainTenantEntity(),
		ProductID:    m.ProductID,
		Code:         m.Code,
		ExpiresAt:    m.ExpiresAt,
	}
}

// FromDomain populates the persistence model from a domain Lot
func (m *LotModel) FromDomain(l *inventory.Lot) {
	m.FromDomainTenantEntity(l.TenantEntity)
	m.ProductID = l.ProductID
	m.Code = l.Code
	m.ExpiresAt = l.ExpiresAt
}

// MovementModel is the persistence model for Movement. Rows are append-only:
// no update or delete ever touches this table.
type MovementModel struct {
	TenantScopedModel
	ProductID  uuid.UUID       `gorm:"type:uuid;not null;index:idx_movements_product"`
	LotID      *uuid.UUID      `gorm:"type:uuid;index:idx_movements_lot"`
	Direction  string          `gorm:"size:8;not null"`
	Quantity   decimal.Decimal `gorm:"type:decimal(18,3);not null"`
	OccurredAt time.Time       `gorm:"not null;index"`
	Note       string          `gorm:"size:500"`
}

// TableName returns the table name for GORM
func (MovementModel) TableName() string {
	return "movements"
}

// ToDomain converts the persistence model to a domain Movement
func (m *MovementModel) ToDomain() *inventory.Movement {
	return &inventory.Movement{
		TenantEntity: m.ToDomainTenantEntity(),
		ProductID:    m.ProductID,
		LotID:        m.LotID,
		Direction:    inventory.MovementDirection(m.Direction),
		Quantity:     m.Quantity,
		OccurredAt:   m.OccurredAt,
		Note:         m.Note,
	}
}

// FromDomain populates the persistence model from a domain Movement
func (m *MovementModel) FromDomain(mv *inventory.Movement) {
	m.FromDomainTenantEntity(mv.TenantEntity)
	m.ProductID = mv.ProductID
	m.LotID = mv.LotID
	m.Direction = mv.Direction.String()
	m.Quantity = mv.Quantity
	m.OccurredAt = mv.OccurredAt
	m.Note = mv.Note
}
