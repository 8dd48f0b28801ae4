package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/opsuite/backend/internal/domain/shared"
)

// BaseModel provides common persistence fields for all models.
// It maps to the domain's BaseEntity.
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// ToDomain converts BaseModel to domain BaseEntity
func (m *BaseModel) ToDomain() shared.BaseEntity {
	return shared.BaseEntity{
		ID:        m.ID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromDomainBaseEntity populates BaseModel from domain BaseEntity
func (m *BaseModel) FromDomainBaseEntity(e shared.BaseEntity) {
	m.ID = e.ID
	m.CreatedAt = e.CreatedAt
	m.UpdatedAt = e.UpdatedAt
}

// TenantScopedModel provides common persistence fields for tenant-scoped entities
type TenantScopedModel struct {
	BaseModel
	TenantID uuid.UUID `gorm:"type:uuid;not null;index"`
}

// ToDomain converts TenantScopedModel to domain TenantEntity
func (m *TenantScopedModel) ToDomainTenantEntity() shared.TenantEntity {
	return shared.TenantEntity{
		BaseEntity: m.BaseModel.ToDomain(),
		TenantID:   m.TenantID,
	}
}

// FromDomainTenantEntity populates TenantScopedModel from domain TenantEntity
func (m *TenantScopedModel) FromDomainTenantEntity(e shared.TenantEntity) {
	m.FromDomainBaseEntity(e.BaseEntity)
	m.TenantID = e.TenantID
}
