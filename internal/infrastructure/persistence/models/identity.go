package models

import (
	"github.com/opsuite/backend/internal/domain/identity"
)

// TenantModel is the persistence model for Tenant
type TenantModel struct {
	BaseModel
	Code             string `gorm:"size:64;not null;uniqueIndex"`
	Name             string `gorm:"size:255;not null"`
	Plan             string `gorm:"size:32;not null"`
	Active           bool   `gorm:"not null;default:true"`
	ExpiredLotPolicy string `gorm:"size:32;not null"`
}

// TableName returns the table name for GORM
func (TenantModel) TableName() string {
	return "tenants"
}

// ToDomain converts the persistence model to a domain Tenant
func (m *TenantModel) ToDomain() *identity.Tenant {
	return &identity.Tenant{
		BaseEntity:       m.BaseModel.ToDomain(),
		Code:             m.Code,
		Name:             m.Name,
		Plan:             identity.TenantPlan(m.Plan),
		Active:           m.Active,
		ExpiredLotPolicy: identity.ExpiredLotPolicy(m.ExpiredLotPolicy),
	}
}

// FromDomain populates the persistence model from a domain Tenant
func (m *TenantModel) FromDomain(t *identity.Tenant) {
	m.FromDomainBaseEntity(t.BaseEntity)
	m.Code = t.Code
	m.Name = t.Name
	m.Plan = t.Plan.String()
	m.Active = t.Active
	m.ExpiredLotPolicy = t.ExpiredLotPolicy.String()
}
