package identity

import (
	"time"

	"github.com/google/uuid"
	"github.com/opsuite/backend/internal/domain/identity"
)

// CreateTenantRequest represents a request to register a tenant
type CreateTenantRequest struct {
	Name string `json:"name" binding:"required"`
	Code string `json:"code"`
}

// UpdateExpiredLotPolicyRequest changes how the tenant treats sales that
// consume expired lots
type UpdateExpiredLotPolicyRequest struct {
	Policy string `json:"policy" binding:"required,oneof=BLOCK JUSTIFY FREE"`
}

// TenantResponse represents a tenant in API responses
type TenantResponse struct {
	ID               uuid.UUID `json:"id"`
	Code             string    `json:"code"`
	Name             string    `json:"name"`
	Plan             string    `json:"plan"`
	Active           bool      `json:"active"`
	ExpiredLotPolicy string    `json:"expired_lot_policy"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func toTenantResponse(t *identity.Tenant) *TenantResponse {
	return &TenantResponse{
		ID:               t.ID,
		Code:             t.Code,
		Name:             t.Name,
		Plan:             t.Plan.String(),
		Active:           t.Active,
		ExpiredLotPolicy: t.ExpiredLotPolicy.String(),
		CreatedAt:        t.CreatedAt,
		UpdatedAt:        t.UpdatedAt,
	}
}
