package handler

import (
	"github.com/gin-gonic/gin"
	identityapp "github.com/opsuite/backend/internal/application/identity"
)

// TenantHandler handles tenant registration and settings
type TenantHandler struct {
	BaseHandler
	service *identityapp.TenantService
}

// NewTenantHandler creates a new tenant handler
func NewTenantHandler(service *identityapp.TenantService) *TenantHandler {
	return &TenantHandler{service: service}
}

// Create registers a new tenant
// POST /api/v1/tenants
func (h *TenantHandler) Create(c *gin.Context) {
	var req identityapp.CreateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	tenant, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, tenant)
}

// Get returns a tenant by ID
// GET /api/v1/tenants/:id
func (h *TenantHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "invalid tenant ID")
		return
	}

	tenant, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, tenant)
}

// SetExpiredLotPolicy changes how the tenant treats sales consuming expired lots
// PUT /api/v1/tenants/:id/expired-lot-policy
func (h *TenantHandler) SetExpiredLotPolicy(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "invalid tenant ID")
		return
	}

	var req identityapp.UpdateExpiredLotPolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	tenant, err := h.service.SetExpiredLotPolicy(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, tenant)
}
