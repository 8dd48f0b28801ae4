package handler

import (
	"github.com/gin-gonic/gin"
	salesapp "github.com/opsuite/backend/internal/application/sales"
	"github.com/opsuite/backend/internal/interfaces/http/dto"
)

// SaleHandler handles read access to completed sales and override records
type SaleHandler struct {
	BaseHandler
	service *salesapp.SalesService
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(service *salesapp.SalesService) *SaleHandler {
	return &SaleHandler{service: service}
}

// Get returns a sale with its line items
// GET /api/v1/sales/:id
func (h *SaleHandler) Get(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, err.Error())
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "invalid sale ID")
		return
	}

	sale, err := h.service.Get(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, sale)
}

// List returns a page of sales, newest first
// GET /api/v1/sales
func (h *SaleHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, err.Error())
		return
	}

	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	result, err := h.service.List(c.Request.Context(), tenantID, req.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// ListOverrides returns the audit trail of expired-lot overrides
// GET /api/v1/overrides
func (h *SaleHandler) ListOverrides(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, err.Error())
		return
	}

	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	result, err := h.service.ListOverrides(c.Request.Context(), tenantID, req.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}
