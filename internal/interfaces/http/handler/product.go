package handler

import (
	"github.com/gin-gonic/gin"
	catalogapp "github.com/opsuite/backend/internal/application/catalog"
	"github.com/opsuite/backend/internal/interfaces/http/dto"
)

// ProductHandler handles product catalog operations
type ProductHandler struct {
	BaseHandler
	service *catalogapp.ProductService
}

// NewProductHandler creates a new product handler
func NewProductHandler(service *catalogapp.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

// Create creates a product
// POST /api/v1/products
func (h *ProductHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, err.Error())
		return
	}

	var req catalogapp.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	product, err := h.service.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, product)
}

// Get returns a product by ID
// GET /api/v1/products/:id
func (h *ProductHandler) Get(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, err.Error())
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "invalid product ID")
		return
	}

	product, err := h.service.Get(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// List returns a page of products
// GET /api/v1/products
func (h *ProductHandler) List(c *gin.Context) {
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

// Update updates a product
// PUT /api/v1/products/:id
func (h *ProductHandler) Update(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, err.Error())
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "invalid product ID")
		return
	}

	var req catalogapp.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	product, err := h.service.Update(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// Deactivate retires a product from sale
// DELETE /api/v1/products/:id
func (h *ProductHandler) Deactivate(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, err.Error())
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "invalid product ID")
		return
	}

	if err := h.service.Deactivate(c.Request.Context(), tenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
