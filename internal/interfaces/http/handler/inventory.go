package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	inventoryapp "github.com/opsuite/backend/internal/application/inventory"
	"github.com/opsuite/backend/internal/interfaces/http/dto"
)

// DefaultExpiryLookaheadDays is the expiring-lots window used when the
// request does not ask for one
const DefaultExpiryLookaheadDays = 30

// InventoryHandler handles stock receiving, balances and expiration queries
type InventoryHandler struct {
	BaseHandler
	service       *inventoryapp.InventoryService
	lookaheadDays int
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(service *inventoryapp.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: service, lookaheadDays: DefaultExpiryLookaheadDays}
}

// SetExpiryLookaheadDays overrides the default expiring-lots window
func (h *InventoryHandler) SetExpiryLookaheadDays(days int) {
	if days > 0 {
		h.lookaheadDays = days
	}
}

// ReceiveStock records incoming stock into a lot
// POST /api/v1/inventory/receipts
func (h *InventoryHandler) ReceiveStock(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, err.Error())
		return
	}

	var req inventoryapp.ReceiveStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	receipt, err := h.service.ReceiveStock(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, receipt)
}

// ProductBalance returns the current balance of a product across all lots
// GET /api/v1/inventory/products/:id/balance
func (h *InventoryHandler) ProductBalance(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, err.Error())
		return
	}

	productID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "invalid product ID")
		return
	}

	balance, err := h.service.ProductBalance(c.Request.Context(), tenantID, productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, balance)
}

// LotBalances returns per-lot balances for a product in consumption order
// GET /api/v1/inventory/products/:id/lots
func (h *InventoryHandler) LotBalances(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, err.Error())
		return
	}

	productID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "invalid product ID")
		return
	}

	asOf, err := parseAsOf(c)
	if err != nil {
		h.BadRequest(c, "invalid as_of date, expected RFC 3339")
		return
	}

	lots, err := h.service.LotBalances(c.Request.Context(), tenantID, productID, asOf)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, lots)
}

// ExpiringLots returns lots expiring within the requested window
// GET /api/v1/inventory/expiring?within_days=30
func (h *InventoryHandler) ExpiringLots(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, err.Error())
		return
	}

	withinDays := h.lookaheadDays
	if raw := c.Query("within_days"); raw != "" {
		withinDays, err = strconv.Atoi(raw)
		if err != nil || withinDays < 0 {
			h.BadRequest(c, "within_days must be a non-negative integer")
			return
		}
	}

	asOf, err := parseAsOf(c)
	if err != nil {
		h.BadRequest(c, "invalid as_of date, expected RFC 3339")
		return
	}

	lots, err := h.service.ExpiringLots(c.Request.Context(), tenantID, withinDays, asOf)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, lots)
}

// BelowMinimum returns products whose balance dropped below their minimum stock
// GET /api/v1/inventory/below-minimum
func (h *InventoryHandler) BelowMinimum(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, err.Error())
		return
	}

	products, err := h.service.BelowMinimum(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, products)
}

// ListMovements returns the movement ledger, optionally scoped to one product
// GET /api/v1/inventory/movements?product_id=
func (h *InventoryHandler) ListMovements(c *gin.Context) {
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

	var productID *uuid.UUID
	if raw := c.Query("product_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "invalid product_id")
			return
		}
		productID = &id
	}

	result, err := h.service.ListMovements(c.Request.Context(), tenantID, productID, req.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// parseAsOf reads the optional as_of query parameter, defaulting to now
func parseAsOf(c *gin.Context) (time.Time, error) {
	raw := c.Query("as_of")
	if raw == "" {
		return time.Now().UTC(), nil
	}
	return time.Parse(time.RFC3339, raw)
}
