package handler

import (
	"github.com/gin-gonic/gin"
	checkoutapp "github.com/opsuite/backend/internal/application/checkout"
	"github.com/opsuite/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// IdempotencyKeyHeader carries the client-chosen key that makes Finalize
// safe to retry
const IdempotencyKeyHeader = "X-Idempotency-Key"

// CheckoutHandler handles sale finalization and its advisory precheck
type CheckoutHandler struct {
	BaseHandler
	service *checkoutapp.CheckoutService
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(service *checkoutapp.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{service: service}
}

// Finalize completes a sale, consuming stock and writing the ledger in one
// transaction
// POST /api/v1/checkout/finalize
func (h *CheckoutHandler) Finalize(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, err.Error())
		return
	}

	operatorID, err := getOperatorID(c)
	if err != nil {
		h.Unauthorized(c, err.Error())
		return
	}

	var req checkoutapp.FinalizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	req.IdempotencyKey = c.GetHeader(IdempotencyKeyHeader)

	result, err := h.service.Finalize(c.Request.Context(), tenantID, operatorID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	logger.GetGinLogger(c).Info("Sale finalized",
		zap.String("sale_id", result.SaleID.String()),
		zap.String("total", result.Total.String()),
	)
	h.Created(c, result)
}

// Precheck reports, without side effects, whether finalizing would be
// blocked or need a justification
// POST /api/v1/checkout/precheck
func (h *CheckoutHandler) Precheck(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, err.Error())
		return
	}

	var req checkoutapp.PrecheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	result, err := h.service.Precheck(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
