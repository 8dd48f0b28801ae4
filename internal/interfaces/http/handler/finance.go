package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	financeapp "github.com/opsuite/backend/internal/application/finance"
	"github.com/opsuite/backend/internal/interfaces/http/dto"
)

// FinanceHandler handles the cash ledger and period summaries
type FinanceHandler struct {
	BaseHandler
	service *financeapp.FinanceService
}

// NewFinanceHandler creates a new finance handler
func NewFinanceHandler(service *financeapp.FinanceService) *FinanceHandler {
	return &FinanceHandler{service: service}
}

// CreateEntry records a revenue or expense entry
// POST /api/v1/finance/entries
func (h *FinanceHandler) CreateEntry(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, err.Error())
		return
	}

	var req financeapp.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	entry, err := h.service.CreateEntry(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, entry)
}

// GetEntry returns a ledger entry by ID
// GET /api/v1/finance/entries/:id
func (h *FinanceHandler) GetEntry(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, err.Error())
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "invalid entry ID")
		return
	}

	entry, err := h.service.GetEntry(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, entry)
}

// ListEntries returns a page of ledger entries, newest first
// GET /api/v1/finance/entries
func (h *FinanceHandler) ListEntries(c *gin.Context) {
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

	result, err := h.service.ListEntries(c.Request.Context(), tenantID, req.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Summary totals revenue and expenses over a period
// GET /api/v1/finance/summary?from=2026-06-01&to=2026-06-30
func (h *FinanceHandler) Summary(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, err.Error())
		return
	}

	from, err := parsePeriodDate(c.Query("from"))
	if err != nil {
		h.BadRequest(c, "invalid from date, expected YYYY-MM-DD")
		return
	}
	to, err := parsePeriodDate(c.Query("to"))
	if err != nil {
		h.BadRequest(c, "invalid to date, expected YYYY-MM-DD")
		return
	}
	// The period end covers the whole day
	to = to.Add(24*time.Hour - time.Nanosecond)

	summary, err := h.service.Summary(c.Request.Context(), tenantID, from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, summary)
}

func parsePeriodDate(raw string) (time.Time, error) {
	return time.Parse("2006-01-02", raw)
}
