package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/opsuite/backend/internal/domain/finance"
	"github.com/shopspring/decimal"
)

// CreateEntryRequest represents a manual ledger entry. Revenue from sales
// is written automatically at checkout and cannot be created here.
type CreateEntryRequest struct {
	Type        string          `json:"type" binding:"required,oneof=REVENUE EXPENSE"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description" binding:"required"`
	Category    string          `json:"category"`
	EntryDate   *time.Time      `json:"entry_date"`
}

// EntryResponse represents a ledger entry in API responses
type EntryResponse struct {
	ID          uuid.UUID       `json:"id"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	EntryDate   time.Time       `json:"entry_date"`
	SaleID      *uuid.UUID      `json:"sale_id,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// SummaryResponse is the cash summary for a period
type SummaryResponse struct {
	From    time.Time       `json:"from"`
	To      time.Time       `json:"to"`
	Revenue decimal.Decimal `json:"revenue"`
	Expense decimal.Decimal `json:"expense"`
	Net     decimal.Decimal `json:"net"`
}

func toEntryResponse(e *finance.LedgerEntry) EntryResponse {
	return EntryResponse{
		ID:          e.ID,
		Type:        e.Type.String(),
		Amount:      e.Amount,
		Description: e.Description,
		Category:    e.Category,
		EntryDate:   e.EntryDate,
		SaleID:      e.SaleID,
		CreatedAt:   e.CreatedAt,
	}
}
