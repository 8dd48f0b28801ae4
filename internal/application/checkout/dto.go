package checkout

import (
	"time"

	"github.com/google/uuid"
	"github.com/opsuite/backend/internal/domain/inventory"
	"github.com/shopspring/decimal"
)

// FinalizeItem is one requested product line of a finalization
type FinalizeItem struct {
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// FinalizeRequest is the input for finalizing a sale or stock withdrawal
type FinalizeRequest struct {
	Items         []FinalizeItem `json:"items"`
	PaymentMethod string         `json:"payment_method"`
	Note          string         `json:"note"`
	Justification string         `json:"justification"`
	EffectiveDate *time.Time     `json:"effective_date"` // defaults to now
	// IdempotencyKey guards against the same checkout being submitted
	// twice (double click, client retry after timeout). Optional.
	IdempotencyKey string `json:"-"`
}

// FinalizeResponse is the success output of a finalization
type FinalizeResponse struct {
	SaleID uuid.UUID       `json:"sale_id"`
	Total  decimal.Decimal `json:"total"`
}

// PrecheckRequest asks whether an allocation would be blocked or need
// justification, without committing anything
type PrecheckRequest struct {
	ProductID     uuid.UUID       `json:"product_id"`
	Quantity      decimal.Decimal `json:"quantity"`
	EffectiveDate *time.Time      `json:"effective_date"`
}

// LotWarning describes one planned lot with an expiration concern
type LotWarning struct {
	LotID     uuid.UUID                `json:"lot_id"`
	LotCode   string                   `json:"lot_code"`
	ExpiresAt *time.Time               `json:"expires_at"`
	Quantity  decimal.Decimal          `json:"quantity"`
	Severity  inventory.ExpirySeverity `json:"severity"`
}

// PrecheckResponse is the advisory result of a pre-check. It must never be
// treated as authorization: Finalize re-runs validation, planning and
// gating at commit time because inventory may change in between.
type PrecheckResponse struct {
	Blocked               bool         `json:"blocked"`
	RequiresJustification bool         `json:"requires_justification"`
	Warnings              []LotWarning `json:"warnings"`
}

func warningsFromDomain(warnings []inventory.ExpiryWarning) []LotWarning {
	out := make([]LotWarning, len(warnings))
	for i, w := range warnings {
		out[i] = LotWarning{
			LotID:     w.LotID,
			LotCode:   w.LotCode,
			ExpiresAt: w.ExpiresAt,
			Quantity:  w.Quantity,
			Severity:  w.Severity,
		}
	}
	return out
}
