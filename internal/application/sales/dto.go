package sales

import (
	"time"

	"github.com/google/uuid"
	"github.com/opsuite/backend/internal/domain/sales"
	"github.com/shopspring/decimal"
)

// SaleLineItemResponse is one line of a sale in API responses
type SaleLineItemResponse struct {
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// SaleResponse represents a sale in API responses
type SaleResponse struct {
	ID            uuid.UUID              `json:"id"`
	OperatorID    uuid.UUID              `json:"operator_id"`
	OccurredAt    time.Time              `json:"occurred_at"`
	Total         decimal.Decimal        `json:"total"`
	PaymentMethod string                 `json:"payment_method"`
	Status        string                 `json:"status"`
	Note          string                 `json:"note,omitempty"`
	Justification string                 `json:"justification,omitempty"`
	Items         []SaleLineItemResponse `json:"items"`
	CreatedAt     time.Time              `json:"created_at"`
}

// OverrideResponse represents an override audit record in API responses
type OverrideResponse struct {
	ID            uuid.UUID  `json:"id"`
	UserID        uuid.UUID  `json:"user_id"`
	SaleID        *uuid.UUID `json:"sale_id,omitempty"`
	ProductID     *uuid.UUID `json:"product_id,omitempty"`
	LotID         *uuid.UUID `json:"lot_id,omitempty"`
	Category      string     `json:"category"`
	Justification string     `json:"justification,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

func toSaleResponse(s *sales.Sale) SaleResponse {
	items := make([]SaleLineItemResponse, len(s.Items))
	for i := range s.Items {
		item := &s.Items[i]
		items[i] = SaleLineItemResponse{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Subtotal:  item.Subtotal(),
		}
	}
	return SaleResponse{
		ID:            s.ID,
		OperatorID:    s.OperatorID,
		OccurredAt:    s.OccurredAt,
		Total:         s.Total,
		PaymentMethod: s.PaymentMethod.String(),
		Status:        s.Status.String(),
		Note:          s.Note,
		Justification: s.Justification,
		Items:         items,
		CreatedAt:     s.CreatedAt,
	}
}

func toOverrideResponse(r *sales.OverrideRecord) OverrideResponse {
	return OverrideResponse{
		ID:            r.ID,
		UserID:        r.UserID,
		SaleID:        r.SaleID,
		ProductID:     r.ProductID,
		LotID:         r.LotID,
		Category:      r.Category.String(),
		Justification: r.Justification,
		CreatedAt:     r.CreatedAt,
	}
}
