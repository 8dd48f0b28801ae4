package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/opsuite/backend/internal/domain/inventory"
	"github.com/shopspring/decimal"
)

// ReceiveStockRequest represents a stock receipt: goods entering inventory,
// optionally into a new identified lot with an expiration date.
type ReceiveStockRequest struct {
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
	// LotID receives into an existing lot. Mutually exclusive with LotCode.
	LotID *uuid.UUID `json:"lot_id"`
	// LotCode creates a new lot with this code
	LotCode   string     `json:"lot_code"`
	ExpiresAt *time.Time `json:"expires_at"`
	Note      string     `json:"note"`
	// OccurredAt defaults to now
	OccurredAt *time.Time `json:"occurred_at"`
}

// ReceiveStockResponse is the result of a stock receipt
type ReceiveStockResponse struct {
	MovementID uuid.UUID       `json:"movement_id"`
	LotID      *uuid.UUID      `json:"lot_id"`
	Balance    decimal.Decimal `json:"balance"`
}

// ProductBalanceResponse is a product's derived stock position
type ProductBalanceResponse struct {
	ProductID    uuid.UUID       `json:"product_id"`
	ProductName  string          `json:"product_name"`
	Balance      decimal.Decimal `json:"balance"`
	MinStock     decimal.Decimal `json:"min_stock"`
	BelowMinimum bool            `json:"below_minimum"`
}

// LotBalanceResponse is one lot's derived balance with its expiration band
type LotBalanceResponse struct {
	LotID     uuid.UUID                `json:"lot_id"`
	LotCode   string                   `json:"lot_code"`
	ExpiresAt *time.Time               `json:"expires_at"`
	Balance   decimal.Decimal          `json:"balance"`
	Severity  inventory.ExpirySeverity `json:"severity"`
}

// ExpiringLotResponse is one entry of the expiring-lots report
type ExpiringLotResponse struct {
	LotID       uuid.UUID                `json:"lot_id"`
	LotCode     string                   `json:"lot_code"`
	ProductID   uuid.UUID                `json:"product_id"`
	ProductName string                   `json:"product_name"`
	ExpiresAt   time.Time                `json:"expires_at"`
	Balance     decimal.Decimal          `json:"balance"`
	Severity    inventory.ExpirySeverity `json:"severity"`
}

// MovementResponse represents one ledger movement in API responses
type MovementResponse struct {
	ID         uuid.UUID       `json:"id"`
	ProductID  uuid.UUID       `json:"product_id"`
	LotID      *uuid.UUID      `json:"lot_id"`
	Direction  string          `json:"direction"`
	Quantity   decimal.Decimal `json:"quantity"`
	OccurredAt time.Time       `json:"occurred_at"`
	Note       string          `json:"note"`
	CreatedAt  time.Time       `json:"created_at"`
}

func movementToResponse(m *inventory.Movement) MovementResponse {
	return MovementResponse{
		ID:         m.ID,
		ProductID:  m.ProductID,
		LotID:      m.LotID,
		Direction:  m.Direction.String(),
		Quantity:   m.Quantity,
		OccurredAt: m.OccurredAt,
		Note:       m.Note,
		CreatedAt:  m.CreatedAt,
	}
}
