package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/opsuite/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// CreateProductRequest represents a request to create a product
type CreateProductRequest struct {
	Name        string          `json:"name" binding:"required"`
	Kind        string          `json:"kind" binding:"required,oneof=PRODUCT SERVICE"`
	SalePrice   decimal.Decimal `json:"sale_price"`
	TracksStock bool            `json:"tracks_stock"`
	MinStock    decimal.Decimal `json:"min_stock"`
}

// UpdateProductRequest represents a request to update a product
type UpdateProductRequest struct {
	Name      string          `json:"name" binding:"required"`
	SalePrice decimal.Decimal `json:"sale_price"`
	MinStock  decimal.Decimal `json:"min_stock"`
	Active    *bool           `json:"active"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Kind        string          `json:"kind"`
	SalePrice   decimal.Decimal `json:"sale_price"`
	TracksStock bool            `json:"tracks_stock"`
	MinStock    decimal.Decimal `json:"min_stock"`
	Active      bool            `json:"active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func toProductResponse(p *catalog.Product) *ProductResponse {
	return &ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Kind:        p.Kind.String(),
		SalePrice:   p.SalePrice,
		TracksStock: p.TracksStock,
		MinStock:    p.MinStock,
		Active:      p.Active,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
