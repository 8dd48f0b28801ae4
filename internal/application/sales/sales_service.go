package sales

import (
	"context"

	"github.com/google/uuid"
	"github.com/opsuite/backend/internal/domain/sales"
	"github.com/opsuite/backend/internal/domain/shared"
)

// SalesService is the read side of sales: history and the override audit
// trail. Sales are only ever created through checkout finalization.
type SalesService struct {
	saleRepo     sales.SaleRepository
	overrideRepo sales.OverrideRecordRepository
}

// NewSalesService creates a new SalesService
func NewSalesService(saleRepo sales.SaleRepository, overrideRepo sales.OverrideRecordRepository) *SalesService {
	return &SalesService{saleRepo: saleRepo, overrideRepo: overrideRepo}
}

// Get returns a sale with its line items
func (s *SalesService) Get(ctx context.Context, tenantID, id uuid.UUID) (*SaleResponse, error) {
	sale, err := s.saleRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	response := toSaleResponse(sale)
	return &response, nil
}

// List pages through the tenant's sales, newest first
func (s *SalesService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (*shared.Paginated[SaleResponse], error) {
	items, total, err := s.saleRepo.ListForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]SaleResponse, len(items))
	for i := range items {
		responses[i] = toSaleResponse(&items[i])
	}
	page := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &page, nil
}

// ListOverrides pages through the override audit trail, newest first
func (s *SalesService) ListOverrides(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (*shared.Paginated[OverrideResponse], error) {
	records, total, err := s.overrideRepo.ListForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]OverrideResponse, len(records))
	for i := range records {
		responses[i] = toOverrideResponse(&records[i])
	}
	page := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &page, nil
}
