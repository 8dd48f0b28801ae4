package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/opsuite/backend/internal/domain/finance"
	"github.com/opsuite/backend/internal/domain/shared"
)

// FinanceService handles the financial ledger: manual entries and the
// period cash summary. Sale revenue entries are appended by the checkout
// transaction, never through this service.
type FinanceService struct {
	entryRepo finance.LedgerEntryRepository
}

// NewFinanceService creates a new FinanceService
func NewFinanceService(entryRepo finance.LedgerEntryRepository) *FinanceService {
	return &FinanceService{entryRepo: entryRepo}
}

// CreateEntry records a manual ledger entry
func (s *FinanceService) CreateEntry(ctx context.Context, tenantID uuid.UUID, req CreateEntryRequest) (*EntryResponse, error) {
	entryDate := time.Now()
	if req.EntryDate != nil {
		entryDate = *req.EntryDate
	}
	entry, err := finance.NewLedgerEntry(
		tenantID, finance.EntryType(req.Type), req.Amount,
		req.Description, req.Category, entryDate, nil,
	)
	if err != nil {
		return nil, err
	}
	if err := s.entryRepo.Append(ctx, entry); err != nil {
		return nil, err
	}
	response := toEntryResponse(entry)
	return &response, nil
}

// GetEntry returns one ledger entry
func (s *FinanceService) GetEntry(ctx context.Context, tenantID, id uuid.UUID) (*EntryResponse, error) {
	entry, err := s.entryRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	response := toEntryResponse(entry)
	return &response, nil
}

// ListEntries pages through the ledger, newest first
func (s *FinanceService) ListEntries(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (*shared.Paginated[EntryResponse], error) {
	entries, total, err := s.entryRepo.ListForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}
	items := make([]EntryResponse, len(entries))
	for i := range entries {
		items[i] = toEntryResponse(&entries[i])
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page, nil
}

// Summary totals revenue and expense entries over [from, to]
func (s *FinanceService) Summary(ctx context.Context, tenantID uuid.UUID, from, to time.Time) (*SummaryResponse, error) {
	if to.Before(from) {
		return nil, shared.NewDomainError(shared.CodeValidation, "summary period end precedes its start")
	}
	revenue, err := s.entryRepo.SumByTypeBetween(ctx, tenantID, finance.EntryRevenue, from, to)
	if err != nil {
		return nil, err
	}
	expense, err := s.entryRepo.SumByTypeBetween(ctx, tenantID, finance.EntryExpense, from, to)
	if err != nil {
		return nil, err
	}
	return &SummaryResponse{
		From:    from,
		To:      to,
		Revenue: revenue,
		Expense: expense,
		Net:     revenue.Sub(expense),
	}, nil
}
