package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/opsuite/backend/internal/domain/catalog"
	"github.com/opsuite/backend/internal/domain/inventory"
	"github.com/opsuite/backend/internal/domain/shared"
)

// DefaultExpiryLookaheadDays bounds the expiring-lots report window
const DefaultExpiryLookaheadDays = 30

// InventoryService handles stock receipts and the derived-balance read side:
// product and lot balances, expiring-lot and below-minimum reports, and the
// movement ledger listing. Stock consumption lives in the checkout service.
type InventoryService struct {
	productRepo  catalog.ProductRepository
	lotRepo      inventory.LotRepository
	movementRepo inventory.MovementRepository
	scope        TransactionScope
}

// NewInventoryService creates a new inventory service
func NewInventoryService(
	productRepo catalog.ProductRepository,
	lotRepo inventory.LotRepository,
	movementRepo inventory.MovementRepository,
	scope TransactionScope,
) *InventoryService {
	return &InventoryService{
		productRepo:  productRepo,
		lotRepo:      lotRepo,
		movementRepo: movementRepo,
		scope:        scope,
	}
}

// ReceiveStock records goods entering inventory as one inbound ledger
// movement. The movement always targets a lot: an existing one when lot_id
// is given, otherwise a newly created lot (with no expiration unless one is
// supplied).
func (s *InventoryService) ReceiveStock(ctx context.Context, tenantID uuid.UUID, req ReceiveStockRequest) (*ReceiveStockResponse, error) {
	if !req.Quantity.IsPositive() {
		return nil, shared.NewDomainError(shared.CodeValidation, "quantity must be positive")
	}
	if req.LotID != nil && (req.LotCode != "" || req.ExpiresAt != nil) {
		return nil, shared.NewDomainError(shared.CodeValidation, "lot_id and lot_code/expires_at are mutually exclusive")
	}

	product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, req.ProductID)
	if err != nil {
		return nil, err
	}
	if !product.TracksStock {
		return nil, shared.NewDomainError(shared.CodeInvalidState, "product does not track stock: "+product.Name)
	}

	occurredAt := time.Now()
	if req.OccurredAt != nil {
		occurredAt = *req.OccurredAt
	}

	var response *ReceiveStockResponse
	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var lotID *uuid.UUID
		if req.LotID != nil {
			lot, err := repos.Lots().FindByIDForTenant(ctx, tenantID, *req.LotID)
			if err != nil {
				return err
			}
			if lot.ProductID != product.ID {
				return shared.NewDomainError(shared.CodeValidation, "lot belongs to a different product")
			}
			lotID = &lot.ID
		} else {
			// Every receipt lands in a lot so the stock stays reachable by
			// lot-ordered consumption. Without an expiration the lot sorts
			// last in the consumption order.
			lot := inventory.NewLot(tenantID, product.ID, req.LotCode, req.ExpiresAt)
			if err := repos.Lots().Save(ctx, lot); err != nil {
				return err
			}
			lotID = &lot.ID
		}

		movement, err := inventory.NewMovement(
			tenantID, product.ID, lotID,
			inventory.MovementIn, req.Quantity, occurredAt, req.Note,
		)
		if err != nil {
			return err
		}
		if err := repos.Movements().Append(ctx, movement); err != nil {
			return err
		}

		balance, err := repos.Movements().SumByProduct(ctx, tenantID, product.ID)
		if err != nil {
			return err
		}
		response = &ReceiveStockResponse{
			MovementID: movement.ID,
			LotID:      lotID,
			Balance:    balance,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}

// ProductBalance derives a product's current stock position from the ledger
func (s *InventoryService) ProductBalance(ctx context.Context, tenantID, productID uuid.UUID) (*ProductBalanceResponse, error) {
	product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}
	balance, err := s.movementRepo.SumByProduct(ctx, tenantID, product.ID)
	if err != nil {
		return nil, err
	}
	return &ProductBalanceResponse{
		ProductID:    product.ID,
		ProductName:  product.Name,
		Balance:      balance,
		MinStock:     product.MinStock,
		BelowMinimum: product.TracksStock && balance.LessThan(product.MinStock),
	}, nil
}

// LotBalances derives per-lot balances for a product, in consumption order,
// with each lot's expiration band relative to asOf. Emptied lots are kept in
// the result so receipts and corrections remain visible.
func (s *InventoryService) LotBalances(ctx context.Context, tenantID, productID uuid.UUID, asOf time.Time) ([]LotBalanceResponse, error) {
	if _, err := s.productRepo.FindByIDForTenant(ctx, tenantID, productID); err != nil {
		return nil, err
	}
	lots, err := s.lotRepo.FindByProduct(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}

	lotIDs := make([]uuid.UUID, len(lots))
	for i := range lots {
		lotIDs[i] = lots[i].ID
	}
	balances, err := s.movementRepo.SumByLots(ctx, tenantID, lotIDs)
	if err != nil {
		return nil, err
	}
	stocks := make([]inventory.LotStock, len(lots))
	for i := range lots {
		stocks[i] = inventory.LotStock{Lot: lots[i], Balance: balances[lots[i].ID]}
	}
	inventory.SortLotsForConsumption(stocks)

	out := make([]LotBalanceResponse, 0, len(stocks))
	for i := range stocks {
		lot := stocks[i].Lot
		out = append(out, LotBalanceResponse{
			LotID:     lot.ID,
			LotCode:   lot.DisplayCode(),
			ExpiresAt: lot.ExpiresAt,
			Balance:   stocks[i].Balance,
			Severity:  inventory.ClassifySeverity(&lot, asOf),
		})
	}
	return out, nil
}

// ExpiringLots reports lots with remaining stock that expire within the
// given number of days (capped at the default lookahead when zero), ordered
// by expiration. Lots already drained to zero are omitted.
func (s *InventoryService) ExpiringLots(ctx context.Context, tenantID uuid.UUID, withinDays int, asOf time.Time) ([]ExpiringLotResponse, error) {
	if withinDays <= 0 || withinDays > DefaultExpiryLookaheadDays {
		withinDays = DefaultExpiryLookaheadDays
	}
	limit := asOf.AddDate(0, 0, withinDays)

	lots, err := s.lotRepo.FindExpiringBefore(ctx, tenantID, limit)
	if err != nil {
		return nil, err
	}
	if len(lots) == 0 {
		return []ExpiringLotResponse{}, nil
	}

	lotIDs := make([]uuid.UUID, len(lots))
	productIDs := make([]uuid.UUID, 0, len(lots))
	seen := make(map[uuid.UUID]bool)
	for i := range lots {
		lotIDs[i] = lots[i].ID
		if !seen[lots[i].ProductID] {
			seen[lots[i].ProductID] = true
			productIDs = append(productIDs, lots[i].ProductID)
		}
	}
	balances, err := s.movementRepo.SumByLots(ctx, tenantID, lotIDs)
	if err != nil {
		return nil, err
	}
	products, err := s.productRepo.FindByIDsForTenant(ctx, tenantID, productIDs)
	if err != nil {
		return nil, err
	}
	productNames := make(map[uuid.UUID]string, len(products))
	for i := range products {
		productNames[products[i].ID] = products[i].Name
	}

	out := make([]ExpiringLotResponse, 0, len(lots))
	for i := range lots {
		lot := lots[i]
		balance := balances[lot.ID]
		if !balance.IsPositive() {
			continue
		}
		out = append(out, ExpiringLotResponse{
			LotID:       lot.ID,
			LotCode:     lot.DisplayCode(),
			ProductID:   lot.ProductID,
			ProductName: productNames[lot.ProductID],
			ExpiresAt:   *lot.ExpiresAt,
			Balance:     balance,
			Severity:    inventory.ClassifySeverity(&lot, asOf),
		})
	}
	return out, nil
}

// BelowMinimum reports stock-tracking products whose derived balance fell
// under their configured minimum
func (s *InventoryService) BelowMinimum(ctx context.Context, tenantID uuid.UUID) ([]ProductBalanceResponse, error) {
	products, _, err := s.productRepo.FindAllForTenant(ctx, tenantID, shared.DefaultFilter())
	if err != nil {
		return nil, err
	}

	out := make([]ProductBalanceResponse, 0)
	for i := range products {
		product := products[i]
		if !product.TracksStock || !product.Active {
			continue
		}
		if !product.MinStock.IsPositive() {
			continue
		}
		balance, err := s.movementRepo.SumByProduct(ctx, tenantID, product.ID)
		if err != nil {
			return nil, err
		}
		if balance.GreaterThanOrEqual(product.MinStock) {
			continue
		}
		out = append(out, ProductBalanceResponse{
			ProductID:    product.ID,
			ProductName:  product.Name,
			Balance:      balance,
			MinStock:     product.MinStock,
			BelowMinimum: true,
		})
	}
	return out, nil
}

// ListMovements pages through the ledger, optionally scoped to one product
func (s *InventoryService) ListMovements(ctx context.Context, tenantID uuid.UUID, productID *uuid.UUID, filter shared.Filter) (*shared.Paginated[MovementResponse], error) {
	var (
		movements []inventory.Movement
		total     int64
		err       error
	)
	if productID != nil {
		movements, total, err = s.movementRepo.ListByProduct(ctx, tenantID, *productID, filter)
	} else {
		movements, total, err = s.movementRepo.ListForTenant(ctx, tenantID, filter)
	}
	if err != nil {
		return nil, err
	}

	items := make([]MovementResponse, len(movements))
	for i := range movements {
		items[i] = movementToResponse(&movements[i])
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page, nil
}
