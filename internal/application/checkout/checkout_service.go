package checkout

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/opsuite/backend/internal/domain/catalog"
	"github.com/opsuite/backend/internal/domain/finance"
	"github.com/opsuite/backend/internal/domain/identity"
	"github.com/opsuite/backend/internal/domain/inventory"
	"github.com/opsuite/backend/internal/domain/sales"
	"github.com/opsuite/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// DefaultIdempotencyTTL is how long a finalize idempotency key is remembered
const DefaultIdempotencyTTL = 24 * time.Hour

// IdempotencyStore remembers finalize idempotency keys so a duplicate
// submission is rejected instead of double-selling.
type IdempotencyStore interface {
	// MarkProcessed atomically records a key; returns false if it was already recorded
	MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error)
	// Forget removes a key so the request may be retried
	Forget(ctx context.Context, key string) error
}

// CheckoutService is the sale/withdrawal orchestrator: the single entry
// point that validates availability, plans lot consumption, runs the
// expired-lot policy gate and commits movements, sale, override audit and
// the financial entry as one atomic operation.
type CheckoutService struct {
	tenantRepo     identity.TenantRepository
	productRepo    catalog.ProductRepository
	lotRepo        inventory.LotRepository
	movementRepo   inventory.MovementRepository
	scope          TransactionScope
	idempotency    IdempotencyStore
	idempotencyTTL time.Duration
}

// NewCheckoutService creates a CheckoutService. The read-side repositories
// serve Precheck; Finalize goes exclusively through the transaction scope.
func NewCheckoutService(
	tenantRepo identity.TenantRepository,
	productRepo catalog.ProductRepository,
	lotRepo inventory.LotRepository,
	movementRepo inventory.MovementRepository,
	scope TransactionScope,
) *CheckoutService {
	return &CheckoutService{
		tenantRepo:     tenantRepo,
		productRepo:    productRepo,
		lotRepo:        lotRepo,
		movementRepo:   movementRepo,
		scope:          scope,
		idempotencyTTL: DefaultIdempotencyTTL,
	}
}

// SetIdempotencyStore enables duplicate-submission protection for Finalize
func (s *CheckoutService) SetIdempotencyStore(store IdempotencyStore) {
	s.idempotency = store
}

// SetIdempotencyTTL overrides how long finalize idempotency keys are kept
func (s *CheckoutService) SetIdempotencyTTL(ttl time.Duration) {
	if ttl > 0 {
		s.idempotencyTTL = ttl
	}
}

// groupedItem is one requested product after merging duplicate lines
type groupedItem struct {
	productID uuid.UUID
	quantity  decimal.Decimal
}

// normalizeItems validates the request lines and merges duplicate products,
// returning items ordered by product ID so row locks are always acquired in
// the same sequence.
func normalizeItems(items []FinalizeItem) ([]groupedItem, error) {
	if len(items) == 0 {
		return nil, shared.NewDomainError(shared.CodeValidation, "no items in request")
	}
	grouped := make(map[uuid.UUID]decimal.Decimal, len(items))
	for _, item := range items {
		if item.ProductID == uuid.Nil {
			return nil, shared.NewDomainError(shared.CodeValidation, "item product_id is required")
		}
		if !item.Quantity.IsPositive() {
			return nil, shared.NewDomainError(shared.CodeValidation, "item quantity must be positive")
		}
		grouped[item.ProductID] = grouped[item.ProductID].Add(item.Quantity)
	}
	out := make([]groupedItem, 0, len(grouped))
	for id, qty := range grouped {
		out = append(out, groupedItem{productID: id, quantity: qty})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].productID.String() < out[j].productID.String()
	})
	return out, nil
}

// Finalize validates, plans, gates and commits a sale in one transaction.
// It either returns the new sale's ID and total, or a structured error with
// nothing persisted. A pre-check result is never trusted here: validation,
// planning and gating always run again at commit time.
func (s *CheckoutService) Finalize(ctx context.Context, tenantID, operatorID uuid.UUID, req FinalizeRequest) (*FinalizeResponse, error) {
	items, err := normalizeItems(req.Items)
	if err != nil {
		return nil, err
	}
	paymentMethod := sales.PaymentMethod(req.PaymentMethod)
	if !paymentMethod.IsValid() {
		return nil, shared.NewDomainError(shared.CodeValidation, "unknown payment method: "+req.PaymentMethod)
	}
	effectiveDate := time.Now()
	if req.EffectiveDate != nil {
		effectiveDate = *req.EffectiveDate
	}

	tenant, err := s.tenantRepo.FindByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	if req.IdempotencyKey != "" && s.idempotency != nil {
		key := tenantID.String() + ":" + req.IdempotencyKey
		fresh, markErr := s.idempotency.MarkProcessed(ctx, key, s.idempotencyTTL)
		if markErr != nil {
			return nil, markErr
		}
		if !fresh {
			return nil, shared.ErrDuplicateRequest
		}
		defer func() {
			// A rejected finalization wrote nothing, so the same key must
			// be allowed to retry.
			if err != nil {
				_ = s.idempotency.Forget(ctx, key)
			}
		}()
	}

	var response *FinalizeResponse
	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		sale, txErr := s.finalizeInTx(ctx, repos, tenant, operatorID, items, paymentMethod, effectiveDate, req)
		if txErr != nil {
			return txErr
		}
		response = &FinalizeResponse{SaleID: sale.ID, Total: sale.Total}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}

// plannedLine carries one line item's allocation through the commit phase
type plannedLine struct {
	product *catalog.Product
	item    groupedItem
	plan    *inventory.AllocationPlan // nil for non-stock-tracking products
}

func (s *CheckoutService) finalizeInTx(
	ctx context.Context,
	repos TransactionalRepositories,
	tenant *identity.Tenant,
	operatorID uuid.UUID,
	items []groupedItem,
	paymentMethod sales.PaymentMethod,
	effectiveDate time.Time,
	req FinalizeRequest,
) (*sales.Sale, error) {
	productIDs := make([]uuid.UUID, len(items))
	for i, item := range items {
		productIDs[i] = item.productID
	}

	// Lock the product rows first: this serializes concurrent
	// finalizations touching the same products before any balance is read.
	products, err := repos.Products().FindByIDsForUpdate(ctx, tenant.ID, productIDs)
	if err != nil {
		return nil, err
	}
	productMap := make(map[uuid.UUID]*catalog.Product, len(products))
	for i := range products {
		productMap[products[i].ID] = &products[i]
	}
	for _, id := range productIDs {
		product, ok := productMap[id]
		if !ok {
			return nil, shared.NewDomainError(shared.CodeValidation, "unknown product: "+id.String())
		}
		if !product.Sellable() {
			return nil, shared.NewDomainError(shared.CodeValidation, "product is inactive: "+product.Name)
		}
	}

	// Validate, plan and gate every line before writing anything.
	lines := make([]plannedLine, 0, len(items))
	decision := &inventory.GateDecision{}
	for _, item := range items {
		product := productMap[item.productID]
		line := plannedLine{product: product, item: item}

		if product.TracksStock {
			plan, lineDecision, planErr := s.planLine(ctx, repos, tenant, product, item.quantity, effectiveDate, req.Justification)
			if planErr != nil {
				return nil, planErr
			}
			line.plan = plan
			if lineDecision.RequiresOverride {
				decision.RequiresOverride = true
				decision.ExpiredLots = append(decision.ExpiredLots, lineDecision.ExpiredLots...)
			}
		}
		lines = append(lines, line)
	}

	// Commit phase: movements, sale, override, finance entry.
	sale, err := sales.NewSale(tenant.ID, operatorID, paymentMethod, effectiveDate, req.Note)
	if err != nil {
		return nil, err
	}

	movements := make([]*inventory.Movement, 0)
	for _, line := range lines {
		if err := sale.AddItem(line.product.ID, line.item.quantity, line.product.SalePrice); err != nil {
			return nil, err
		}
		if line.plan == nil {
			continue
		}
		for _, entry := range line.plan.Entries {
			lotID := entry.Lot.ID
			movement, err := inventory.NewMovement(
				tenant.ID, line.product.ID, &lotID,
				inventory.MovementOut, entry.Quantity, effectiveDate,
				fmt.Sprintf("POS sale %s", sale.ID),
			)
			if err != nil {
				return nil, err
			}
			movements = append(movements, movement)
		}
	}

	justification := ""
	if decision.RequiresOverride {
		justification = req.Justification
	}
	if err := sale.Complete(justification); err != nil {
		return nil, err
	}

	if err := repos.Movements().AppendAll(ctx, movements); err != nil {
		return nil, err
	}
	if err := repos.Sales().Save(ctx, sale); err != nil {
		return nil, err
	}

	if decision.RequiresOverride {
		first := decision.ExpiredLots[0]
		saleID := sale.ID
		record, err := sales.NewOverrideRecord(
			tenant.ID, operatorID, &saleID, &first.ProductID, &first.LotID,
			sales.CategoryImmediate, req.Justification,
		)
		if err != nil {
			return nil, err
		}
		if err := repos.Overrides().Append(ctx, record); err != nil {
			return nil, err
		}
	}

	if sale.Total.IsPositive() {
		saleID := sale.ID
		entry, err := finance.NewLedgerEntry(
			tenant.ID, finance.EntryRevenue, sale.Total,
			fmt.Sprintf("POS sale %s", sale.ID), "POS", effectiveDate, &saleID,
		)
		if err != nil {
			return nil, err
		}
		if err := repos.Ledger().Append(ctx, entry); err != nil {
			return nil, err
		}
	}

	return sale, nil
}

// planLine locks a product's lots, derives their balances from the ledger,
// validates total availability, builds the consumption plan and runs the
// expiration policy gate over it.
func (s *CheckoutService) planLine(
	ctx context.Context,
	repos TransactionalRepositories,
	tenant *identity.Tenant,
	product *catalog.Product,
	requested decimal.Decimal,
	effectiveDate time.Time,
	justification string,
) (*inventory.AllocationPlan, *inventory.GateDecision, error) {
	lots, err := repos.Lots().FindByProductForUpdate(ctx, tenant.ID, product.ID)
	if err != nil {
		return nil, nil, err
	}
	stocks, available, err := s.lotStocks(ctx, repos.Movements(), tenant.ID, lots)
	if err != nil {
		return nil, nil, err
	}
	if available.LessThan(requested) {
		return nil, nil, &inventory.InsufficientStockError{
			ProductID: product.ID,
			Requested: requested,
			Available: available,
		}
	}

	plan, err := inventory.PlanConsumption(product.ID, stocks, requested)
	if err != nil {
		return nil, nil, err
	}

	warnings := inventory.EvaluatePlan(plan, effectiveDate)
	decision, err := inventory.ApplyExpiredLotPolicy(tenant.ExpiredLotPolicy, warnings, justification)
	if err != nil {
		return nil, nil, err
	}
	return plan, decision, nil
}

// lotStocks derives the balance of every lot from the movement ledger
func (s *CheckoutService) lotStocks(
	ctx context.Context,
	movements inventory.MovementRepository,
	tenantID uuid.UUID,
	lots []inventory.Lot,
) ([]inventory.LotStock, decimal.Decimal, error) {
	lotIDs := make([]uuid.UUID, len(lots))
	for i := range lots {
		lotIDs[i] = lots[i].ID
	}
	balances, err := movements.SumByLots(ctx, tenantID, lotIDs)
	if err != nil {
		return nil, decimal.Zero, err
	}

	stocks := make([]inventory.LotStock, 0, len(lots))
	available := decimal.Zero
	for i := range lots {
		balance := balances[lots[i].ID]
		if balance.IsNegative() {
			return nil, decimal.Zero, shared.NewDomainError(shared.CodeDataIntegrity,
				"lot "+lots[i].ID.String()+" has a negative derived balance")
		}
		stocks = append(stocks, inventory.LotStock{Lot: lots[i], Balance: balance})
		available = available.Add(balance)
	}
	return stocks, available, nil
}

// Precheck runs the validate/plan/gate steps read-only so the caller can
// ask "would this be blocked or need justification?" before finalizing.
// Its result is advisory: inventory can change between check and commit.
func (s *CheckoutService) Precheck(ctx context.Context, tenantID uuid.UUID, req PrecheckRequest) (*PrecheckResponse, error) {
	if req.ProductID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeValidation, "product_id is required")
	}
	if !req.Quantity.IsPositive() {
		return nil, shared.NewDomainError(shared.CodeValidation, "quantity must be positive")
	}
	effectiveDate := time.Now()
	if req.EffectiveDate != nil {
		effectiveDate = *req.EffectiveDate
	}

	tenant, err := s.tenantRepo.FindByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, req.ProductID)
	if err != nil {
		return nil, err
	}
	if !product.TracksStock {
		return &PrecheckResponse{Warnings: []LotWarning{}}, nil
	}

	lots, err := s.lotRepo.FindByProduct(ctx, tenantID, product.ID)
	if err != nil {
		return nil, err
	}
	stocks, available, err := s.lotStocks(ctx, s.movementRepo, tenantID, lots)
	if err != nil {
		return nil, err
	}
	if available.LessThan(req.Quantity) {
		return nil, &inventory.InsufficientStockError{
			ProductID: product.ID,
			Requested: req.Quantity,
			Available: available,
		}
	}

	plan, err := inventory.PlanConsumption(product.ID, stocks, req.Quantity)
	if err != nil {
		return nil, err
	}
	warnings := inventory.EvaluatePlan(plan, effectiveDate)

	response := &PrecheckResponse{Warnings: warningsFromDomain(warnings)}
	if _, err := inventory.ApplyExpiredLotPolicy(tenant.ExpiredLotPolicy, warnings, ""); err != nil {
		switch err.(type) {
		case *inventory.ExpiredLotBlockedError:
			response.Blocked = true
		case *inventory.JustificationRequiredError:
			response.RequiresJustification = true
		default:
			return nil, err
		}
	}
	return response, nil
}
