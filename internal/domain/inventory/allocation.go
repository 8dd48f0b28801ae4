package inventory

import (
	"sort"

	"github.com/google/uuid"
	"github.com/opsuite/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// LotStock pairs a lot with its derived balance at planning time
type LotStock struct {
	Lot     Lot
	Balance decimal.Decimal
}

// AllocationEntry is one (lot, quantity) pair of an allocation plan
type AllocationEntry struct {
	Lot      Lot
	Quantity decimal.Decimal
}

// AllocationPlan is an ordered consumption plan for one product. Entries
// sum exactly to the requested quantity. Building a plan has no side
// effects; movements are only written later, under the checkout
// transaction.
type AllocationPlan struct {
	ProductID uuid.UUID
	Requested decimal.Decimal
	Entries   []AllocationEntry
}

// TotalPlanned returns the sum of quantities across all entries
func (p *AllocationPlan) TotalPlanned() decimal.Decimal {
	total := decimal.Zero
	for i := range p.Entries {
		total = total.Add(p.Entries[i].Quantity)
	}
	return total
}

// LotIDs returns the planned lot IDs in consumption order
func (p *AllocationPlan) LotIDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(p.Entries))
	for i := range p.Entries {
		ids[i] = p.Entries[i].Lot.ID
	}
	return ids
}

// SortLotsForConsumption orders lot stocks into the deterministic
// consumption order: expiration date ascending with never-expiring lots
// last, then lot creation time ascending, then lot code ascending. The
// sort is stable so equal lots keep their input order.
func SortLotsForConsumption(stocks []LotStock) {
	sort.SliceStable(stocks, func(i, j int) bool {
		a, b := &stocks[i].Lot, &stocks[j].Lot

		switch {
		case a.ExpiresAt != nil && b.ExpiresAt != nil:
			if !a.ExpiresAt.Equal(*b.ExpiresAt) {
				return a.ExpiresAt.Before(*b.ExpiresAt)
			}
		case a.ExpiresAt != nil:
			return true // b never expires, a goes first
		case b.ExpiresAt != nil:
			return false // a never expires, b goes first
		}

		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.Code < b.Code
	})
}

// PlanConsumption builds an allocation plan for the requested quantity by
// walking lots in consumption order and taking min(balance, remaining)
// from each. It fails with InsufficientStockError when lots are exhausted
// before the request is satisfied, in which case no plan is produced.
func PlanConsumption(productID uuid.UUID, stocks []LotStock, requested decimal.Decimal) (*AllocationPlan, error) {
	if !requested.IsPositive() {
		return nil, shared.NewDomainError(shared.CodeValidation, "requested quantity must be positive")
	}

	ordered := make([]LotStock, len(stocks))
	copy(ordered, stocks)
	SortLotsForConsumption(ordered)

	plan := &AllocationPlan{
		ProductID: productID,
		Requested: requested,
		Entries:   make([]AllocationEntry, 0, len(ordered)),
	}

	remaining := requested
	for i := range ordered {
		if !remaining.IsPositive() {
			break
		}
		balance := ordered[i].Balance
		if !balance.IsPositive() {
			continue
		}
		take := decimal.Min(balance, remaining)
		plan.Entries = append(plan.Entries, AllocationEntry{
			Lot:      ordered[i].Lot,
			Quantity: take,
		})
		remaining = remaining.Sub(take)
	}

	if remaining.IsPositive() {
		return nil, &InsufficientStockError{
			ProductID: productID,
			Requested: requested,
			Available: requested.Sub(remaining),
		}
	}
	return plan, nil
}
