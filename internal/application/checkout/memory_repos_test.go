package checkout

import (
	"context"
	"sync"
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

// memDB is an in-memory store backing all fake repositories. Execute
// serializes transactions with a mutex and rolls the whole store back when
// the transactional function fails, mirroring the database behavior the
// orchestrator relies on.
type memDB struct {
	mu        sync.Mutex
	tenants   map[uuid.UUID]identity.Tenant
	products  map[uuid.UUID]catalog.Product
	lots      []inventory.Lot
	movements []inventory.Movement
	sales     []sales.Sale
	overrides []sales.OverrideRecord
	entries   []finance.LedgerEntry
}

func newMemDB() *memDB {
	return &memDB{
		tenants:  make(map[uuid.UUID]identity.Tenant),
		products: make(map[uuid.UUID]catalog.Product),
	}
}

func (db *memDB) snapshot() *memDB {
	snap := newMemDB()
	for k, v := range db.tenants {
		snap.tenants[k] = v
	}
	for k, v := range db.products {
		snap.products[k] = v
	}
	snap.lots = append([]inventory.Lot(nil), db.lots...)
	snap.movements = append([]inventory.Movement(nil), db.movements...)
	snap.sales = append([]sales.Sale(nil), db.sales...)
	snap.overrides = append([]sales.OverrideRecord(nil), db.overrides...)
	snap.entries = append([]finance.LedgerEntry(nil), db.entries...)
	return snap
}

func (db *memDB) restore(snap *memDB) {
	db.tenants = snap.tenants
	db.products = snap.products
	db.lots = snap.lots
	db.movements = snap.movements
	db.sales = snap.sales
	db.overrides = snap.overrides
	db.entries = snap.entries
}

// memScope implements TransactionScope over memDB
type memScope struct{ db *memDB }

func (s *memScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	snap := s.db.snapshot()
	if err := fn(&memRepos{db: s.db}); err != nil {
		s.db.restore(snap)
		return err
	}
	return nil
}

type memRepos struct{ db *memDB }

func (r *memRepos) Products() catalog.ProductRepository        { return &memProductRepo{db: r.db} }
func (r *memRepos) Lots() inventory.LotRepository              { return &memLotRepo{db: r.db} }
func (r *memRepos) Movements() inventory.MovementRepository    { return &memMovementRepo{db: r.db} }
func (r *memRepos) Sales() sales.SaleRepository                { return &memSaleRepo{db: r.db} }
func (r *memRepos) Overrides() sales.OverrideRecordRepository  { return &memOverrideRepo{db: r.db} }
func (r *memRepos) Ledger() finance.LedgerEntryRepository      { return &memLedgerRepo{db: r.db} }

type memTenantRepo struct{ db *memDB }

func (r *memTenantRepo) FindByID(_ context.Context, id uuid.UUID) (*identity.Tenant, error) {
	tenant, ok := r.db.tenants[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &tenant, nil
}

func (r *memTenantRepo) FindByCode(_ context.Context, code string) (*identity.Tenant, error) {
	for _, tenant := range r.db.tenants {
		if tenant.Code == code {
			t := tenant
			return &t, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memTenantRepo) Save(_ context.Context, tenant *identity.Tenant) error {
	r.db.tenants[tenant.ID] = *tenant
	return nil
}

type memProductRepo struct{ db *memDB }

func (r *memProductRepo) FindByIDForTenant(_ context.Context, tenantID, id uuid.UUID) (*catalog.Product, error) {
	product, ok := r.db.products[id]
	if !ok || product.TenantID != tenantID {
		return nil, shared.ErrNotFound
	}
	return &product, nil
}

func (r *memProductRepo) FindByIDsForTenant(_ context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]catalog.Product, error) {
	out := make([]catalog.Product, 0, len(ids))
	for _, id := range ids {
		if product, ok := r.db.products[id]; ok && product.TenantID == tenantID {
			out = append(out, product)
		}
	}
	return out, nil
}

func (r *memProductRepo) FindByIDsForUpdate(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]catalog.Product, error) {
	return r.FindByIDsForTenant(ctx, tenantID, ids)
}

func (r *memProductRepo) FindAllForTenant(_ context.Context, tenantID uuid.UUID, _ shared.Filter) ([]catalog.Product, int64, error) {
	out := make([]catalog.Product, 0)
	for _, product := range r.db.products {
		if product.TenantID == tenantID {
			out = append(out, product)
		}
	}
	return out, int64(len(out)), nil
}

func (r *memProductRepo) Save(_ context.Context, product *catalog.Product) error {
	r.db.products[product.ID] = *product
	return nil
}

func (r *memProductRepo) DeleteForTenant(_ context.Context, tenantID, id uuid.UUID) error {
	delete(r.db.products, id)
	return nil
}

type memLotRepo struct{ db *memDB }

func (r *memLotRepo) FindByIDForTenant(_ context.Context, tenantID, id uuid.UUID) (*inventory.Lot, error) {
	for i := range r.db.lots {
		if r.db.lots[i].ID == id && r.db.lots[i].TenantID == tenantID {
			lot := r.db.lots[i]
			return &lot, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memLotRepo) FindByProduct(_ context.Context, tenantID, productID uuid.UUID) ([]inventory.Lot, error) {
	out := make([]inventory.Lot, 0)
	for i := range r.db.lots {
		if r.db.lots[i].TenantID == tenantID && r.db.lots[i].ProductID == productID {
			out = append(out, r.db.lots[i])
		}
	}
	return out, nil
}

func (r *memLotRepo) FindByProductForUpdate(ctx context.Context, tenantID, productID uuid.UUID) ([]inventory.Lot, error) {
	return r.FindByProduct(ctx, tenantID, productID)
}

func (r *memLotRepo) FindExpiringBefore(_ context.Context, tenantID uuid.UUID, limit time.Time) ([]inventory.Lot, error) {
	out := make([]inventory.Lot, 0)
	for i := range r.db.lots {
		lot := r.db.lots[i]
		if lot.TenantID == tenantID && lot.ExpiresAt != nil && !lot.ExpiresAt.After(limit) {
			out = append(out, lot)
		}
	}
	return out, nil
}

func (r *memLotRepo) Save(_ context.Context, lot *inventory.Lot) error {
	r.db.lots = append(r.db.lots, *lot)
	return nil
}

type memMovementRepo struct{ db *memDB }

func (r *memMovementRepo) Append(_ context.Context, movement *inventory.Movement) error {
	r.db.movements = append(r.db.movements, *movement)
	return nil
}

func (r *memMovementRepo) AppendAll(ctx context.Context, movements []*inventory.Movement) error {
	for _, movement := range movements {
		if err := r.Append(ctx, movement); err != nil {
			return err
		}
	}
	return nil
}

func (r *memMovementRepo) SumByLot(_ context.Context, tenantID, lotID uuid.UUID) (decimal.Decimal, error) {
	sum := decimal.Zero
	for i := range r.db.movements {
		m := &r.db.movements[i]
		if m.TenantID == tenantID && m.LotID != nil && *m.LotID == lotID {
			sum = sum.Add(m.Signed())
		}
	}
	return sum, nil
}

func (r *memMovementRepo) SumByLots(ctx context.Context, tenantID uuid.UUID, lotIDs []uuid.UUID) (map[uuid.UUID]decimal.Decimal, error) {
	out := make(map[uuid.UUID]decimal.Decimal, len(lotIDs))
	for _, lotID := range lotIDs {
		sum, err := r.SumByLot(ctx, tenantID, lotID)
		if err != nil {
			return nil, err
		}
		out[lotID] = sum
	}
	return out, nil
}

func (r *memMovementRepo) SumByProduct(_ context.Context, tenantID, productID uuid.UUID) (decimal.Decimal, error) {
	sum := decimal.Zero
	for i := range r.db.movements {
		m := &r.db.movements[i]
		if m.TenantID == tenantID && m.ProductID == productID {
			sum = sum.Add(m.Signed())
		}
	}
	return sum, nil
}

func (r *memMovementRepo) ListForTenant(_ context.Context, tenantID uuid.UUID, _ shared.Filter) ([]inventory.Movement, int64, error) {
	out := make([]inventory.Movement, 0)
	for i := range r.db.movements {
		if r.db.movements[i].TenantID == tenantID {
			out = append(out, r.db.movements[i])
		}
	}
	return out, int64(len(out)), nil
}

func (r *memMovementRepo) ListByProduct(_ context.Context, tenantID, productID uuid.UUID, _ shared.Filter) ([]inventory.Movement, int64, error) {
	out := make([]inventory.Movement, 0)
	for i := range r.db.movements {
		if r.db.movements[i].TenantID == tenantID && r.db.movements[i].ProductID == productID {
			out = append(out, r.db.movements[i])
		}
	}
	return out, int64(len(out)), nil
}

type memSaleRepo struct{ db *memDB }

func (r *memSaleRepo) Save(_ context.Context, sale *sales.Sale) error {
	r.db.sales = append(r.db.sales, *sale)
	return nil
}

func (r *memSaleRepo) FindByIDForTenant(_ context.Context, tenantID, id uuid.UUID) (*sales.Sale, error) {
	for i := range r.db.sales {
		if r.db.sales[i].ID == id && r.db.sales[i].TenantID == tenantID {
			sale := r.db.sales[i]
			return &sale, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memSaleRepo) ListForTenant(_ context.Context, tenantID uuid.UUID, _ shared.Filter) ([]sales.Sale, int64, error) {
	out := make([]sales.Sale, 0)
	for i := range r.db.sales {
		if r.db.sales[i].TenantID == tenantID {
			out = append(out, r.db.sales[i])
		}
	}
	return out, int64(len(out)), nil
}

type memOverrideRepo struct{ db *memDB }

func (r *memOverrideRepo) Append(_ context.Context, record *sales.OverrideRecord) error {
	r.db.overrides = append(r.db.overrides, *record)
	return nil
}

func (r *memOverrideRepo) ListForTenant(_ context.Context, tenantID uuid.UUID, _ shared.Filter) ([]sales.OverrideRecord, int64, error) {
	out := make([]sales.OverrideRecord, 0)
	for i := range r.db.overrides {
		if r.db.overrides[i].TenantID == tenantID {
			out = append(out, r.db.overrides[i])
		}
	}
	return out, int64(len(out)), nil
}

func (r *memOverrideRepo) CountForTenant(_ context.Context, tenantID uuid.UUID) (int64, error) {
	count := int64(0)
	for i := range r.db.overrides {
		if r.db.overrides[i].TenantID == tenantID {
			count++
		}
	}
	return count, nil
}

type memLedgerRepo struct{ db *memDB }

func (r *memLedgerRepo) Append(_ context.Context, entry *finance.LedgerEntry) error {
	r.db.entries = append(r.db.entries, *entry)
	return nil
}

func (r *memLedgerRepo) FindByIDForTenant(_ context.Context, tenantID, id uuid.UUID) (*finance.LedgerEntry, error) {
	for i := range r.db.entries {
		if r.db.entries[i].ID == id && r.db.entries[i].TenantID == tenantID {
			entry := r.db.entries[i]
			return &entry, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memLedgerRepo) FindBySale(_ context.Context, tenantID, saleID uuid.UUID) (*finance.LedgerEntry, error) {
	for i := range r.db.entries {
		entry := r.db.entries[i]
		if entry.TenantID == tenantID && entry.SaleID != nil && *entry.SaleID == saleID {
			return &entry, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memLedgerRepo) ListForTenant(_ context.Context, tenantID uuid.UUID, _ shared.Filter) ([]finance.LedgerEntry, int64, error) {
	out := make([]finance.LedgerEntry, 0)
	for i := range r.db.entries {
		if r.db.entries[i].TenantID == tenantID {
			out = append(out, r.db.entries[i])
		}
	}
	return out, int64(len(out)), nil
}

func (r *memLedgerRepo) SumByTypeBetween(_ context.Context, tenantID uuid.UUID, entryType finance.EntryType, from, to time.Time) (decimal.Decimal, error) {
	total := decimal.Zero
	for i := range r.db.entries {
		entry := r.db.entries[i]
		if entry.TenantID != tenantID || entry.Type != entryType {
			continue
		}
		if entry.EntryDate.Before(from) || entry.EntryDate.After(to) {
			continue
		}
		total = total.Add(entry.Amount)
	}
	return total, nil
}
