package persistence

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/opsuite/backend/internal/domain/catalog"
	"github.com/opsuite/backend/internal/domain/shared"
	"github.com/opsuite/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProductRepository implements ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByIDForTenant finds a product by ID within a tenant
func (r *GormProductRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*catalog.Product, error) {
	var model models.ProductModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindByIDsForTenant finds multiple products by their IDs within a tenant
func (r *GormProductRepository) FindByIDsForTenant(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]catalog.Product, error) {
	if len(ids) == 0 {
		return []catalog.Product{}, nil
	}

	var productModels []models.ProductModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id IN ?", tenantID, ids).
		Find(&productModels).Error; err != nil {
		return nil, translateError(err)
	}
	return toDomainProducts(productModels), nil
}

// FindByIDsForUpdate finds products by ID and locks their rows for the
// duration of the surrounding transaction. Rows are locked in ascending ID
// order so concurrent finalizations acquire locks in the same sequence.
func (r *GormProductRepository) FindByIDsForUpdate(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]catalog.Product, error) {
	if len(ids) == 0 {
		return []catalog.Product{}, nil
	}

	var productModels []models.ProductModel
	query := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id IN ?", tenantID, ids).
		Order("id ASC")
	// SQLite has no row locks; the single writer serializes instead.
	if r.db.Dialector.Name() == "postgres" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	if err := query.Find(&productModels).Error; err != nil {
		return nil, translateError(err)
	}
	return toDomainProducts(productModels), nil
}

// FindAllForTenant lists products for a tenant
func (r *GormProductRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]catalog.Product, int64, error) {
	conditions := func() *gorm.DB {
		query := r.db.WithContext(ctx).Model(&models.ProductModel{}).
			Where("tenant_id = ?", tenantID)
		if filter.Search != "" {
			query = query.Where("LOWER(name) LIKE LOWER(?)", "%"+filter.Search+"%")
		}
		return query
	}

	var total int64
	if err := conditions().Count(&total).Error; err != nil {
		return nil, 0, translateError(err)
	}

	var productModels []models.ProductModel
	if err := applyFilter(conditions(), filter, ProductSortFields, "name").
		Find(&productModels).Error; err != nil {
		return nil, 0, translateError(err)
	}
	return toDomainProducts(productModels), total, nil
}

// Save creates or updates a product
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	var model models.ProductModel
	model.FromDomain(product)
	if err := r.db.WithContext(ctx).Save(&model).Error; err != nil {
		return translateError(err)
	}
	return nil
}

// DeleteForTenant removes a product that has no movement history
func (r *GormProductRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Delete(&models.ProductModel{})
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func toDomainProducts(productModels []models.ProductModel) []catalog.Product {
	products := make([]catalog.Product, len(productModels))
	for i := range productModels {
		products[i] = *productModels[i].ToDomain()
	}
	return products
}

// applyFilter applies whitelist-validated sorting and pagination to a query
func applyFilter(query *gorm.DB, filter shared.Filter, allowedFields map[string]bool, defaultField string) *gorm.DB {
	sortField := ValidateSortField(filter.OrderBy, allowedFields, defaultField)
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", sortField, sortOrder))

	if filter.PageSize > 0 {
		query = query.Limit(filter.PageSize)
		offset := (filter.Page - 1) * filter.PageSize
		if offset > 0 {
			query = query.Offset(offset)
		}
	}
	return query
}
