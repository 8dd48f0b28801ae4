package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/opsuite/backend/internal/domain/catalog"
	"github.com/opsuite/backend/internal/domain/shared"
)

// ProductService handles product catalog operations
type ProductService struct {
	productRepo catalog.ProductRepository
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// Create creates a new product
func (s *ProductService) Create(ctx context.Context, tenantID uuid.UUID, req CreateProductRequest) (*ProductResponse, error) {
	product, err := catalog.NewProduct(tenantID, req.Name, catalog.ProductKind(req.Kind), req.SalePrice, req.TracksStock)
	if err != nil {
		return nil, err
	}
	if !req.MinStock.IsZero() {
		if err := product.SetMinStock(req.MinStock); err != nil {
			return nil, err
		}
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Get returns a product by ID
func (s *ProductService) Get(ctx context.Context, tenantID, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List returns a page of the tenant's products
func (s *ProductService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (*shared.Paginated[ProductResponse], error) {
	products, total, err := s.productRepo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}
	items := make([]ProductResponse, len(products))
	for i := range products {
		items[i] = *toProductResponse(&products[i])
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page, nil
}

// Update modifies a product's name, price, threshold and active flag
func (s *ProductService) Update(ctx context.Context, tenantID, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := product.Update(req.Name, req.SalePrice); err != nil {
		return nil, err
	}
	if err := product.SetMinStock(req.MinStock); err != nil {
		return nil, err
	}
	if req.Active != nil {
		if *req.Active {
			product.Activate()
		} else {
			product.Deactivate()
		}
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Deactivate hides a product from sale. History is kept; movements that
// reference the product stay in the ledger.
func (s *ProductService) Deactivate(ctx context.Context, tenantID, id uuid.UUID) error {
	product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return err
	}
	product.Deactivate()
	return s.productRepo.Save(ctx, product)
}
