package catalog

import (
	"context"

	"github.com/gestor/backend/internal/domain/catalog"
	"github.com/gestor/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductService handles product-related business operations
type ProductService struct {
	productRepo catalog.ProductRepository
}

// NewProductService creates a new product service
func NewProductService(productRepo catalog.ProductRepository) *ProductService {
	return &ProductService{
		productRepo: productRepo,
	}
}

// CheckDuplicateSKU reports whether another product in the tenant carries
// the same SKU. Runs before any write transaction; an empty SKU is allowed
// on any number of products.
func (s *ProductService) CheckDuplicateSKU(ctx context.Context, tenantID uuid.UUID, sku string, excludeID uuid.UUID) error {
	if sku == "" {
		return nil
	}
	exists, err := s.productRepo.SKUExists(ctx, tenantID, sku, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return shared.NewDomainError("DUPLICATE_DOCUMENT", "A product with this SKU already exists")
	}
	return nil
}

// Create creates a new product after rule validation and SKU duplicate
// checking.
func (s *ProductService) Create(ctx context.Context, tenantID uuid.UUID, req *CreateProductRequest) (*ProductResponse, error) {
	product, err := catalog.NewProduct(tenantID, catalog.ProductKind(req.Kind), req.Name)
	if err != nil {
		return nil, err
	}

	product.SetIdentifiers(req.SKU, req.Barcode, req.Unit)
	cost := decimal.Zero
	sale := decimal.Zero
	if req.CostPrice != nil {
		cost = *req.CostPrice
	}
	if req.SalePrice != nil {
		sale = *req.SalePrice
	}
	if err := product.SetPrices(cost, sale); err != nil {
		return nil, err
	}
	product.Notes = req.Notes

	product.ReplaceImages(toDomainImages(req.Images))
	if err := product.ReplaceConversions(toDomainConversions(req.Conversions)); err != nil {
		return nil, err
	}
	if err := product.ReplaceComponents(toDomainComponents(req.Components)); err != nil {
		return nil, err
	}

	if failures := validateProduct(product); len(failures) > 0 {
		return nil, shared.NewValidationError(failures)
	}

	if err := s.CheckDuplicateSKU(ctx, tenantID, product.SKU, uuid.Nil); err != nil {
		return nil, err
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	return ToProductResponse(product), nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// GetByBarcode retrieves a product by its main barcode or any of its
// unit-conversion barcodes.
func (s *ProductService) GetByBarcode(ctx context.Context, tenantID uuid.UUID, barcode string) (*ProductResponse, error) {
	if barcode == "" {
		return nil, shared.ErrInvalidInput
	}
	product, err := s.productRepo.FindByBarcode(ctx, tenantID, barcode)
	if err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// List retrieves products with filtering and pagination
func (s *ProductService) List(ctx context.Context, tenantID uuid.UUID, filter *ProductListFilter) (*shared.Paginated[ProductResponse], error) {
	lf := filter.toShared()

	products, total, err := s.productRepo.List(ctx, tenantID, lf)
	if err != nil {
		return nil, err
	}

	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = *ToProductResponse(&products[i])
	}

	page := shared.NewPaginated(responses, total, lf.Page, lf.PageSize)
	return &page, nil
}

// Update applies a partial update to the root fields and wholesale-replaces
// any child collection present in the request.
func (s *ProductService) Update(ctx context.Context, tenantID, id uuid.UUID, req *UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		product.Name = *req.Name
		product.Touch()
	}
	if req.SKU != nil || req.Barcode != nil || req.Unit != nil {
		sku := product.SKU
		barcode := product.Barcode
		unit := product.Unit
		if req.SKU != nil {
			sku = *req.SKU
		}
		if req.Barcode != nil {
			barcode = *req.Barcode
		}
		if req.Unit != nil {
			unit = *req.Unit
		}
		product.SetIdentifiers(sku, barcode, unit)
	}
	if req.CostPrice != nil || req.SalePrice != nil {
		cost := product.CostPrice
		sale := product.SalePrice
		if req.CostPrice != nil {
			cost = *req.CostPrice
		}
		if req.SalePrice != nil {
			sale = *req.SalePrice
		}
		if err := product.SetPrices(cost, sale); err != nil {
			return nil, err
		}
	}
	if req.Notes != nil {
		product.Notes = *req.Notes
		product.Touch()
	}

	if req.Images != nil {
		product.ReplaceImages(toDomainImages(*req.Images))
	}
	if req.Conversions != nil {
		if err := product.ReplaceConversions(toDomainConversions(*req.Conversions)); err != nil {
			return nil, err
		}
	}
	if req.Components != nil {
		if err := product.ReplaceComponents(toDomainComponents(*req.Components)); err != nil {
			return nil, err
		}
	}

	if failures := validateProduct(product); len(failures) > 0 {
		return nil, shared.NewValidationError(failures)
	}

	if err := s.CheckDuplicateSKU(ctx, tenantID, product.SKU, product.ID); err != nil {
		return nil, err
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	return ToProductResponse(product), nil
}

// SetStatus activates or deactivates a product
func (s *ProductService) SetStatus(ctx context.Context, tenantID, id uuid.UUID, status string) error {
	switch catalog.ProductStatus(status) {
	case catalog.ProductStatusActive, catalog.ProductStatusInactive:
	default:
		return shared.ErrInvalidInput
	}
	return s.productRepo.SetStatus(ctx, tenantID, id, catalog.ProductStatus(status))
}

// Delete removes a product. Soft deletion flips the status to inactive;
// hard deletion removes images, conversions and composition with the root.
func (s *ProductService) Delete(ctx context.Context, tenantID, id uuid.UUID, hard bool) error {
	return s.productRepo.Delete(ctx, tenantID, id, hard)
}

// validateProduct applies the per-kind business rules. Domain constructors
// already reject malformed children; this covers cross-field rules.
func validateProduct(p *catalog.Product) []string {
	var failures []string

	if p.IsKit() && len(p.Components) == 0 {
		failures = append(failures, "kit products require at least one component")
	}
	if p.Kind == catalog.ProductKindService && len(p.Conversions) > 0 {
		failures = append(failures, "service products cannot have unit conversions")
	}

	return failures
}
