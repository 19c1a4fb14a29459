package catalog

import (
	"context"

	"github.com/gestor/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ProductRepository owns storage access for the product aggregate and its
// image, conversion and composition collections.
type ProductRepository interface {
	Create(ctx context.Context, product *Product) error
	Update(ctx context.Context, product *Product) error
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Product, error)

	// FindByBarcode matches the main barcode or any unit-conversion
	// barcode within the tenant.
	FindByBarcode(ctx context.Context, tenantID uuid.UUID, barcode string) (*Product, error)

	// SKUExists reports a duplicate SKU within the tenant, optionally
	// ignoring one record during updates.
	SKUExists(ctx context.Context, tenantID uuid.UUID, sku string, excludeID uuid.UUID) (bool, error)

	List(ctx context.Context, tenantID uuid.UUID, filter shared.ListFilter) ([]Product, int64, error)
	SetStatus(ctx context.Context, tenantID, id uuid.UUID, status ProductStatus) error
	Delete(ctx context.Context, tenantID, id uuid.UUID, hard bool) error
}
