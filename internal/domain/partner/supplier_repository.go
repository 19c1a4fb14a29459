package partner

import (
	"context"

	"github.com/gestor/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// SupplierRepository owns storage access for the supplier aggregate. The
// contract mirrors ClientRepository; supplied items are the one append-only
// collection and are excluded from the replace step on Update.
type SupplierRepository interface {
	Create(ctx context.Context, supplier *Supplier) error
	Update(ctx context.Context, supplier *Supplier) error
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Supplier, error)
	FindByDocument(ctx context.Context, tenantID uuid.UUID, document string) (*Supplier, error)
	DocumentExists(ctx context.Context, tenantID uuid.UUID, document string, excludeID uuid.UUID) (bool, error)
	List(ctx context.Context, tenantID uuid.UUID, filter shared.ListFilter) ([]Supplier, int64, error)
	SetStatus(ctx context.Context, tenantID, id uuid.UUID, status SupplierStatus) error
	Delete(ctx context.Context, tenantID, id uuid.UUID, hard bool) error

	// AppendItem inserts a single supplied line item for an existing
	// supplier. Ownership is verified before the insert.
	AppendItem(ctx context.Context, tenantID, supplierID uuid.UUID, item *SupplierItem) error
}
