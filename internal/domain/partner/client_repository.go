package partner

import (
	"context"

	"github.com/gestor/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ClientRepository owns storage access for the client aggregate. Every
// method that reads or mutates tenant-owned rows takes the tenant identity
// explicitly; implementations fail with shared.ErrMissingTenant when it is
// absent rather than running unscoped.
type ClientRepository interface {
	// Create inserts the root row and all child collections atomically
	// and assigns generated identities back onto the aggregate.
	Create(ctx context.Context, client *Client) error

	// Update verifies ownership, updates the root scoped by id AND
	// tenant, and wholesale-replaces the child collections with the
	// submitted sets. An empty submitted collection removes all stored
	// children of that type.
	Update(ctx context.Context, client *Client) error

	// FindByID fetches the full aggregate. Returns shared.ErrNotFound
	// when absent or owned by another tenant.
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Client, error)

	// FindByDocument matches the normalized document against every
	// document column of the family.
	FindByDocument(ctx context.Context, tenantID uuid.UUID, document string) (*Client, error)

	// DocumentExists reports a duplicate document within the tenant,
	// optionally ignoring one record (its own id during updates).
	DocumentExists(ctx context.Context, tenantID uuid.UUID, document string, excludeID uuid.UUID) (bool, error)

	// List runs the filtered, paginated data query plus the matching
	// count query and returns rows with the total.
	List(ctx context.Context, tenantID uuid.UUID, filter shared.ListFilter) ([]Client, int64, error)

	// SetStatus flips the status field only, scoped by id AND tenant.
	SetStatus(ctx context.Context, tenantID, id uuid.UUID, status ClientStatus) error

	// Delete removes the aggregate. Soft deletes flip status to
	// inactive; hard deletes remove children then the root in one
	// transaction.
	Delete(ctx context.Context, tenantID, id uuid.UUID, hard bool) error
}
