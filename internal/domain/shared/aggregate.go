package shared

import (
	"github.com/google/uuid"
)

// TenantAggregateRoot is the base for every aggregate root owned by a
// tenant. The owning tenant reference is immutable after creation; updates
// always re-scope by it rather than trusting the submitted payload.
type TenantAggregateRoot struct {
	BaseEntity
	TenantID uuid.UUID
}

// NewTenantAggregateRoot creates a new tenant-scoped aggregate root
func NewTenantAggregateRoot(tenantID uuid.UUID) TenantAggregateRoot {
	return TenantAggregateRoot{
		BaseEntity: NewBaseEntity(),
		TenantID:   tenantID,
	}
}

// GetTenantID returns the owning tenant reference.
func (t *TenantAggregateRoot) GetTenantID() uuid.UUID {
	return t.TenantID
}
