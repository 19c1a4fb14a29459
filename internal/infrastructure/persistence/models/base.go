package models

import (
	"time"

	"github.com/gestor/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// BaseModel provides common persistence fields for all models.
// It maps to the domain's BaseEntity.
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `gorm:"not null;index"`
	UpdatedAt time.Time `gorm:"not null"`
}

// ToDomain converts BaseModel to domain BaseEntity
func (m *BaseModel) ToDomain() shared.BaseEntity {
	return shared.BaseEntity{
		ID:        m.ID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromDomainBaseEntity populates BaseModel from domain BaseEntity
func (m *BaseModel) FromDomainBaseEntity(e shared.BaseEntity) {
	m.ID = e.ID
	m.CreatedAt = e.CreatedAt
	m.UpdatedAt = e.UpdatedAt
}

// TenantAggregateModel provides common persistence fields for tenant-scoped
// aggregate roots. Every root table carries the owning tenant column; no row
// is ever read or written without it in the predicate.
type TenantAggregateModel struct {
	BaseModel
	TenantID uuid.UUID `gorm:"type:uuid;not null;index"`
}

// FromDomainTenantAggregateRoot populates TenantAggregateModel from domain TenantAggregateRoot
func (m *TenantAggregateModel) FromDomainTenantAggregateRoot(t shared.TenantAggregateRoot) {
	m.FromDomainBaseEntity(t.BaseEntity)
	m.TenantID = t.TenantID
}

// PopulateTenantAggregateRoot populates a domain TenantAggregateRoot from persistence model
func (m *TenantAggregateModel) PopulateTenantAggregateRoot(t *shared.TenantAggregateRoot) {
	t.BaseEntity.ID = m.ID
	t.BaseEntity.CreatedAt = m.CreatedAt
	t.BaseEntity.UpdatedAt = m.UpdatedAt
	t.TenantID = m.TenantID
}

// TenantChildModel provides common fields for child-collection rows. Child
// rows duplicate the tenant column so cascades and ownership checks never
// need a join back to the root.
type TenantChildModel struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key"`
	TenantID uuid.UUID `gorm:"type:uuid;not null;index"`
}
