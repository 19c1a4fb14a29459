package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/gestor/backend/internal/domain/partner"
	"github.com/gestor/backend/internal/domain/shared"
	"github.com/gestor/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// clientRootColumns are the root columns rewritten on update. Listed
// explicitly so cleared fields (empty notes, removed phone) overwrite the
// stored value instead of being skipped as zero values.
var clientRootColumns = []string{
	"kind", "status", "name", "company_name", "responsible",
	"cpf", "cnpj", "foreign_doc", "email", "phone", "notes", "updated_at",
}

// GormClientRepository implements partner.ClientRepository using GORM
type GormClientRepository struct {
	db *gorm.DB
}

// NewGormClientRepository creates a new GormClientRepository
func NewGormClientRepository(db *gorm.DB) *GormClientRepository {
	return &GormClientRepository{db: db}
}

// Create inserts the root row and all child collections in one transaction.
func (r *GormClientRepository) Create(ctx context.Context, client *partner.Client) error {
	if client.TenantID == uuid.Nil {
		return shared.ErrMissingTenant
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(models.ClientModelFromDomain(client)).Error; err != nil {
			return err
		}
		return insertPartnerChildren(tx, client.TenantID, client.ID, models.OwnerKindClient,
			client.Addresses, client.Contacts, client.Attachments)
	})
	if err != nil {
		return shared.WrapPersistence(err)
	}
	return nil
}

// Update rewrites the root scoped by id AND tenant and wholesale-replaces
// the child collections with the submitted sets. An empty submitted
// collection removes every stored child of that type. Everything happens in
// one transaction so a failed replace never leaves a half-updated aggregate.
func (r *GormClientRepository) Update(ctx context.Context, client *partner.Client) error {
	if client.TenantID == uuid.Nil {
		return shared.ErrMissingTenant
	}

	model := models.ClientModelFromDomain(client)
	model.UpdatedAt = time.Now()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.ClientModel{}).
			Where("tenant_id = ? AND id = ?", client.TenantID, client.ID).
			Select(clientRootColumns).
			Updates(model)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}

		if err := deletePartnerChildren(tx, client.TenantID, client.ID, models.OwnerKindClient); err != nil {
			return err
		}
		return insertPartnerChildren(tx, client.TenantID, client.ID, models.OwnerKindClient,
			client.Addresses, client.Contacts, client.Attachments)
	})
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.ErrNotFound
		}
		return shared.WrapPersistence(err)
	}
	return nil
}

// FindByID fetches the full aggregate, loading the three child collections
// concurrently once the root is confirmed to belong to the tenant.
func (r *GormClientRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*partner.Client, error) {
	if tenantID == uuid.Nil {
		return nil, shared.ErrMissingTenant
	}

	var model models.ClientModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, shared.WrapPersistence(err)
	}

	client := model.ToDomain()
	if err := r.loadChildren(ctx, client); err != nil {
		return nil, shared.WrapPersistence(err)
	}
	return client, nil
}

// FindByDocument matches the submitted document against every document
// column of the family within the tenant, each compared in its stored form.
func (r *GormClientRepository) FindByDocument(ctx context.Context, tenantID uuid.UUID, document string) (*partner.Client, error) {
	if tenantID == uuid.Nil {
		return nil, shared.ErrMissingTenant
	}
	expr, args := documentPredicate(document)
	if expr == "" {
		return nil, shared.ErrNotFound
	}

	var model models.ClientModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Where(expr, args...).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, shared.WrapPersistence(err)
	}

	client := model.ToDomain()
	if err := r.loadChildren(ctx, client); err != nil {
		return nil, shared.WrapPersistence(err)
	}
	return client, nil
}

// DocumentExists reports whether another record in the tenant already
// carries the document. excludeID skips the record being updated.
func (r *GormClientRepository) DocumentExists(ctx context.Context, tenantID uuid.UUID, document string, excludeID uuid.UUID) (bool, error) {
	if tenantID == uuid.Nil {
		return false, shared.ErrMissingTenant
	}
	expr, args := documentPredicate(document)
	if expr == "" {
		return false, nil
	}

	query := r.db.WithContext(ctx).Model(&models.ClientModel{}).
		Where("tenant_id = ?", tenantID).
		Where(expr, args...)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, shared.WrapPersistence(err)
	}
	return count > 0, nil
}

// List runs the filtered data query plus the matching count query. Listed
// rows are root summaries; child collections are not loaded.
func (r *GormClientRepository) List(ctx context.Context, tenantID uuid.UUID, filter shared.ListFilter) ([]partner.Client, int64, error) {
	query, err := r.buildListQuery(tenantID, filter)
	if err != nil {
		return nil, 0, err
	}

	var clientModels []models.ClientModel
	if err := query.Data(r.db.WithContext(ctx).Model(&models.ClientModel{})).
		Find(&clientModels).Error; err != nil {
		return nil, 0, shared.WrapPersistence(err)
	}

	var total int64
	if err := query.Count(r.db.WithContext(ctx).Model(&models.ClientModel{})).
		Count(&total).Error; err != nil {
		return nil, 0, shared.WrapPersistence(err)
	}

	clients := make([]partner.Client, len(clientModels))
	for i, model := range clientModels {
		clients[i] = *model.ToDomain()
	}
	return clients, total, nil
}

// SetStatus flips the status field only, scoped by id AND tenant.
func (r *GormClientRepository) SetStatus(ctx context.Context, tenantID, id uuid.UUID, status partner.ClientStatus) error {
	if tenantID == uuid.Nil {
		return shared.ErrMissingTenant
	}

	result := r.db.WithContext(ctx).Model(&models.ClientModel{}).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Updates(map[string]interface{}{"status": status, "updated_at": time.Now()})
	if result.Error != nil {
		return shared.WrapPersistence(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes the aggregate. Soft deletes flip the status to inactive;
// hard deletes remove every child row and then the root in one transaction.
func (r *GormClientRepository) Delete(ctx context.Context, tenantID, id uuid.UUID, hard bool) error {
	if tenantID == uuid.Nil {
		return shared.ErrMissingTenant
	}
	if !hard {
		return r.SetStatus(ctx, tenantID, id, partner.ClientStatusInactive)
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deletePartnerChildren(tx, tenantID, id, models.OwnerKindClient); err != nil {
			return err
		}
		result := tx.Delete(&models.ClientModel{}, "tenant_id = ? AND id = ?", tenantID, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.ErrNotFound
		}
		return shared.WrapPersistence(err)
	}
	return nil
}

func (r *GormClientRepository) buildListQuery(tenantID uuid.UUID, filter shared.ListFilter) (*ListQuery, error) {
	query, err := NewListQuery(tenantID)
	if err != nil {
		return nil, err
	}
	query.Contains("name", filter.Name)
	if filter.Document != "" {
		query.MatchesDocument(filter.Document)
	}
	query.Equals("kind", filter.Kind).
		Equals("status", filter.Status).
		CreatedBetween(filter.DateStart, filter.DateEnd).
		Sort(filter.OrderBy, filter.OrderDir, ClientSortFields, "created_at").
		Paginate(filter.Page, filter.PageSize)
	return query, nil
}

func (r *GormClientRepository) loadChildren(ctx context.Context, client *partner.Client) error {
	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		var rows []models.PartnerAddressModel
		if err := r.db.WithContext(groupCtx).
			Where("tenant_id = ? AND owner_id = ? AND owner_kind = ?", client.TenantID, client.ID, models.OwnerKindClient).
			Order("id ASC").
			Find(&rows).Error; err != nil {
			return err
		}
		client.Addresses = make([]partner.Address, len(rows))
		for i := range rows {
			client.Addresses[i] = rows[i].ToDomain()
		}
		return nil
	})

	group.Go(func() error {
		var rows []models.PartnerContactModel
		if err := r.db.WithContext(groupCtx).
			Where("tenant_id = ? AND owner_id = ? AND owner_kind = ?", client.TenantID, client.ID, models.OwnerKindClient).
			Order("id ASC").
			Find(&rows).Error; err != nil {
			return err
		}
		client.Contacts = make([]partner.Contact, len(rows))
		for i := range rows {
			client.Contacts[i] = rows[i].ToDomain()
		}
		return nil
	})

	group.Go(func() error {
		var rows []models.PartnerAttachmentModel
		if err := r.db.WithContext(groupCtx).
			Where("tenant_id = ? AND owner_id = ? AND owner_kind = ?", client.TenantID, client.ID, models.OwnerKindClient).
			Order("id ASC").
			Find(&rows).Error; err != nil {
			return err
		}
		client.Attachments = make([]partner.Attachment, len(rows))
		for i := range rows {
			client.Attachments[i] = rows[i].ToDomain()
		}
		return nil
	})

	return group.Wait()
}

// insertPartnerChildren inserts the replaceable child collections of one
// partner root. Shared between the client and supplier repositories.
func insertPartnerChildren(tx *gorm.DB, tenantID, ownerID uuid.UUID, ownerKind string,
	addresses []partner.Address, contacts []partner.Contact, attachments []partner.Attachment) error {

	if rows := models.AddressModelsFromDomain(tenantID, ownerID, ownerKind, addresses); len(rows) > 0 {
		if err := tx.Create(&rows).Error; err != nil {
			return err
		}
	}
	if rows := models.ContactModelsFromDomain(tenantID, ownerID, ownerKind, contacts); len(rows) > 0 {
		if err := tx.Create(&rows).Error; err != nil {
			return err
		}
	}
	if rows := models.AttachmentModelsFromDomain(tenantID, ownerID, ownerKind, attachments); len(rows) > 0 {
		if err := tx.Create(&rows).Error; err != nil {
			return err
		}
	}
	return nil
}

// deletePartnerChildren removes the replaceable child collections of one
// partner root. Supplied items are intentionally not touched here: they are
// append-only and survive supplier updates.
func deletePartnerChildren(tx *gorm.DB, tenantID, ownerID uuid.UUID, ownerKind string) error {
	scope := "tenant_id = ? AND owner_id = ? AND owner_kind = ?"
	if err := tx.Delete(&models.PartnerAddressModel{}, scope, tenantID, ownerID, ownerKind).Error; err != nil {
		return err
	}
	if err := tx.Delete(&models.PartnerContactModel{}, scope, tenantID, ownerID, ownerKind).Error; err != nil {
		return err
	}
	return tx.Delete(&models.PartnerAttachmentModel{}, scope, tenantID, ownerID, ownerKind).Error
}

// Ensure GormClientRepository implements ClientRepository
var _ partner.ClientRepository = (*GormClientRepository)(nil)
