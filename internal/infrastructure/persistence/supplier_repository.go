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

var supplierRootColumns = []string{
	"kind", "status", "name", "company_name", "responsible",
	"cpf", "cnpj", "foreign_doc", "email", "phone", "notes", "updated_at",
}

// GormSupplierRepository implements partner.SupplierRepository using GORM
type GormSupplierRepository struct {
	db *gorm.DB
}

// NewGormSupplierRepository creates a new GormSupplierRepository
func NewGormSupplierRepository(db *gorm.DB) *GormSupplierRepository {
	return &GormSupplierRepository{db: db}
}

// Create inserts the root row, the replaceable child collections and any
// initial supplied items in one transaction.
func (r *GormSupplierRepository) Create(ctx context.Context, supplier *partner.Supplier) error {
	if supplier.TenantID == uuid.Nil {
		return shared.ErrMissingTenant
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(models.SupplierModelFromDomain(supplier)).Error; err != nil {
			return err
		}
		if err := insertPartnerChildren(tx, supplier.TenantID, supplier.ID, models.OwnerKindSupplier,
			supplier.Addresses, supplier.Contacts, supplier.Attachments); err != nil {
			return err
		}
		return insertSupplierItems(tx, supplier.TenantID, supplier.ID, supplier.Items)
	})
	if err != nil {
		return shared.WrapPersistence(err)
	}
	return nil
}

// Update rewrites the root and wholesale-replaces addresses, contacts and
// attachments. Supplied items are append-only and never touched here; the
// submitted item set is ignored.
func (r *GormSupplierRepository) Update(ctx context.Context, supplier *partner.Supplier) error {
	if supplier.TenantID == uuid.Nil {
		return shared.ErrMissingTenant
	}

	model := models.SupplierModelFromDomain(supplier)
	model.UpdatedAt = time.Now()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.SupplierModel{}).
			Where("tenant_id = ? AND id = ?", supplier.TenantID, supplier.ID).
			Select(supplierRootColumns).
			Updates(model)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}

		if err := deletePartnerChildren(tx, supplier.TenantID, supplier.ID, models.OwnerKindSupplier); err != nil {
			return err
		}
		return insertPartnerChildren(tx, supplier.TenantID, supplier.ID, models.OwnerKindSupplier,
			supplier.Addresses, supplier.Contacts, supplier.Attachments)
	})
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.ErrNotFound
		}
		return shared.WrapPersistence(err)
	}
	return nil
}

// FindByID fetches the full aggregate including supplied items.
func (r *GormSupplierRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*partner.Supplier, error) {
	if tenantID == uuid.Nil {
		return nil, shared.ErrMissingTenant
	}

	var model models.SupplierModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, shared.WrapPersistence(err)
	}

	supplier := model.ToDomain()
	if err := r.loadChildren(ctx, supplier); err != nil {
		return nil, shared.WrapPersistence(err)
	}
	return supplier, nil
}

// FindByDocument matches the submitted document against every document
// column of the family within the tenant, each compared in its stored form.
func (r *GormSupplierRepository) FindByDocument(ctx context.Context, tenantID uuid.UUID, document string) (*partner.Supplier, error) {
	if tenantID == uuid.Nil {
		return nil, shared.ErrMissingTenant
	}
	expr, args := documentPredicate(document)
	if expr == "" {
		return nil, shared.ErrNotFound
	}

	var model models.SupplierModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Where(expr, args...).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, shared.WrapPersistence(err)
	}

	supplier := model.ToDomain()
	if err := r.loadChildren(ctx, supplier); err != nil {
		return nil, shared.WrapPersistence(err)
	}
	return supplier, nil
}

// DocumentExists reports whether another supplier in the tenant already
// carries the document.
func (r *GormSupplierRepository) DocumentExists(ctx context.Context, tenantID uuid.UUID, document string, excludeID uuid.UUID) (bool, error) {
	if tenantID == uuid.Nil {
		return false, shared.ErrMissingTenant
	}
	expr, args := documentPredicate(document)
	if expr == "" {
		return false, nil
	}

	query := r.db.WithContext(ctx).Model(&models.SupplierModel{}).
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

// List runs the filtered data query plus the matching count query.
func (r *GormSupplierRepository) List(ctx context.Context, tenantID uuid.UUID, filter shared.ListFilter) ([]partner.Supplier, int64, error) {
	query, err := r.buildListQuery(tenantID, filter)
	if err != nil {
		return nil, 0, err
	}

	var supplierModels []models.SupplierModel
	if err := query.Data(r.db.WithContext(ctx).Model(&models.SupplierModel{})).
		Find(&supplierModels).Error; err != nil {
		return nil, 0, shared.WrapPersistence(err)
	}

	var total int64
	if err := query.Count(r.db.WithContext(ctx).Model(&models.SupplierModel{})).
		Count(&total).Error; err != nil {
		return nil, 0, shared.WrapPersistence(err)
	}

	suppliers := make([]partner.Supplier, len(supplierModels))
	for i, model := range supplierModels {
		suppliers[i] = *model.ToDomain()
	}
	return suppliers, total, nil
}

// SetStatus flips the status field only, scoped by id AND tenant.
func (r *GormSupplierRepository) SetStatus(ctx context.Context, tenantID, id uuid.UUID, status partner.SupplierStatus) error {
	if tenantID == uuid.Nil {
		return shared.ErrMissingTenant
	}

	result := r.db.WithContext(ctx).Model(&models.SupplierModel{}).
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

// Delete removes the aggregate. Hard deletes remove every child row
// including the append-only items, then the root, in one transaction.
func (r *GormSupplierRepository) Delete(ctx context.Context, tenantID, id uuid.UUID, hard bool) error {
	if tenantID == uuid.Nil {
		return shared.ErrMissingTenant
	}
	if !hard {
		return r.SetStatus(ctx, tenantID, id, partner.SupplierStatusInactive)
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deletePartnerChildren(tx, tenantID, id, models.OwnerKindSupplier); err != nil {
			return err
		}
		if err := tx.Delete(&models.SupplierItemModel{}, "tenant_id = ? AND supplier_id = ?", tenantID, id).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.SupplierModel{}, "tenant_id = ? AND id = ?", tenantID, id)
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

// AppendItem inserts a single supplied line item after verifying the
// supplier belongs to the tenant.
func (r *GormSupplierRepository) AppendItem(ctx context.Context, tenantID, supplierID uuid.UUID, item *partner.SupplierItem) error {
	if tenantID == uuid.Nil {
		return shared.ErrMissingTenant
	}

	var count int64
	if err := r.db.WithContext(ctx).Model(&models.SupplierModel{}).
		Where("tenant_id = ? AND id = ?", tenantID, supplierID).
		Count(&count).Error; err != nil {
		return shared.WrapPersistence(err)
	}
	if count == 0 {
		return shared.ErrNotFound
	}

	row := models.SupplierItemModelFromDomain(tenantID, supplierID, item)
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return shared.WrapPersistence(err)
	}
	return nil
}

func (r *GormSupplierRepository) buildListQuery(tenantID uuid.UUID, filter shared.ListFilter) (*ListQuery, error) {
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
		Sort(filter.OrderBy, filter.OrderDir, SupplierSortFields, "created_at").
		Paginate(filter.Page, filter.PageSize)
	return query, nil
}

func (r *GormSupplierRepository) loadChildren(ctx context.Context, supplier *partner.Supplier) error {
	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		var rows []models.PartnerAddressModel
		if err := r.db.WithContext(groupCtx).
			Where("tenant_id = ? AND owner_id = ? AND owner_kind = ?", supplier.TenantID, supplier.ID, models.OwnerKindSupplier).
			Order("id ASC").
			Find(&rows).Error; err != nil {
			return err
		}
		supplier.Addresses = make([]partner.Address, len(rows))
		for i := range rows {
			supplier.Addresses[i] = rows[i].ToDomain()
		}
		return nil
	})

	group.Go(func() error {
		var rows []models.PartnerContactModel
		if err := r.db.WithContext(groupCtx).
			Where("tenant_id = ? AND owner_id = ? AND owner_kind = ?", supplier.TenantID, supplier.ID, models.OwnerKindSupplier).
			Order("id ASC").
			Find(&rows).Error; err != nil {
			return err
		}
		supplier.Contacts = make([]partner.Contact, len(rows))
		for i := range rows {
			supplier.Contacts[i] = rows[i].ToDomain()
		}
		return nil
	})

	group.Go(func() error {
		var rows []models.PartnerAttachmentModel
		if err := r.db.WithContext(groupCtx).
			Where("tenant_id = ? AND owner_id = ? AND owner_kind = ?", supplier.TenantID, supplier.ID, models.OwnerKindSupplier).
			Order("id ASC").
			Find(&rows).Error; err != nil {
			return err
		}
		supplier.Attachments = make([]partner.Attachment, len(rows))
		for i := range rows {
			supplier.Attachments[i] = rows[i].ToDomain()
		}
		return nil
	})

	group.Go(func() error {
		var rows []models.SupplierItemModel
		if err := r.db.WithContext(groupCtx).
			Where("tenant_id = ? AND supplier_id = ?", supplier.TenantID, supplier.ID).
			Order("id ASC").
			Find(&rows).Error; err != nil {
			return err
		}
		supplier.Items = make([]partner.SupplierItem, len(rows))
		for i := range rows {
			supplier.Items[i] = rows[i].ToDomain()
		}
		return nil
	})

	return group.Wait()
}

func insertSupplierItems(tx *gorm.DB, tenantID, supplierID uuid.UUID, items []partner.SupplierItem) error {
	if len(items) == 0 {
		return nil
	}
	rows := make([]models.SupplierItemModel, len(items))
	for i := range items {
		rows[i] = *models.SupplierItemModelFromDomain(tenantID, supplierID, &items[i])
	}
	return tx.Create(&rows).Error
}

// Ensure GormSupplierRepository implements SupplierRepository
var _ partner.SupplierRepository = (*GormSupplierRepository)(nil)
