package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/gestor/backend/internal/domain/catalog"
	"github.com/gestor/backend/internal/domain/shared"
	"github.com/gestor/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

var productRootColumns = []string{
	"kind", "status", "name", "sku", "barcode", "unit",
	"cost_price", "sale_price", "notes", "updated_at",
}

// GormProductRepository implements catalog.ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// Create inserts the root row and all child collections in one transaction.
func (r *GormProductRepository) Create(ctx context.Context, product *catalog.Product) error {
	if product.TenantID == uuid.Nil {
		return shared.ErrMissingTenant
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(models.ProductModelFromDomain(product)).Error; err != nil {
			return err
		}
		return insertProductChildren(tx, product)
	})
	if err != nil {
		return shared.WrapPersistence(err)
	}
	return nil
}

// Update rewrites the root scoped by id AND tenant and wholesale-replaces
// images, conversions and kit composition in one transaction.
func (r *GormProductRepository) Update(ctx context.Context, product *catalog.Product) error {
	if product.TenantID == uuid.Nil {
		return shared.ErrMissingTenant
	}

	model := models.ProductModelFromDomain(product)
	model.UpdatedAt = time.Now()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.ProductModel{}).
			Where("tenant_id = ? AND id = ?", product.TenantID, product.ID).
			Select(productRootColumns).
			Updates(model)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}

		if err := deleteProductChildren(tx, product.TenantID, product.ID); err != nil {
			return err
		}
		return insertProductChildren(tx, product)
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
func (r *GormProductRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*catalog.Product, error) {
	if tenantID == uuid.Nil {
		return nil, shared.ErrMissingTenant
	}

	var model models.ProductModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, shared.WrapPersistence(err)
	}

	product := model.ToDomain()
	if err := r.loadChildren(ctx, product); err != nil {
		return nil, shared.WrapPersistence(err)
	}
	return product, nil
}

// FindByBarcode matches the main barcode or any unit-conversion barcode
// within the tenant.
func (r *GormProductRepository) FindByBarcode(ctx context.Context, tenantID uuid.UUID, barcode string) (*catalog.Product, error) {
	if tenantID == uuid.Nil {
		return nil, shared.ErrMissingTenant
	}
	if barcode == "" {
		return nil, shared.ErrNotFound
	}

	var model models.ProductModel
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND barcode = ?", tenantID, barcode).
		First(&model).Error
	if err != nil && errors.Is(err, gorm.ErrRecordNotFound) {
		var conversion models.UnitConversionModel
		err = r.db.WithContext(ctx).
			Where("tenant_id = ? AND barcode = ?", tenantID, barcode).
			First(&conversion).Error
		if err == nil {
			return r.FindByID(ctx, tenantID, conversion.ProductID)
		}
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, shared.WrapPersistence(err)
	}

	product := model.ToDomain()
	if err := r.loadChildren(ctx, product); err != nil {
		return nil, shared.WrapPersistence(err)
	}
	return product, nil
}

// SKUExists reports whether another product in the tenant already carries
// the SKU. excludeID skips the record being updated.
func (r *GormProductRepository) SKUExists(ctx context.Context, tenantID uuid.UUID, sku string, excludeID uuid.UUID) (bool, error) {
	if tenantID == uuid.Nil {
		return false, shared.ErrMissingTenant
	}
	if sku == "" {
		return false, nil
	}

	query := r.db.WithContext(ctx).Model(&models.ProductModel{}).
		Where("tenant_id = ? AND sku = ?", tenantID, sku)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, shared.WrapPersistence(err)
	}
	return count > 0, nil
}

// List runs the filtered data query plus the matching count query. The
// document filter matches SKU and barcode, the catalog's identifying codes.
func (r *GormProductRepository) List(ctx context.Context, tenantID uuid.UUID, filter shared.ListFilter) ([]catalog.Product, int64, error) {
	query, err := NewListQuery(tenantID)
	if err != nil {
		return nil, 0, err
	}
	query.Contains("name", filter.Name)
	if filter.Document != "" {
		query.MatchesAny(filter.Document, "sku", "barcode")
	}
	query.Equals("kind", filter.Kind).
		Equals("status", filter.Status).
		CreatedBetween(filter.DateStart, filter.DateEnd).
		Sort(filter.OrderBy, filter.OrderDir, ProductSortFields, "created_at").
		Paginate(filter.Page, filter.PageSize)

	var productModels []models.ProductModel
	if err := query.Data(r.db.WithContext(ctx).Model(&models.ProductModel{})).
		Find(&productModels).Error; err != nil {
		return nil, 0, shared.WrapPersistence(err)
	}

	var total int64
	if err := query.Count(r.db.WithContext(ctx).Model(&models.ProductModel{})).
		Count(&total).Error; err != nil {
		return nil, 0, shared.WrapPersistence(err)
	}

	products := make([]catalog.Product, len(productModels))
	for i, model := range productModels {
		products[i] = *model.ToDomain()
	}
	return products, total, nil
}

// SetStatus flips the status field only, scoped by id AND tenant.
func (r *GormProductRepository) SetStatus(ctx context.Context, tenantID, id uuid.UUID, status catalog.ProductStatus) error {
	if tenantID == uuid.Nil {
		return shared.ErrMissingTenant
	}

	result := r.db.WithContext(ctx).Model(&models.ProductModel{}).
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

// Delete removes the aggregate. Hard deletes remove every child row and
// then the root in one transaction.
func (r *GormProductRepository) Delete(ctx context.Context, tenantID, id uuid.UUID, hard bool) error {
	if tenantID == uuid.Nil {
		return shared.ErrMissingTenant
	}
	if !hard {
		return r.SetStatus(ctx, tenantID, id, catalog.ProductStatusInactive)
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteProductChildren(tx, tenantID, id); err != nil {
			return err
		}
		result := tx.Delete(&models.ProductModel{}, "tenant_id = ? AND id = ?", tenantID, id)
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

func (r *GormProductRepository) loadChildren(ctx context.Context, product *catalog.Product) error {
	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		var rows []models.ProductImageModel
		if err := r.db.WithContext(groupCtx).
			Where("tenant_id = ? AND product_id = ?", product.TenantID, product.ID).
			Order("position ASC").
			Find(&rows).Error; err != nil {
			return err
		}
		product.Images = make([]catalog.ProductImage, len(rows))
		for i := range rows {
			product.Images[i] = rows[i].ToDomain()
		}
		return nil
	})

	group.Go(func() error {
		var rows []models.UnitConversionModel
		if err := r.db.WithContext(groupCtx).
			Where("tenant_id = ? AND product_id = ?", product.TenantID, product.ID).
			Order("id ASC").
			Find(&rows).Error; err != nil {
			return err
		}
		product.Conversions = make([]catalog.UnitConversion, len(rows))
		for i := range rows {
			product.Conversions[i] = rows[i].ToDomain()
		}
		return nil
	})

	group.Go(func() error {
		var rows []models.KitComponentModel
		if err := r.db.WithContext(groupCtx).
			Where("tenant_id = ? AND kit_id = ?", product.TenantID, product.ID).
			Order("id ASC").
			Find(&rows).Error; err != nil {
			return err
		}
		product.Components = make([]catalog.KitComponent, len(rows))
		for i := range rows {
			product.Components[i] = rows[i].ToDomain()
		}
		return nil
	})

	return group.Wait()
}

func insertProductChildren(tx *gorm.DB, product *catalog.Product) error {
	if rows := models.ImageModelsFromDomain(product.TenantID, product.ID, product.Images); len(rows) > 0 {
		if err := tx.Create(&rows).Error; err != nil {
			return err
		}
	}
	if rows := models.ConversionModelsFromDomain(product.TenantID, product.ID, product.Conversions); len(rows) > 0 {
		if err := tx.Create(&rows).Error; err != nil {
			return err
		}
	}
	if rows := models.ComponentModelsFromDomain(product.TenantID, product.ID, product.Components); len(rows) > 0 {
		if err := tx.Create(&rows).Error; err != nil {
			return err
		}
	}
	return nil
}

func deleteProductChildren(tx *gorm.DB, tenantID, productID uuid.UUID) error {
	if err := tx.Delete(&models.ProductImageModel{}, "tenant_id = ? AND product_id = ?", tenantID, productID).Error; err != nil {
		return err
	}
	if err := tx.Delete(&models.UnitConversionModel{}, "tenant_id = ? AND product_id = ?", tenantID, productID).Error; err != nil {
		return err
	}
	return tx.Delete(&models.KitComponentModel{}, "tenant_id = ? AND kit_id = ?", tenantID, productID).Error
}

// Ensure GormProductRepository implements ProductRepository
var _ catalog.ProductRepository = (*GormProductRepository)(nil)
