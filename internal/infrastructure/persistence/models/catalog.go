package models

import (
	"github.com/gestor/backend/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductModel is the persistence model for the Product aggregate root.
type ProductModel struct {
	TenantAggregateModel
	Kind      catalog.ProductKind   `gorm:"type:varchar(20);not null;default:'product';index"`
	Status    catalog.ProductStatus `gorm:"type:varchar(20);not null;default:'active';index"`
	Name      string                `gorm:"type:varchar(200);not null"`
	SKU       string                `gorm:"type:varchar(50);index"`
	Barcode   string                `gorm:"type:varchar(50);index"`
	Unit      string                `gorm:"type:varchar(20);not null;default:'un'"`
	CostPrice decimal.Decimal       `gorm:"type:decimal(18,4);not null;default:0"`
	SalePrice decimal.Decimal       `gorm:"type:decimal(18,4);not null;default:0"`
	Notes     string                `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product aggregate.
// Child collections are loaded separately and attached by the repository.
func (m *ProductModel) ToDomain() *catalog.Product {
	product := &catalog.Product{
		Kind:      m.Kind,
		Status:    m.Status,
		Name:      m.Name,
		SKU:       m.SKU,
		Barcode:   m.Barcode,
		Unit:      m.Unit,
		CostPrice: m.CostPrice,
		SalePrice: m.SalePrice,
		Notes:     m.Notes,
	}
	m.PopulateTenantAggregateRoot(&product.TenantAggregateRoot)
	return product
}

// FromDomain populates the persistence model from a domain Product aggregate.
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.FromDomainTenantAggregateRoot(p.TenantAggregateRoot)
	m.Kind = p.Kind
	m.Status = p.Status
	m.Name = p.Name
	m.SKU = p.SKU
	m.Barcode = p.Barcode
	m.Unit = p.Unit
	m.CostPrice = p.CostPrice
	m.SalePrice = p.SalePrice
	m.Notes = p.Notes
}

// ProductModelFromDomain creates a new persistence model from a domain Product.
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{}
	m.FromDomain(p)
	return m
}

// ProductImageModel is the persistence model for product image child rows.
type ProductImageModel struct {
	TenantChildModel
	ProductID  uuid.UUID `gorm:"type:uuid;not null;index"`
	StorageKey string    `gorm:"type:varchar(500);not null"`
	Position   int       `gorm:"not null;default:0"`
	Principal  bool      `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (ProductImageModel) TableName() string {
	return "product_images"
}

// ToDomain converts the persistence model to a domain ProductImage.
func (m *ProductImageModel) ToDomain() catalog.ProductImage {
	return catalog.ProductImage{
		ID:         m.ID,
		StorageKey: m.StorageKey,
		Position:   m.Position,
		Principal:  m.Principal,
	}
}

// ImageModelsFromDomain maps a domain image collection onto child rows.
func ImageModelsFromDomain(tenantID, productID uuid.UUID, images []catalog.ProductImage) []ProductImageModel {
	out := make([]ProductImageModel, len(images))
	for i, img := range images {
		out[i] = ProductImageModel{
			TenantChildModel: TenantChildModel{ID: img.ID, TenantID: tenantID},
			ProductID:        productID,
			StorageKey:       img.StorageKey,
			Position:         img.Position,
			Principal:        img.Principal,
		}
	}
	return out
}

// UnitConversionModel is the persistence model for unit-conversion child rows.
type UnitConversionModel struct {
	TenantChildModel
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Unit      string          `gorm:"type:varchar(20);not null"`
	Ratio     decimal.Decimal `gorm:"type:decimal(18,6);not null"`
	Barcode   string          `gorm:"type:varchar(50);index"`
}

// TableName returns the table name for GORM
func (UnitConversionModel) TableName() string {
	return "product_unit_conversions"
}

// ToDomain converts the persistence model to a domain UnitConversion.
func (m *UnitConversionModel) ToDomain() catalog.UnitConversion {
	return catalog.UnitConversion{
		ID:      m.ID,
		Unit:    m.Unit,
		Ratio:   m.Ratio,
		Barcode: m.Barcode,
	}
}

// ConversionModelsFromDomain maps a domain conversion collection onto child rows.
func ConversionModelsFromDomain(tenantID, productID uuid.UUID, conversions []catalog.UnitConversion) []UnitConversionModel {
	out := make([]UnitConversionModel, len(conversions))
	for i, cv := range conversions {
		out[i] = UnitConversionModel{
			TenantChildModel: TenantChildModel{ID: cv.ID, TenantID: tenantID},
			ProductID:        productID,
			Unit:             cv.Unit,
			Ratio:            cv.Ratio,
			Barcode:          cv.Barcode,
		}
	}
	return out
}

// KitComponentModel is the persistence model for kit composition child rows.
type KitComponentModel struct {
	TenantChildModel
	KitID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	ComponentID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (KitComponentModel) TableName() string {
	return "product_kit_components"
}

// ToDomain converts the persistence model to a domain KitComponent.
func (m *KitComponentModel) ToDomain() catalog.KitComponent {
	return catalog.KitComponent{
		ID:        m.ID,
		ProductID: m.ComponentID,
		Quantity:  m.Quantity,
	}
}

// ComponentModelsFromDomain maps a domain composition onto child rows.
func ComponentModelsFromDomain(tenantID, kitID uuid.UUID, components []catalog.KitComponent) []KitComponentModel {
	out := make([]KitComponentModel, len(components))
	for i, comp := range components {
		out[i] = KitComponentModel{
			TenantChildModel: TenantChildModel{ID: comp.ID, TenantID: tenantID},
			KitID:            kitID,
			ComponentID:      comp.ProductID,
			Quantity:         comp.Quantity,
		}
	}
	return out
}
