package catalog

import (
	"github.com/gestor/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductKind is the discriminant selecting which optional collections
// apply to a product. Only kits carry a composition.
type ProductKind string

const (
	ProductKindProduct ProductKind = "product"
	ProductKindService ProductKind = "service"
	ProductKindKit     ProductKind = "kit"
)

// ProductStatus represents the status of a product
type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "active"
	ProductStatusInactive ProductStatus = "inactive"
)

// ProductImage is an ordered image reference owned by one product; at most
// one image is flagged principal.
type ProductImage struct {
	ID         uuid.UUID `json:"id"`
	StorageKey string    `json:"storage_key"`
	Position   int       `json:"position"`
	Principal  bool      `json:"principal"`
}

// UnitConversion maps the product's base unit to an alternate sales unit
// with its own barcode.
type UnitConversion struct {
	ID      uuid.UUID       `json:"id"`
	Unit    string          `json:"unit"`
	Ratio   decimal.Decimal `json:"ratio"`
	Barcode string          `json:"barcode"`
}

// KitComponent ties a kit product to one constituent product with a
// quantity. Only valid when the owning product's kind is kit.
type KitComponent struct {
	ID        uuid.UUID       `json:"id"`
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// Product is the aggregate root for the catalog family. Images, unit
// conversions and kit composition are owned child collections replaced as a
// unit on update.
type Product struct {
	shared.TenantAggregateRoot
	Kind      ProductKind
	Status    ProductStatus
	Name      string
	SKU       string
	Barcode   string
	Unit      string
	CostPrice decimal.Decimal
	SalePrice decimal.Decimal
	Notes     string

	Images      []ProductImage
	Conversions []UnitConversion
	Components  []KitComponent
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product with required fields validated.
func NewProduct(tenantID uuid.UUID, kind ProductKind, name string) (*Product, error) {
	if err := validateProductKind(kind); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}

	return &Product{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Kind:                kind,
		Status:              ProductStatusActive,
		Name:                name,
		Unit:                "un",
	}, nil
}

// SetPrices sets cost and sale prices.
func (p *Product) SetPrices(cost, sale decimal.Decimal) error {
	if cost.IsNegative() || sale.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Prices cannot be negative")
	}
	p.CostPrice = cost
	p.SalePrice = sale
	p.Touch()
	return nil
}

// SetIdentifiers sets SKU, barcode and base unit.
func (p *Product) SetIdentifiers(sku, barcode, unit string) {
	p.SKU = sku
	p.Barcode = barcode
	if unit != "" {
		p.Unit = unit
	}
	p.Touch()
}

// ReplaceImages swaps the image collection, renumbering positions in the
// submitted order and keeping at most one principal flag.
func (p *Product) ReplaceImages(images []ProductImage) {
	seenPrincipal := false
	out := make([]ProductImage, len(images))
	for i, img := range images {
		if img.ID == uuid.Nil {
			img.ID = uuid.New()
		}
		img.Position = i
		if img.Principal {
			if seenPrincipal {
				img.Principal = false
			}
			seenPrincipal = true
		}
		out[i] = img
	}
	p.Images = out
	p.Touch()
}

// ReplaceConversions swaps the unit-conversion collection.
func (p *Product) ReplaceConversions(conversions []UnitConversion) error {
	out := make([]UnitConversion, len(conversions))
	for i, cv := range conversions {
		if cv.Unit == "" {
			return shared.NewDomainError("INVALID_CONVERSION", "Conversion unit cannot be empty")
		}
		if !cv.Ratio.IsPositive() {
			return shared.NewDomainError("INVALID_CONVERSION", "Conversion ratio must be positive")
		}
		if cv.ID == uuid.Nil {
			cv.ID = uuid.New()
		}
		out[i] = cv
	}
	p.Conversions = out
	p.Touch()
	return nil
}

// ReplaceComponents swaps the kit composition. Rejected for non-kit
// products so the discriminant invariant cannot be bypassed.
func (p *Product) ReplaceComponents(components []KitComponent) error {
	if len(components) > 0 && p.Kind != ProductKindKit {
		return shared.NewDomainError("INVALID_COMPOSITION", "Only kit products can have a composition")
	}
	out := make([]KitComponent, len(components))
	for i, comp := range components {
		if comp.ProductID == uuid.Nil {
			return shared.NewDomainError("INVALID_COMPOSITION", "Component product is required")
		}
		if !comp.Quantity.IsPositive() {
			return shared.NewDomainError("INVALID_COMPOSITION", "Component quantity must be positive")
		}
		if comp.ID == uuid.Nil {
			comp.ID = uuid.New()
		}
		out[i] = comp
	}
	p.Components = out
	p.Touch()
	return nil
}

// Activate activates the product
func (p *Product) Activate() {
	p.Status = ProductStatusActive
	p.Touch()
}

// Deactivate performs the soft-delete status flip.
func (p *Product) Deactivate() {
	p.Status = ProductStatusInactive
	p.Touch()
}

// IsKit returns true for kit products.
func (p *Product) IsKit() bool {
	return p.Kind == ProductKindKit
}

// IsActive returns true if the product is active
func (p *Product) IsActive() bool {
	return p.Status == ProductStatusActive
}

func validateProductKind(kind ProductKind) error {
	switch kind {
	case ProductKindProduct, ProductKindService, ProductKindKit:
		return nil
	default:
		return shared.NewDomainError("INVALID_KIND", "Product kind must be 'product', 'service' or 'kit'")
	}
}
