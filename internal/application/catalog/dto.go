package catalog

import (
	"time"

	"github.com/gestor/backend/internal/domain/catalog"
	"github.com/gestor/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =============================================================================
// Product DTOs
// =============================================================================

// ProductImageRequest represents one image reference in a create/update
// payload. Position is assigned from the submitted order.
type ProductImageRequest struct {
	StorageKey string `json:"storage_key" binding:"required,min=1,max=500"`
	Principal  bool   `json:"principal"`
}

// UnitConversionRequest represents one alternate sales unit.
type UnitConversionRequest struct {
	Unit    string          `json:"unit" binding:"required,min=1,max=20"`
	Ratio   decimal.Decimal `json:"ratio" binding:"required"`
	Barcode string          `json:"barcode" binding:"max=50"`
}

// KitComponentRequest represents one kit constituent.
type KitComponentRequest struct {
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
}

// CreateProductRequest represents a request to create a new product
type CreateProductRequest struct {
	Kind      string           `json:"kind" binding:"required,oneof=product service kit"`
	Name      string           `json:"name" binding:"required,min=1,max=200"`
	SKU       string           `json:"sku" binding:"max=50"`
	Barcode   string           `json:"barcode" binding:"max=50"`
	Unit      string           `json:"unit" binding:"max=20"`
	CostPrice *decimal.Decimal `json:"cost_price"`
	SalePrice *decimal.Decimal `json:"sale_price"`
	Notes     string           `json:"notes"`

	Images      []ProductImageRequest   `json:"images" binding:"omitempty,dive"`
	Conversions []UnitConversionRequest `json:"conversions" binding:"omitempty,dive"`
	Components  []KitComponentRequest   `json:"components" binding:"omitempty,dive"`
}

// UpdateProductRequest represents a request to update a product. Scalar
// fields are partial; child collections follow the pointer-to-slice
// convention (nil = unchanged, empty = wipe).
type UpdateProductRequest struct {
	Name      *string          `json:"name" binding:"omitempty,min=1,max=200"`
	SKU       *string          `json:"sku" binding:"omitempty,max=50"`
	Barcode   *string          `json:"barcode" binding:"omitempty,max=50"`
	Unit      *string          `json:"unit" binding:"omitempty,min=1,max=20"`
	CostPrice *decimal.Decimal `json:"cost_price"`
	SalePrice *decimal.Decimal `json:"sale_price"`
	Notes     *string          `json:"notes"`

	Images      *[]ProductImageRequest   `json:"images" binding:"omitempty,dive"`
	Conversions *[]UnitConversionRequest `json:"conversions" binding:"omitempty,dive"`
	Components  *[]KitComponentRequest   `json:"components" binding:"omitempty,dive"`
}

// SetProductStatusRequest represents a request to flip a product's status.
type SetProductStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active inactive"`
}

// ProductListFilter carries the query-string filters accepted by the product
// listing endpoint.
type ProductListFilter struct {
	Name      string     `form:"name"`
	Kind      string     `form:"kind" binding:"omitempty,oneof=product service kit"`
	Status    string     `form:"status" binding:"omitempty,oneof=active inactive"`
	DateStart *time.Time `form:"date_start" time_format:"2006-01-02"`
	DateEnd   *time.Time `form:"date_end" time_format:"2006-01-02"`
	Page      int        `form:"page"`
	PageSize  int        `form:"page_size"`
	OrderBy   string     `form:"order_by"`
	OrderDir  string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

func (f *ProductListFilter) toShared() shared.ListFilter {
	lf := shared.ListFilter{
		Name:      f.Name,
		Kind:      f.Kind,
		Status:    f.Status,
		DateStart: f.DateStart,
		DateEnd:   f.DateEnd,
		Page:      f.Page,
		PageSize:  f.PageSize,
		OrderBy:   f.OrderBy,
		OrderDir:  f.OrderDir,
	}
	lf.Normalize()
	return lf
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID        uuid.UUID       `json:"id"`
	TenantID  uuid.UUID       `json:"tenant_id"`
	Kind      string          `json:"kind"`
	Status    string          `json:"status"`
	Name      string          `json:"name"`
	SKU       string          `json:"sku,omitempty"`
	Barcode   string          `json:"barcode,omitempty"`
	Unit      string          `json:"unit"`
	CostPrice decimal.Decimal `json:"cost_price"`
	SalePrice decimal.Decimal `json:"sale_price"`
	Notes     string          `json:"notes,omitempty"`

	Images      []catalog.ProductImage   `json:"images"`
	Conversions []catalog.UnitConversion `json:"conversions"`
	Components  []catalog.KitComponent   `json:"components"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToProductResponse converts a product aggregate to a response DTO
func ToProductResponse(p *catalog.Product) *ProductResponse {
	return &ProductResponse{
		ID:          p.ID,
		TenantID:    p.TenantID,
		Kind:        string(p.Kind),
		Status:      string(p.Status),
		Name:        p.Name,
		SKU:         p.SKU,
		Barcode:     p.Barcode,
		Unit:        p.Unit,
		CostPrice:   p.CostPrice,
		SalePrice:   p.SalePrice,
		Notes:       p.Notes,
		Images:      p.Images,
		Conversions: p.Conversions,
		Components:  p.Components,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toDomainImages(reqs []ProductImageRequest) []catalog.ProductImage {
	out := make([]catalog.ProductImage, len(reqs))
	for i, r := range reqs {
		out[i] = catalog.ProductImage{
			StorageKey: r.StorageKey,
			Principal:  r.Principal,
		}
	}
	return out
}

func toDomainConversions(reqs []UnitConversionRequest) []catalog.UnitConversion {
	out := make([]catalog.UnitConversion, len(reqs))
	for i, r := range reqs {
		out[i] = catalog.UnitConversion{
			Unit:    r.Unit,
			Ratio:   r.Ratio,
			Barcode: r.Barcode,
		}
	}
	return out
}

func toDomainComponents(reqs []KitComponentRequest) []catalog.KitComponent {
	out := make([]catalog.KitComponent, len(reqs))
	for i, r := range reqs {
		out[i] = catalog.KitComponent{
			ProductID: r.ProductID,
			Quantity:  r.Quantity,
		}
	}
	return out
}

// =============================================================================
// Attachment upload DTOs
// =============================================================================

// InitiateUploadRequest asks for a presigned upload slot for one file.
type InitiateUploadRequest struct {
	FileName    string `json:"file_name" binding:"required,min=1,max=200"`
	ContentType string `json:"content_type" binding:"required,min=1,max=100"`
	Size        int64  `json:"size" binding:"required,min=1"`
}

// InitiateUploadResponse carries the storage key the client must persist on
// the owning record plus the URL to PUT the payload to.
type InitiateUploadResponse struct {
	StorageKey string    `json:"storage_key"`
	UploadURL  string    `json:"upload_url"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// DownloadURLResponse carries a presigned, time-limited download URL.
type DownloadURLResponse struct {
	DownloadURL string    `json:"download_url"`
	ExpiresAt   time.Time `json:"expires_at"`
}
