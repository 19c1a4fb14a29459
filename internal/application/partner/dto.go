package partner

import (
	"time"

	"github.com/gestor/backend/internal/domain/partner"
	"github.com/gestor/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =============================================================================
// Child DTOs (shared by clients and suppliers)
// =============================================================================

// AddressRequest represents one address in a create/update payload.
type AddressRequest struct {
	Type       string `json:"type" binding:"omitempty,oneof=main billing shipping other"`
	Street     string `json:"street" binding:"required,min=1,max=200"`
	Number     string `json:"number" binding:"max=20"`
	Complement string `json:"complement" binding:"max=100"`
	District   string `json:"district" binding:"max=100"`
	City       string `json:"city" binding:"max=100"`
	State      string `json:"state" binding:"max=50"`
	PostalCode string `json:"postal_code" binding:"max=20"`
	Country    string `json:"country" binding:"max=100"`
	Principal  bool   `json:"principal"`
}

// ContactRequest represents one contact entry in a create/update payload.
type ContactRequest struct {
	Type      string `json:"type" binding:"omitempty,oneof=phone email whatsapp fax other"`
	Name      string `json:"name" binding:"max=100"`
	Value     string `json:"value" binding:"required,min=1,max=200"`
	Principal bool   `json:"principal"`
}

// AttachmentRequest represents one attachment reference in a create/update
// payload. The file itself is uploaded to object storage separately; the
// request only carries the resulting storage key.
type AttachmentRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=200"`
	StorageKey  string `json:"storage_key" binding:"required,min=1,max=500"`
	ContentType string `json:"content_type" binding:"max=100"`
	Size        int64  `json:"size" binding:"min=0"`
}

func toDomainAddresses(reqs []AddressRequest) []partner.Address {
	out := make([]partner.Address, len(reqs))
	for i, r := range reqs {
		out[i] = partner.Address{
			Type:       partner.AddressType(r.Type),
			Street:     r.Street,
			Number:     r.Number,
			Complement: r.Complement,
			District:   r.District,
			City:       r.City,
			State:      r.State,
			PostalCode: r.PostalCode,
			Country:    r.Country,
			Principal:  r.Principal,
		}
	}
	return out
}

func toDomainContacts(reqs []ContactRequest) []partner.Contact {
	out := make([]partner.Contact, len(reqs))
	for i, r := range reqs {
		out[i] = partner.Contact{
			Type:      partner.ContactType(r.Type),
			Name:      r.Name,
			Value:     r.Value,
			Principal: r.Principal,
		}
	}
	return out
}

func toDomainAttachments(reqs []AttachmentRequest) []partner.Attachment {
	out := make([]partner.Attachment, len(reqs))
	for i, r := range reqs {
		out[i] = partner.Attachment{
			Name:        r.Name,
			StorageKey:  r.StorageKey,
			ContentType: r.ContentType,
			Size:        r.Size,
		}
	}
	return out
}

// =============================================================================
// Client DTOs
// =============================================================================

// CreateClientRequest represents a request to create a new client
type CreateClientRequest struct {
	Kind        string `json:"kind" binding:"required,oneof=individual organization foreign"`
	Name        string `json:"name" binding:"required,min=1,max=200"`
	CompanyName string `json:"company_name" binding:"max=200"`
	Responsible string `json:"responsible" binding:"max=100"`
	CPF         string `json:"cpf" binding:"max=20"`
	CNPJ        string `json:"cnpj" binding:"max=25"`
	ForeignDoc  string `json:"foreign_doc" binding:"max=50"`
	Email       string `json:"email" binding:"omitempty,email,max=200"`
	Phone       string `json:"phone" binding:"max=50"`
	Notes       string `json:"notes"`

	Addresses   []AddressRequest    `json:"addresses" binding:"omitempty,dive"`
	Contacts    []ContactRequest    `json:"contacts" binding:"omitempty,dive"`
	Attachments []AttachmentRequest `json:"attachments" binding:"omitempty,dive"`
}

// UpdateClientRequest represents a request to update a client. Scalar fields
// are partial: nil means "leave unchanged". Child collections are pointers to
// slices so that an omitted collection is left alone while a present empty
// one wipes the stored set.
type UpdateClientRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=200"`
	CompanyName *string `json:"company_name" binding:"omitempty,max=200"`
	Responsible *string `json:"responsible" binding:"omitempty,max=100"`
	CPF         *string `json:"cpf" binding:"omitempty,max=20"`
	CNPJ        *string `json:"cnpj" binding:"omitempty,max=25"`
	ForeignDoc  *string `json:"foreign_doc" binding:"omitempty,max=50"`
	Email       *string `json:"email" binding:"omitempty,email,max=200"`
	Phone       *string `json:"phone" binding:"omitempty,max=50"`
	Notes       *string `json:"notes"`

	Addresses   *[]AddressRequest    `json:"addresses" binding:"omitempty,dive"`
	Contacts    *[]ContactRequest    `json:"contacts" binding:"omitempty,dive"`
	Attachments *[]AttachmentRequest `json:"attachments" binding:"omitempty,dive"`
}

// SetStatusRequest represents a request to flip a record's status.
type SetStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active inactive"`
}

// ClientListFilter carries the query-string filters accepted by the client
// listing endpoint.
type ClientListFilter struct {
	Name      string     `form:"name"`
	Document  string     `form:"document"`
	Kind      string     `form:"kind" binding:"omitempty,oneof=individual organization foreign"`
	Status    string     `form:"status" binding:"omitempty,oneof=active inactive"`
	DateStart *time.Time `form:"date_start" time_format:"2006-01-02"`
	DateEnd   *time.Time `form:"date_end" time_format:"2006-01-02"`
	Page      int        `form:"page"`
	PageSize  int        `form:"page_size"`
	OrderBy   string     `form:"order_by"`
	OrderDir  string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

func (f *ClientListFilter) toShared() shared.ListFilter {
	lf := shared.ListFilter{
		Name:      f.Name,
		Document:  f.Document,
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

// ClientResponse represents a client in API responses
type ClientResponse struct {
	ID          uuid.UUID `json:"id"`
	TenantID    uuid.UUID `json:"tenant_id"`
	Kind        string    `json:"kind"`
	Status      string    `json:"status"`
	Name        string    `json:"name"`
	CompanyName string    `json:"company_name,omitempty"`
	Responsible string    `json:"responsible,omitempty"`
	CPF         string    `json:"cpf,omitempty"`
	CNPJ        string    `json:"cnpj,omitempty"`
	ForeignDoc  string    `json:"foreign_doc,omitempty"`
	Document    string    `json:"document"`
	Email       string    `json:"email,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Notes       string    `json:"notes,omitempty"`

	Addresses   []partner.Address    `json:"addresses"`
	Contacts    []partner.Contact    `json:"contacts"`
	Attachments []partner.Attachment `json:"attachments"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToClientResponse converts a client aggregate to a response DTO
func ToClientResponse(c *partner.Client) *ClientResponse {
	return &ClientResponse{
		ID:          c.ID,
		TenantID:    c.TenantID,
		Kind:        string(c.Kind),
		Status:      string(c.Status),
		Name:        c.Name,
		CompanyName: c.CompanyName,
		Responsible: c.Responsible,
		CPF:         c.CPF,
		CNPJ:        c.CNPJ,
		ForeignDoc:  c.ForeignDoc,
		Document:    c.Document(),
		Email:       c.Email,
		Phone:       c.Phone,
		Notes:       c.Notes,
		Addresses:   c.Addresses,
		Contacts:    c.Contacts,
		Attachments: c.Attachments,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// =============================================================================
// Supplier DTOs
// =============================================================================

// CreateSupplierRequest represents a request to create a new supplier
type CreateSupplierRequest struct {
	Kind        string `json:"kind" binding:"required,oneof=individual organization foreign"`
	Name        string `json:"name" binding:"required,min=1,max=200"`
	CompanyName string `json:"company_name" binding:"max=200"`
	Responsible string `json:"responsible" binding:"max=100"`
	CPF         string `json:"cpf" binding:"max=20"`
	CNPJ        string `json:"cnpj" binding:"max=25"`
	ForeignDoc  string `json:"foreign_doc" binding:"max=50"`
	Email       string `json:"email" binding:"omitempty,email,max=200"`
	Phone       string `json:"phone" binding:"max=50"`
	Notes       string `json:"notes"`

	Addresses   []AddressRequest    `json:"addresses" binding:"omitempty,dive"`
	Contacts    []ContactRequest    `json:"contacts" binding:"omitempty,dive"`
	Attachments []AttachmentRequest `json:"attachments" binding:"omitempty,dive"`
	Items       []SupplierItemRequest `json:"items" binding:"omitempty,dive"`
}

// UpdateSupplierRequest represents a request to update a supplier. Supplied
// items are append-only and deliberately absent here; use the item endpoint.
type UpdateSupplierRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=200"`
	CompanyName *string `json:"company_name" binding:"omitempty,max=200"`
	Responsible *string `json:"responsible" binding:"omitempty,max=100"`
	CPF         *string `json:"cpf" binding:"omitempty,max=20"`
	CNPJ        *string `json:"cnpj" binding:"omitempty,max=25"`
	ForeignDoc  *string `json:"foreign_doc" binding:"omitempty,max=50"`
	Email       *string `json:"email" binding:"omitempty,email,max=200"`
	Phone       *string `json:"phone" binding:"omitempty,max=50"`
	Notes       *string `json:"notes"`

	Addresses   *[]AddressRequest    `json:"addresses" binding:"omitempty,dive"`
	Contacts    *[]ContactRequest    `json:"contacts" binding:"omitempty,dive"`
	Attachments *[]AttachmentRequest `json:"attachments" binding:"omitempty,dive"`
}

// SupplierItemRequest represents one supplied product/service line.
type SupplierItemRequest struct {
	Kind        string          `json:"kind" binding:"required,oneof=product service"`
	Description string          `json:"description" binding:"required,min=1,max=200"`
	Price       decimal.Decimal `json:"price"`
}

// SupplierListFilter carries the query-string filters accepted by the
// supplier listing endpoint.
type SupplierListFilter struct {
	Name      string     `form:"name"`
	Document  string     `form:"document"`
	Kind      string     `form:"kind" binding:"omitempty,oneof=individual organization foreign"`
	Status    string     `form:"status" binding:"omitempty,oneof=active inactive"`
	DateStart *time.Time `form:"date_start" time_format:"2006-01-02"`
	DateEnd   *time.Time `form:"date_end" time_format:"2006-01-02"`
	Page      int        `form:"page"`
	PageSize  int        `form:"page_size"`
	OrderBy   string     `form:"order_by"`
	OrderDir  string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

func (f *SupplierListFilter) toShared() shared.ListFilter {
	lf := shared.ListFilter{
		Name:      f.Name,
		Document:  f.Document,
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

// SupplierResponse represents a supplier in API responses
type SupplierResponse struct {
	ID          uuid.UUID `json:"id"`
	TenantID    uuid.UUID `json:"tenant_id"`
	Kind        string    `json:"kind"`
	Status      string    `json:"status"`
	Name        string    `json:"name"`
	CompanyName string    `json:"company_name,omitempty"`
	Responsible string    `json:"responsible,omitempty"`
	CPF         string    `json:"cpf,omitempty"`
	CNPJ        string    `json:"cnpj,omitempty"`
	ForeignDoc  string    `json:"foreign_doc,omitempty"`
	Document    string    `json:"document"`
	Email       string    `json:"email,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Notes       string    `json:"notes,omitempty"`

	Addresses   []partner.Address      `json:"addresses"`
	Contacts    []partner.Contact      `json:"contacts"`
	Attachments []partner.Attachment   `json:"attachments"`
	Items       []partner.SupplierItem `json:"items"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToSupplierResponse converts a supplier aggregate to a response DTO
func ToSupplierResponse(s *partner.Supplier) *SupplierResponse {
	return &SupplierResponse{
		ID:          s.ID,
		TenantID:    s.TenantID,
		Kind:        string(s.Kind),
		Status:      string(s.Status),
		Name:        s.Name,
		CompanyName: s.CompanyName,
		Responsible: s.Responsible,
		CPF:         s.CPF,
		CNPJ:        s.CNPJ,
		ForeignDoc:  s.ForeignDoc,
		Document:    s.Document(),
		Email:       s.Email,
		Phone:       s.Phone,
		Notes:       s.Notes,
		Addresses:   s.Addresses,
		Contacts:    s.Contacts,
		Attachments: s.Attachments,
		Items:       s.Items,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}
