package models

import (
	"github.com/gestor/backend/internal/domain/partner"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Owner kinds for the shared partner child tables. Clients and suppliers
// keep their children in the same tables, discriminated by owner kind.
const (
	OwnerKindClient   = "client"
	OwnerKindSupplier = "supplier"
)

// ClientModel is the persistence model for the Client aggregate root.
type ClientModel struct {
	TenantAggregateModel
	Kind        partner.ClientKind   `gorm:"type:varchar(20);not null;default:'individual';index"`
	Status      partner.ClientStatus `gorm:"type:varchar(20);not null;default:'active';index"`
	Name        string               `gorm:"type:varchar(200);not null"`
	CompanyName string               `gorm:"type:varchar(200)"`
	Responsible string               `gorm:"type:varchar(200)"`
	CPF         string               `gorm:"type:varchar(11);index"`
	CNPJ        string               `gorm:"type:varchar(14);index"`
	ForeignDoc  string               `gorm:"type:varchar(50);index"`
	Email       string               `gorm:"type:varchar(200)"`
	Phone       string               `gorm:"type:varchar(20)"`
	Notes       string               `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (ClientModel) TableName() string {
	return "clients"
}

// ToDomain converts the persistence model to a domain Client aggregate.
// Child collections are loaded separately and attached by the repository.
func (m *ClientModel) ToDomain() *partner.Client {
	client := &partner.Client{
		Kind:        m.Kind,
		Status:      m.Status,
		Name:        m.Name,
		CompanyName: m.CompanyName,
		Responsible: m.Responsible,
		CPF:         m.CPF,
		CNPJ:        m.CNPJ,
		ForeignDoc:  m.ForeignDoc,
		Email:       m.Email,
		Phone:       m.Phone,
		Notes:       m.Notes,
	}
	m.PopulateTenantAggregateRoot(&client.TenantAggregateRoot)
	return client
}

// FromDomain populates the persistence model from a domain Client aggregate.
func (m *ClientModel) FromDomain(c *partner.Client) {
	m.FromDomainTenantAggregateRoot(c.TenantAggregateRoot)
	m.Kind = c.Kind
	m.Status = c.Status
	m.Name = c.Name
	m.CompanyName = c.CompanyName
	m.Responsible = c.Responsible
	m.CPF = c.CPF
	m.CNPJ = c.CNPJ
	m.ForeignDoc = c.ForeignDoc
	m.Email = c.Email
	m.Phone = c.Phone
	m.Notes = c.Notes
}

// ClientModelFromDomain creates a new persistence model from a domain Client.
func ClientModelFromDomain(c *partner.Client) *ClientModel {
	m := &ClientModel{}
	m.FromDomain(c)
	return m
}

// SupplierModel is the persistence model for the Supplier aggregate root.
type SupplierModel struct {
	TenantAggregateModel
	Kind        partner.SupplierKind   `gorm:"type:varchar(20);not null;default:'individual';index"`
	Status      partner.SupplierStatus `gorm:"type:varchar(20);not null;default:'active';index"`
	Name        string                 `gorm:"type:varchar(200);not null"`
	CompanyName string                 `gorm:"type:varchar(200)"`
	Responsible string                 `gorm:"type:varchar(200)"`
	CPF         string                 `gorm:"type:varchar(11);index"`
	CNPJ        string                 `gorm:"type:varchar(14);index"`
	ForeignDoc  string                 `gorm:"type:varchar(50);index"`
	Email       string                 `gorm:"type:varchar(200)"`
	Phone       string                 `gorm:"type:varchar(20)"`
	Notes       string                 `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (SupplierModel) TableName() string {
	return "suppliers"
}

// ToDomain converts the persistence model to a domain Supplier aggregate.
func (m *SupplierModel) ToDomain() *partner.Supplier {
	supplier := &partner.Supplier{
		Kind:        m.Kind,
		Status:      m.Status,
		Name:        m.Name,
		CompanyName: m.CompanyName,
		Responsible: m.Responsible,
		CPF:         m.CPF,
		CNPJ:        m.CNPJ,
		ForeignDoc:  m.ForeignDoc,
		Email:       m.Email,
		Phone:       m.Phone,
		Notes:       m.Notes,
	}
	m.PopulateTenantAggregateRoot(&supplier.TenantAggregateRoot)
	return supplier
}

// FromDomain populates the persistence model from a domain Supplier aggregate.
func (m *SupplierModel) FromDomain(s *partner.Supplier) {
	m.FromDomainTenantAggregateRoot(s.TenantAggregateRoot)
	m.Kind = s.Kind
	m.Status = s.Status
	m.Name = s.Name
	m.CompanyName = s.CompanyName
	m.Responsible = s.Responsible
	m.CPF = s.CPF
	m.CNPJ = s.CNPJ
	m.ForeignDoc = s.ForeignDoc
	m.Email = s.Email
	m.Phone = s.Phone
	m.Notes = s.Notes
}

// SupplierModelFromDomain creates a new persistence model from a domain Supplier.
func SupplierModelFromDomain(s *partner.Supplier) *SupplierModel {
	m := &SupplierModel{}
	m.FromDomain(s)
	return m
}

// PartnerAddressModel is the persistence model for address child rows of
// both partner families.
type PartnerAddressModel struct {
	TenantChildModel
	OwnerID    uuid.UUID           `gorm:"type:uuid;not null;index:idx_partner_address_owner"`
	OwnerKind  string              `gorm:"type:varchar(20);not null;index:idx_partner_address_owner"`
	Type       partner.AddressType `gorm:"type:varchar(20);not null"`
	Street     string              `gorm:"type:varchar(200)"`
	Number     string              `gorm:"type:varchar(20)"`
	Complement string              `gorm:"type:varchar(100)"`
	District   string              `gorm:"type:varchar(100)"`
	City       string              `gorm:"type:varchar(100)"`
	State      string              `gorm:"type:varchar(50)"`
	PostalCode string              `gorm:"type:varchar(20)"`
	Country    string              `gorm:"type:varchar(100)"`
	Principal  bool                `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (PartnerAddressModel) TableName() string {
	return "partner_addresses"
}

// ToDomain converts the persistence model to a domain Address.
func (m *PartnerAddressModel) ToDomain() partner.Address {
	return partner.Address{
		ID:         m.ID,
		Type:       m.Type,
		Street:     m.Street,
		Number:     m.Number,
		Complement: m.Complement,
		District:   m.District,
		City:       m.City,
		State:      m.State,
		PostalCode: m.PostalCode,
		Country:    m.Country,
		Principal:  m.Principal,
	}
}

// AddressModelsFromDomain maps a domain address collection onto child rows
// owned by the given root.
func AddressModelsFromDomain(tenantID, ownerID uuid.UUID, ownerKind string, addresses []partner.Address) []PartnerAddressModel {
	out := make([]PartnerAddressModel, len(addresses))
	for i, a := range addresses {
		out[i] = PartnerAddressModel{
			TenantChildModel: TenantChildModel{ID: a.ID, TenantID: tenantID},
			OwnerID:          ownerID,
			OwnerKind:        ownerKind,
			Type:             a.Type,
			Street:           a.Street,
			Number:           a.Number,
			Complement:       a.Complement,
			District:         a.District,
			City:             a.City,
			State:            a.State,
			PostalCode:       a.PostalCode,
			Country:          a.Country,
			Principal:        a.Principal,
		}
	}
	return out
}

// PartnerContactModel is the persistence model for contact child rows.
type PartnerContactModel struct {
	TenantChildModel
	OwnerID   uuid.UUID           `gorm:"type:uuid;not null;index:idx_partner_contact_owner"`
	OwnerKind string              `gorm:"type:varchar(20);not null;index:idx_partner_contact_owner"`
	Type      partner.ContactType `gorm:"type:varchar(20);not null"`
	Name      string              `gorm:"type:varchar(100)"`
	Value     string              `gorm:"type:varchar(200);not null"`
	Principal bool                `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (PartnerContactModel) TableName() string {
	return "partner_contacts"
}

// ToDomain converts the persistence model to a domain Contact.
func (m *PartnerContactModel) ToDomain() partner.Contact {
	return partner.Contact{
		ID:        m.ID,
		Type:      m.Type,
		Name:      m.Name,
		Value:     m.Value,
		Principal: m.Principal,
	}
}

// ContactModelsFromDomain maps a domain contact collection onto child rows.
func ContactModelsFromDomain(tenantID, ownerID uuid.UUID, ownerKind string, contacts []partner.Contact) []PartnerContactModel {
	out := make([]PartnerContactModel, len(contacts))
	for i, c := range contacts {
		out[i] = PartnerContactModel{
			TenantChildModel: TenantChildModel{ID: c.ID, TenantID: tenantID},
			OwnerID:          ownerID,
			OwnerKind:        ownerKind,
			Type:             c.Type,
			Name:             c.Name,
			Value:            c.Value,
			Principal:        c.Principal,
		}
	}
	return out
}

// PartnerAttachmentModel is the persistence model for attachment child rows.
// Only the file reference lives here; the payload is in object storage.
type PartnerAttachmentModel struct {
	TenantChildModel
	OwnerID     uuid.UUID `gorm:"type:uuid;not null;index:idx_partner_attachment_owner"`
	OwnerKind   string    `gorm:"type:varchar(20);not null;index:idx_partner_attachment_owner"`
	Name        string    `gorm:"type:varchar(200);not null"`
	StorageKey  string    `gorm:"type:varchar(500);not null"`
	ContentType string    `gorm:"type:varchar(100)"`
	Size        int64     `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (PartnerAttachmentModel) TableName() string {
	return "partner_attachments"
}

// ToDomain converts the persistence model to a domain Attachment.
func (m *PartnerAttachmentModel) ToDomain() partner.Attachment {
	return partner.Attachment{
		ID:          m.ID,
		Name:        m.Name,
		StorageKey:  m.StorageKey,
		ContentType: m.ContentType,
		Size:        m.Size,
	}
}

// AttachmentModelsFromDomain maps a domain attachment collection onto child rows.
func AttachmentModelsFromDomain(tenantID, ownerID uuid.UUID, ownerKind string, attachments []partner.Attachment) []PartnerAttachmentModel {
	out := make([]PartnerAttachmentModel, len(attachments))
	for i, a := range attachments {
		out[i] = PartnerAttachmentModel{
			TenantChildModel: TenantChildModel{ID: a.ID, TenantID: tenantID},
			OwnerID:          ownerID,
			OwnerKind:        ownerKind,
			Name:             a.Name,
			StorageKey:       a.StorageKey,
			ContentType:      a.ContentType,
			Size:             a.Size,
		}
	}
	return out
}

// SupplierItemModel is the persistence model for supplied line items. The
// collection is append-only: supplier updates never touch these rows.
type SupplierItemModel struct {
	TenantChildModel
	SupplierID  uuid.UUID                `gorm:"type:uuid;not null;index"`
	Kind        partner.SupplierItemKind `gorm:"type:varchar(20);not null"`
	Description string                   `gorm:"type:varchar(200);not null"`
	Price       decimal.Decimal          `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (SupplierItemModel) TableName() string {
	return "supplier_items"
}

// ToDomain converts the persistence model to a domain SupplierItem.
func (m *SupplierItemModel) ToDomain() partner.SupplierItem {
	return partner.SupplierItem{
		ID:          m.ID,
		Kind:        m.Kind,
		Description: m.Description,
		Price:       m.Price,
	}
}

// SupplierItemModelFromDomain maps a domain item onto its child row.
func SupplierItemModelFromDomain(tenantID, supplierID uuid.UUID, item *partner.SupplierItem) *SupplierItemModel {
	return &SupplierItemModel{
		TenantChildModel: TenantChildModel{ID: item.ID, TenantID: tenantID},
		SupplierID:       supplierID,
		Kind:             item.Kind,
		Description:      item.Description,
		Price:            item.Price,
	}
}
