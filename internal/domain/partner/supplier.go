package partner

import (
	"strings"

	"github.com/gestor/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SupplierKind is the discriminant for the supplier family; it mirrors the
// client discriminant.
type SupplierKind string

const (
	SupplierKindIndividual   SupplierKind = "individual"
	SupplierKindOrganization SupplierKind = "organization"
	SupplierKindForeign      SupplierKind = "foreign"
)

// SupplierStatus represents the status of a supplier
type SupplierStatus string

const (
	SupplierStatusActive   SupplierStatus = "active"
	SupplierStatusInactive SupplierStatus = "inactive"
)

// SupplierItemKind classifies a supplied line item.
type SupplierItemKind string

const (
	SupplierItemProduct SupplierItemKind = "product"
	SupplierItemService SupplierItemKind = "service"
)

// SupplierItem is a product or service line supplied by a supplier. Unlike
// the replace-on-update collections, items are append-only: updates to the
// supplier never delete them, only explicit appends add to the set.
type SupplierItem struct {
	ID          uuid.UUID        `json:"id"`
	Kind        SupplierItemKind `json:"kind"`
	Description string           `json:"description"`
	Price       decimal.Decimal  `json:"price"`
}

// NewSupplierItem creates a validated supplier line item.
func NewSupplierItem(kind SupplierItemKind, description string, price decimal.Decimal) (*SupplierItem, error) {
	switch kind {
	case SupplierItemProduct, SupplierItemService:
	default:
		return nil, shared.NewDomainError("INVALID_ITEM_KIND", "Item kind must be 'product' or 'service'")
	}
	if description == "" {
		return nil, shared.NewDomainError("INVALID_ITEM", "Item description cannot be empty")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_ITEM", "Item price cannot be negative")
	}
	return &SupplierItem{
		ID:          uuid.New(),
		Kind:        kind,
		Description: description,
		Price:       price,
	}, nil
}

// Supplier is the aggregate root for the supplier family.
type Supplier struct {
	shared.TenantAggregateRoot
	Kind        SupplierKind
	Status      SupplierStatus
	Name        string
	CompanyName string
	Responsible string
	CPF         string
	CNPJ        string
	ForeignDoc  string
	Email       string
	Phone       string
	Notes       string

	Addresses   []Address
	Contacts    []Contact
	Attachments []Attachment
	Items       []SupplierItem
}

// TableName returns the table name for GORM
func (Supplier) TableName() string {
	return "suppliers"
}

// NewSupplier creates a new supplier with required fields validated.
func NewSupplier(tenantID uuid.UUID, kind SupplierKind, name string) (*Supplier, error) {
	if err := validatePartnerKind(string(kind)); err != nil {
		return nil, err
	}
	if err := validatePartnerName(name); err != nil {
		return nil, err
	}

	return &Supplier{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Kind:                kind,
		Status:              SupplierStatusActive,
		Name:                name,
	}, nil
}

// SetDocuments assigns identity documents, normalizing domestic ones. The
// foreign document is trimmed but otherwise stored as submitted.
func (s *Supplier) SetDocuments(cpf, cnpj, foreignDoc string) {
	s.CPF = shared.NormalizeDocument(cpf)
	s.CNPJ = shared.NormalizeDocument(cnpj)
	s.ForeignDoc = strings.TrimSpace(foreignDoc)
	s.Touch()
}

// Document returns the populated identity document for this supplier's kind.
func (s *Supplier) Document() string {
	switch s.Kind {
	case SupplierKindIndividual:
		return s.CPF
	case SupplierKindOrganization:
		return s.CNPJ
	default:
		return s.ForeignDoc
	}
}

// SetCompany sets organization-specific companion fields.
func (s *Supplier) SetCompany(companyName, responsible string) {
	s.CompanyName = companyName
	s.Responsible = responsible
	s.Touch()
}

// SetContactInfo sets the direct contact fields.
func (s *Supplier) SetContactInfo(email, phone string) error {
	if email != "" {
		if err := validatePartnerEmail(email); err != nil {
			return err
		}
	}
	s.Email = email
	s.Phone = shared.NormalizeDocument(phone)
	s.Touch()
	return nil
}

// ReplaceAddresses swaps the entire address collection.
func (s *Supplier) ReplaceAddresses(addresses []Address) {
	s.Addresses = normalizeAddresses(addresses)
	s.Touch()
}

// ReplaceContacts swaps the entire contact collection.
func (s *Supplier) ReplaceContacts(contacts []Contact) {
	s.Contacts = normalizeContacts(contacts)
	s.Touch()
}

// ReplaceAttachments swaps the entire attachment collection.
func (s *Supplier) ReplaceAttachments(attachments []Attachment) {
	s.Attachments = normalizeAttachments(attachments)
	s.Touch()
}

// Activate activates the supplier
func (s *Supplier) Activate() {
	s.Status = SupplierStatusActive
	s.Touch()
}

// Deactivate performs the soft-delete status flip.
func (s *Supplier) Deactivate() {
	s.Status = SupplierStatusInactive
	s.Touch()
}

// IsActive returns true if the supplier is active
func (s *Supplier) IsActive() bool {
	return s.Status == SupplierStatusActive
}

// SetNotes sets free-form notes.
func (s *Supplier) SetNotes(notes string) {
	s.Notes = notes
	s.Touch()
}
