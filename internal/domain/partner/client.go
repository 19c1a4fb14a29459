package partner

import (
	"regexp"
	"strings"
	"time"

	"github.com/gestor/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ClientKind is the discriminant selecting which document and companion
// fields apply to a client.
type ClientKind string

const (
	ClientKindIndividual   ClientKind = "individual"   // natural person, identified by CPF
	ClientKindOrganization ClientKind = "organization" // company, identified by CNPJ
	ClientKindForeign      ClientKind = "foreign"      // foreign entity, free-form document
)

// ClientStatus represents the status of a client
type ClientStatus string

const (
	ClientStatusActive   ClientStatus = "active"
	ClientStatusInactive ClientStatus = "inactive"
)

// Client is the aggregate root for the client family. It exclusively owns
// its addresses, contacts and attachments; those collections are persisted
// and replaced with the root as one unit.
type Client struct {
	shared.TenantAggregateRoot
	Kind        ClientKind
	Status      ClientStatus
	Name        string
	CompanyName string // organizations only
	Responsible string // organizations only
	CPF         string // individuals, digits only
	CNPJ        string // organizations, digits only
	ForeignDoc  string // foreign entities
	Email       string
	Phone       string // digits only
	Notes       string

	Addresses   []Address
	Contacts    []Contact
	Attachments []Attachment
}

// TableName returns the table name for GORM
func (Client) TableName() string {
	return "clients"
}

// NewClient creates a new client with required fields validated.
func NewClient(tenantID uuid.UUID, kind ClientKind, name string) (*Client, error) {
	if err := validatePartnerKind(string(kind)); err != nil {
		return nil, err
	}
	if err := validatePartnerName(name); err != nil {
		return nil, err
	}

	return &Client{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Kind:                kind,
		Status:              ClientStatusActive,
		Name:                name,
	}, nil
}

// SetDocuments assigns the identity documents, normalizing domestic ones to
// digits. The foreign document is kept verbatim apart from trimming, so it
// is stored in the same form lookups compare it in. Which field is
// mandatory depends on the discriminant and is enforced by the validation
// service, not here.
func (c *Client) SetDocuments(cpf, cnpj, foreignDoc string) {
	c.CPF = shared.NormalizeDocument(cpf)
	c.CNPJ = shared.NormalizeDocument(cnpj)
	c.ForeignDoc = strings.TrimSpace(foreignDoc)
	c.Touch()
}

// Document returns the populated identity document for this client's kind.
func (c *Client) Document() string {
	switch c.Kind {
	case ClientKindIndividual:
		return c.CPF
	case ClientKindOrganization:
		return c.CNPJ
	default:
		return c.ForeignDoc
	}
}

// SetCompany sets organization-specific companion fields.
func (c *Client) SetCompany(companyName, responsible string) {
	c.CompanyName = companyName
	c.Responsible = responsible
	c.Touch()
}

// SetContactInfo sets the direct contact fields. The phone is normalized to
// digits only.
func (c *Client) SetContactInfo(email, phone string) error {
	if email != "" {
		if err := validatePartnerEmail(email); err != nil {
			return err
		}
	}
	c.Email = email
	c.Phone = shared.NormalizeDocument(phone)
	c.Touch()
	return nil
}

// ReplaceAddresses swaps the entire address collection. Submitting an empty
// slice removes every stored address.
func (c *Client) ReplaceAddresses(addresses []Address) {
	c.Addresses = normalizeAddresses(addresses)
	c.Touch()
}

// ReplaceContacts swaps the entire contact collection.
func (c *Client) ReplaceContacts(contacts []Contact) {
	c.Contacts = normalizeContacts(contacts)
	c.Touch()
}

// ReplaceAttachments swaps the entire attachment collection.
func (c *Client) ReplaceAttachments(attachments []Attachment) {
	c.Attachments = normalizeAttachments(attachments)
	c.Touch()
}

// Activate activates the client
func (c *Client) Activate() {
	c.Status = ClientStatusActive
	c.Touch()
}

// Deactivate performs the soft-delete status flip.
func (c *Client) Deactivate() {
	c.Status = ClientStatusInactive
	c.Touch()
}

// IsActive returns true if the client is active
func (c *Client) IsActive() bool {
	return c.Status == ClientStatusActive
}

// IsOrganization returns true for organization clients.
func (c *Client) IsOrganization() bool {
	return c.Kind == ClientKindOrganization
}

// SetNotes sets free-form notes.
func (c *Client) SetNotes(notes string) {
	c.Notes = notes
	c.UpdatedAt = time.Now()
}

// Shared partner validation helpers

var partnerEmailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func validatePartnerKind(kind string) error {
	switch kind {
	case string(ClientKindIndividual), string(ClientKindOrganization), string(ClientKindForeign):
		return nil
	default:
		return shared.NewDomainError("INVALID_KIND", "Kind must be 'individual', 'organization' or 'foreign'")
	}
}

func validatePartnerName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Name cannot exceed 200 characters")
	}
	return nil
}

func validatePartnerEmail(email string) error {
	if len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}
	if !partnerEmailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	return nil
}
