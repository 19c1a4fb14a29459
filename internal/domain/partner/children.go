package partner

import (
	"github.com/gestor/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// AddressType classifies an address within a partner's address book.
type AddressType string

const (
	AddressTypeMain     AddressType = "main"
	AddressTypeBilling  AddressType = "billing"
	AddressTypeShipping AddressType = "shipping"
	AddressTypeOther    AddressType = "other"
)

// Address is a child record owned exclusively by one partner root. It has no
// independent lifecycle: addresses are created with the parent, wholesale
// replaced on update, and removed when the parent is hard-deleted.
type Address struct {
	ID         uuid.UUID   `json:"id"`
	Type       AddressType `json:"type"`
	Street     string      `json:"street"`
	Number     string      `json:"number"`
	Complement string      `json:"complement"`
	District   string      `json:"district"`
	City       string      `json:"city"`
	State      string      `json:"state"`
	PostalCode string      `json:"postal_code"`
	Country    string      `json:"country"`
	Principal  bool        `json:"principal"`
}

// ContactType classifies a contact entry.
type ContactType string

const (
	ContactTypePhone    ContactType = "phone"
	ContactTypeEmail    ContactType = "email"
	ContactTypeWhatsapp ContactType = "whatsapp"
	ContactTypeFax      ContactType = "fax"
	ContactTypeOther    ContactType = "other"
)

// Contact is a typed contact entry owned by one partner root.
type Contact struct {
	ID        uuid.UUID   `json:"id"`
	Type      ContactType `json:"type"`
	Name      string      `json:"name"`
	Value     string      `json:"value"`
	Principal bool        `json:"principal"`
}

// IsPhoneLike reports whether the contact value is a phone number and
// therefore stored digits-only.
func (t ContactType) IsPhoneLike() bool {
	switch t {
	case ContactTypePhone, ContactTypeWhatsapp, ContactTypeFax:
		return true
	}
	return false
}

// NormalizeValue returns the contact value in storage form. Phone-like
// values keep digits only; everything else is stored as submitted.
func (c Contact) NormalizeValue() string {
	if c.Type.IsPhoneLike() {
		return shared.NormalizeDocument(c.Value)
	}
	return c.Value
}

// Attachment is a named file reference owned by one partner root. The
// payload itself lives in object storage under StorageKey.
type Attachment struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	StorageKey  string    `json:"storage_key"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
}

// normalizeAddresses assigns IDs where missing and enforces the principal
// flag invariant: at most one address may be principal. If several are
// flagged, only the first keeps the flag.
func normalizeAddresses(addresses []Address) []Address {
	seenPrincipal := false
	out := make([]Address, len(addresses))
	for i, a := range addresses {
		if a.ID == uuid.Nil {
			a.ID = uuid.New()
		}
		if a.Principal {
			if seenPrincipal {
				a.Principal = false
			}
			seenPrincipal = true
		}
		if a.Type == "" {
			a.Type = AddressTypeMain
		}
		out[i] = a
	}
	return out
}

// normalizeContacts assigns IDs, normalizes phone-like values to digits and
// enforces the single-principal invariant.
func normalizeContacts(contacts []Contact) []Contact {
	seenPrincipal := false
	out := make([]Contact, len(contacts))
	for i, c := range contacts {
		if c.ID == uuid.Nil {
			c.ID = uuid.New()
		}
		c.Value = c.NormalizeValue()
		if c.Principal {
			if seenPrincipal {
				c.Principal = false
			}
			seenPrincipal = true
		}
		if c.Type == "" {
			c.Type = ContactTypeOther
		}
		out[i] = c
	}
	return out
}

// normalizeAttachments assigns IDs where missing.
func normalizeAttachments(attachments []Attachment) []Attachment {
	out := make([]Attachment, len(attachments))
	for i, a := range attachments {
		if a.ID == uuid.Nil {
			a.ID = uuid.New()
		}
		out[i] = a
	}
	return out
}
