package partner

import (
	"context"

	"github.com/gestor/backend/internal/domain/partner"
	"github.com/gestor/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ClientService handles client-related business operations
type ClientService struct {
	clientRepo partner.ClientRepository
}

// NewClientService creates a new client service
func NewClientService(clientRepo partner.ClientRepository) *ClientService {
	return &ClientService{
		clientRepo: clientRepo,
	}
}

// CheckDuplicateDocument reports whether another record in the tenant holds
// the same identity document. It runs against the repository before any
// write transaction opens. An empty document never counts as a duplicate.
func (s *ClientService) CheckDuplicateDocument(ctx context.Context, tenantID uuid.UUID, document string, excludeID uuid.UUID) error {
	if document == "" {
		return nil
	}
	exists, err := s.clientRepo.DocumentExists(ctx, tenantID, document, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return shared.ErrDuplicateDocument
	}
	return nil
}

// Create creates a new client after rule validation and duplicate checking.
func (s *ClientService) Create(ctx context.Context, tenantID uuid.UUID, req *CreateClientRequest) (*ClientResponse, error) {
	client, err := partner.NewClient(tenantID, partner.ClientKind(req.Kind), req.Name)
	if err != nil {
		return nil, err
	}

	client.SetDocuments(req.CPF, req.CNPJ, req.ForeignDoc)
	client.SetCompany(req.CompanyName, req.Responsible)
	if err := client.SetContactInfo(req.Email, req.Phone); err != nil {
		return nil, err
	}
	client.SetNotes(req.Notes)
	client.ReplaceAddresses(toDomainAddresses(req.Addresses))
	client.ReplaceContacts(toDomainContacts(req.Contacts))
	client.ReplaceAttachments(toDomainAttachments(req.Attachments))

	if failures := validateClient(client); len(failures) > 0 {
		return nil, shared.NewValidationError(failures)
	}

	if err := s.CheckDuplicateDocument(ctx, tenantID, client.Document(), uuid.Nil); err != nil {
		return nil, err
	}

	if err := s.clientRepo.Create(ctx, client); err != nil {
		return nil, err
	}

	return ToClientResponse(client), nil
}

// GetByID retrieves a client by ID
func (s *ClientService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*ClientResponse, error) {
	client, err := s.clientRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return ToClientResponse(client), nil
}

// GetByDocument retrieves a client by its identity document. The repository
// normalizes the submitted value, so formatting never affects the match.
func (s *ClientService) GetByDocument(ctx context.Context, tenantID uuid.UUID, document string) (*ClientResponse, error) {
	if document == "" {
		return nil, shared.ErrInvalidInput
	}
	client, err := s.clientRepo.FindByDocument(ctx, tenantID, document)
	if err != nil {
		return nil, err
	}
	return ToClientResponse(client), nil
}

// List retrieves clients with filtering and pagination
func (s *ClientService) List(ctx context.Context, tenantID uuid.UUID, filter *ClientListFilter) (*shared.Paginated[ClientResponse], error) {
	lf := filter.toShared()

	clients, total, err := s.clientRepo.List(ctx, tenantID, lf)
	if err != nil {
		return nil, err
	}

	responses := make([]ClientResponse, len(clients))
	for i := range clients {
		responses[i] = *ToClientResponse(&clients[i])
	}

	page := shared.NewPaginated(responses, total, lf.Page, lf.PageSize)
	return &page, nil
}

// Update applies a partial update to the root fields and wholesale-replaces
// any child collection present in the request. An omitted collection is left
// unchanged; a present empty one removes every stored child of that type.
func (s *ClientService) Update(ctx context.Context, tenantID, id uuid.UUID, req *UpdateClientRequest) (*ClientResponse, error) {
	client, err := s.clientRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		client.Name = *req.Name
		client.Touch()
	}
	if req.CompanyName != nil || req.Responsible != nil {
		companyName := client.CompanyName
		responsible := client.Responsible
		if req.CompanyName != nil {
			companyName = *req.CompanyName
		}
		if req.Responsible != nil {
			responsible = *req.Responsible
		}
		client.SetCompany(companyName, responsible)
	}
	if req.CPF != nil || req.CNPJ != nil || req.ForeignDoc != nil {
		cpf := client.CPF
		cnpj := client.CNPJ
		foreignDoc := client.ForeignDoc
		if req.CPF != nil {
			cpf = *req.CPF
		}
		if req.CNPJ != nil {
			cnpj = *req.CNPJ
		}
		if req.ForeignDoc != nil {
			foreignDoc = *req.ForeignDoc
		}
		client.SetDocuments(cpf, cnpj, foreignDoc)
	}
	if req.Email != nil || req.Phone != nil {
		email := client.Email
		phone := client.Phone
		if req.Email != nil {
			email = *req.Email
		}
		if req.Phone != nil {
			phone = *req.Phone
		}
		if err := client.SetContactInfo(email, phone); err != nil {
			return nil, err
		}
	}
	if req.Notes != nil {
		client.SetNotes(*req.Notes)
	}

	if req.Addresses != nil {
		client.ReplaceAddresses(toDomainAddresses(*req.Addresses))
	}
	if req.Contacts != nil {
		client.ReplaceContacts(toDomainContacts(*req.Contacts))
	}
	if req.Attachments != nil {
		client.ReplaceAttachments(toDomainAttachments(*req.Attachments))
	}

	if failures := validateClient(client); len(failures) > 0 {
		return nil, shared.NewValidationError(failures)
	}

	if err := s.CheckDuplicateDocument(ctx, tenantID, client.Document(), client.ID); err != nil {
		return nil, err
	}

	if err := s.clientRepo.Update(ctx, client); err != nil {
		return nil, err
	}

	return ToClientResponse(client), nil
}

// SetStatus activates or deactivates a client
func (s *ClientService) SetStatus(ctx context.Context, tenantID, id uuid.UUID, status string) error {
	switch partner.ClientStatus(status) {
	case partner.ClientStatusActive, partner.ClientStatusInactive:
	default:
		return shared.ErrInvalidInput
	}
	return s.clientRepo.SetStatus(ctx, tenantID, id, partner.ClientStatus(status))
}

// Delete removes a client. Soft deletion flips the status to inactive; hard
// deletion removes the root and every child collection.
func (s *ClientService) Delete(ctx context.Context, tenantID, id uuid.UUID, hard bool) error {
	return s.clientRepo.Delete(ctx, tenantID, id, hard)
}

func validateClient(c *partner.Client) []string {
	return validatePartnerFields(partnerFields{
		Kind:        string(c.Kind),
		CPF:         c.CPF,
		CNPJ:        c.CNPJ,
		ForeignDoc:  c.ForeignDoc,
		CompanyName: c.CompanyName,
		Responsible: c.Responsible,
	})
}
