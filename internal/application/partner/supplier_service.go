package partner

import (
	"context"

	"github.com/gestor/backend/internal/domain/partner"
	"github.com/gestor/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// SupplierService handles supplier-related business operations
type SupplierService struct {
	supplierRepo partner.SupplierRepository
}

// NewSupplierService creates a new supplier service
func NewSupplierService(supplierRepo partner.SupplierRepository) *SupplierService {
	return &SupplierService{
		supplierRepo: supplierRepo,
	}
}

// CheckDuplicateDocument reports whether another supplier in the tenant
// holds the same identity document. Runs before any write transaction.
func (s *SupplierService) CheckDuplicateDocument(ctx context.Context, tenantID uuid.UUID, document string, excludeID uuid.UUID) error {
	if document == "" {
		return nil
	}
	exists, err := s.supplierRepo.DocumentExists(ctx, tenantID, document, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return shared.ErrDuplicateDocument
	}
	return nil
}

// Create creates a new supplier after rule validation and duplicate
// checking. Supplied items in the payload become the initial item set.
func (s *SupplierService) Create(ctx context.Context, tenantID uuid.UUID, req *CreateSupplierRequest) (*SupplierResponse, error) {
	supplier, err := partner.NewSupplier(tenantID, partner.SupplierKind(req.Kind), req.Name)
	if err != nil {
		return nil, err
	}

	supplier.SetDocuments(req.CPF, req.CNPJ, req.ForeignDoc)
	supplier.SetCompany(req.CompanyName, req.Responsible)
	if err := supplier.SetContactInfo(req.Email, req.Phone); err != nil {
		return nil, err
	}
	supplier.SetNotes(req.Notes)
	supplier.ReplaceAddresses(toDomainAddresses(req.Addresses))
	supplier.ReplaceContacts(toDomainContacts(req.Contacts))
	supplier.ReplaceAttachments(toDomainAttachments(req.Attachments))

	for _, itemReq := range req.Items {
		item, err := partner.NewSupplierItem(partner.SupplierItemKind(itemReq.Kind), itemReq.Description, itemReq.Price)
		if err != nil {
			return nil, err
		}
		supplier.Items = append(supplier.Items, *item)
	}

	if failures := validateSupplier(supplier); len(failures) > 0 {
		return nil, shared.NewValidationError(failures)
	}

	if err := s.CheckDuplicateDocument(ctx, tenantID, supplier.Document(), uuid.Nil); err != nil {
		return nil, err
	}

	if err := s.supplierRepo.Create(ctx, supplier); err != nil {
		return nil, err
	}

	return ToSupplierResponse(supplier), nil
}

// GetByID retrieves a supplier by ID
func (s *SupplierService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return ToSupplierResponse(supplier), nil
}

// GetByDocument retrieves a supplier by its identity document.
func (s *SupplierService) GetByDocument(ctx context.Context, tenantID uuid.UUID, document string) (*SupplierResponse, error) {
	if document == "" {
		return nil, shared.ErrInvalidInput
	}
	supplier, err := s.supplierRepo.FindByDocument(ctx, tenantID, document)
	if err != nil {
		return nil, err
	}
	return ToSupplierResponse(supplier), nil
}

// List retrieves suppliers with filtering and pagination
func (s *SupplierService) List(ctx context.Context, tenantID uuid.UUID, filter *SupplierListFilter) (*shared.Paginated[SupplierResponse], error) {
	lf := filter.toShared()

	suppliers, total, err := s.supplierRepo.List(ctx, tenantID, lf)
	if err != nil {
		return nil, err
	}

	responses := make([]SupplierResponse, len(suppliers))
	for i := range suppliers {
		responses[i] = *ToSupplierResponse(&suppliers[i])
	}

	page := shared.NewPaginated(responses, total, lf.Page, lf.PageSize)
	return &page, nil
}

// Update applies a partial update to the root fields and wholesale-replaces
// any child collection present in the request. Supplied items are not
// touched here; they only grow through AppendItem.
func (s *SupplierService) Update(ctx context.Context, tenantID, id uuid.UUID, req *UpdateSupplierRequest) (*SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		supplier.Name = *req.Name
		supplier.Touch()
	}
	if req.CompanyName != nil || req.Responsible != nil {
		companyName := supplier.CompanyName
		responsible := supplier.Responsible
		if req.CompanyName != nil {
			companyName = *req.CompanyName
		}
		if req.Responsible != nil {
			responsible = *req.Responsible
		}
		supplier.SetCompany(companyName, responsible)
	}
	if req.CPF != nil || req.CNPJ != nil || req.ForeignDoc != nil {
		cpf := supplier.CPF
		cnpj := supplier.CNPJ
		foreignDoc := supplier.ForeignDoc
		if req.CPF != nil {
			cpf = *req.CPF
		}
		if req.CNPJ != nil {
			cnpj = *req.CNPJ
		}
		if req.ForeignDoc != nil {
			foreignDoc = *req.ForeignDoc
		}
		supplier.SetDocuments(cpf, cnpj, foreignDoc)
	}
	if req.Email != nil || req.Phone != nil {
		email := supplier.Email
		phone := supplier.Phone
		if req.Email != nil {
			email = *req.Email
		}
		if req.Phone != nil {
			phone = *req.Phone
		}
		if err := supplier.SetContactInfo(email, phone); err != nil {
			return nil, err
		}
	}
	if req.Notes != nil {
		supplier.SetNotes(*req.Notes)
	}

	if req.Addresses != nil {
		supplier.ReplaceAddresses(toDomainAddresses(*req.Addresses))
	}
	if req.Contacts != nil {
		supplier.ReplaceContacts(toDomainContacts(*req.Contacts))
	}
	if req.Attachments != nil {
		supplier.ReplaceAttachments(toDomainAttachments(*req.Attachments))
	}

	if failures := validateSupplier(supplier); len(failures) > 0 {
		return nil, shared.NewValidationError(failures)
	}

	if err := s.CheckDuplicateDocument(ctx, tenantID, supplier.Document(), supplier.ID); err != nil {
		return nil, err
	}

	if err := s.supplierRepo.Update(ctx, supplier); err != nil {
		return nil, err
	}

	return ToSupplierResponse(supplier), nil
}

// AppendItem adds one supplied product/service line to an existing supplier.
func (s *SupplierService) AppendItem(ctx context.Context, tenantID, supplierID uuid.UUID, req *SupplierItemRequest) (*partner.SupplierItem, error) {
	item, err := partner.NewSupplierItem(partner.SupplierItemKind(req.Kind), req.Description, req.Price)
	if err != nil {
		return nil, err
	}

	if err := s.supplierRepo.AppendItem(ctx, tenantID, supplierID, item); err != nil {
		return nil, err
	}

	return item, nil
}

// SetStatus activates or deactivates a supplier
func (s *SupplierService) SetStatus(ctx context.Context, tenantID, id uuid.UUID, status string) error {
	switch partner.SupplierStatus(status) {
	case partner.SupplierStatusActive, partner.SupplierStatusInactive:
	default:
		return shared.ErrInvalidInput
	}
	return s.supplierRepo.SetStatus(ctx, tenantID, id, partner.SupplierStatus(status))
}

// Delete removes a supplier. Soft deletion flips the status to inactive;
// hard deletion removes the root, child collections and supplied items.
func (s *SupplierService) Delete(ctx context.Context, tenantID, id uuid.UUID, hard bool) error {
	return s.supplierRepo.Delete(ctx, tenantID, id, hard)
}

func validateSupplier(s *partner.Supplier) []string {
	return validatePartnerFields(partnerFields{
		Kind:        string(s.Kind),
		CPF:         s.CPF,
		CNPJ:        s.CNPJ,
		ForeignDoc:  s.ForeignDoc,
		CompanyName: s.CompanyName,
		Responsible: s.Responsible,
	})
}
