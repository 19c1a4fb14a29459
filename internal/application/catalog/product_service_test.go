package catalog

import (
	"context"
	"testing"

	"github.com/gestor/backend/internal/domain/catalog"
	"github.com/gestor/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockProductRepository is a mock implementation of ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByBarcode(ctx context.Context, tenantID uuid.UUID, barcode string) (*catalog.Product, error) {
	args := m.Called(ctx, tenantID, barcode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) SKUExists(ctx context.Context, tenantID uuid.UUID, sku string, excludeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, tenantID, sku, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) List(ctx context.Context, tenantID uuid.UUID, filter shared.ListFilter) ([]catalog.Product, int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]catalog.Product), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductRepository) SetStatus(ctx context.Context, tenantID, id uuid.UUID, status catalog.ProductStatus) error {
	args := m.Called(ctx, tenantID, id, status)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, tenantID, id uuid.UUID, hard bool) error {
	args := m.Called(ctx, tenantID, id, hard)
	return args.Error(0)
}

func TestProductService_Create(t *testing.T) {
	repo := new(MockProductRepository)
	service := NewProductService(repo)
	tenantID := uuid.New()

	repo.On("SKUExists", mock.Anything, tenantID, "SKU-001", uuid.Nil).Return(false, nil)

	var saved *catalog.Product
	repo.On("Create", mock.Anything, mock.AnythingOfType("*catalog.Product")).Run(func(args mock.Arguments) {
		saved = args.Get(1).(*catalog.Product)
	}).Return(nil)

	sale := decimal.NewFromFloat(19.90)
	resp, err := service.Create(context.Background(), tenantID, &CreateProductRequest{
		Kind:      "product",
		Name:      "Caderno 96 folhas",
		SKU:       "SKU-001",
		Barcode:   "7891234567895",
		SalePrice: &sale,
		Images: []ProductImageRequest{
			{StorageKey: "tenants/x/a.png", Principal: true},
			{StorageKey: "tenants/x/b.png", Principal: true},
		},
		Conversions: []UnitConversionRequest{
			{Unit: "cx", Ratio: decimal.NewFromInt(12), Barcode: "7891234567901"},
		},
	})

	assert.NoError(t, err)
	assert.Equal(t, "un", resp.Unit, "unit defaults when not submitted")
	assert.Equal(t, 0, saved.Images[0].Position)
	assert.Equal(t, 1, saved.Images[1].Position)
	assert.True(t, saved.Images[0].Principal)
	assert.False(t, saved.Images[1].Principal, "only the first flagged image keeps principal")
	repo.AssertExpectations(t)
}

func TestProductService_Create_KitRequiresComponents(t *testing.T) {
	repo := new(MockProductRepository)
	service := NewProductService(repo)

	_, err := service.Create(context.Background(), uuid.New(), &CreateProductRequest{
		Kind: "kit",
		Name: "Kit escolar",
	})

	var vErr *shared.ValidationError
	assert.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Failures, "kit products require at least one component")
	repo.AssertNotCalled(t, "Create")
}

func TestProductService_Create_CompositionRejectedForNonKit(t *testing.T) {
	repo := new(MockProductRepository)
	service := NewProductService(repo)

	_, err := service.Create(context.Background(), uuid.New(), &CreateProductRequest{
		Kind: "product",
		Name: "Caderno",
		Components: []KitComponentRequest{
			{ProductID: uuid.New(), Quantity: decimal.NewFromInt(1)},
		},
	})

	var dErr *shared.DomainError
	assert.ErrorAs(t, err, &dErr)
	assert.Equal(t, "INVALID_COMPOSITION", dErr.Code)
}

func TestProductService_Create_DuplicateSKU(t *testing.T) {
	repo := new(MockProductRepository)
	service := NewProductService(repo)
	tenantID := uuid.New()

	repo.On("SKUExists", mock.Anything, tenantID, "SKU-001", uuid.Nil).Return(true, nil)

	_, err := service.Create(context.Background(), tenantID, &CreateProductRequest{
		Kind: "service",
		Name: "Instalação",
		SKU:  "SKU-001",
	})

	var dErr *shared.DomainError
	assert.ErrorAs(t, err, &dErr)
	assert.Equal(t, "DUPLICATE_DOCUMENT", dErr.Code)
	repo.AssertNotCalled(t, "Create")
}

func TestProductService_Create_EmptySKUSkipsDuplicateCheck(t *testing.T) {
	repo := new(MockProductRepository)
	service := NewProductService(repo)
	tenantID := uuid.New()

	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	_, err := service.Create(context.Background(), tenantID, &CreateProductRequest{
		Kind: "service",
		Name: "Instalação",
	})

	assert.NoError(t, err)
	repo.AssertNotCalled(t, "SKUExists")
}

func TestProductService_GetByBarcode(t *testing.T) {
	repo := new(MockProductRepository)
	service := NewProductService(repo)
	tenantID := uuid.New()

	product, _ := catalog.NewProduct(tenantID, catalog.ProductKindProduct, "Caderno")
	product.SetIdentifiers("SKU-001", "7891234567895", "un")

	repo.On("FindByBarcode", mock.Anything, tenantID, "7891234567895").Return(product, nil)

	resp, err := service.GetByBarcode(context.Background(), tenantID, "7891234567895")
	assert.NoError(t, err)
	assert.Equal(t, product.ID, resp.ID)
}

func TestProductService_Update_ReplaceConversions(t *testing.T) {
	repo := new(MockProductRepository)
	service := NewProductService(repo)
	tenantID := uuid.New()

	product, _ := catalog.NewProduct(tenantID, catalog.ProductKindProduct, "Caderno")
	_ = product.ReplaceConversions([]catalog.UnitConversion{
		{Unit: "cx", Ratio: decimal.NewFromInt(12)},
	})

	repo.On("FindByID", mock.Anything, tenantID, product.ID).Return(product, nil)
	repo.On("Update", mock.Anything, product).Return(nil)

	empty := []UnitConversionRequest{}
	resp, err := service.Update(context.Background(), tenantID, product.ID, &UpdateProductRequest{
		Conversions: &empty,
	})

	assert.NoError(t, err)
	assert.Empty(t, resp.Conversions, "present empty collection wipes stored conversions")
	repo.AssertNotCalled(t, "SKUExists")
	repo.AssertExpectations(t)
}

func TestProductService_Update_NegativePrice(t *testing.T) {
	repo := new(MockProductRepository)
	service := NewProductService(repo)
	tenantID := uuid.New()

	product, _ := catalog.NewProduct(tenantID, catalog.ProductKindProduct, "Caderno")
	repo.On("FindByID", mock.Anything, tenantID, product.ID).Return(product, nil)

	bad := decimal.NewFromInt(-5)
	_, err := service.Update(context.Background(), tenantID, product.ID, &UpdateProductRequest{
		SalePrice: &bad,
	})

	var dErr *shared.DomainError
	assert.ErrorAs(t, err, &dErr)
	assert.Equal(t, "INVALID_PRICE", dErr.Code)
	repo.AssertNotCalled(t, "Update")
}

func TestProductService_List_PassesFilter(t *testing.T) {
	repo := new(MockProductRepository)
	service := NewProductService(repo)
	tenantID := uuid.New()

	repo.On("List", mock.Anything, tenantID, mock.MatchedBy(func(f shared.ListFilter) bool {
		return f.Kind == "kit" && f.Page == 2 && f.PageSize == 10
	})).Return([]catalog.Product{}, int64(0), nil)

	page, err := service.List(context.Background(), tenantID, &ProductListFilter{
		Kind: "kit", Page: 2, PageSize: 10,
	})
	assert.NoError(t, err)
	assert.Equal(t, 2, page.Page)
}

func TestProductService_SetStatus_Invalid(t *testing.T) {
	repo := new(MockProductRepository)
	service := NewProductService(repo)

	err := service.SetStatus(context.Background(), uuid.New(), uuid.New(), "deleted")
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
	repo.AssertNotCalled(t, "SetStatus")
}

func TestProductService_Delete_Soft(t *testing.T) {
	repo := new(MockProductRepository)
	service := NewProductService(repo)
	tenantID := uuid.New()
	id := uuid.New()

	repo.On("Delete", mock.Anything, tenantID, id, false).Return(nil)

	assert.NoError(t, service.Delete(context.Background(), tenantID, id, false))
	repo.AssertExpectations(t)
}
