package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	exportapp "github.com/gestor/backend/internal/application/export"
	"github.com/gestor/backend/internal/domain/catalog"
	"github.com/gestor/backend/internal/domain/partner"
	"github.com/gestor/backend/internal/domain/shared"
	infraexport "github.com/gestor/backend/internal/infrastructure/export"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockSupplierRepository is a mock implementation of partner.SupplierRepository
type MockSupplierRepository struct {
	mock.Mock
}

func (m *MockSupplierRepository) Create(ctx context.Context, supplier *partner.Supplier) error {
	args := m.Called(ctx, supplier)
	return args.Error(0)
}

func (m *MockSupplierRepository) Update(ctx context.Context, supplier *partner.Supplier) error {
	args := m.Called(ctx, supplier)
	return args.Error(0)
}

func (m *MockSupplierRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*partner.Supplier, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) FindByDocument(ctx context.Context, tenantID uuid.UUID, document string) (*partner.Supplier, error) {
	args := m.Called(ctx, tenantID, document)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) DocumentExists(ctx context.Context, tenantID uuid.UUID, document string, excludeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, tenantID, document, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockSupplierRepository) List(ctx context.Context, tenantID uuid.UUID, filter shared.ListFilter) ([]partner.Supplier, int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]partner.Supplier), args.Get(1).(int64), args.Error(2)
}

func (m *MockSupplierRepository) AppendItem(ctx context.Context, tenantID, supplierID uuid.UUID, item *partner.SupplierItem) error {
	args := m.Called(ctx, tenantID, supplierID, item)
	return args.Error(0)
}

func (m *MockSupplierRepository) SetStatus(ctx context.Context, tenantID, id uuid.UUID, status partner.SupplierStatus) error {
	args := m.Called(ctx, tenantID, id, status)
	return args.Error(0)
}

func (m *MockSupplierRepository) Delete(ctx context.Context, tenantID, id uuid.UUID, hard bool) error {
	args := m.Called(ctx, tenantID, id, hard)
	return args.Error(0)
}

// MockProductRepository is a mock implementation of catalog.ProductRepository
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

func setupExportRouter(clientRepo *MockClientRepository, supplierRepo *MockSupplierRepository, productRepo *MockProductRepository, tenantID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)

	service := exportapp.NewService(clientRepo, supplierRepo, productRepo,
		map[infraexport.Format]infraexport.Renderer{
			infraexport.FormatCSV: infraexport.NewCSVRenderer(),
		})

	r := gin.New()
	api := r.Group("/api/v1")
	api.Use(tenantStub(tenantID))
	NewExportHandler(service).RegisterRoutes(api)
	return r
}

func TestExportHandler_Clients_CSV(t *testing.T) {
	clientRepo := new(MockClientRepository)
	tenantID := uuid.New()
	r := setupExportRouter(clientRepo, new(MockSupplierRepository), new(MockProductRepository), tenantID)

	client, _ := partner.NewClient(tenantID, partner.ClientKindIndividual, "Ana Souza")
	client.SetDocuments("529.982.247-25", "", "")
	clientRepo.On("List", mock.Anything, tenantID, mock.AnythingOfType("shared.ListFilter")).
		Return([]partner.Client{*client}, int64(1), nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/exports/clients?format=csv&status=active", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".csv")
	assert.Contains(t, w.Body.String(), "Ana Souza")
	assert.Contains(t, w.Body.String(), "52998224725")
}

func TestExportHandler_DefaultFormatIsCSV(t *testing.T) {
	clientRepo := new(MockClientRepository)
	tenantID := uuid.New()
	r := setupExportRouter(clientRepo, new(MockSupplierRepository), new(MockProductRepository), tenantID)

	clientRepo.On("List", mock.Anything, tenantID, mock.AnythingOfType("shared.ListFilter")).
		Return([]partner.Client{}, int64(0), nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/exports/clients", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
}

func TestExportHandler_UnsupportedFormat(t *testing.T) {
	clientRepo := new(MockClientRepository)
	r := setupExportRouter(clientRepo, new(MockSupplierRepository), new(MockProductRepository), uuid.New())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/exports/clients?format=docx", nil))

	// Rejected by query binding before the service runs.
	assert.Equal(t, http.StatusBadRequest, w.Code)
	clientRepo.AssertNotCalled(t, "List")
}

func TestExportHandler_UnregisteredFormat(t *testing.T) {
	clientRepo := new(MockClientRepository)
	r := setupExportRouter(clientRepo, new(MockSupplierRepository), new(MockProductRepository), uuid.New())

	// pdf passes binding but has no renderer registered in this setup.
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/exports/clients?format=pdf", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	clientRepo.AssertNotCalled(t, "List")
}
