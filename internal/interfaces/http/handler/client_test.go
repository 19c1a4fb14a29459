package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	partnerapp "github.com/gestor/backend/internal/application/partner"
	"github.com/gestor/backend/internal/domain/partner"
	"github.com/gestor/backend/internal/domain/shared"
	"github.com/gestor/backend/internal/interfaces/http/dto"
	"github.com/gestor/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockClientRepository is a mock implementation of partner.ClientRepository
type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) Create(ctx context.Context, client *partner.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) Update(ctx context.Context, client *partner.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*partner.Client, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Client), args.Error(1)
}

func (m *MockClientRepository) FindByDocument(ctx context.Context, tenantID uuid.UUID, document string) (*partner.Client, error) {
	args := m.Called(ctx, tenantID, document)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Client), args.Error(1)
}

func (m *MockClientRepository) DocumentExists(ctx context.Context, tenantID uuid.UUID, document string, excludeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, tenantID, document, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockClientRepository) List(ctx context.Context, tenantID uuid.UUID, filter shared.ListFilter) ([]partner.Client, int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]partner.Client), args.Get(1).(int64), args.Error(2)
}

func (m *MockClientRepository) SetStatus(ctx context.Context, tenantID, id uuid.UUID, status partner.ClientStatus) error {
	args := m.Called(ctx, tenantID, id, status)
	return args.Error(0)
}

func (m *MockClientRepository) Delete(ctx context.Context, tenantID, id uuid.UUID, hard bool) error {
	args := m.Called(ctx, tenantID, id, hard)
	return args.Error(0)
}

// tenantStub injects an authenticated tenant the way the auth middleware
// would, without minting real tokens.
func tenantStub(tenantID uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.JWTTenantIDKey, tenantID.String())
		c.Set(middleware.JWTUserIDKey, uuid.New().String())
		c.Next()
	}
}

func setupClientRouter(repo *MockClientRepository, mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	api := r.Group("/api/v1")
	api.Use(mw...)
	NewClientHandler(partnerapp.NewClientService(repo)).RegisterRoutes(api)
	return r
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestClientHandler_Create(t *testing.T) {
	repo := new(MockClientRepository)
	tenantID := uuid.New()
	r := setupClientRouter(repo, tenantStub(tenantID))

	repo.On("DocumentExists", mock.Anything, tenantID, "52998224725", uuid.Nil).Return(false, nil)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*partner.Client")).Return(nil)

	body := `{"kind":"individual","name":"Ana Souza","cpf":"529.982.247-25","email":"ana@example.com"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/clients", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)

	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "Ana Souza", data["name"])
	assert.Equal(t, "52998224725", data["cpf"])
	assert.Equal(t, tenantID.String(), data["tenant_id"])
	repo.AssertExpectations(t)
}

func TestClientHandler_Create_ValidationFailures(t *testing.T) {
	repo := new(MockClientRepository)
	r := setupClientRouter(repo, tenantStub(uuid.New()))

	// Organization without cnpj, company_name or responsible.
	body := `{"kind":"organization","name":"Acme"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/clients", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeValidationFailed, resp.Error.Code)
	assert.NotEmpty(t, resp.Error.Details)
	repo.AssertNotCalled(t, "Create")
}

func TestClientHandler_Create_MalformedBody(t *testing.T) {
	repo := new(MockClientRepository)
	r := setupClientRouter(repo, tenantStub(uuid.New()))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/clients", bytes.NewBufferString(`{"kind":`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	repo.AssertNotCalled(t, "Create")
}

func TestClientHandler_Create_NoTenant(t *testing.T) {
	repo := new(MockClientRepository)
	r := setupClientRouter(repo)

	body := `{"kind":"individual","name":"Ana","cpf":"52998224725"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/clients", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	repo.AssertNotCalled(t, "Create")
}

func TestClientHandler_GetByID_NotFound(t *testing.T) {
	repo := new(MockClientRepository)
	tenantID := uuid.New()
	r := setupClientRouter(repo, tenantStub(tenantID))

	clientID := uuid.New()
	repo.On("FindByID", mock.Anything, tenantID, clientID).Return(nil, shared.ErrNotFound)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/clients/"+clientID.String(), nil))

	require.Equal(t, http.StatusNotFound, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)
}

func TestClientHandler_GetByID_BadID(t *testing.T) {
	repo := new(MockClientRepository)
	r := setupClientRouter(repo, tenantStub(uuid.New()))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/clients/not-a-uuid", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	repo.AssertNotCalled(t, "FindByID")
}

func TestClientHandler_List_Meta(t *testing.T) {
	repo := new(MockClientRepository)
	tenantID := uuid.New()
	r := setupClientRouter(repo, tenantStub(tenantID))

	client, _ := partner.NewClient(tenantID, partner.ClientKindIndividual, "Ana Souza")
	expected := shared.ListFilter{
		Status:   "active",
		Page:     2,
		PageSize: 10,
	}
	expected.Normalize()
	repo.On("List", mock.Anything, tenantID, expected).Return([]partner.Client{*client}, int64(21), nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/clients?status=active&page=2&page_size=10", nil))

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(21), resp.Meta.Total)
	assert.Equal(t, 2, resp.Meta.Page)
	assert.Equal(t, 3, resp.Meta.TotalPages)
}

func TestClientHandler_Delete_Hard(t *testing.T) {
	repo := new(MockClientRepository)
	tenantID := uuid.New()
	r := setupClientRouter(repo, tenantStub(tenantID))

	clientID := uuid.New()
	repo.On("Delete", mock.Anything, tenantID, clientID, true).Return(nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/v1/clients/"+clientID.String()+"?hard=true", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	repo.AssertExpectations(t)
}

func TestClientHandler_SetStatus(t *testing.T) {
	repo := new(MockClientRepository)
	tenantID := uuid.New()
	r := setupClientRouter(repo, tenantStub(tenantID))

	clientID := uuid.New()
	repo.On("SetStatus", mock.Anything, tenantID, clientID, partner.ClientStatusInactive).Return(nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/clients/"+clientID.String()+"/status",
		bytes.NewBufferString(`{"status":"inactive"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	repo.AssertExpectations(t)
}
