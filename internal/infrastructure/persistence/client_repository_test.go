package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gestor/backend/internal/domain/partner"
	"github.com/gestor/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockClientRepository creates a GormClientRepository with a mocked SQL connection
func newMockClientRepository(t *testing.T) (*GormClientRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormClientRepository(gormDB), mock, mockDB
}

func TestGormClientRepository_TenantGuard(t *testing.T) {
	repo, mock, mockDB := newMockClientRepository(t)
	defer mockDB.Close()

	ctx := context.Background()

	t.Run("every operation refuses a zero tenant before touching SQL", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.Nil, uuid.New())
		assert.Equal(t, shared.ErrMissingTenant, err)

		_, err = repo.FindByDocument(ctx, uuid.Nil, "12345678909")
		assert.Equal(t, shared.ErrMissingTenant, err)

		_, _, err = repo.List(ctx, uuid.Nil, shared.DefaultListFilter())
		assert.Equal(t, shared.ErrMissingTenant, err)

		err = repo.SetStatus(ctx, uuid.Nil, uuid.New(), partner.ClientStatusInactive)
		assert.Equal(t, shared.ErrMissingTenant, err)

		err = repo.Delete(ctx, uuid.Nil, uuid.New(), true)
		assert.Equal(t, shared.ErrMissingTenant, err)

		client := &partner.Client{}
		assert.Equal(t, shared.ErrMissingTenant, repo.Create(ctx, client))
		assert.Equal(t, shared.ErrMissingTenant, repo.Update(ctx, client))

		assert.NoError(t, mock.ExpectationsWereMet(), "no SQL may run without a tenant")
	})
}

func TestGormClientRepository_FindByID(t *testing.T) {
	t.Run("scopes by tenant and id", func(t *testing.T) {
		repo, mock, mockDB := newMockClientRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()
		clientID := uuid.New()

		mock.MatchExpectationsInOrder(false)
		mock.ExpectQuery(`SELECT \* FROM "clients" WHERE tenant_id = \$1 AND id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(tenantID, clientID, 1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "tenant_id", "kind", "status", "name"}).
				AddRow(clientID, tenantID, "individual", "active", "Jo Silva"))
		mock.ExpectQuery(`SELECT \* FROM "partner_addresses" WHERE tenant_id = .* AND owner_id = .* AND owner_kind = .*`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))
		mock.ExpectQuery(`SELECT \* FROM "partner_contacts" WHERE tenant_id = .* AND owner_id = .* AND owner_kind = .*`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))
		mock.ExpectQuery(`SELECT \* FROM "partner_attachments" WHERE tenant_id = .* AND owner_id = .* AND owner_kind = .*`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		client, err := repo.FindByID(context.Background(), tenantID, clientID)

		require.NoError(t, err)
		assert.Equal(t, clientID, client.ID)
		assert.Equal(t, tenantID, client.TenantID)
		assert.Empty(t, client.Addresses)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("another tenant's record reads as not found", func(t *testing.T) {
		repo, mock, mockDB := newMockClientRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()
		clientID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "clients" WHERE tenant_id = \$1 AND id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(tenantID, clientID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		client, err := repo.FindByID(context.Background(), tenantID, clientID)

		assert.Nil(t, client)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormClientRepository_DocumentExists(t *testing.T) {
	t.Run("matches every document column and skips the excluded record", func(t *testing.T) {
		repo, mock, mockDB := newMockClientRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()
		excludeID := uuid.New()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "clients" WHERE tenant_id = \$1 AND \(\(cpf = \$2 OR cnpj = \$3 OR foreign_doc = \$4\)\) AND id <> \$5`).
			WithArgs(tenantID, "12345678909", "12345678909", "123.456.789-09", excludeID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		exists, err := repo.DocumentExists(context.Background(), tenantID, "123.456.789-09", excludeID)

		assert.NoError(t, err)
		assert.True(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("foreign document mixing letters and digits is matched verbatim", func(t *testing.T) {
		repo, mock, mockDB := newMockClientRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "clients" WHERE tenant_id = \$1 AND \(\(cpf = \$2 OR cnpj = \$3 OR foreign_doc = \$4\)\)`).
			WithArgs(tenantID, "123", "123", "AB-123").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		exists, err := repo.DocumentExists(context.Background(), tenantID, "AB-123", uuid.Nil)

		assert.NoError(t, err)
		assert.True(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty document never reports a duplicate", func(t *testing.T) {
		repo, mock, mockDB := newMockClientRepository(t)
		defer mockDB.Close()

		exists, err := repo.DocumentExists(context.Background(), uuid.New(), "", uuid.Nil)

		assert.NoError(t, err)
		assert.False(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormClientRepository_Create(t *testing.T) {
	t.Run("inserts root and children in one transaction", func(t *testing.T) {
		repo, mock, mockDB := newMockClientRepository(t)
		defer mockDB.Close()

		client, err := partner.NewClient(uuid.New(), partner.ClientKindIndividual, "Jo Silva")
		require.NoError(t, err)
		client.SetDocuments("123.456.789-09", "", "")
		client.ReplaceAddresses([]partner.Address{{Type: partner.AddressTypeMain, Street: "Rua A", Principal: true}})

		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO "clients"`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO "partner_addresses"`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		assert.NoError(t, repo.Create(context.Background(), client))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back when a child insert fails", func(t *testing.T) {
		repo, mock, mockDB := newMockClientRepository(t)
		defer mockDB.Close()

		client, err := partner.NewClient(uuid.New(), partner.ClientKindIndividual, "Jo Silva")
		require.NoError(t, err)
		client.ReplaceContacts([]partner.Contact{{Type: partner.ContactTypeEmail, Value: "jo@example.com"}})

		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO "clients"`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO "partner_contacts"`).
			WillReturnError(assert.AnError)
		mock.ExpectRollback()

		err = repo.Create(context.Background(), client)

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "PERSISTENCE_ERROR", domainErr.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormClientRepository_Update(t *testing.T) {
	t.Run("replaces children wholesale inside the root transaction", func(t *testing.T) {
		repo, mock, mockDB := newMockClientRepository(t)
		defer mockDB.Close()

		client, err := partner.NewClient(uuid.New(), partner.ClientKindOrganization, "Acme Corp")
		require.NoError(t, err)
		client.ReplaceAddresses([]partner.Address{{Type: partner.AddressTypeBilling, Street: "Av. B"}})

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "clients" SET .* WHERE tenant_id = \$\d+ AND id = \$\d+`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`DELETE FROM "partner_addresses" WHERE tenant_id = \$1 AND owner_id = \$2 AND owner_kind = \$3`).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectExec(`DELETE FROM "partner_contacts" WHERE tenant_id = \$1 AND owner_id = \$2 AND owner_kind = \$3`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`DELETE FROM "partner_attachments" WHERE tenant_id = \$1 AND owner_id = \$2 AND owner_kind = \$3`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`INSERT INTO "partner_addresses"`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		assert.NoError(t, repo.Update(context.Background(), client))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty collections still clear the stored children", func(t *testing.T) {
		repo, mock, mockDB := newMockClientRepository(t)
		defer mockDB.Close()

		client, err := partner.NewClient(uuid.New(), partner.ClientKindIndividual, "Jo Silva")
		require.NoError(t, err)

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "clients" SET .* WHERE tenant_id = \$\d+ AND id = \$\d+`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`DELETE FROM "partner_addresses"`).
			WillReturnResult(sqlmock.NewResult(0, 3))
		mock.ExpectExec(`DELETE FROM "partner_contacts"`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`DELETE FROM "partner_attachments"`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		assert.NoError(t, repo.Update(context.Background(), client))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing record surfaces not found and rolls back", func(t *testing.T) {
		repo, mock, mockDB := newMockClientRepository(t)
		defer mockDB.Close()

		client, err := partner.NewClient(uuid.New(), partner.ClientKindIndividual, "Jo Silva")
		require.NoError(t, err)

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "clients" SET .*`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		assert.Equal(t, shared.ErrNotFound, repo.Update(context.Background(), client))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormClientRepository_SetStatus(t *testing.T) {
	t.Run("flips status scoped by tenant and id", func(t *testing.T) {
		repo, mock, mockDB := newMockClientRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()
		clientID := uuid.New()

		mock.ExpectExec(`UPDATE "clients" SET .* WHERE tenant_id = \$\d+ AND id = \$\d+`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.SetStatus(context.Background(), tenantID, clientID, partner.ClientStatusInactive)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("zero rows means not found", func(t *testing.T) {
		repo, mock, mockDB := newMockClientRepository(t)
		defer mockDB.Close()

		mock.ExpectExec(`UPDATE "clients" SET .*`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.SetStatus(context.Background(), uuid.New(), uuid.New(), partner.ClientStatusInactive)

		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormClientRepository_Delete(t *testing.T) {
	t.Run("soft delete is a status flip", func(t *testing.T) {
		repo, mock, mockDB := newMockClientRepository(t)
		defer mockDB.Close()

		mock.ExpectExec(`UPDATE "clients" SET .*`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(context.Background(), uuid.New(), uuid.New(), false))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("hard delete removes children then the root transactionally", func(t *testing.T) {
		repo, mock, mockDB := newMockClientRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()
		clientID := uuid.New()

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM "partner_addresses" WHERE tenant_id = \$1 AND owner_id = \$2 AND owner_kind = \$3`).
			WithArgs(tenantID, clientID, "client").
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectExec(`DELETE FROM "partner_contacts"`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`DELETE FROM "partner_attachments"`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`DELETE FROM "clients" WHERE tenant_id = \$1 AND id = \$2`).
			WithArgs(tenantID, clientID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		assert.NoError(t, repo.Delete(context.Background(), tenantID, clientID, true))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("hard delete of a missing record rolls back", func(t *testing.T) {
		repo, mock, mockDB := newMockClientRepository(t)
		defer mockDB.Close()

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM "partner_addresses"`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`DELETE FROM "partner_contacts"`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`DELETE FROM "partner_attachments"`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`DELETE FROM "clients"`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := repo.Delete(context.Background(), uuid.New(), uuid.New(), true)

		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormClientRepository_List(t *testing.T) {
	t.Run("data and count queries carry the same predicates", func(t *testing.T) {
		repo, mock, mockDB := newMockClientRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()
		filter := shared.DefaultListFilter()
		filter.Status = "active"

		mock.ExpectQuery(`SELECT \* FROM "clients" WHERE tenant_id = \$1 AND status = \$2 ORDER BY created_at DESC, id ASC LIMIT .*`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "tenant_id", "name"}).
				AddRow(uuid.New(), tenantID, "Acme Corp"))
		mock.ExpectQuery(`SELECT count\(\*\) FROM "clients" WHERE tenant_id = \$1 AND status = \$2`).
			WithArgs(tenantID, "active").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		clients, total, err := repo.List(context.Background(), tenantID, filter)

		require.NoError(t, err)
		assert.Len(t, clients, 1)
		assert.Equal(t, int64(1), total)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
