package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gestor/backend/internal/domain/partner"
	"github.com/gestor/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockSupplierRepository creates a GormSupplierRepository with a mocked SQL connection
func newMockSupplierRepository(t *testing.T) (*GormSupplierRepository, sqlmock.Sqlmock, *sql.DB) {
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

	return NewGormSupplierRepository(gormDB), mock, mockDB
}

func TestGormSupplierRepository_Create(t *testing.T) {
	t.Run("initial items are inserted with the root", func(t *testing.T) {
		repo, mock, mockDB := newMockSupplierRepository(t)
		defer mockDB.Close()

		supplier, err := partner.NewSupplier(uuid.New(), partner.SupplierKindOrganization, "Fornecedora Ltda")
		require.NoError(t, err)
		item, err := partner.NewSupplierItem(partner.SupplierItemProduct, "Parafuso M6", decimal.NewFromFloat(0.35))
		require.NoError(t, err)
		supplier.Items = []partner.SupplierItem{*item}

		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO "suppliers"`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO "supplier_items"`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		assert.NoError(t, repo.Create(context.Background(), supplier))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormSupplierRepository_Update(t *testing.T) {
	t.Run("never touches the append-only items", func(t *testing.T) {
		repo, mock, mockDB := newMockSupplierRepository(t)
		defer mockDB.Close()

		supplier, err := partner.NewSupplier(uuid.New(), partner.SupplierKindOrganization, "Fornecedora Ltda")
		require.NoError(t, err)
		item, err := partner.NewSupplierItem(partner.SupplierItemService, "Frete", decimal.NewFromInt(50))
		require.NoError(t, err)
		supplier.Items = []partner.SupplierItem{*item}

		// only the three replaceable collections are deleted; no statement
		// against supplier_items is expected
		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "suppliers" SET .* WHERE tenant_id = \$\d+ AND id = \$\d+`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`DELETE FROM "partner_addresses"`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`DELETE FROM "partner_contacts"`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`DELETE FROM "partner_attachments"`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		assert.NoError(t, repo.Update(context.Background(), supplier))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormSupplierRepository_AppendItem(t *testing.T) {
	t.Run("verifies ownership before the insert", func(t *testing.T) {
		repo, mock, mockDB := newMockSupplierRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()
		supplierID := uuid.New()
		item, err := partner.NewSupplierItem(partner.SupplierItemProduct, "Parafuso M6", decimal.NewFromFloat(0.35))
		require.NoError(t, err)

		mock.ExpectQuery(`SELECT count\(\*\) FROM "suppliers" WHERE tenant_id = \$1 AND id = \$2`).
			WithArgs(tenantID, supplierID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectExec(`INSERT INTO "supplier_items"`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.AppendItem(context.Background(), tenantID, supplierID, item))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown supplier reads as not found", func(t *testing.T) {
		repo, mock, mockDB := newMockSupplierRepository(t)
		defer mockDB.Close()

		item, err := partner.NewSupplierItem(partner.SupplierItemProduct, "Parafuso M6", decimal.Zero)
		require.NoError(t, err)

		mock.ExpectQuery(`SELECT count\(\*\) FROM "suppliers" WHERE tenant_id = \$1 AND id = \$2`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		err = repo.AppendItem(context.Background(), uuid.New(), uuid.New(), item)

		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("refuses a zero tenant", func(t *testing.T) {
		repo, mock, mockDB := newMockSupplierRepository(t)
		defer mockDB.Close()

		item, err := partner.NewSupplierItem(partner.SupplierItemProduct, "Parafuso M6", decimal.Zero)
		require.NoError(t, err)

		assert.Equal(t, shared.ErrMissingTenant, repo.AppendItem(context.Background(), uuid.Nil, uuid.New(), item))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormSupplierRepository_Delete(t *testing.T) {
	t.Run("hard delete removes items along with the other children", func(t *testing.T) {
		repo, mock, mockDB := newMockSupplierRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()
		supplierID := uuid.New()

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM "partner_addresses"`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`DELETE FROM "partner_contacts"`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`DELETE FROM "partner_attachments"`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`DELETE FROM "supplier_items" WHERE tenant_id = \$1 AND supplier_id = \$2`).
			WithArgs(tenantID, supplierID).
			WillReturnResult(sqlmock.NewResult(0, 4))
		mock.ExpectExec(`DELETE FROM "suppliers" WHERE tenant_id = \$1 AND id = \$2`).
			WithArgs(tenantID, supplierID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		assert.NoError(t, repo.Delete(context.Background(), tenantID, supplierID, true))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("soft delete flips the status", func(t *testing.T) {
		repo, mock, mockDB := newMockSupplierRepository(t)
		defer mockDB.Close()

		mock.ExpectExec(`UPDATE "suppliers" SET .*`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(context.Background(), uuid.New(), uuid.New(), false))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormSupplierRepository_FindByDocument(t *testing.T) {
	t.Run("matches any document column within the tenant", func(t *testing.T) {
		repo, mock, mockDB := newMockSupplierRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()
		supplierID := uuid.New()

		mock.MatchExpectationsInOrder(false)
		mock.ExpectQuery(`SELECT \* FROM "suppliers" WHERE tenant_id = \$1 AND \(\(cpf = \$2 OR cnpj = \$3 OR foreign_doc = \$4\)\) ORDER BY .* LIMIT .*`).
			WithArgs(tenantID, "12345678000199", "12345678000199", "12.345.678/0001-99", 1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "tenant_id", "kind", "status", "name", "cnpj"}).
				AddRow(supplierID, tenantID, "organization", "active", "Fornecedora Ltda", "12345678000199"))
		mock.ExpectQuery(`SELECT \* FROM "partner_addresses"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))
		mock.ExpectQuery(`SELECT \* FROM "partner_contacts"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))
		mock.ExpectQuery(`SELECT \* FROM "partner_attachments"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))
		mock.ExpectQuery(`SELECT \* FROM "supplier_items"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		supplier, err := repo.FindByDocument(context.Background(), tenantID, "12.345.678/0001-99")

		require.NoError(t, err)
		assert.Equal(t, supplierID, supplier.ID)
		assert.Equal(t, "12345678000199", supplier.Document())
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
