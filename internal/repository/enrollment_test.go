package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dangerclosesec/accountd/internal/domain"
	"github.com/dangerclosesec/accountd/internal/model"
	"github.com/dangerclosesec/accountd/internal/repository"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

func enrollmentColumns() []string {
	return []string{"id", "account_id", "product_id", "status", "plan", "external_resource_id", "created_at", "updated_at"}
}

func TestEnrollmentCreate(t *testing.T) {
	accountID := uuid.New()
	productID := uuid.New()

	t.Run("inserts a provisioning row", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewEnrollmentRepository(db)

		newID := uuid.New()
		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO "account_products"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(newID))
		mock.ExpectCommit()

		enrollment := &model.AccountProduct{
			AccountID: accountID,
			ProductID: productID,
			Status:    model.EnrollmentProvisioning,
			Plan:      model.PlanFree,
		}
		err := repo.Create(context.Background(), enrollment)

		require.NoError(t, err)
		assert.Equal(t, newID, enrollment.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unique violation maps to already enrolled", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewEnrollmentRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO "account_products"`).
			WillReturnError(&pq.Error{Code: "23505", Constraint: "idx_account_product"})
		mock.ExpectRollback()

		err := repo.Create(context.Background(), &model.AccountProduct{
			AccountID: accountID,
			ProductID: productID,
			Status:    model.EnrollmentProvisioning,
		})

		assert.ErrorIs(t, err, domain.ErrAlreadyEnrolled)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestEnrollmentFindByAccountAndProduct(t *testing.T) {
	accountID := uuid.New()
	productID := uuid.New()

	t.Run("found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewEnrollmentRepository(db)

		rowID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "account_products" WHERE account_id = \$1 AND product_id = \$2`).
			WillReturnRows(sqlmock.NewRows(enrollmentColumns()).
				AddRow(rowID, accountID, productID, "ACTIVE", "FREE", "tenant-1", time.Now(), time.Now()))

		enrollment, err := repo.FindByAccountAndProduct(context.Background(), accountID, productID)

		require.NoError(t, err)
		assert.Equal(t, rowID, enrollment.ID)
		assert.Equal(t, model.EnrollmentActive, enrollment.Status)
		require.NotNil(t, enrollment.ExternalResourceID)
		assert.Equal(t, "tenant-1", *enrollment.ExternalResourceID)
	})

	t.Run("not found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewEnrollmentRepository(db)

		mock.ExpectQuery(`SELECT \* FROM "account_products"`).
			WillReturnRows(sqlmock.NewRows(enrollmentColumns()))

		_, err := repo.FindByAccountAndProduct(context.Background(), accountID, productID)

		assert.ErrorIs(t, err, domain.ErrNotEnrolled)
	})
}

func TestEnrollmentFindByAccountAndProductCode(t *testing.T) {
	accountID := uuid.New()
	productID := uuid.New()

	db, mock := newMockDB(t)
	repo := repository.NewEnrollmentRepository(db)

	mock.ExpectQuery(`JOIN products ON products\.id = account_products\.product_id`).
		WillReturnRows(sqlmock.NewRows(enrollmentColumns()).
			AddRow(uuid.New(), accountID, productID, "ACTIVE", "PRO", "tenant-7", time.Now(), time.Now()))

	enrollment, err := repo.FindByAccountAndProductCode(context.Background(), accountID, "notify")

	require.NoError(t, err)
	assert.Equal(t, model.PlanPro, enrollment.Plan)
}

func TestEnrollmentSetStatus(t *testing.T) {
	enrollmentID := uuid.New()

	t.Run("activates with resource id", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewEnrollmentRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "account_products" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		resourceID := "tenant-1"
		err := repo.SetStatus(context.Background(), enrollmentID, model.EnrollmentActive, &resourceID)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("suspends with nil resource id", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewEnrollmentRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "account_products" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.SetStatus(context.Background(), enrollmentID, model.EnrollmentSuspended, nil)

		assert.NoError(t, err)
	})

	t.Run("missing row", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewEnrollmentRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "account_products" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		err := repo.SetStatus(context.Background(), enrollmentID, model.EnrollmentActive, nil)

		assert.ErrorIs(t, err, domain.ErrNotEnrolled)
	})
}
