package persistence

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	apporder "github.com/renztrending/backend/internal/application/order"
	"github.com/renztrending/backend/internal/domain/order"
	"github.com/renztrending/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDatabase(t *testing.T) (*Database, sqlmock.Sqlmock) {
	db, mock := newMockGorm(t)
	return &Database{DB: db}, mock
}

func TestDatabase_PingContext(t *testing.T) {
	mockDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer mockDB.Close()
	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: mockDB}), &gorm.Config{DisableAutomaticPing: true})
	require.NoError(t, err)
	db := &Database{DB: gormDB}

	mock.ExpectPing()
	assert.NoError(t, db.PingContext(context.Background()))

	mock.ExpectPing().WillReturnError(assert.AnError)
	assert.ErrorIs(t, db.PingContext(context.Background()), assert.AnError)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDatabase_Close(t *testing.T) {
	db, mock := newMockDatabase(t)

	sqlDB, err := db.SQL()
	require.NoError(t, err)
	assert.NotNil(t, sqlDB)

	mock.ExpectClose()
	require.NoError(t, db.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormTransactionScope_SQL(t *testing.T) {
	productID := uuid.New()

	t.Run("commits when every step succeeds", func(t *testing.T) {
		db, mock := newMockDatabase(t)

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "products" SET "stock"=stock \+ \$1`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := NewGormTransactionScope(db.DB).Execute(context.Background(), func(repos apporder.TransactionalRepositories) error {
			return repos.ProductRepo().AdjustStock(context.Background(), productID, -1)
		})
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back on the first failure", func(t *testing.T) {
		db, mock := newMockDatabase(t)

		mock.ExpectBegin()
		mock.ExpectRollback()

		err := NewGormTransactionScope(db.DB).Execute(context.Background(), func(apporder.TransactionalRepositories) error {
			return shared.ErrInsufficientStock
		})
		assert.ErrorIs(t, err, shared.ErrInsufficientStock)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormOrderRepository_Save_SQL(t *testing.T) {
	newOrder := func(t *testing.T) *order.Order {
		item, err := order.NewOrderItem(nil, uuid.New(), nil, "Tee", "M", decimal.NewFromInt(499), 1)
		require.NoError(t, err)
		o, err := order.NewCODOrder(uuid.New(), []order.OrderItem{*item})
		require.NoError(t, err)
		return o
	}

	t.Run("update is guarded by version", func(t *testing.T) {
		db, mock := newMockDatabase(t)
		repo := NewGormOrderRepository(db.DB)
		o := newOrder(t)

		mock.ExpectExec(`UPDATE "orders" SET .* WHERE id = \$\d+ AND version = \$\d+`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Save(context.Background(), o))
		assert.Equal(t, 2, o.Version)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("stale version reports a conflict", func(t *testing.T) {
		db, mock := newMockDatabase(t)
		repo := NewGormOrderRepository(db.DB)
		o := newOrder(t)

		mock.ExpectExec(`UPDATE "orders" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT count\(\*\) FROM "orders" WHERE id = \$1`).
			WithArgs(o.ID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		err := repo.Save(context.Background(), o)
		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
		assert.Equal(t, 1, o.Version)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing order", func(t *testing.T) {
		db, mock := newMockDatabase(t)
		repo := NewGormOrderRepository(db.DB)
		o := newOrder(t)

		mock.ExpectExec(`UPDATE "orders" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT count\(\*\) FROM "orders"`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		err := repo.Save(context.Background(), o)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormProductRepository_AdjustStock_SQL(t *testing.T) {
	db, mock := newMockDatabase(t)
	repo := NewGormProductRepository(db.DB)
	id := uuid.New()

	mock.ExpectExec(`UPDATE "products" SET "stock"=stock \+ \$1,"updated_at"=\$2 WHERE id = \$3 AND stock >= \$4`).
		WithArgs(-2, sqlmock.AnyArg(), id, 2).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.AdjustStock(context.Background(), id, -2))
	assert.NoError(t, mock.ExpectationsWereMet())
}
