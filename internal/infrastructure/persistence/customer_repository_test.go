package persistence

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/renztrending/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestGormCustomerRepository_FindByIdentifier(t *testing.T) {
	ctx := context.Background()

	t.Run("one lookup covers email, username and phone", func(t *testing.T) {
		db, mock := newMockGorm(t)
		id := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "customers" WHERE .*email = \$1 OR username = \$2 OR phone = \$3.* LIMIT \$4`).
			WithArgs("asha@example.com", "asha@example.com", "Asha@Example.com", 1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "phone", "is_active"}).
				AddRow(id, "asha", "asha@example.com", "9876543210", true))

		c, err := NewGormCustomerRepository(db).FindByIdentifier(ctx, " Asha@Example.com ")
		require.NoError(t, err)
		assert.Equal(t, id, c.ID)
		assert.Equal(t, "asha", c.Username)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("phone separators are stripped", func(t *testing.T) {
		db, mock := newMockGorm(t)
		mock.ExpectQuery(`SELECT \* FROM "customers"`).
			WithArgs("98765 43210", "98765 43210", "9876543210", 1).
			WillReturnError(gorm.ErrRecordNotFound)

		_, err := NewGormCustomerRepository(db).FindByIdentifier(ctx, "98765 43210")
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("blank identifier skips the query", func(t *testing.T) {
		db, mock := newMockGorm(t)
		_, err := NewGormCustomerRepository(db).FindByIdentifier(ctx, "   ")
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormCustomerRepository_Exists(t *testing.T) {
	ctx := context.Background()
	db, mock := newMockGorm(t)
	repo := NewGormCustomerRepository(db)
	count := func(n int) *sqlmock.Rows { return sqlmock.NewRows([]string{"count"}).AddRow(n) }

	mock.ExpectQuery(`SELECT count\(\*\) FROM "customers" WHERE phone = \$1`).
		WithArgs("+919876543210").WillReturnRows(count(1))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "customers" WHERE email = \$1`).
		WithArgs("asha@example.com").WillReturnRows(count(0))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "customers" WHERE username = \$1`).
		WithArgs("asha").WillReturnRows(count(2))

	taken, err := repo.ExistsByPhone(ctx, "+91 98765-43210")
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = repo.ExistsByEmail(ctx, " ASHA@example.com")
	require.NoError(t, err)
	assert.False(t, taken)

	taken, err = repo.ExistsByUsername(ctx, "Asha ")
	require.NoError(t, err)
	assert.True(t, taken)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormCustomerRepository_FindByIDs_Empty(t *testing.T) {
	db, mock := newMockGorm(t)
	customers, err := NewGormCustomerRepository(db).FindByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, customers)
	assert.NoError(t, mock.ExpectationsWereMet())
}
