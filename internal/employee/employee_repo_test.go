package employee_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"emp-portal/internal/employee"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Two separate sqlmock handles: the pool the repository was built on and
// the connection the transaction runs on. A write through WithTx must
// reach the transaction's connection and leave the pool untouched.
func setupTxRepo(t *testing.T) (employee.Repository, sqlmock.Sqlmock, *sql.Tx, sqlmock.Sqlmock) {
	t.Helper()

	poolDB, poolMock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { poolDB.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: poolDB}), &gorm.Config{})
	assert.NoError(t, err)

	txDB, txMock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { txDB.Close() })

	txMock.ExpectBegin()
	tx, err := txDB.Begin()
	assert.NoError(t, err)

	return employee.NewRepository(gormDB), poolMock, tx, txMock
}

func TestRepository_WithTx(t *testing.T) {
	ctx := context.Background()

	t.Run("create runs on the transaction, not the pool", func(t *testing.T) {
		repo, poolMock, tx, txMock := setupTxRepo(t)

		txMock.ExpectExec(`INSERT INTO "employees"`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		txMock.ExpectCommit()

		err := repo.WithTx(tx).Create(ctx, &employee.Employee{
			ID:        7,
			Name:      "Hukum",
			Email:     "hukum@example.com",
			Mobile:    "9876543210",
			CreatedAt: time.Date(2023, 2, 13, 0, 0, 0, 0, time.UTC),
		})
		assert.NoError(t, err)
		assert.NoError(t, tx.Commit())

		assert.NoError(t, txMock.ExpectationsWereMet())
		assert.NoError(t, poolMock.ExpectationsWereMet())
	})

	t.Run("rollback discards the create", func(t *testing.T) {
		repo, poolMock, tx, txMock := setupTxRepo(t)

		txMock.ExpectExec(`INSERT INTO "employees"`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		txMock.ExpectRollback()

		err := repo.WithTx(tx).Create(ctx, &employee.Employee{ID: 8, Name: "Manish"})
		assert.NoError(t, err)
		assert.NoError(t, tx.Rollback())

		assert.NoError(t, txMock.ExpectationsWereMet())
		assert.NoError(t, poolMock.ExpectationsWereMet())
	})

	t.Run("delete runs on the transaction, not the pool", func(t *testing.T) {
		repo, poolMock, tx, txMock := setupTxRepo(t)

		txMock.ExpectExec(`DELETE FROM "employees"`).
			WithArgs(int64(5)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		txMock.ExpectCommit()

		err := repo.WithTx(tx).Delete(ctx, 5)
		assert.NoError(t, err)
		assert.NoError(t, tx.Commit())

		assert.NoError(t, txMock.ExpectationsWereMet())
		assert.NoError(t, poolMock.ExpectationsWereMet())
	})

	t.Run("the original repository still uses the pool", func(t *testing.T) {
		repo, poolMock, tx, txMock := setupTxRepo(t)

		_ = repo.WithTx(tx)

		poolMock.ExpectQuery(`SELECT count\(\*\) FROM "employees"`).
			WithArgs("hukum@example.com").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		taken, err := repo.ExistsByEmail(ctx, "hukum@example.com", 0)
		assert.NoError(t, err)
		assert.False(t, taken)

		txMock.ExpectRollback()
		assert.NoError(t, tx.Rollback())
		assert.NoError(t, poolMock.ExpectationsWereMet())
	})
}
