package kafka_test

import (
	"context"
	"errors"
	"testing"

	"emp-portal/internal/messaging/kafka"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestMigrateOutbox(t *testing.T) {
	t.Run("provisions table and index", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`CREATE TABLE IF NOT EXISTS outbox_events`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`CREATE INDEX IF NOT EXISTS idx_outbox_events_pending`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.NoError(t, kafka.MigrateOutbox(context.Background(), db))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("stops on the first failing statement", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`CREATE TABLE IF NOT EXISTS outbox_events`).
			WillReturnError(errors.New("permission denied"))

		err = kafka.MigrateOutbox(context.Background(), db)
		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
