package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dangerclosesec/accountd/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecurityFailureSignals(t *testing.T) {
	since := time.Now().Add(-24 * time.Hour)

	t.Run("scans the aggregate maxima", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewSecurityRepository(db)

		mock.ExpectQuery(`SELECT`).
			WillReturnRows(sqlmock.NewRows([]string{"max_per_ip", "max_per_email", "max_ips_per_email"}).
				AddRow(int64(23), int64(4), int64(1)))

		signals, err := repo.FailureSignals(context.Background(), since)

		require.NoError(t, err)
		assert.Equal(t, int64(23), signals.MaxPerIP)
		assert.Equal(t, int64(4), signals.MaxPerEmail)
		assert.Equal(t, int64(1), signals.MaxIPsPerEmail)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty window yields zeros", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewSecurityRepository(db)

		mock.ExpectQuery(`SELECT`).
			WillReturnRows(sqlmock.NewRows([]string{"max_per_ip", "max_per_email", "max_ips_per_email"}).
				AddRow(int64(0), int64(0), int64(0)))

		signals, err := repo.FailureSignals(context.Background(), since)

		require.NoError(t, err)
		assert.Zero(t, signals.MaxPerIP)
		assert.Zero(t, signals.MaxPerEmail)
		assert.Zero(t, signals.MaxIPsPerEmail)
	})
}
