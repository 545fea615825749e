package service

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OlgaOrl/massage-booking/internal/repository"
)

func TestPurgeExpiredReservations(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	svc := NewCleanupService(repository.NewCleanupRepository(db))

	mock.ExpectQuery(`SELECT id FROM temporary_reservations WHERE expires_at < NOW\(\)`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3).AddRow(8))
	mock.ExpectExec(`DELETE FROM temporary_reservations WHERE id = ANY`).
		WithArgs(pq.Array([]int{3, 8})).
		WillReturnResult(sqlmock.NewResult(0, 2))

	require.NoError(t, svc.PurgeExpiredReservations())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPurgeExpiredReservationsNothingToDo(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	svc := NewCleanupService(repository.NewCleanupRepository(db))

	mock.ExpectQuery(`SELECT id FROM temporary_reservations WHERE expires_at < NOW\(\)`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	require.NoError(t, svc.PurgeExpiredReservations())
	assert.NoError(t, mock.ExpectationsWereMet())
}
