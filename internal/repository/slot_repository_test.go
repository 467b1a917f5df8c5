package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDay = time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)

func TestEnsureBulkTxCountsOnlyNewRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	// Three requested times, one already existed: INSERT IGNORE
	// reports two affected rows.
	mock.ExpectExec("INSERT IGNORE INTO slots").
		WillReturnResult(sqlmock.NewResult(0, 2))

	tx, err := db.Begin()
	require.NoError(t, err)

	repo := NewSlotRepo(db)
	n, err := repo.EnsureBulkTx(context.Background(), tx, testDay, []string{"09:00:00", "09:05:00", "09:10:00"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureBulkTxEmptyTimes(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	tx, err := db.Begin()
	require.NoError(t, err)

	repo := NewSlotRepo(db)
	n, err := repo.EnsureBulkTx(context.Background(), tx, testDay, nil)
	require.NoError(t, err)
	assert.Zero(t, n)
	// No statement must have been issued.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetForUpdateTxNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").
		WithArgs(uint64(5)).
		WillReturnRows(sqlmock.NewRows(nil))

	tx, err := db.Begin()
	require.NoError(t, err)

	repo := NewSlotRepo(db)
	_, err = repo.GetForUpdateTx(context.Background(), tx, 5)
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestMarkBookedTxLosingRace(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	// A concurrent winner already flipped the flag: zero rows affected.
	mock.ExpectExec("UPDATE slots SET booked = TRUE").
		WithArgs(uint64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	tx, err := db.Begin()
	require.NoError(t, err)

	repo := NewSlotRepo(db)
	err = repo.MarkBookedTx(context.Background(), tx, 5)
	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestMarkBookedTxSuccess(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE slots SET booked = TRUE").
		WithArgs(uint64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	tx, err := db.Begin()
	require.NoError(t, err)

	repo := NewSlotRepo(db)
	assert.NoError(t, repo.MarkBookedTx(context.Background(), tx, 5))
}

func TestDeleteByDateTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM slots WHERE date").
		WithArgs("2026-01-02").
		WillReturnResult(sqlmock.NewResult(0, 115))

	tx, err := db.Begin()
	require.NoError(t, err)

	repo := NewSlotRepo(db)
	n, err := repo.DeleteByDateTx(context.Background(), tx, testDay)
	require.NoError(t, err)
	assert.Equal(t, int64(115), n)
}
