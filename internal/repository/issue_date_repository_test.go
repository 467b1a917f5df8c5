package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueDateEnsureTxReportsCreation(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT IGNORE INTO issue_dates").
		WithArgs("2026-01-02").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT IGNORE INTO issue_dates").
		WithArgs("2026-01-02").
		WillReturnResult(sqlmock.NewResult(0, 0))

	tx, err := db.Begin()
	require.NoError(t, err)

	repo := NewIssueDateRepo(db)
	day := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)

	created, err := repo.EnsureTx(context.Background(), tx, day)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = repo.EnsureTx(context.Background(), tx, day)
	require.NoError(t, err)
	assert.False(t, created, "re-running over an existing date is a no-op")
}

func TestIssueDateDeleteTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM issue_dates").
		WithArgs("2026-01-02").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM issue_dates").
		WithArgs("2026-01-03").
		WillReturnResult(sqlmock.NewResult(0, 0))

	tx, err := db.Begin()
	require.NoError(t, err)

	repo := NewIssueDateRepo(db)

	removed, err := repo.DeleteTx(context.Background(), tx, time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = repo.DeleteTx(context.Background(), tx, time.Date(2026, 1, 3, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestIssueDateListDates(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT date FROM issue_dates").
		WillReturnRows(sqlmock.NewRows([]string{"date"}).
			AddRow(time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)).
			AddRow(time.Date(2026, 1, 3, 0, 0, 0, 0, time.UTC)))

	repo := NewIssueDateRepo(db)
	dates, err := repo.ListDates(context.Background())
	require.NoError(t, err)
	require.Len(t, dates, 2)
	assert.True(t, dates[0].Before(dates[1]))
}
