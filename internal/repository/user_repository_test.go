package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func userRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "ration_card", "name", "phone", "created_at"}).
		AddRow(7, "1002003001", "User One", "9100000001", time.Now())
}

func TestGetByIDTxLocksUserRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	// The allocator relies on the exclusive row lock to serialize
	// rival attempts by the same holder, so the statement must carry
	// the FOR UPDATE clause.
	mock.ExpectQuery(`FROM users WHERE id=\? LIMIT 1 FOR UPDATE`).
		WithArgs(uint64(7)).
		WillReturnRows(userRows())

	tx, err := db.Begin()
	require.NoError(t, err)

	repo := NewUserRepo(db)
	u, err := repo.GetByIDTx(context.Background(), tx, 7)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), u.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByIDTxNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM users WHERE id=\? LIMIT 1 FOR UPDATE`).
		WithArgs(uint64(99)).
		WillReturnRows(sqlmock.NewRows(nil))

	tx, err := db.Begin()
	require.NoError(t, err)

	repo := NewUserRepo(db)
	_, err = repo.GetByIDTx(context.Background(), tx, 99)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestGetByRationCardNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("FROM users WHERE ration_card").
		WithArgs("0000000000").
		WillReturnRows(sqlmock.NewRows(nil))

	repo := NewUserRepo(db)
	_, err = repo.GetByRationCard(context.Background(), "0000000000")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
