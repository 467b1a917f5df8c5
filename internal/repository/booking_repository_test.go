package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/ration-slot-booking/internal/model"
)

func newBooking() *model.Booking {
	return &model.Booking{
		UserID:      7,
		SlotID:      42,
		BookingDate: time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
		RefCode:     "a1b2c3d4",
		Status:      model.BookingStatusBooked,
	}
}

func TestBookingCreateTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO bookings").
		WithArgs(uint64(7), uint64(42), "2026-01-02", "a1b2c3d4", "BOOKED").
		WillReturnResult(sqlmock.NewResult(11, 1))
	mock.ExpectQuery("SELECT created_at FROM bookings").
		WithArgs(uint64(11)).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now().UTC()))

	tx, err := db.Begin()
	require.NoError(t, err)

	repo := NewBookingRepo(db)
	b := newBooking()
	require.NoError(t, repo.CreateTx(context.Background(), tx, b))
	assert.Equal(t, uint64(11), b.ID)
	assert.False(t, b.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingCreateTxSlotRaceMapsToSlotTaken(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO bookings").
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry '42' for key 'bookings.uniq_slot'"))

	tx, err := db.Begin()
	require.NoError(t, err)

	repo := NewBookingRepo(db)
	err = repo.CreateTx(context.Background(), tx, newBooking())
	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestBookingCreateTxRefCodeCollisionMapsToConflict(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO bookings").
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry 'a1b2c3d4' for key 'bookings.uniq_ref_code'"))

	tx, err := db.Begin()
	require.NoError(t, err)

	repo := NewBookingRepo(db)
	err = repo.CreateTx(context.Background(), tx, newBooking())
	assert.ErrorIs(t, err, ErrConflict)
}

func TestCountInActiveCycleTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT COUNT").
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	tx, err := db.Begin()
	require.NoError(t, err)

	repo := NewBookingRepo(db)
	n, err := repo.CountInActiveCycleTx(context.Background(), tx, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestGetByIDForUserNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("FROM bookings b").
		WithArgs(uint64(99), uint64(7)).
		WillReturnRows(sqlmock.NewRows(nil))

	repo := NewBookingRepo(db)
	_, err = repo.GetByIDForUser(context.Background(), 99, 7)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestDeleteBySlotDateTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE b FROM bookings b").
		WithArgs("2026-01-02").
		WillReturnResult(sqlmock.NewResult(0, 3))

	tx, err := db.Begin()
	require.NoError(t, err)

	repo := NewBookingRepo(db)
	n, err := repo.DeleteBySlotDateTx(context.Background(), tx, time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}
