package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/ration-slot-booking/internal/repository"
	"github.com/iliyamo/ration-slot-booking/internal/utils"
)

func newBookingTestHandler(t *testing.T) (*BookingHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	h := NewBookingHandler(
		repository.NewUserRepo(db),
		repository.NewSlotRepo(db),
		repository.NewBookingRepo(db),
	)
	return h, mock
}

func bookRequest(slotID string, userID uint64) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/slots/"+slotID+"/book", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(slotID)
	c.Set("user_id", userID)
	c.Set("role", "USER")
	return c, rec
}

func userRow() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "ration_card", "name", "phone", "created_at"}).
		AddRow(7, "1002003001", "User One", "9100000001", time.Now().UTC())
}

func slotRow(booked bool) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "date", "start_time", "duration_mins", "booked", "created_at"}).
		AddRow(42, time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC), "09:05:00", 5, booked, time.Now().UTC())
}

func TestBookAllocatesFreeSlot(t *testing.T) {
	h, mock := newBookingTestHandler(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM users WHERE id=\? LIMIT 1 FOR UPDATE`).WithArgs(uint64(7)).WillReturnRows(userRow())
	mock.ExpectQuery("FOR UPDATE").WithArgs(uint64(42)).WillReturnRows(slotRow(false))
	mock.ExpectQuery("SELECT COUNT").WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec("UPDATE slots SET booked = TRUE").WithArgs(uint64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO bookings").
		WillReturnResult(sqlmock.NewResult(11, 1))
	mock.ExpectQuery("SELECT created_at FROM bookings").WithArgs(uint64(11)).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now().UTC()))
	mock.ExpectCommit()

	c, rec := bookRequest("42", 7)
	require.NoError(t, h.Book(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		BookingID uint64 `json:"booking_id"`
		RefCode   string `json:"ref_code"`
		SlotID    uint64 `json:"slot_id"`
		Date      string `json:"date"`
		StartTime string `json:"start_time"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, uint64(11), resp.BookingID)
	assert.Len(t, resp.RefCode, utils.RefCodeLen)
	assert.Equal(t, "2026-01-02", resp.Date)
	assert.Equal(t, "09:05:00", resp.StartTime)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookRejectsSecondBookingInCycle(t *testing.T) {
	h, mock := newBookingTestHandler(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM users WHERE id=\? LIMIT 1 FOR UPDATE`).WithArgs(uint64(7)).WillReturnRows(userRow())
	mock.ExpectQuery("FOR UPDATE").WithArgs(uint64(42)).WillReturnRows(slotRow(false))
	mock.ExpectQuery("SELECT COUNT").WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	c, rec := bookRequest("42", 7)
	require.NoError(t, h.Book(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), repository.ErrAlreadyBooked.Error())
}

func TestBookRejectsTakenSlot(t *testing.T) {
	h, mock := newBookingTestHandler(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM users WHERE id=\? LIMIT 1 FOR UPDATE`).WithArgs(uint64(7)).WillReturnRows(userRow())
	mock.ExpectQuery("FOR UPDATE").WithArgs(uint64(42)).WillReturnRows(slotRow(true))
	mock.ExpectQuery("SELECT COUNT").WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectRollback()

	c, rec := bookRequest("42", 7)
	require.NoError(t, h.Book(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "slot already taken")
}

func TestBookUnknownSlot(t *testing.T) {
	h, mock := newBookingTestHandler(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM users WHERE id=\? LIMIT 1 FOR UPDATE`).WithArgs(uint64(7)).WillReturnRows(userRow())
	mock.ExpectQuery("FOR UPDATE").WithArgs(uint64(999)).WillReturnRows(sqlmock.NewRows(nil))
	mock.ExpectRollback()

	c, rec := bookRequest("999", 7)
	require.NoError(t, h.Book(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBookInvalidSlotID(t *testing.T) {
	h, _ := newBookingTestHandler(t)

	c, rec := bookRequest("abc", 7)
	require.NoError(t, h.Book(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMyBookingNotFound(t *testing.T) {
	h, mock := newBookingTestHandler(t)

	mock.ExpectQuery("FROM bookings b").WithArgs(uint64(7)).WillReturnRows(sqlmock.NewRows(nil))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/my-booking", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", uint64(7))

	require.NoError(t, h.MyBooking(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
