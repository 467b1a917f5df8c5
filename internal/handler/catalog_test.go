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
)

func newCatalogTestHandler(t *testing.T) (*CatalogHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	h := NewCatalogHandler(
		repository.NewIssueDateRepo(db),
		repository.NewSlotRepo(db),
	)
	return h, mock
}

func TestListIssueDates(t *testing.T) {
	h, mock := newCatalogTestHandler(t)

	mock.ExpectQuery("SELECT date FROM issue_dates").
		WillReturnRows(sqlmock.NewRows([]string{"date"}).
			AddRow(time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)).
			AddRow(time.Date(2026, 1, 3, 0, 0, 0, 0, time.UTC)))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/issue-dates", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.ListIssueDates(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Items []string `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []string{"2026-01-02", "2026-01-03"}, resp.Items)
}

func TestListSlotsForDate(t *testing.T) {
	h, mock := newCatalogTestHandler(t)

	mock.ExpectQuery("SELECT id FROM issue_dates").WithArgs("2026-01-02").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery("FROM slots").WithArgs("2026-01-02").
		WillReturnRows(sqlmock.NewRows([]string{"id", "date", "start_time", "duration_mins", "booked", "created_at"}).
			AddRow(1, time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC), "09:00:00", 5, false, time.Now().UTC()).
			AddRow(2, time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC), "09:05:00", 5, true, time.Now().UTC()))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/issue-dates/2026-01-02/slots", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("date")
	c.SetParamValues("2026-01-02")

	require.NoError(t, h.ListSlots(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Date  string     `json:"date"`
		Items []slotPart `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "2026-01-02", resp.Date)
	require.Len(t, resp.Items, 2)
	assert.False(t, resp.Items[0].Booked)
	assert.True(t, resp.Items[1].Booked)
}

func TestListSlotsUnknownDate(t *testing.T) {
	h, mock := newCatalogTestHandler(t)

	mock.ExpectQuery("SELECT id FROM issue_dates").WithArgs("2026-01-09").
		WillReturnRows(sqlmock.NewRows(nil))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/issue-dates/2026-01-09/slots", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("date")
	c.SetParamValues("2026-01-09")

	require.NoError(t, h.ListSlots(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), repository.ErrDateNotFound.Error())
}

func TestListSlotsBadDate(t *testing.T) {
	h, _ := newCatalogTestHandler(t)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/issue-dates/tomorrow/slots", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("date")
	c.SetParamValues("tomorrow")

	require.NoError(t, h.ListSlots(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
