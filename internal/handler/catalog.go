// Package handler defines HTTP handlers for the booking service.
// This file implements the public catalog endpoints: the list of
// active issue dates and the per-day slot grid.  Both are read-only
// and sit behind the response cache, since every visitor polls them
// while deciding which pickup time to take.
package handler

import (
	"net/http" // status code constants

	"github.com/iliyamo/ration-slot-booking/internal/repository" // repository holds data access layer
	"github.com/iliyamo/ration-slot-booking/internal/schedule"   // date parsing and slot template
	"github.com/labstack/echo/v4"                                // echo provides request/response handling
)

// CatalogHandler bundles repositories for the public browse endpoints.
type CatalogHandler struct {
	IssueDates *repository.IssueDateRepo // access to the active distribution cycle
	Slots      *repository.SlotRepo      // access to the per-day slot grid
}

// NewCatalogHandler constructs a CatalogHandler and panics if any dependency is nil.
func NewCatalogHandler(issueDates *repository.IssueDateRepo, slots *repository.SlotRepo) *CatalogHandler {
	if issueDates == nil || slots == nil {
		panic("nil repository passed to NewCatalogHandler")
	}
	return &CatalogHandler{IssueDates: issueDates, Slots: slots}
}

// slotPart is the public projection of a slot row.
type slotPart struct {
	ID           uint64 `json:"id"`
	StartTime    string `json:"start_time"`
	DurationMins uint32 `json:"duration_mins"`
	Booked       bool   `json:"booked"`
}

// ListIssueDates handles GET /v1/issue-dates.  It returns the active
// distribution dates in ascending order.  An empty array means no
// cycle is currently open.
func (h *CatalogHandler) ListIssueDates(c echo.Context) error {
	dates, err := h.IssueDates.ListDates(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load issue dates"})
	}
	items := make([]string, 0, len(dates))
	for _, d := range dates {
		items = append(items, d.Format(schedule.DateLayout))
	}
	return c.JSON(http.StatusOK, echo.Map{
		"items": items,
	})
}

// ListSlots handles GET /v1/issue-dates/:date/slots.  It returns every
// slot for the given date ordered by start time, with the booked flag
// so the client can grey out taken times.  A date outside the active
// set responds with 404.
func (h *CatalogHandler) ListSlots(c echo.Context) error {
	date, err := schedule.ParseDate(c.Param("date"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date"})
	}
	ctx := c.Request().Context()
	ok, err := h.IssueDates.Exists(ctx, date)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to check issue date"})
	}
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": repository.ErrDateNotFound.Error()})
	}
	slots, err := h.Slots.ListByDate(ctx, date)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load slots"})
	}
	items := make([]slotPart, 0, len(slots))
	for _, s := range slots {
		items = append(items, slotPart{
			ID:           s.ID,
			StartTime:    s.StartTime,
			DurationMins: s.DurationMins,
			Booked:       s.Booked,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"date":  date.Format(schedule.DateLayout),
		"items": items,
	})
}
