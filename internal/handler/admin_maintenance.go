// This file implements the destructive ADMIN maintenance endpoints:
// removing a single issue date and clearing a whole range.  Both
// cascade bookings first, then slots, then the issue date itself, so
// no dangling references survive a partial view of the data.
package handler

import (
	"net/http" // status code constants

	"github.com/iliyamo/ration-slot-booking/internal/repository" // sentinel errors for response messages
	"github.com/iliyamo/ration-slot-booking/internal/schedule"   // date and range parsing
	"github.com/labstack/echo/v4"                                // echo provides request/response handling
)

// DeleteIssueDate handles DELETE /v1/admin/issue-dates/:date.  It
// removes the date from the active cycle together with its slots and
// any bookings on them.  A date that is not part of the cycle
// responds with 404.
func (h *AdminHandler) DeleteIssueDate(c echo.Context) error {
	date, err := schedule.ParseDate(c.Param("date"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date"})
	}
	ctx := c.Request().Context()
	tx, err := h.SlotRepo.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	exists, err := h.IssueDateRepo.ExistsTx(ctx, tx, date)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to check issue date"})
	}
	if !exists {
		return c.JSON(http.StatusNotFound, echo.Map{"error": repository.ErrDateNotFound.Error()})
	}
	bookings, err := h.BookingRepo.DeleteBySlotDateTx(ctx, tx, date)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete bookings"})
	}
	slots, err := h.SlotRepo.DeleteByDateTx(ctx, tx, date)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete slots"})
	}
	if _, err := h.IssueDateRepo.DeleteTx(ctx, tx, date); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete issue date"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true
	return c.JSON(http.StatusOK, echo.Map{
		"date":             date.Format(schedule.DateLayout),
		"slots_deleted":    slots,
		"bookings_deleted": bookings,
	})
}

type clearReq struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// ClearSlots handles POST /v1/admin/slots/clear.  It walks the
// inclusive range and removes every issue date found in it, cascading
// bookings and slots the same way as the single-date delete.  Dates
// in the range that were never opened are skipped silently; only what
// was actually removed is reported.
func (h *AdminHandler) ClearSlots(c echo.Context) error {
	var req clearReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	start, end, err := schedule.ParseRange(req.StartDate, req.EndDate)
	if err != nil {
		switch err {
		case schedule.ErrInvalidDate:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date"})
		case schedule.ErrInvalidRange:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "start_date must not be after end_date"})
		default:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid range"})
		}
	}
	ctx := c.Request().Context()
	tx, err := h.SlotRepo.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	var (
		datesCleared    int64
		slotsDeleted    int64
		bookingsDeleted int64
	)
	for _, day := range schedule.DateRange(start, end) {
		exists, err := h.IssueDateRepo.ExistsTx(ctx, tx, day)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to check issue date"})
		}
		if !exists {
			continue
		}
		b, err := h.BookingRepo.DeleteBySlotDateTx(ctx, tx, day)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete bookings"})
		}
		s, err := h.SlotRepo.DeleteByDateTx(ctx, tx, day)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete slots"})
		}
		if _, err := h.IssueDateRepo.DeleteTx(ctx, tx, day); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete issue date"})
		}
		datesCleared++
		slotsDeleted += s
		bookingsDeleted += b
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true
	return c.JSON(http.StatusOK, echo.Map{
		"dates_cleared":    datesCleared,
		"slots_deleted":    slotsDeleted,
		"bookings_deleted": bookingsDeleted,
	})
}
