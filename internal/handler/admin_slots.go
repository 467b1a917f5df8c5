// Package handler defines HTTP handlers for authenticated ADMIN
// operations.  This file implements the slot catalog generator: given
// an inclusive date range it opens those dates for distribution and
// materializes the fixed daily grid of five-minute pickup slots.
package handler

import (
	"net/http" // status code constants

	"github.com/iliyamo/ration-slot-booking/internal/repository" // repository defines error types
	"github.com/iliyamo/ration-slot-booking/internal/schedule"   // daily template and range parsing
	"github.com/labstack/echo/v4"                                // echo provides request/response handling
)

// AdminHandler bundles repositories for administrator maintenance of
// the slot catalog.
type AdminHandler struct {
	IssueDateRepo *repository.IssueDateRepo // access to the active cycle dates
	SlotRepo      *repository.SlotRepo      // access to slots
	BookingRepo   *repository.BookingRepo   // access to bookings for cascades and listing
}

// NewAdminHandler constructs a new AdminHandler and panics if any dependency is nil.
func NewAdminHandler(issueDateRepo *repository.IssueDateRepo, slotRepo *repository.SlotRepo, bookingRepo *repository.BookingRepo) *AdminHandler {
	if issueDateRepo == nil || slotRepo == nil || bookingRepo == nil {
		panic("nil repository passed to NewAdminHandler")
	}
	return &AdminHandler{
		IssueDateRepo: issueDateRepo,
		SlotRepo:      slotRepo,
		BookingRepo:   bookingRepo,
	}
}

type generateReq struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// GenerateSlots handles POST /v1/admin/slots/generate.  It ensures an
// issue date row and the full daily grid exist for every date in the
// inclusive range.  The operation is idempotent: dates and slots that
// already exist are left untouched and only the gap-filling inserts
// are counted.  Existing bookings are never disturbed.
func (h *AdminHandler) GenerateSlots(c echo.Context) error {
	var req generateReq
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
	times := schedule.DailyTimes()
	var (
		datesCreated int64
		slotsCreated int64
	)
	for _, day := range schedule.DateRange(start, end) {
		created, err := h.IssueDateRepo.EnsureTx(ctx, tx, day)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create issue date"})
		}
		if created {
			datesCreated++
		}
		n, err := h.SlotRepo.EnsureBulkTx(ctx, tx, day, times)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create slots"})
		}
		slotsCreated += n
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true
	total, err := h.SlotRepo.Count(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to count slots"})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"dates_created": datesCreated,
		"slots_created": slotsCreated,
		"total_slots":   total,
	})
}
