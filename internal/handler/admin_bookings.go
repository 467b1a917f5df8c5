package handler

import (
	"net/http" // status code constants

	"github.com/labstack/echo/v4" // echo provides request/response handling
)

// ListBookings handles GET /v1/admin/bookings.  It returns every
// booking with slot and holder details, newest first, for the
// distribution office dashboard.
func (h *AdminHandler) ListBookings(c echo.Context) error {
	items, err := h.BookingRepo.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load bookings"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"items": items,
	})
}
