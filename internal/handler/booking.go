package handler

import (
	"context"  // background context for the fire-and-forget publish
	"net/http" // HTTP status codes
	"strconv"  // parsing path parameters
	"time"     // timestamps on the published event

	"github.com/iliyamo/ration-slot-booking/internal/model"      // booking record type
	"github.com/iliyamo/ration-slot-booking/internal/queue"      // broker event payloads
	"github.com/iliyamo/ration-slot-booking/internal/repository" // repository layer
	"github.com/iliyamo/ration-slot-booking/internal/schedule"   // date formatting
	queue_publisher "github.com/iliyamo/ration-slot-booking/internal/service"
	"github.com/iliyamo/ration-slot-booking/internal/utils" // reference code generation
	"github.com/labstack/echo/v4"                           // Echo web framework
)

// BookingHandler groups repositories required to allocate pickup
// slots and show bookings back to card holders.  All methods assume
// JWT authentication and role validation has already been performed
// by middleware.  The allocation itself runs inside a transaction: a
// row lock on the slot serializes rival requests, and the unique key
// on bookings.slot_id catches anything the lock cannot.
type BookingHandler struct {
	UserRepo    *repository.UserRepo    // access to card holders
	SlotRepo    *repository.SlotRepo    // access to slots for locking and flag updates
	BookingRepo *repository.BookingRepo // access to bookings
}

// NewBookingHandler constructs a new BookingHandler with the provided
// repositories.  All dependencies must be non-nil.
func NewBookingHandler(userRepo *repository.UserRepo, slotRepo *repository.SlotRepo, bookingRepo *repository.BookingRepo) *BookingHandler {
	if userRepo == nil || slotRepo == nil || bookingRepo == nil {
		panic("nil repository passed to NewBookingHandler")
	}
	return &BookingHandler{
		UserRepo:    userRepo,
		SlotRepo:    slotRepo,
		BookingRepo: bookingRepo,
	}
}

// Book handles POST /v1/slots/:id/book.  It allocates the slot to the
// authenticated card holder.  The rules: the slot must exist and be
// free, and the holder must not already have a booking anywhere in
// the active issue-date set.  On success it returns 201 with the
// reference code the holder presents at the counter.  Losing a race
// for the slot returns 409.
func (h *BookingHandler) Book(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	slotID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || slotID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid slot id"})
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
	user, err := h.UserRepo.GetByIDTx(ctx, tx, userID)
	if err != nil {
		if err == repository.ErrUserNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	// lock the slot row; rival bookings for the same slot wait here
	slot, err := h.SlotRepo.GetForUpdateTx(ctx, tx, slotID)
	if err != nil {
		if err == repository.ErrSlotNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "slot not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	// one booking per holder across the whole active cycle
	count, err := h.BookingRepo.CountInActiveCycleTx(ctx, tx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to check existing booking"})
	}
	if count > 0 {
		return c.JSON(http.StatusConflict, echo.Map{"error": repository.ErrAlreadyBooked.Error()})
	}
	if slot.Booked {
		return c.JSON(http.StatusConflict, echo.Map{"error": "slot already taken"})
	}
	if err := h.SlotRepo.MarkBookedTx(ctx, tx, slotID); err != nil {
		if err == repository.ErrSlotTaken {
			return c.JSON(http.StatusConflict, echo.Map{"error": "slot already taken"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update slot"})
	}
	refCode, err := utils.NewRefCode()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to generate reference code"})
	}
	booking := &model.Booking{
		UserID:      userID,
		SlotID:      slotID,
		BookingDate: slot.Date,
		RefCode:     refCode,
		Status:      model.BookingStatusBooked,
	}
	if err := h.BookingRepo.CreateTx(ctx, tx, booking); err != nil {
		switch err {
		case repository.ErrSlotTaken:
			return c.JSON(http.StatusConflict, echo.Map{"error": "slot already taken"})
		case repository.ErrConflict:
			return c.JSON(http.StatusConflict, echo.Map{"error": "booking conflict, retry"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create booking"})
		}
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true

	// notify downstream consumers; a broker outage must not fail the booking
	ev := queue.BookingConfirmedEvent{
		BookingID:   booking.ID,
		UserID:      userID,
		RationCard:  user.RationCard,
		SlotID:      slotID,
		SlotDate:    slot.Date.Format(schedule.DateLayout),
		SlotStart:   slot.StartTime,
		RefCode:     refCode,
		ConfirmedAt: time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		pubCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = queue_publisher.PublishBookingConfirmed(pubCtx, ev)
	}()

	return c.JSON(http.StatusCreated, echo.Map{
		"booking_id": booking.ID,
		"ref_code":   refCode,
		"slot_id":    slotID,
		"date":       slot.Date.Format(schedule.DateLayout),
		"start_time": slot.StartTime,
	})
}

// GetBooking handles GET /v1/bookings/:id.  It returns the details of
// a single booking for the authenticated holder.  Ownership is
// enforced in the repository query, so a foreign booking id responds
// with 404 rather than leaking its existence.
func (h *BookingHandler) GetBooking(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	bookingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || bookingID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	detail, err := h.BookingRepo.GetByIDForUser(c.Request().Context(), bookingID, userID)
	if err != nil {
		if err == repository.ErrBookingNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch booking"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"item": detail,
	})
}

// MyBooking handles GET /v1/my-booking.  It returns the holder's
// booking inside the active issue-date set, or 404 when they have not
// booked in the open cycle.
func (h *BookingHandler) MyBooking(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	detail, err := h.BookingRepo.GetActiveForUser(c.Request().Context(), userID)
	if err != nil {
		if err == repository.ErrBookingNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "no booking in the active cycle"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch booking"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"item": detail,
	})
}
