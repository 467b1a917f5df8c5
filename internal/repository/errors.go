// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrSlotTaken indicates that the requested slot already
// carries a booking, while ErrAlreadyBooked signals that the user
// already holds a slot somewhere in the active cycle.
package repository

import (
	"errors"
	"strings"
)

// ErrUserNotFound is returned when a user id or ration card number
// does not resolve to a users row. Handlers should translate this
// into an HTTP 404 response (or 401 during login).
var ErrUserNotFound = errors.New("user not found")

// ErrSlotNotFound is returned when a slot id does not resolve.
// Handlers should translate this into an HTTP 404 response.
var ErrSlotNotFound = errors.New("slot not found")

// ErrDateNotFound names the failure of a calendar date that has no
// issue date row. Handlers surface its message in the HTTP 404
// response body.
var ErrDateNotFound = errors.New("issue date not found")

// ErrBookingNotFound is returned when a booking id does not resolve.
var ErrBookingNotFound = errors.New("booking not found")

// ErrAlreadyBooked names the failure of a user who already holds a
// booking whose slot date lies inside the currently active issue-date
// set. One slot per user per open cycle; handlers surface its
// message in the HTTP 409 response body.
var ErrAlreadyBooked = errors.New("user already booked in active cycle")

// ErrSlotTaken is returned when the target slot already carries a
// booking, including the case where a concurrent request won the
// race and the unique key on bookings.slot_id fired. Handlers
// should translate this into an HTTP 409 response.
var ErrSlotTaken = errors.New("slot already taken")

// ErrConflict is returned when a uniqueness constraint other than
// the slot reference fires under concurrent access (e.g. a ref-code
// collision). Handlers should translate this into an HTTP 409
// response; the client may simply retry.
var ErrConflict = errors.New("conflict")

// isDuplicateKey reports whether err is a MySQL duplicate-entry
// error (code 1062). The driver does not expose a typed error for
// this, so the error string is inspected the same way throughout
// the repositories.
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(strings.ToLower(err.Error()), "1062")
}
