package model

import "time"

// Booking allocates exactly one slot to exactly one user.  The slot
// reference is unique, so at most one booking can ever point at a
// slot; the reference code is a short random token shown to the
// user as confirmation.  Bookings are never updated after creation
// and only disappear through the cascading admin maintenance path.
//
// Fields:
//  ID          – primary key identifier.
//  UserID      – user who booked the slot.
//  SlotID      – slot being booked (unique).
//  BookingDate – calendar date of the slot, denormalized for listing.
//  RefCode     – unique 8-character hex reference code.
//  Status      – state of the booking (currently always BOOKED).
//  CreatedAt   – creation timestamp.
type Booking struct {
	ID          uint64    // bookings.id
	UserID      uint64    // bookings.user_id
	SlotID      uint64    // bookings.slot_id
	BookingDate time.Time // bookings.booking_date
	RefCode     string    // bookings.ref_code
	Status      string    // bookings.status
	CreatedAt   time.Time // bookings.created_at
}

// BookingStatusBooked is the only status currently written.  A
// status column exists so that a cancellation flow can be added
// without a schema change.
const BookingStatusBooked = "BOOKED"
