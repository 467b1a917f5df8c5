package model

import "time"

// Slot is a fixed five-minute appointment window on an issue date.
// Each (date, start time) pair is unique.  The booked flag is true
// iff an active booking references the slot; it is flipped inside
// the same transaction that inserts the booking.
//
// Fields:
//  ID           – primary key identifier.
//  Date         – calendar date of the slot (time portion zero, UTC).
//  StartTime    – time of day the window opens, formatted HH:MM:SS.
//  DurationMins – window length in minutes (always 5).
//  Booked       – whether a booking holds this slot.
//  CreatedAt    – creation timestamp.
type Slot struct {
	ID           uint64    // slots.id
	Date         time.Time // slots.date
	StartTime    string    // slots.start_time
	DurationMins uint32    // slots.duration_mins
	Booked       bool      // slots.booked
	CreatedAt    time.Time // slots.created_at
}
