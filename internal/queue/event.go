// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingConfirmedEvent is published when a ration pickup slot is successfully
// booked.  It contains enough information for downstream consumers to log,
// notify, or trigger analytics without querying the primary database.
type BookingConfirmedEvent struct {
	BookingID   uint64 `json:"booking_id"`
	UserID      uint64 `json:"user_id"`
	RationCard  string `json:"ration_card"`
	SlotID      uint64 `json:"slot_id"`
	SlotDate    string `json:"slot_date"`
	SlotStart   string `json:"slot_start"`
	RefCode     string `json:"ref_code"`
	ConfirmedAt string `json:"confirmed_at"`
}
