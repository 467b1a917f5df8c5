package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/iliyamo/ration-slot-booking/internal/model"
	"github.com/iliyamo/ration-slot-booking/internal/schedule"
)

// SlotRepo encapsulates database operations for slots.  Slots form
// the fixed per-day catalog materialized by the generator; the
// booked flag is only ever flipped inside the booking allocator's
// transaction, under a row lock taken by GetForUpdateTx.
type SlotRepo struct {
	db *sql.DB
}

// NewSlotRepo constructs a SlotRepo given a DB handle.
func NewSlotRepo(db *sql.DB) *SlotRepo {
	return &SlotRepo{db: db}
}

// DB exposes the underlying handle so handlers can begin transactions
// that span slots, bookings and issue dates.
func (r *SlotRepo) DB() *sql.DB { return r.db }

// EnsureBulkTx inserts the given start times for one date in a
// single statement, skipping rows that already exist, and returns
// the number of slots actually created.  The INSERT IGNORE relies on
// the unique key over (date, start_time), which makes re-running the
// generator over an overlapping range a gap-filling no-op rather
// than an error.  Passing an empty time list has no effect.
func (r *SlotRepo) EnsureBulkTx(ctx context.Context, tx *sql.Tx, date time.Time, startTimes []string) (int64, error) {
	if len(startTimes) == 0 {
		return 0, nil
	}
	query := `INSERT IGNORE INTO slots (date, start_time, duration_mins, booked) VALUES `
	args := make([]interface{}, 0, len(startTimes)*4)
	day := date.Format(schedule.DateLayout)
	for i, t := range startTimes {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?, ?)"
		args = append(args, day, t, schedule.SlotDurationMins, false)
	}
	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// ListByDate returns all slots for a calendar date ordered by start
// time.  When the date has no slots an empty slice is returned.
func (r *SlotRepo) ListByDate(ctx context.Context, date time.Time) ([]model.Slot, error) {
	const q = `SELECT id, date, start_time, duration_mins, booked, created_at
			   FROM slots
			   WHERE date = ?
			   ORDER BY start_time`
	rows, err := r.db.QueryContext(ctx, q, date.Format(schedule.DateLayout))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	slots := make([]model.Slot, 0)
	for rows.Next() {
		var s model.Slot
		if err := rows.Scan(&s.ID, &s.Date, &s.StartTime, &s.DurationMins, &s.Booked, &s.CreatedAt); err != nil {
			return nil, err
		}
		s.Date = s.Date.UTC()
		slots = append(slots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return slots, nil
}

// GetForUpdateTx loads a slot by id within the provided transaction
// while taking an exclusive row lock.  Concurrent allocation
// attempts on the same slot serialize on this lock, so the booked
// check that follows cannot be stale.  ErrSlotNotFound is returned
// when the id does not resolve.
func (r *SlotRepo) GetForUpdateTx(ctx context.Context, tx *sql.Tx, id uint64) (model.Slot, error) {
	const q = `SELECT id, date, start_time, duration_mins, booked, created_at
			   FROM slots
			   WHERE id = ?
			   FOR UPDATE`
	var s model.Slot
	err := tx.QueryRowContext(ctx, q, id).Scan(&s.ID, &s.Date, &s.StartTime, &s.DurationMins, &s.Booked, &s.CreatedAt)
	if err == sql.ErrNoRows {
		return model.Slot{}, ErrSlotNotFound
	}
	if err != nil {
		return model.Slot{}, err
	}
	s.Date = s.Date.UTC()
	return s, nil
}

// MarkBookedTx flips the booked flag of a free slot within the
// provided transaction.  The conditional WHERE clause means a
// concurrent winner leaves zero affected rows, which is surfaced as
// ErrSlotTaken rather than silently double-allocating.
func (r *SlotRepo) MarkBookedTx(ctx context.Context, tx *sql.Tx, id uint64) error {
	res, err := tx.ExecContext(ctx,
		`UPDATE slots SET booked = TRUE WHERE id = ? AND booked = FALSE`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrSlotTaken
	}
	return nil
}

// DeleteByDateTx removes all slots for a calendar date within the
// provided transaction and returns how many were removed.  Bookings
// referencing those slots must be deleted first; the caller owns
// the ordering.
func (r *SlotRepo) DeleteByDateTx(ctx context.Context, tx *sql.Tx, date time.Time) (int64, error) {
	res, err := tx.ExecContext(ctx,
		`DELETE FROM slots WHERE date = ?`, date.Format(schedule.DateLayout))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Count returns the total number of slot rows.  Shown on the admin
// panel after generation.
func (r *SlotRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM slots`).Scan(&n)
	return n, err
}
