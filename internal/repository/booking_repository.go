package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/iliyamo/ration-slot-booking/internal/model"
	"github.com/iliyamo/ration-slot-booking/internal/schedule"
)

// BookingRepo provides CRUD operations for bookings.  A booking
// allocates exactly one slot to exactly one user; the unique key on
// bookings.slot_id is the storage-level backstop for the allocator's
// row lock, and a duplicate-key failure on it is reported as
// ErrSlotTaken.  All timestamp fields are assumed to be stored in
// UTC.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// CreateTx inserts a new booking within the scope of an existing
// transaction.  It populates the generated ID and CreatedAt on the
// provided record.  The caller must commit or rollback the
// transaction.  A duplicate-key error on the slot reference maps to
// ErrSlotTaken (a concurrent insert won); any other duplicate (the
// astronomically unlikely ref-code collision) maps to ErrConflict.
func (r *BookingRepo) CreateTx(ctx context.Context, tx *sql.Tx, b *model.Booking) error {
	const q = `INSERT INTO bookings (user_id, slot_id, booking_date, ref_code, status) VALUES (?, ?, ?, ?, ?)`
	result, err := tx.ExecContext(ctx, q,
		b.UserID, b.SlotID, b.BookingDate.Format(schedule.DateLayout), b.RefCode, b.Status)
	if err != nil {
		if isDuplicateKey(err) {
			if strings.Contains(strings.ToLower(err.Error()), "slot") {
				return ErrSlotTaken
			}
			return ErrConflict
		}
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	// Query back the row to populate the DB-assigned timestamp.
	const sel = `SELECT created_at FROM bookings WHERE id = ?`
	return tx.QueryRowContext(ctx, sel, b.ID).Scan(&b.CreatedAt)
}

// CountInActiveCycleTx counts the user's bookings whose slot date
// lies inside the currently active issue-date set, within the
// provided transaction.  A non-zero count means the user already
// holds their one slot for the open cycle.  The rule deliberately
// spans the whole active set, not just the selected day.
func (r *BookingRepo) CountInActiveCycleTx(ctx context.Context, tx *sql.Tx, userID uint64) (int64, error) {
	const q = `SELECT COUNT(*)
			   FROM bookings b
			   JOIN slots s ON s.id = b.slot_id
			   JOIN issue_dates d ON d.date = s.date
			   WHERE b.user_id = ?`
	var n int64
	err := tx.QueryRowContext(ctx, q, userID).Scan(&n)
	return n, err
}

// BookingDetail joins a booking with its slot and holder for
// rendering a confirmation view or the admin listing.
type BookingDetail struct {
	ID           uint64 `json:"id"`
	RefCode      string `json:"ref_code"`
	Status       string `json:"status"`
	BookingDate  string `json:"booking_date"`
	SlotID       uint64 `json:"slot_id"`
	SlotStart    string `json:"slot_start"`
	DurationMins uint32 `json:"duration_mins"`
	UserID       uint64 `json:"user_id"`
	RationCard   string `json:"ration_card"`
	UserName     string `json:"user_name"`
	CreatedAt    string `json:"created_at"`
}

const bookingDetailQuery = `SELECT b.id, b.ref_code, b.status, b.booking_date,
								   s.id, s.start_time, s.duration_mins,
								   u.id, u.ration_card, u.name,
								   b.created_at
							FROM bookings b
							JOIN slots s ON s.id = b.slot_id
							JOIN users u ON u.id = b.user_id`

func scanBookingDetail(row interface{ Scan(...interface{}) error }) (BookingDetail, error) {
	var (
		d           BookingDetail
		bookingDate time.Time
		createdAt   time.Time
	)
	err := row.Scan(
		&d.ID, &d.RefCode, &d.Status, &bookingDate,
		&d.SlotID, &d.SlotStart, &d.DurationMins,
		&d.UserID, &d.RationCard, &d.UserName,
		&createdAt,
	)
	if err != nil {
		return BookingDetail{}, err
	}
	d.BookingDate = bookingDate.UTC().Format(schedule.DateLayout)
	d.CreatedAt = createdAt.UTC().Format(time.RFC3339)
	return d, nil
}

// GetByIDForUser returns a single booking with slot and user details
// when accessed by its owner.  ErrBookingNotFound is returned when
// the booking does not exist or belongs to a different user;
// ownership is enforced in the query so foreign ids do not leak.
func (r *BookingRepo) GetByIDForUser(ctx context.Context, bookingID, userID uint64) (BookingDetail, error) {
	q := bookingDetailQuery + ` WHERE b.id = ? AND b.user_id = ?`
	d, err := scanBookingDetail(r.db.QueryRowContext(ctx, q, bookingID, userID))
	if err == sql.ErrNoRows {
		return BookingDetail{}, ErrBookingNotFound
	}
	return d, err
}

// GetActiveForUser returns the user's booking inside the currently
// active issue-date set, if any.  ErrBookingNotFound means the user
// has not booked in the open cycle.
func (r *BookingRepo) GetActiveForUser(ctx context.Context, userID uint64) (BookingDetail, error) {
	q := bookingDetailQuery + `
							JOIN issue_dates d ON d.date = s.date
							WHERE b.user_id = ?
							ORDER BY b.id DESC
							LIMIT 1`
	d, err := scanBookingDetail(r.db.QueryRowContext(ctx, q, userID))
	if err == sql.ErrNoRows {
		return BookingDetail{}, ErrBookingNotFound
	}
	return d, err
}

// ListAll returns every booking with slot and holder details,
// newest first, for the admin view.
func (r *BookingRepo) ListAll(ctx context.Context) ([]BookingDetail, error) {
	q := bookingDetailQuery + ` ORDER BY b.id DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	details := make([]BookingDetail, 0)
	for rows.Next() {
		d, err := scanBookingDetail(rows)
		if err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return details, nil
}

// DeleteBySlotDateTx removes all bookings whose slot falls on the
// given calendar date, within the provided transaction, and returns
// how many were removed.  Runs before the slots themselves are
// deleted so the cascade never leaves dangling references.
func (r *BookingRepo) DeleteBySlotDateTx(ctx context.Context, tx *sql.Tx, date time.Time) (int64, error) {
	const q = `DELETE b FROM bookings b
			   JOIN slots s ON s.id = b.slot_id
			   WHERE s.date = ?`
	res, err := tx.ExecContext(ctx, q, date.Format(schedule.DateLayout))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
