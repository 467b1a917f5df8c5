package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/iliyamo/ration-slot-booking/internal/schedule"
)

// IssueDateRepo provides access to the issue_dates table.  The set
// of issue dates is the currently active distribution cycle; the
// slot catalog generator fills it and admin maintenance empties it.
// All dates are stored as DATE columns and handled at midnight UTC.
type IssueDateRepo struct {
	db *sql.DB
}

// NewIssueDateRepo returns a new IssueDateRepo bound to the given database.
func NewIssueDateRepo(db *sql.DB) *IssueDateRepo { return &IssueDateRepo{db: db} }

// EnsureTx makes sure an issue date row exists for the given date
// within the provided transaction.  It reports whether the row was
// created by this call (false means it already existed), making the
// generator's idempotence observable to callers and tests.  The
// INSERT IGNORE relies on the unique key on issue_dates.date.
func (r *IssueDateRepo) EnsureTx(ctx context.Context, tx *sql.Tx, date time.Time) (bool, error) {
	res, err := tx.ExecContext(ctx,
		`INSERT IGNORE INTO issue_dates (date) VALUES (?)`,
		date.Format(schedule.DateLayout))
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ListDates returns all active issue dates in ascending order.  An
// empty slice means no cycle is currently open.
func (r *IssueDateRepo) ListDates(ctx context.Context) ([]time.Time, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT date FROM issue_dates ORDER BY date`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	dates := make([]time.Time, 0)
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		dates = append(dates, d.UTC())
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return dates, nil
}

// Exists reports whether an issue date row exists for the date.
func (r *IssueDateRepo) Exists(ctx context.Context, date time.Time) (bool, error) {
	var id uint64
	err := r.db.QueryRowContext(ctx,
		`SELECT id FROM issue_dates WHERE date = ? LIMIT 1`,
		date.Format(schedule.DateLayout)).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ExistsTx reports whether an issue date row exists for the date
// within the provided transaction.
func (r *IssueDateRepo) ExistsTx(ctx context.Context, tx *sql.Tx, date time.Time) (bool, error) {
	var id uint64
	err := tx.QueryRowContext(ctx,
		`SELECT id FROM issue_dates WHERE date = ? LIMIT 1`,
		date.Format(schedule.DateLayout)).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// DeleteTx removes the issue date row for the given date within the
// provided transaction and reports whether a row was removed.
// Callers decide whether a missing row is an error (single-date
// delete) or tolerated (range clearing).
func (r *IssueDateRepo) DeleteTx(ctx context.Context, tx *sql.Tx, date time.Time) (bool, error) {
	res, err := tx.ExecContext(ctx,
		`DELETE FROM issue_dates WHERE date = ?`,
		date.Format(schedule.DateLayout))
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
