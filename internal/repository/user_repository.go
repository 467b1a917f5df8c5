package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/ration-slot-booking/internal/model"
)

// UserRepo provides read access to ration-card holders.  Users are
// seeded by the distribution office; the service itself never
// registers new cards, so there is no public create path.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// GetByRationCard fetches a user by their normalized ration card
// number.  ErrUserNotFound is returned when the card is unknown.
func (r *UserRepo) GetByRationCard(ctx context.Context, card string) (model.User, error) {
	card = strings.TrimSpace(card)
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, ration_card, name, phone, created_at FROM users WHERE ration_card=? LIMIT 1",
		card).Scan(&u.ID, &u.RationCard, &u.Name, &u.Phone, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return model.User{}, ErrUserNotFound
	}
	return u, err
}

// GetByID fetches a user by id.  ErrUserNotFound is returned when
// the id does not resolve.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, ration_card, name, phone, created_at FROM users WHERE id=? LIMIT 1",
		id).Scan(&u.ID, &u.RationCard, &u.Name, &u.Phone, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return model.User{}, ErrUserNotFound
	}
	return u, err
}

// GetByIDTx is GetByID within an existing transaction, locking the
// user row exclusively.  The booking allocator uses it as the first
// statement of the allocation transaction: the row lock serializes
// rival attempts by the same holder, so the later active-cycle count
// cannot read a stale snapshot that misses a commit racing in on
// another slot.
func (r *UserRepo) GetByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (model.User, error) {
	var u model.User
	err := tx.QueryRowContext(ctx,
		"SELECT id, ration_card, name, phone, created_at FROM users WHERE id=? LIMIT 1 FOR UPDATE",
		id).Scan(&u.ID, &u.RationCard, &u.Name, &u.Phone, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return model.User{}, ErrUserNotFound
	}
	return u, err
}

// EnsureSeed inserts a user if the ration card is not present yet.
// Used only by the startup seeding path; INSERT IGNORE keeps it
// idempotent across restarts.
func (r *UserRepo) EnsureSeed(ctx context.Context, name, card, phone string) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT IGNORE INTO users (name, ration_card, phone) VALUES (?,?,?)",
		name, strings.TrimSpace(card), phone)
	return err
}
