package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/ration-slot-booking/internal/model"
	"github.com/iliyamo/ration-slot-booking/internal/utils"
)

// AdminRepo provides access to administrator accounts.  The admins
// table replaces the hardcoded credential pair the project started
// with: the single seed account is written at startup with a bcrypt
// hash and looked up by phone number during login.
type AdminRepo struct{ DB *sql.DB }

func NewAdminRepo(db *sql.DB) *AdminRepo { return &AdminRepo{DB: db} }

// GetByPhone fetches an admin by phone number.  sql.ErrNoRows is
// passed through so that login can treat unknown phone and wrong
// password identically.
func (r *AdminRepo) GetByPhone(ctx context.Context, phone string) (model.Admin, error) {
	phone = strings.TrimSpace(phone)
	var a model.Admin
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, phone, password_hash, created_at FROM admins WHERE phone=? LIMIT 1",
		phone).Scan(&a.ID, &a.Phone, &a.PasswordHash, &a.CreatedAt)
	return a, err
}

// GetByID fetches an admin by id.  sql.ErrNoRows is passed through.
func (r *AdminRepo) GetByID(ctx context.Context, id uint64) (model.Admin, error) {
	var a model.Admin
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, phone, password_hash, created_at FROM admins WHERE id=? LIMIT 1",
		id).Scan(&a.ID, &a.Phone, &a.PasswordHash, &a.CreatedAt)
	return a, err
}

// EnsureSeed creates the admin account for the given phone if it
// does not exist yet, hashing the password with the given bcrypt
// cost.  An existing row is left untouched so that a rotated
// password in the environment does not silently rewrite the stored
// hash mid-cycle; drop the row to re-seed.
func (r *AdminRepo) EnsureSeed(ctx context.Context, phone, password string, cost int) error {
	phone = strings.TrimSpace(phone)
	var id uint64
	err := r.DB.QueryRowContext(ctx, "SELECT id FROM admins WHERE phone=? LIMIT 1", phone).Scan(&id)
	if err == nil {
		return nil
	}
	if err != sql.ErrNoRows {
		return err
	}
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx,
		"INSERT INTO admins (phone, password_hash) VALUES (?,?)", phone, hash)
	if isDuplicateKey(err) {
		// Another instance seeded concurrently.
		return nil
	}
	return err
}
