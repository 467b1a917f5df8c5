package model

import "time"

// User represents a ration-card holder as stored in the `users`
// table. Each field corresponds to a column in the database. The
// json tags are omitted here because these structs are primarily
// used internally by the repository layer; handlers may define
// separate response types with appropriate JSON tags. The ration
// card number is the durable external identifier of the user and
// doubles as the OTP source during login (last four digits).
//
// Fields:
//  ID         – primary key identifier of the user.
//  RationCard – unique ration card number.
//  Name       – holder's name (may be empty).
//  Phone      – contact phone number (may be empty).
//  CreatedAt  – timestamp of creation.
type User struct {
	ID         uint64    // users.id
	RationCard string    // users.ration_card
	Name       string    // users.name
	Phone      string    // users.phone
	CreatedAt  time.Time // users.created_at
}

// Admin represents a row in the `admins` table.  Administrators
// authenticate with their phone number and a bcrypt-hashed
// password; the seed account is created at startup from
// configuration.
//
// Fields:
//  ID           – primary key identifier.
//  Phone        – unique phone number used as the login name.
//  PasswordHash – bcrypt hashed password.
//  CreatedAt    – timestamp of creation.
type Admin struct {
	ID           uint64    // admins.id
	Phone        string    // admins.phone
	PasswordHash string    // admins.password_hash
	CreatedAt    time.Time // admins.created_at
}

// RefreshToken models an entry in the `refresh_tokens` table.  Each
// refresh token belongs to a principal (user or admin) and contains
// metadata for expiry and revocation.  The plain token is not
// stored; only its SHA‑256 hash.
//
// Fields:
//  ID        – primary key identifier.
//  SubjectID – owner of the token (user or admin id).
//  Role      – role of the owner (USER or ADMIN).
//  TokenHash – SHA‑256 hex digest of the token value.
//  ExpiresAt – expiration timestamp of the token.
//  RevokedAt – when the token was revoked (null if still active).
//  CreatedAt – timestamp of creation.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	SubjectID uint64     // refresh_tokens.subject_id
	Role      string     // refresh_tokens.role
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}
