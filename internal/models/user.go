package models

import (
	"database/sql"
	"time"
)

// AuditFields mirrors the audit columns present on every table.
type AuditFields struct {
	CreatedAt     time.Time `db:"created_at"`
	CreatedBy     string    `db:"created_by"`
	LastUpdatedAt time.Time `db:"last_updated_at"`
	LastUpdatedBy string    `db:"last_updated_by"`
}

// User is the row stored in the users table.
// Optional columns are nullable so that their unique indexes ignore unset values.
type User struct {
	UserID       string         `db:"user_id"`
	Username     string         `db:"username"`
	Email        sql.NullString `db:"email"`
	GivenName    sql.NullString `db:"given_name"`
	FamilyName   sql.NullString `db:"family_name"`
	GoogleID     sql.NullString `db:"google_id"`
	FacebookID   sql.NullString `db:"facebook_id"`
	TwitterID    sql.NullString `db:"twitter_id"`
	PasswordHash sql.NullString `db:"password_hash"`
	Verified     bool           `db:"verified"`
	Enabled      bool           `db:"enabled"`
	Admin        bool           `db:"admin"`

	LoginIP         string    `db:"login_ip"`
	LoginAgent      string    `db:"login_agent"`
	LoginAt         time.Time `db:"login_at"`
	RegisteredIP    string    `db:"registered_ip"`
	RegisteredAgent string    `db:"registered_agent"`
	RegisteredAt    time.Time `db:"registered_at"`
	AuditFields
}
