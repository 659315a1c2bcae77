package types

import "time"

// Role is the authorization level of a user account.
type Role string

// Supported role values.
const (
	// RoleUser is the default role for registered accounts.
	RoleUser Role = "USER"

	// RoleAdmin grants access to catalog management endpoints.
	RoleAdmin Role = "ADMIN"
)

// Valid reports whether the role is one of the supported values.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User represents an account in the system.
// It contains identity, role, and audit metadata.
type User struct {
	// ID is the unique identifier of the user.
	ID int64 `json:"id" db:"id"`

	// Name is the user's first name.
	Name string `json:"name" db:"name"`

	// Surname is the user's family name.
	Surname string `json:"surname" db:"surname"`

	// NickName is the unique public handle chosen by the user.
	NickName string `json:"nickName" db:"nick_name"`

	// Email is the user's email address. Unique across accounts.
	Email string `json:"email" db:"email"`

	// Age is the user's age in years. Accepted range is 13 to 130,
	// enforced by a CHECK constraint in the store.
	Age int `json:"age" db:"age"`

	// Role indicates the user's authorization level within the system.
	Role Role `json:"role" db:"role"`

	// PasswordHash stores the hashed representation of the user's password.
	// This field is never exposed in API responses.
	PasswordHash string `json:"-" db:"password_hash"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// UpdatedAt is the timestamp of the most recent update to the user account.
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// PublicUser is the reduced projection of a user returned to
// non-admin callers listing other accounts.
type PublicUser struct {
	// ID is the unique identifier of the user.
	ID int64 `json:"id"`

	// NickName is the user's public handle.
	NickName string `json:"nickName"`
}

// Public returns the reduced projection of the user.
func (u User) Public() PublicUser {
	return PublicUser{ID: u.ID, NickName: u.NickName}
}
