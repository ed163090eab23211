package model

import "time"

// Role values stored in users.role.  The column is an ENUM so the
// database rejects anything outside this set.
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// User represents an application user record as stored in the
// `users` table. Each field corresponds to a column in the
// database. Handlers define separate response types with JSON tags;
// the password hash in particular must never be serialized back to
// clients.
//
// Fields:
//  ID        – primary key identifier of the user.
//  Username  – unique login name.
//  Email     – unique email address.
//  Password  – bcrypt hash of the password, never the plaintext.
//  Role      – role name ("admin" or "staff").
//  Active    – whether the account may log in.
//  CreatedAt – timestamp of creation.
//  UpdatedAt – timestamp of last update.
type User struct {
	ID        uint64    // users.id
	Username  string    // users.username
	Email     string    // users.email
	Password  string    // users.password (bcrypt hash)
	Role      string    // users.role
	Active    bool      // users.active
	CreatedAt time.Time // users.created_at
	UpdatedAt time.Time // users.updated_at
}

// IsAdmin reports whether the user carries the admin role.
func (u User) IsAdmin() bool { return u.Role == RoleAdmin }
