package domain

import "time"

// Role is the closed set of principal roles carried in access tokens.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleUser:
		return true
	}
	return false
}

// User is the principal record owned by the user directory. This subsystem
// reads it and writes back only the password hash and the verification flag.
// A deleted user is terminal: it can never authenticate again.
type User struct {
	ID            string
	Email         string
	PasswordHash  string
	EmailVerified bool
	Deleted       bool
	Role          Role
	CreatedAt     time.Time
}

// BlacklistedToken is a revocation record. Presence means the token string
// must be rejected everywhere until ExpiresAt passes, after which the record
// may be pruned (the token would fail expiry verification anyway).
type BlacklistedToken struct {
	Token     string
	ExpiresAt time.Time
}
