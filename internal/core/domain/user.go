package domain

import (
	"strings"
	"time"
)

// Role is the closed set of principal roles.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleStaff Role = "staff"

	// DefaultRole is assigned when registration does not name a role.
	DefaultRole = RoleStaff
)

// ParseRole maps a free-form string onto the closed role set.
// Empty input yields DefaultRole.
func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return DefaultRole, true
	case RoleAdmin:
		return RoleAdmin, true
	case RoleStaff:
		return RoleStaff, true
	default:
		return "", false
	}
}

// Valid reports whether r is a member of the closed role set.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleStaff
}

// Satisfies reports whether a principal holding r may see something
// restricted to required. An empty requirement is satisfied by every role,
// and admin satisfies every requirement.
func (r Role) Satisfies(required Role) bool {
	if required == "" {
		return true
	}
	if r == RoleAdmin {
		return true
	}
	return r == required
}

// User is the authenticated principal bound to the session.
type User struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role Role   `json:"role"`
}

// Validate checks the invariants a User must hold before it can become
// the current session principal.
func (u *User) Validate() error {
	if u == nil || strings.TrimSpace(u.ID) == "" || strings.TrimSpace(u.Name) == "" {
		return ErrInvalidUser
	}
	if !u.Role.Valid() {
		return ErrInvalidUser
	}
	return nil
}

// Account is the credential record behind the login/registration exchange.
type Account struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Principal projects an account onto the session user.
func (a *Account) Principal() *User {
	return &User{ID: a.ID, Name: a.Name, Role: a.Role}
}
