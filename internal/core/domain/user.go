package domain

import (
	"strings"
	"time"
)

// PermissionSet maps resource -> action -> allowed.
// Example: {"equipment": {"read": true, "write": false}}
type PermissionSet map[string]map[string]bool

// Allows reports whether the set grants action on resource.
func (p PermissionSet) Allows(resource, action string) bool {
	actions, ok := p[resource]
	if !ok {
		return false
	}
	return actions[action]
}

// Role defines a named permission set assigned to users
type Role struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Permissions PermissionSet `json:"permissions"`
}

// Credential is the authentication view of a user account. It is owned by
// the credential store; the auth service only reads it and requests
// best-effort last-login updates.
type Credential struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"` // Never serialize
	Name         string     `json:"name"`
	Role         Role       `json:"role"`
	Active       bool       `json:"active"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
}

// UserView provides a safe view of an account (no password hash)
type UserView struct {
	ID          string        `json:"id"`
	Email       string        `json:"email"`
	Name        string        `json:"name"`
	RoleID      string        `json:"role_id"`
	RoleName    string        `json:"role_name"`
	Permissions PermissionSet `json:"permissions"`
	Active      bool          `json:"active"`
	LastLoginAt *time.Time    `json:"last_login_at,omitempty"`
}

// ToView converts a Credential to a UserView
func (c *Credential) ToView() *UserView {
	return &UserView{
		ID:          c.ID,
		Email:       c.Email,
		Name:        c.Name,
		RoleID:      c.Role.ID,
		RoleName:    c.Role.Name,
		Permissions: c.Role.Permissions,
		Active:      c.Active,
		LastLoginAt: c.LastLoginAt,
	}
}

// NormalizeEmail canonicalizes an email for lookup: trimmed and lowercased.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
