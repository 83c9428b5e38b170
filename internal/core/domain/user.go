package domain

import (
	"strings"
	"time"
)

const (
	RoleUser  = "USER"
	RoleSuper = "SUPER"
)

// User is the canonical identity record. An identity is created either by
// credential registration or by the first OAuth sign-in for its email;
// PasswordHash is empty for pure-OAuth identities.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name,omitempty"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Image        string    `json:"image,omitempty"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ValidRole reports whether role belongs to the closed role set.
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleSuper
}

// NormalizeEmail applies the single canonical email form used for every
// store read and write: trimmed and lowercased. All lookup and persistence
// paths must pass emails through here first.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
