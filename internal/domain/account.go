package domain

import (
	"strings"
	"time"
)

// Account is a managed user record. PasswordHash is never serialized to
// callers; listings load it empty.
type Account struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         Role
	IsActive     bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NormalizeEmail lower-cases and trims an address before storage or lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (a *Account) Validate() error {
	if a.Email == "" || !strings.Contains(a.Email, "@") {
		return &ValidationError{Field: "email", Message: "a valid email is required"}
	}
	if strings.TrimSpace(a.Name) == "" {
		return &ValidationError{Field: "name", Message: "name is required"}
	}
	if !ValidRoles[a.Role] {
		return &ValidationError{Field: "role", Message: "role must be user or admin"}
	}
	return nil
}
