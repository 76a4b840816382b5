// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Account is a registered person able to authenticate against the service.
// PasswordHash always holds the bcrypt hash; the plaintext password never reaches this struct.
type Account struct {
	ID           uuid.UUID // Assigned by the store on creation.
	Name         string    // Display name.
	Email        string    // Login identifier, unique across accounts.
	PasswordHash string    // bcrypt hash of the password.
	IsAdmin      bool      // Administrative flag supplied at registration.
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Identity returns the subset of account fields that may leave the service.
func (a *Account) Identity() Identity {
	return Identity{
		ID:      a.ID,
		Name:    a.Name,
		Email:   a.Email,
		IsAdmin: a.IsAdmin,
	}
}

// Identity is the authenticated view of an account. It is embedded into access tokens
// and returned to callers, so it must never carry the password hash.
type Identity struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Email   string    `json:"email"`
	IsAdmin bool      `json:"isAdmin"`
}

// Credentials are the request-scoped login values. They are never persisted.
type Credentials struct {
	Email    string
	Password string
}
