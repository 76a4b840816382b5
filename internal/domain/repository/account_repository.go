// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"account/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrAccountNotFound is a domain-specific error returned when an account is not found.
var ErrAccountNotFound = errors.New("account not found")

// AccountRepository defines the persistence operations for accounts.
//
// Implementations own email uniqueness: Create must reject a second account with an
// existing email by returning domainerrors.ErrAccountAlreadyExists, even when two
// registrations race past the service-level duplicate check.
type AccountRepository interface {
	// Create persists a new account and assigns its ID and timestamps.
	Create(ctx context.Context, account *entity.Account) error

	// FindByID retrieves a single account by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error)

	// FindByEmail retrieves a single account by its email address.
	FindByEmail(ctx context.Context, email string) (*entity.Account, error)

	// FindAll lists every account as an identity projection. The password hash is
	// not selected from storage.
	FindAll(ctx context.Context) ([]entity.Identity, error)
}
