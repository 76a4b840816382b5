// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"account/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterAccountInput defines the data required to register a new account.
// IsAdmin is a pointer so an explicit false is told apart from an absent flag.
type RegisterAccountInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
	IsAdmin  *bool  `json:"isAdmin" validate:"required"`
}

// AuthenticateInput defines the credentials presented at login.
type AuthenticateInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Credentials converts the input into the domain credentials value.
func (in *AuthenticateInput) Credentials() entity.Credentials {
	return entity.Credentials{Email: in.Email, Password: in.Password}
}

// --- Output DTOs ---

// AuthenticateOutput returns the signed access token after a successful login.
type AuthenticateOutput struct {
	AccessToken string
}

// AccountUsecase defines the interface for account-related business operations.
// This is the contract that the delivery layer depends on.
type AccountUsecase interface {
	// Register creates a new account. It returns no identity or token.
	Register(ctx context.Context, input *RegisterAccountInput) error

	// Authenticate checks the credentials and issues an access token.
	Authenticate(ctx context.Context, input *AuthenticateInput) (*AuthenticateOutput, error)

	// FindByEmail returns the account identity when caller owns that account.
	FindByEmail(ctx context.Context, email string, caller *entity.Identity) (*entity.Identity, error)

	// ListAll returns every account identity. An empty store is reported as ErrNoAccountsFound.
	ListAll(ctx context.Context, caller *entity.Identity) ([]entity.Identity, error)
}
