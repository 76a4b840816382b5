package service

import (
	"time"

	"account/internal/domain/entity"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the access token payload: the caller identity plus the registered claims
// (exp, iat, sub).
type Claims struct {
	Identity entity.Identity `json:"identity"`
	jwt.RegisteredClaims
}

// TokenService defines the interface for issuing and verifying access tokens.
type TokenService interface {
	// Issue signs a new access token for the identity.
	Issue(identity entity.Identity) (string, error)

	// Verify checks signature and expiry and returns the embedded identity.
	Verify(token string) (*entity.Identity, error)

	// TokenTTL returns how long issued tokens stay valid.
	TokenTTL() time.Duration
}
