// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"time"

	"account/config"
	"account/internal/domain/entity"
	domainerrors "account/internal/domain/errors"
	"account/internal/domain/service"
	"account/internal/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const defaultAccessTTL = 24 * time.Hour

// jwtService is a concrete implementation of the TokenService interface using HS256 JWTs.
type jwtService struct {
	secret []byte           // Secret key for signing access tokens.
	ttl    time.Duration    // Time-to-live for access tokens.
	now    func() time.Time // Clock, replaceable in tests.
}

// NewJWTService is the constructor for jwtService.
// It takes configuration values to create a new token service instance.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg == nil || cfg.SecretKey.Access == "" {
		return nil, errors.Wrap(domainerrors.ErrTokenSigningFailed, "jwt secret must be provided")
	}

	ttl := defaultAccessTTL
	if cfg.Auth != nil && cfg.Auth.TokenTTL > 0 {
		ttl = cfg.Auth.TokenTTL
	}

	return newJWTService(cfg.SecretKey.Access, ttl, time.Now), nil
}

func newJWTService(secret string, ttl time.Duration, now func() time.Time) *jwtService {
	return &jwtService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    now,
	}
}

// Issue creates a signed access token carrying the identity and an expiry claim.
func (s *jwtService) Issue(identity entity.Identity) (string, error) {
	if len(s.secret) == 0 {
		return "", errors.Wrap(domainerrors.ErrTokenSigningFailed, "jwt secret is empty")
	}

	now := s.now()
	claims := service.Claims{
		Identity: identity,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", errors.Wrapf(domainerrors.ErrTokenSigningFailed, "sign access token: %v", err)
	}

	return signed, nil
}

// Verify parses the token, checks its signature and expiry, and returns the embedded identity.
func (s *jwtService) Verify(tokenString string) (*entity.Identity, error) {
	if tokenString == "" {
		return nil, errors.WithStack(domainerrors.ErrTokenMissing)
	}

	claims := &service.Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)

	switch {
	case err == nil:
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, errors.Wrap(domainerrors.ErrTokenExpired, err.Error())
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrSignatureInvalid):
		return nil, errors.Wrap(domainerrors.ErrTokenSignatureInvalid, err.Error())
	default:
		return nil, errors.Wrap(domainerrors.ErrTokenMalformed, err.Error())
	}

	if claims.Identity.ID == uuid.Nil {
		return nil, errors.Wrap(domainerrors.ErrTokenMalformed, "identity claim is missing")
	}

	identity := claims.Identity

	return &identity, nil
}

// TokenTTL returns the configured lifetime of access tokens.
func (s *jwtService) TokenTTL() time.Duration {
	return s.ttl
}
