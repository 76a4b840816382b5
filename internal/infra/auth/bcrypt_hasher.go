// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"context"
	"runtime"

	"account/config"
	domainerrors "account/internal/domain/errors"
	"account/internal/domain/service"
	"account/internal/errors"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/semaphore"
)

// bcryptHasher is a concrete implementation of the PasswordHasher interface using bcrypt.
// Hashing and comparison are CPU-bound; slots caps how many run at once so a burst of
// logins cannot starve the request goroutines.
type bcryptHasher struct {
	cost  int
	slots *semaphore.Weighted
}

// NewBcryptHasher builds the hasher from the auth configuration.
func NewBcryptHasher(cfg *config.Config) service.PasswordHasher {
	cost, concurrency := bcrypt.DefaultCost, runtime.GOMAXPROCS(0)
	if cfg != nil && cfg.Auth != nil {
		if cfg.Auth.BcryptCost > 0 {
			cost = cfg.Auth.BcryptCost
		}
		if cfg.Auth.HashConcurrency > 0 {
			concurrency = cfg.Auth.HashConcurrency
		}
	}

	return NewBcryptHasherWithCost(cost, concurrency)
}

// NewBcryptHasherWithCost creates a hasher with an explicit work factor and concurrency limit.
func NewBcryptHasherWithCost(cost, concurrency int) service.PasswordHasher {
	if concurrency <= 0 {
		concurrency = 1
	}

	return &bcryptHasher{
		cost:  cost,
		slots: semaphore.NewWeighted(int64(concurrency)),
	}
}

// Hash generates a salted hash from a plaintext password using bcrypt.
// bcrypt automatically handles salt generation.
func (h *bcryptHasher) Hash(ctx context.Context, password string) (string, error) {
	if len(password) > maxPasswordBytes {
		return "", errors.WithStack(domainerrors.ErrPasswordTooLong)
	}

	if err := h.slots.Acquire(ctx, 1); err != nil {
		return "", errors.Wrap(err, "wait for hashing slot")
	}
	defer h.slots.Release(1)

	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", errors.Wrap(err, "bcrypt generate")
	}

	return string(bytes), nil
}

// Check compares a plaintext password with a bcrypt hash.
func (h *bcryptHasher) Check(ctx context.Context, password, hash string) bool {
	if err := h.slots.Acquire(ctx, 1); err != nil {
		return false
	}
	defer h.slots.Release(1)

	// err is nil only if the password and hash match.
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// bcrypt ignores everything past 72 bytes, and x/crypto rejects longer input.
const maxPasswordBytes = 72
