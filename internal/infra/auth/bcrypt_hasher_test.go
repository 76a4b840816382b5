package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"account/config"
	domainerrors "account/internal/domain/errors"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_Hash(t *testing.T) {
	hasher := NewBcryptHasherWithCost(bcrypt.MinCost, 2)
	ctx := context.Background()

	password := "secret1"
	hash, err := hasher.Hash(ctx, password)
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, password, hash)

	// Verify the hash can be checked
	assert.True(t, hasher.Check(ctx, password, hash))
}

func TestBcryptHasher_HashIsSalted(t *testing.T) {
	hasher := NewBcryptHasherWithCost(bcrypt.MinCost, 2)
	ctx := context.Background()

	for _, password := range []string{"secret1", "", "Pässphräse123!", strings.Repeat("x", 72)} {
		first, err := hasher.Hash(ctx, password)
		require.NoError(t, err)
		second, err := hasher.Hash(ctx, password)
		require.NoError(t, err)

		assert.NotEqual(t, first, second, "hashes of %q should differ", password)
		assert.True(t, hasher.Check(ctx, password, first))
		assert.True(t, hasher.Check(ctx, password, second))
	}
}

func TestBcryptHasher_Check(t *testing.T) {
	hasher := NewBcryptHasherWithCost(bcrypt.MinCost, 1)
	ctx := context.Background()
	password := "StrongPass123!"

	hash, err := hasher.Hash(ctx, password)
	require.NoError(t, err)

	assert.True(t, hasher.Check(ctx, password, hash))
	assert.False(t, hasher.Check(ctx, "WrongPassword123!", hash))
	assert.False(t, hasher.Check(ctx, "", hash))
	assert.False(t, hasher.Check(ctx, password, "invalid_hash"))
}

func TestBcryptHasher_PasswordTooLong(t *testing.T) {
	hasher := NewBcryptHasherWithCost(bcrypt.MinCost, 1)

	_, err := hasher.Hash(context.Background(), strings.Repeat("x", 73))

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrPasswordTooLong))
}

func TestBcryptHasher_UsesConfiguredCost(t *testing.T) {
	cfg := &config.Config{Auth: &config.AuthConfig{BcryptCost: 6, HashConcurrency: 1}}
	hasher := NewBcryptHasher(cfg)

	hash, err := hasher.Hash(context.Background(), "StrongPass123!")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, 6, cost)
}

func TestBcryptHasher_DefaultCost(t *testing.T) {
	hasher, ok := NewBcryptHasher(nil).(*bcryptHasher)
	require.True(t, ok)

	assert.Equal(t, bcrypt.DefaultCost, hasher.cost)
}

func TestBcryptHasher_WaitsForSlot(t *testing.T) {
	hasher, ok := NewBcryptHasherWithCost(bcrypt.MinCost, 1).(*bcryptHasher)
	require.True(t, ok)

	// Occupy the only slot so callers must wait for it.
	require.NoError(t, hasher.slots.Acquire(context.Background(), 1))
	defer hasher.slots.Release(1)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := hasher.Hash(ctx, "secret1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))

	assert.False(t, hasher.Check(ctx, "secret1", "$2a$04$invalid"))
}
