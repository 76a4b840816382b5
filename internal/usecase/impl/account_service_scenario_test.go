package impl

import (
	"context"
	"testing"
	"time"

	"account/config"
	domainerrors "account/internal/domain/errors"
	"account/internal/infra/auth"
	"account/internal/infra/persistence/memory"
	"account/internal/usecase"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestAccountService_Scenario(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewAccountRepository()
	tokens, err := auth.NewJWTService(&config.Config{
		SecretKey: config.SecretKeyConfig{Access: "scenario-secret"},
		Auth:      &config.AuthConfig{TokenTTL: time.Hour},
	})
	require.NoError(t, err)

	svc := NewAccountService(AccountServiceParams{
		AccountRepo:  repo,
		Hasher:       auth.NewBcryptHasherWithCost(bcrypt.MinCost, 2),
		TokenService: tokens,
		Logger:       newDiscardLogger(),
	})

	ana := &usecase.RegisterAccountInput{Name: "Ana", Email: "ana@x.com", Password: "secret1", IsAdmin: boolPtr(true)}
	require.NoError(t, svc.Register(ctx, ana))

	stored, err := repo.FindByEmail(ctx, "ana@x.com")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", stored.PasswordHash)

	err = svc.Register(ctx, ana)
	assert.True(t, errors.Is(err, domainerrors.ErrAccountAlreadyExists))

	_, err = svc.Authenticate(ctx, &usecase.AuthenticateInput{Email: "ana@x.com", Password: "wrong"})
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))

	_, err = svc.Authenticate(ctx, &usecase.AuthenticateInput{Email: "nobody@x.com", Password: "secret1"})
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))

	out, err := svc.Authenticate(ctx, &usecase.AuthenticateInput{Email: "ana@x.com", Password: "secret1"})
	require.NoError(t, err)

	identity, err := tokens.Verify(out.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, stored.ID, identity.ID)
	assert.Equal(t, "ana@x.com", identity.Email)
	assert.True(t, identity.IsAdmin)

	claims := jwt.MapClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(out.AccessToken, claims)
	require.NoError(t, err)
	payload, ok := claims["identity"].(map[string]any)
	require.True(t, ok)
	assert.NotContains(t, payload, "passwordHash")
	assert.NotContains(t, payload, "password")

	own, err := svc.FindByEmail(ctx, "ana@x.com", identity)
	require.NoError(t, err)
	assert.Equal(t, *identity, *own)

	require.NoError(t, svc.Register(ctx, &usecase.RegisterAccountInput{Name: "Bruno", Email: "bruno@x.com", Password: "pw", IsAdmin: boolPtr(false)}))
	_, err = svc.FindByEmail(ctx, "bruno@x.com", identity)
	assert.True(t, errors.Is(err, domainerrors.ErrAccountAccessDenied))

	all, err := svc.ListAll(ctx, identity)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestAccountService_Scenario_EmptyList(t *testing.T) {
	svc := NewAccountService(AccountServiceParams{
		AccountRepo:  memory.NewAccountRepository(),
		Hasher:       auth.NewBcryptHasherWithCost(bcrypt.MinCost, 1),
		TokenService: nil,
		Logger:       newDiscardLogger(),
	})

	_, err := svc.ListAll(context.Background(), nil)

	assert.True(t, errors.Is(err, domainerrors.ErrNoAccountsFound))
}
