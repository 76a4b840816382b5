package auth

import (
	"testing"
	"time"

	"account/config"
	"account/internal/domain/entity"
	domainerrors "account/internal/domain/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test_access_secret_key_very_long_for_testing"

func newTestIdentity() entity.Identity {
	return entity.Identity{
		ID:      uuid.New(),
		Name:    "Ana",
		Email:   "ana@x.com",
		IsAdmin: true,
	}
}

func TestJWTService_IssueAndVerify(t *testing.T) {
	cfg := &config.Config{SecretKey: config.SecretKeyConfig{Access: testSecret}}

	jwtService, err := NewJWTService(cfg)
	require.NoError(t, err)

	identity := newTestIdentity()
	token, err := jwtService.Issue(identity)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	verified, err := jwtService.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, identity, *verified)
}

func TestJWTService_ClaimLayout(t *testing.T) {
	now := time.Now()
	svc := newJWTService(testSecret, 24*time.Hour, func() time.Time { return now })
	identity := newTestIdentity()

	token, err := svc.Issue(identity)
	require.NoError(t, err)

	claims := jwt.MapClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(token, claims)
	require.NoError(t, err)

	payload, ok := claims["identity"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, identity.ID.String(), payload["id"])
	assert.Equal(t, identity.Email, payload["email"])
	assert.Equal(t, identity.Name, payload["name"])
	assert.Equal(t, true, payload["isAdmin"])
	assert.NotContains(t, payload, "passwordHash")
	assert.NotContains(t, payload, "password")

	exp, err := claims.GetExpirationTime()
	require.NoError(t, err)
	assert.Equal(t, now.Add(24*time.Hour).Unix(), exp.Unix())
}

func TestJWTService_DefaultTTL(t *testing.T) {
	jwtService, err := NewJWTService(&config.Config{SecretKey: config.SecretKeyConfig{Access: testSecret}})
	require.NoError(t, err)

	assert.Equal(t, 24*time.Hour, jwtService.TokenTTL())
}

func TestJWTService_ConfiguredTTL(t *testing.T) {
	jwtService, err := NewJWTService(&config.Config{
		SecretKey: config.SecretKeyConfig{Access: testSecret},
		Auth:      &config.AuthConfig{TokenTTL: time.Hour},
	})
	require.NoError(t, err)

	assert.Equal(t, time.Hour, jwtService.TokenTTL())
}

func TestJWTService_EmptySecret(t *testing.T) {
	jwtService, err := NewJWTService(&config.Config{})

	require.Error(t, err)
	assert.Nil(t, jwtService)
	assert.True(t, errors.Is(err, domainerrors.ErrTokenSigningFailed))

	_, err = newJWTService("", time.Hour, time.Now).Issue(newTestIdentity())
	assert.True(t, errors.Is(err, domainerrors.ErrTokenSigningFailed))
}

func TestJWTService_VerifyFailures(t *testing.T) {
	svc := newJWTService(testSecret, time.Hour, time.Now)

	expired, err := newJWTService(testSecret, time.Hour, func() time.Time {
		return time.Now().Add(-48 * time.Hour)
	}).Issue(newTestIdentity())
	require.NoError(t, err)

	foreign, err := newJWTService("another_secret_key_for_testing_only", time.Hour, time.Now).Issue(newTestIdentity())
	require.NoError(t, err)

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, noneClaims()).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	missingIdentity, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
		want  error
	}{
		{name: "empty", token: "", want: domainerrors.ErrTokenMissing},
		{name: "malformed", token: "clearly-not-a-jwt-token-format", want: domainerrors.ErrTokenMalformed},
		{name: "expired", token: expired, want: domainerrors.ErrTokenExpired},
		{name: "bad signature", token: foreign, want: domainerrors.ErrTokenSignatureInvalid},
		{name: "alg none", token: noneToken, want: domainerrors.ErrTokenSignatureInvalid},
		{name: "missing identity", token: missingIdentity, want: domainerrors.ErrTokenMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			identity, err := svc.Verify(tt.token)

			require.Error(t, err)
			assert.Nil(t, identity)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func noneClaims() jwt.MapClaims {
	identity := newTestIdentity()

	return jwt.MapClaims{
		"identity": map[string]any{"id": identity.ID.String(), "email": identity.Email},
		"exp":      time.Now().Add(time.Hour).Unix(),
	}
}
