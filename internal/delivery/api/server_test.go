package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"account/config"
	apimiddleware "account/internal/delivery/api/middleware"
	"account/internal/delivery/api/response"
	"account/internal/delivery/api/router"
	"account/internal/delivery/api/router/handler"
	"account/internal/delivery/contract"
	domainerrors "account/internal/domain/errors"
	"account/internal/infra/auth"
	"account/internal/infra/persistence/memory"
	"account/internal/usecase/impl"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestAPI(t *testing.T, openRegistration bool) *echo.Echo {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.Config{
		SecretKey: config.SecretKeyConfig{Access: "api-test-secret"},
		Auth:      &config.AuthConfig{TokenTTL: time.Hour, OpenRegistration: openRegistration},
	}
	cfg.HTTP.MaxRequestBodySize = "1KB"

	tokens, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	accounts := impl.NewAccountService(impl.AccountServiceParams{
		AccountRepo:  memory.NewAccountRepository(),
		Hasher:       auth.NewBcryptHasherWithCost(bcrypt.MinCost, 2),
		TokenService: tokens,
		Logger:       logger,
	})
	boundary := contract.NewBoundary(contract.BoundaryParams{AccountUsecase: accounts, Logger: logger})

	return newEcho(cfg, logger, router.RouterParams{
		AccountHandler: handler.NewAccountHandler(handler.AccountHandlerParams{Boundary: boundary, Logger: logger}),
		AuthMiddleware: apimiddleware.NewAuthMiddleware(tokens, logger),
		Config:         cfg,
	})
}

func do(t *testing.T, e *echo.Echo, method, path, body, token string) (*httptest.ResponseRecorder, response.Envelope) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope), rec.Body.String())

	return rec, envelope
}

func TestAPI_AccountFlow(t *testing.T) {
	e := newTestAPI(t, true)

	rec, env := do(t, e, http.MethodPost, "/api/user/create", `{"name":"Ana","email":"ana@x.com","password":"secret1","isAdmin":true}`, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domainerrors.StatusSuccess, env.Status)
	assert.Equal(t, contract.MessageAccountCreated, env.Message)
	assert.NotEmpty(t, env.Meta.RequestID)

	rec, env = do(t, e, http.MethodPost, "/api/user/create", `{"name":"Ana","email":"ana@x.com","password":"secret1","isAdmin":true}`, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "ACCOUNT_ALREADY_EXISTS", env.Code)

	rec, env = do(t, e, http.MethodPost, "/api/user/create", `{"name":"Bruno","email":"bruno@x.com","password":"pw","isAdmin":false}`, "")
	assert.Equal(t, http.StatusOK, rec.Code, env.Message)

	rec, env = do(t, e, http.MethodPost, "/api/user/auth", `{"email":"ana@x.com","password":"wrong"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, env.AccessToken)

	rec, env = do(t, e, http.MethodPost, "/api/user/auth", `{"email":"ana@x.com","password":"secret1"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	token := env.AccessToken
	require.NotEmpty(t, token)

	rec, env = do(t, e, http.MethodGet, "/api/user/email/ana@x.com", "", token)
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, env.User)
	assert.Equal(t, "ana@x.com", env.User.Email)
	assert.True(t, env.User.IsAdmin)
	assert.NotContains(t, rec.Body.String(), "password")

	rec, _ = do(t, e, http.MethodGet, "/api/user/email/bruno@x.com", "", token)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, env = do(t, e, http.MethodGet, "/api/user/email/ghost@x.com", "", token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "ACCOUNT_NOT_FOUND", env.Code)

	rec, env = do(t, e, http.MethodGet, "/api/users", "", token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, env.Users, 2)
	assert.NotContains(t, rec.Body.String(), "$2a$")
}

func TestAPI_GetAccountByEmail_EscapedPaths(t *testing.T) {
	for name, tc := range map[string]struct {
		email string
		path  string
	}{
		"escaped at sign":       {email: "ana@x.com", path: "/api/user/email/ana%40x.com"},
		"percent in local part": {email: "a%41@x.com", path: "/api/user/email/a%2541@x.com"},
		"plus in local part":    {email: "ana+tag@x.com", path: "/api/user/email/ana+tag@x.com"},
	} {
		t.Run(name, func(t *testing.T) {
			e := newTestAPI(t, true)
			body := `{"name":"Ana","email":"` + tc.email + `","password":"secret1","isAdmin":false}`
			rec, env := do(t, e, http.MethodPost, "/api/user/create", body, "")
			require.Equal(t, http.StatusOK, rec.Code, env.Message)

			_, env = do(t, e, http.MethodPost, "/api/user/auth", `{"email":"`+tc.email+`","password":"secret1"}`, "")
			require.NotEmpty(t, env.AccessToken)

			rec, env = do(t, e, http.MethodGet, tc.path, "", env.AccessToken)
			assert.Equal(t, http.StatusOK, rec.Code, env.Code)
			require.NotNil(t, env.User)
			assert.Equal(t, tc.email, env.User.Email)
		})
	}
}

func TestAPI_ProtectedRoutesRequireToken(t *testing.T) {
	e := newTestAPI(t, false)

	for _, tc := range []struct{ method, path, body string }{
		{http.MethodGet, "/api/users", ""},
		{http.MethodGet, "/api/user/email/ana@x.com", ""},
		{http.MethodPost, "/api/user/create", `{"name":"Ana","email":"ana@x.com","password":"pw","isAdmin":false}`},
	} {
		t.Run(tc.path, func(t *testing.T) {
			rec, env := do(t, e, tc.method, tc.path, tc.body, "")

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, domainerrors.StatusUnauthorized, env.Status)
			assert.Equal(t, "TOKEN_MISSING", env.Code)
		})
	}

	rec, env := do(t, e, http.MethodGet, "/api/users", "", "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "TOKEN_MALFORMED", env.Code)
}

func TestAPI_EmptyListIsBadRequest(t *testing.T) {
	issuer := newTestAPI(t, true)
	_, _ = do(t, issuer, http.MethodPost, "/api/user/create", `{"name":"Ana","email":"ana@x.com","password":"secret1","isAdmin":false}`, "")
	_, env := do(t, issuer, http.MethodPost, "/api/user/auth", `{"email":"ana@x.com","password":"secret1"}`, "")
	require.NotEmpty(t, env.AccessToken)

	// Same signing secret, separate empty store.
	empty := newTestAPI(t, true)
	rec, env := do(t, empty, http.MethodGet, "/api/users", "", env.AccessToken)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "NO_ACCOUNTS_FOUND", env.Code)
	assert.Empty(t, env.Users)
}

func TestAPI_RequestErrors(t *testing.T) {
	e := newTestAPI(t, true)

	t.Run("missing admin flag", func(t *testing.T) {
		rec, env := do(t, e, http.MethodPost, "/api/user/create", `{"name":"Ana","email":"ana@x.com","password":"pw"}`, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "ADMIN_REQUIRED", env.Code)
	})

	t.Run("missing credentials", func(t *testing.T) {
		rec, env := do(t, e, http.MethodPost, "/api/user/auth", `{"email":"ana@x.com"}`, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "CREDENTIALS_REQUIRED", env.Code)
	})

	t.Run("malformed json", func(t *testing.T) {
		rec, env := do(t, e, http.MethodPost, "/api/user/create", `{"name":`, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "ACCOUNT_DATA_REQUIRED", env.Code)
	})

	t.Run("unknown route", func(t *testing.T) {
		rec, env := do(t, e, http.MethodGet, "/api/nope", "", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "HTTP_ERROR", env.Code)
	})

	t.Run("body too large", func(t *testing.T) {
		body := `{"name":"` + strings.Repeat("a", 2048) + `"}`
		rec, _ := do(t, e, http.MethodPost, "/api/user/create", body, "")
		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	})
}

func TestAPI_Health(t *testing.T) {
	e := newTestAPI(t, false)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-Id", "req-123")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "req-123", rec.Header().Get("X-Request-Id"))
	assert.Contains(t, rec.Body.String(), `"request_id":"req-123"`)
}
