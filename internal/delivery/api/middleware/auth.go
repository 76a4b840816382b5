package middleware

import (
	"log/slog"
	"strings"

	"account/internal/delivery/api/response"
	deliverycontext "account/internal/delivery/context"
	domainerrors "account/internal/domain/errors"
	"account/internal/domain/service"
	"account/internal/errors"

	"github.com/labstack/echo/v4"
)

const bearerPrefix = "Bearer "

// AuthMiddleware verifies bearer access tokens and exposes the caller identity.
type AuthMiddleware struct {
	tokenSvc service.TokenService
	logger   *slog.Logger
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, logger *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc, logger: logger}
}

// Authenticate rejects requests without a valid access token with a 401 envelope.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if authHeader == "" {
			return response.AppError(c, domainerrors.ErrTokenMissing)
		}

		tokenString, ok := strings.CutPrefix(authHeader, bearerPrefix)
		if !ok || strings.TrimSpace(tokenString) == "" {
			return response.AppError(c, domainerrors.ErrTokenMalformed)
		}

		identity, err := m.tokenSvc.Verify(strings.TrimSpace(tokenString))
		if err != nil {
			ctx := c.Request().Context()
			deliverycontext.GetLoggerOrDefault(ctx, m.logger).Debug("Access token rejected", slog.Any("error", err))

			var appErr domainerrors.AppError
			if !errors.As(err, &appErr) {
				appErr = domainerrors.ErrTokenMalformed
			}

			return response.AppError(c, appErr)
		}

		deliverycontext.SetIdentity(c, identity)
		c.SetRequest(c.Request().WithContext(deliverycontext.WithIdentity(c.Request().Context(), identity)))

		return next(c)
	}
}
