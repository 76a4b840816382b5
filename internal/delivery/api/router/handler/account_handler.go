package handler

import (
	"log/slog"
	"net/url"

	"account/internal/delivery/api/response"
	deliverycontext "account/internal/delivery/context"
	"account/internal/delivery/contract"
	domainerrors "account/internal/domain/errors"
	"account/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// AccountHandlerParams holds dependencies for AccountHandler, injected by Fx.
type AccountHandlerParams struct {
	fx.In

	Boundary *contract.Boundary
	Logger   *slog.Logger
}

// AccountHandler translates HTTP requests into boundary calls.
type AccountHandler struct {
	boundary *contract.Boundary
	logger   *slog.Logger
}

// NewAccountHandler is the constructor for AccountHandler
func NewAccountHandler(params AccountHandlerParams) *AccountHandler {
	return &AccountHandler{
		boundary: params.Boundary,
		logger:   params.Logger,
	}
}

// CreateAccount handles POST /api/user/create.
func (h *AccountHandler) CreateAccount(c echo.Context) error {
	var req usecase.RegisterAccountInput
	if err := c.Bind(&req); err != nil {
		h.bindFailed(c, err)

		return response.AppError(c, domainerrors.ErrAccountDataRequired)
	}

	return response.Result(c, h.boundary.RegisterAccount(c.Request().Context(), &req))
}

// Authenticate handles POST /api/user/auth. A malformed body is reported like missing
// credentials.
func (h *AccountHandler) Authenticate(c echo.Context) error {
	var req usecase.AuthenticateInput
	if err := c.Bind(&req); err != nil {
		h.bindFailed(c, err)

		return response.AppError(c, domainerrors.ErrCredentialsRequired)
	}

	return response.Result(c, h.boundary.Authenticate(c.Request().Context(), &req))
}

// GetAccountByEmail handles GET /api/user/email/:email.
func (h *AccountHandler) GetAccountByEmail(c echo.Context) error {
	email := c.Param("email")
	// echo routes on RawPath when the request has one and leaves params escaped;
	// otherwise the param is already decoded.
	if c.Request().URL.RawPath != "" {
		if unescaped, err := url.PathUnescape(email); err == nil {
			email = unescaped
		}
	}

	return response.Result(c, h.boundary.GetByEmail(c.Request().Context(), email, deliverycontext.GetIdentity(c)))
}

// ListAccounts handles GET /api/users.
func (h *AccountHandler) ListAccounts(c echo.Context) error {
	return response.Result(c, h.boundary.ListAccounts(c.Request().Context(), deliverycontext.GetIdentity(c)))
}

func (h *AccountHandler) bindFailed(c echo.Context, err error) {
	ctx := c.Request().Context()
	deliverycontext.GetLoggerOrDefault(ctx, h.logger).Debug("Failed to bind request body",
		slog.String("path", c.Path()),
		slog.Any("error", err),
	)
}
