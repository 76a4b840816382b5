// Package contract converts account use case outcomes into transport-neutral results.
// No error or panic escapes a Boundary method; every outcome becomes a Result.
package contract

import (
	"context"
	"log/slog"

	deliverycontext "account/internal/delivery/context"
	"account/internal/domain/entity"
	domainerrors "account/internal/domain/errors"
	"account/internal/errors"
	"account/internal/usecase"

	"go.uber.org/fx"
)

// MessageAccountCreated is returned after a successful registration.
const MessageAccountCreated = "Account created successfully."

// Result is the uniform outcome of a boundary operation. Exactly one of Message,
// AccessToken, Account or Accounts is meaningful for a given operation and status.
type Result struct {
	Status      domainerrors.Status
	Code        string
	Message     string
	AccessToken string
	Account     *entity.Identity
	Accounts    []entity.Identity
}

// HTTPCode maps the result status onto an HTTP status code.
func (r Result) HTTPCode() int {
	return r.Status.HTTPCode()
}

// Boundary exposes the account operations to the transport layer.
type Boundary struct {
	accounts usecase.AccountUsecase
	logger   *slog.Logger
}

// BoundaryParams holds dependencies for Boundary, injected by Fx.
type BoundaryParams struct {
	fx.In

	AccountUsecase usecase.AccountUsecase
	Logger         *slog.Logger
}

func NewBoundary(params BoundaryParams) *Boundary {
	return &Boundary{
		accounts: params.AccountUsecase,
		logger:   params.Logger,
	}
}

// RegisterAccount creates an account and reports a confirmation message.
func (b *Boundary) RegisterAccount(ctx context.Context, input *usecase.RegisterAccountInput) Result {
	return b.run(ctx, "register account", func() (Result, error) {
		if err := b.accounts.Register(ctx, input); err != nil {
			return Result{}, err
		}

		return Result{Status: domainerrors.StatusSuccess, Message: MessageAccountCreated}, nil
	})
}

// Authenticate exchanges credentials for an access token.
func (b *Boundary) Authenticate(ctx context.Context, input *usecase.AuthenticateInput) Result {
	return b.run(ctx, "authenticate", func() (Result, error) {
		out, err := b.accounts.Authenticate(ctx, input)
		if err != nil {
			return Result{}, err
		}

		return Result{Status: domainerrors.StatusSuccess, AccessToken: out.AccessToken}, nil
	})
}

// GetByEmail returns the caller's own account identity.
func (b *Boundary) GetByEmail(ctx context.Context, email string, caller *entity.Identity) Result {
	return b.run(ctx, "get account by email", func() (Result, error) {
		identity, err := b.accounts.FindByEmail(ctx, email, caller)
		if err != nil {
			return Result{}, err
		}

		return Result{Status: domainerrors.StatusSuccess, Account: identity}, nil
	})
}

// ListAccounts returns every account identity.
func (b *Boundary) ListAccounts(ctx context.Context, caller *entity.Identity) Result {
	return b.run(ctx, "list accounts", func() (Result, error) {
		identities, err := b.accounts.ListAll(ctx, caller)
		if err != nil {
			return Result{}, err
		}

		return Result{Status: domainerrors.StatusSuccess, Accounts: identities}, nil
	})
}

func (b *Boundary) run(ctx context.Context, operation string, fn func() (Result, error)) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			result = b.failure(ctx, operation, errors.Errorf("panic: %v", r))
		}
	}()

	result, err := fn()
	if err != nil {
		return b.failure(ctx, operation, err)
	}

	return result
}

// failure converts err into a Result. Internal failures carry a generic message;
// their detail is only logged.
func (b *Boundary) failure(ctx context.Context, operation string, err error) Result {
	logger := deliverycontext.GetLoggerOrDefault(ctx, b.logger)

	var appErr domainerrors.AppError
	if !errors.As(err, &appErr) {
		appErr = domainerrors.ErrInternalError
	}

	if appErr.Status() == domainerrors.StatusInternalError {
		logger.Error("Operation failed", slog.String("operation", operation), slog.String("code", appErr.ErrorCode()), slog.Any("error", err))
	} else {
		logger.Debug("Operation rejected", slog.String("operation", operation), slog.String("code", appErr.ErrorCode()))
	}

	return Result{
		Status:  appErr.Status(),
		Code:    appErr.ErrorCode(),
		Message: appErr.Message(),
	}
}
