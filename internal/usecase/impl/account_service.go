// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"sync"

	deliverycontext "account/internal/delivery/context"
	"account/internal/domain/entity"
	domainerrors "account/internal/domain/errors"
	"account/internal/domain/repository"
	"account/internal/domain/service"
	"account/internal/errors"
	"account/internal/usecase"

	"github.com/go-playground/validator/v10"
	"go.uber.org/fx"
)

// accountService implements the AccountUsecase interface.
type accountService struct {
	accountRepo  repository.AccountRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	validate     *validator.Validate
	logger       *slog.Logger
	// unknownHash is compared against when the email is unknown so both login
	// failures pay for one hash comparison.
	unknownHash func() (string, error)
}

const unknownAccountPassword = "unknown-account-password"

// AccountServiceParams holds dependencies for AccountService, injected by Fx.
type AccountServiceParams struct {
	fx.In

	AccountRepo  repository.AccountRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewAccountService is the constructor for accountService. It receives all dependencies as interfaces.
func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	hasher := params.Hasher

	return &accountService{
		accountRepo:  params.AccountRepo,
		hasher:       hasher,
		tokenService: params.TokenService,
		validate:     validator.New(validator.WithRequiredStructEnabled()),
		logger:       params.Logger,
		unknownHash: sync.OnceValues(func() (string, error) {
			return hasher.Hash(context.Background(), unknownAccountPassword)
		}),
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register validates the input, rejects known emails, hashes the password and stores the account.
func (srv *accountService) Register(ctx context.Context, input *usecase.RegisterAccountInput) error {
	if err := srv.validateRegistration(input); err != nil {
		srv.log(ctx).Warn("Registration rejected", slog.Any("error", err))

		return err
	}

	srv.log(ctx).Info("Request to create account", slog.String("email", input.Email))

	_, err := srv.accountRepo.FindByEmail(ctx, input.Email)
	switch {
	case err == nil:
		srv.log(ctx).Warn("Account already exists", slog.String("email", input.Email))

		return errors.WithStack(domainerrors.ErrAccountAlreadyExists)
	case !errors.Is(err, repository.ErrAccountNotFound):
		srv.log(ctx).Error("Failed to check existing account", slog.String("email", input.Email), slog.Any("error", err))

		return err
	}

	hash, err := srv.hasher.Hash(ctx, input.Password)
	if err != nil {
		if errors.Is(err, domainerrors.ErrPasswordTooLong) {
			return err
		}
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
	}

	account := &entity.Account{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		IsAdmin:      *input.IsAdmin,
	}

	// The store's unique email constraint settles registrations racing past the check above.
	if err := srv.accountRepo.Create(ctx, account); err != nil {
		srv.log(ctx).Error("Failed to create account", slog.String("email", input.Email), slog.Any("error", err))

		return err
	}

	srv.log(ctx).Info("Response to create account", slog.Any("accountID", account.ID))

	return nil
}

// validateRegistration reports the first missing field in declaration order.
func (srv *accountService) validateRegistration(input *usecase.RegisterAccountInput) error {
	if input == nil {
		return errors.WithStack(domainerrors.ErrAccountDataRequired)
	}

	err := srv.validate.Struct(input)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return errors.Wrap(domainerrors.ErrAccountDataRequired, err.Error())
	}

	switch fieldErrs[0].StructField() {
	case "Name":
		return errors.WithStack(domainerrors.ErrNameRequired)
	case "Email":
		return errors.WithStack(domainerrors.ErrEmailRequired)
	case "Password":
		return errors.WithStack(domainerrors.ErrPasswordRequired)
	case "IsAdmin":
		return errors.WithStack(domainerrors.ErrAdminRequired)
	default:
		return errors.WithStack(domainerrors.ErrAccountDataRequired)
	}
}

// Authenticate verifies the credentials and issues an access token.
// Unknown emails and wrong passwords produce the same error.
func (srv *accountService) Authenticate(ctx context.Context, input *usecase.AuthenticateInput) (*usecase.AuthenticateOutput, error) {
	if input == nil || srv.validate.Struct(input) != nil {
		srv.log(ctx).Warn("Login failed", slog.Any("error", domainerrors.ErrCredentialsRequired))

		return nil, errors.WithStack(domainerrors.ErrCredentialsRequired)
	}
	credentials := input.Credentials()

	srv.log(ctx).Info("Request to authenticate", slog.String("email", credentials.Email))

	account, err := srv.accountRepo.FindByEmail(ctx, credentials.Email)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			srv.checkUnknownAccount(ctx, credentials.Password)
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, errors.Wrap(ctxErr, "authenticate")
			}
			srv.log(ctx).Warn("Login failed", slog.String("email", credentials.Email), slog.String("reason", "account not found"))

			return nil, errors.WithStack(domainerrors.ErrInvalidCredentials)
		}
		srv.log(ctx).Error("Failed to load account for login", slog.String("email", credentials.Email), slog.Any("error", err))

		return nil, err
	}

	if !srv.hasher.Check(ctx, credentials.Password, account.PasswordHash) {
		// Check also reports false when ctx ends while waiting for a hashing slot.
		if ctxErr := ctx.Err(); ctxErr != nil {
			srv.log(ctx).Error("Login aborted", slog.String("email", credentials.Email), slog.Any("error", ctxErr))

			return nil, errors.Wrap(ctxErr, "authenticate")
		}
		srv.log(ctx).Warn("Login failed", slog.String("email", credentials.Email), slog.String("reason", "password mismatch"))

		return nil, errors.WithStack(domainerrors.ErrInvalidCredentials)
	}

	token, err := srv.tokenService.Issue(account.Identity())
	if err != nil {
		srv.log(ctx).Error("Failed to issue access token", slog.Any("accountID", account.ID), slog.Any("error", err))

		var appErr domainerrors.AppError
		if errors.As(err, &appErr) {
			return nil, err
		}

		return nil, errors.Wrap(domainerrors.ErrTokenSigningFailed, err.Error())
	}

	srv.log(ctx).Info("Response to authenticate", slog.Any("accountID", account.ID))

	return &usecase.AuthenticateOutput{AccessToken: token}, nil
}

// FindByEmail returns the identity behind email, visible only to the account itself.
func (srv *accountService) FindByEmail(ctx context.Context, email string, caller *entity.Identity) (*entity.Identity, error) {
	if email == "" {
		return nil, errors.WithStack(domainerrors.ErrLookupEmailRequired)
	}

	srv.log(ctx).Info("Request to get account by email", slog.String("email", email))

	account, err := srv.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, errors.WithStack(domainerrors.ErrAccountNotFound)
		}
		srv.log(ctx).Error("Failed to find account by email", slog.String("email", email), slog.Any("error", err))

		return nil, err
	}

	if caller == nil || caller.ID != account.ID {
		srv.log(ctx).Warn("Account access denied", slog.Any("accountID", account.ID), slog.Any("callerID", callerID(caller)))

		return nil, errors.WithStack(domainerrors.ErrAccountAccessDenied)
	}

	identity := account.Identity()
	srv.log(ctx).Info("Response to get account by email", slog.Any("accountID", identity.ID))

	return &identity, nil
}

// ListAll returns every account identity to any authenticated caller.
func (srv *accountService) ListAll(ctx context.Context, caller *entity.Identity) ([]entity.Identity, error) {
	srv.log(ctx).Info("Request to list accounts", slog.Any("callerID", callerID(caller)))

	identities, err := srv.accountRepo.FindAll(ctx)
	if err != nil {
		srv.log(ctx).Error("Failed to list accounts", slog.Any("error", err))

		return nil, err
	}

	if len(identities) == 0 {
		return nil, errors.WithStack(domainerrors.ErrNoAccountsFound)
	}

	srv.log(ctx).Info("Response to list accounts", slog.Int("count", len(identities)))

	return identities, nil
}

// checkUnknownAccount spends the same comparison a wrong password would.
func (srv *accountService) checkUnknownAccount(ctx context.Context, password string) {
	hash, err := srv.unknownHash()
	if err != nil {
		srv.log(ctx).Error("Failed to prepare unknown account hash", slog.Any("error", err))

		return
	}
	_ = srv.hasher.Check(ctx, password, hash)
}

func callerID(caller *entity.Identity) string {
	if caller == nil {
		return ""
	}

	return caller.ID.String()
}
