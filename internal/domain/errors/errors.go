package errors

import (
	"account/internal/errors"
)

// Kind classifies a failure independently of how it is reported to the caller.
type Kind string

const (
	KindValidation   Kind = "VALIDATION"
	KindConflict     Kind = "CONFLICT"
	KindNotFound     Kind = "NOT_FOUND"
	KindUnauthorized Kind = "UNAUTHORIZED"
	KindForbidden    Kind = "FORBIDDEN"
	KindHashing      Kind = "HASHING"
	KindSigning      Kind = "SIGNING"
	KindInvalidToken Kind = "INVALID_TOKEN"
	KindInternal     Kind = "INTERNAL"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	Kind() Kind        // Failure classification
	Status() Status    // Boundary status reported to the caller
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
}

// BaseError is a basic error structure that implements the AppError interface.
// The status is chosen where the error is raised: the same kind maps to different
// statuses depending on the operation (a missing field is BAD_REQUEST on registration
// but UNAUTHORIZED on login).
type BaseError struct {
	kind      Kind
	status    Status
	errorCode string
	message   string
}

// NewBaseError creates a new base error
func NewBaseError(kind Kind, status Status, errorCode, message string) *BaseError {
	return &BaseError{
		kind:      kind,
		status:    status,
		errorCode: errorCode,
		message:   message,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

func (e *BaseError) Kind() Kind {
	return e.kind
}

func (e *BaseError) Status() Status {
	return e.status
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.status.HTTPCode()
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Predefined error types
var (
	// Registration input
	ErrAccountDataRequired = NewBaseError(KindValidation, StatusBadRequest,
		"ACCOUNT_DATA_REQUIRED", "The name, email, password and admin flag must be informed.")
	ErrNameRequired = NewBaseError(KindValidation, StatusBadRequest,
		"NAME_REQUIRED", "The name must be informed.")
	ErrEmailRequired = NewBaseError(KindValidation, StatusBadRequest,
		"EMAIL_REQUIRED", "The email must be informed.")
	ErrPasswordRequired = NewBaseError(KindValidation, StatusBadRequest,
		"PASSWORD_REQUIRED", "The password must be informed.")
	ErrAdminRequired = NewBaseError(KindValidation, StatusBadRequest,
		"ADMIN_REQUIRED", "The admin flag must be informed.")
	ErrPasswordTooLong = NewBaseError(KindValidation, StatusBadRequest,
		"PASSWORD_TOO_LONG", "The password must be at most 72 bytes long.")

	ErrAccountAlreadyExists = NewBaseError(KindConflict, StatusForbidden,
		"ACCOUNT_ALREADY_EXISTS", "Account already exists.")

	// Login. Unknown email and wrong password share one error so responses
	// do not reveal which emails are registered.
	ErrCredentialsRequired = NewBaseError(KindValidation, StatusUnauthorized,
		"CREDENTIALS_REQUIRED", "Email and password must be informed.")
	ErrInvalidCredentials = NewBaseError(KindUnauthorized, StatusUnauthorized,
		"INVALID_CREDENTIALS", "Email or password doesn't match.")

	// Lookup
	ErrLookupEmailRequired = NewBaseError(KindValidation, StatusBadRequest,
		"LOOKUP_EMAIL_REQUIRED", "Account email was not informed.")
	ErrAccountNotFound = NewBaseError(KindNotFound, StatusBadRequest,
		"ACCOUNT_NOT_FOUND", "Account was not found.")
	ErrAccountAccessDenied = NewBaseError(KindForbidden, StatusForbidden,
		"ACCOUNT_ACCESS_DENIED", "You cannot see this account data.")
	ErrNoAccountsFound = NewBaseError(KindNotFound, StatusBadRequest,
		"NO_ACCOUNTS_FOUND", "No accounts were found.")

	// Access tokens
	ErrTokenMissing = NewBaseError(KindInvalidToken, StatusUnauthorized,
		"TOKEN_MISSING", "Access token was not informed.")
	ErrTokenMalformed = NewBaseError(KindInvalidToken, StatusUnauthorized,
		"TOKEN_MALFORMED", "Access token is malformed.")
	ErrTokenExpired = NewBaseError(KindInvalidToken, StatusUnauthorized,
		"TOKEN_EXPIRED", "Access token has expired.")
	ErrTokenSignatureInvalid = NewBaseError(KindInvalidToken, StatusUnauthorized,
		"TOKEN_SIGNATURE_INVALID", "Access token signature is invalid.")

	// Infrastructure. Messages stay generic; details are logged server-side only.
	ErrPasswordHashFailed = NewBaseError(KindHashing, StatusInternalError,
		"PASSWORD_HASH_FAILED", "Password could not be processed.")
	ErrTokenSigningFailed = NewBaseError(KindSigning, StatusInternalError,
		"TOKEN_SIGNING_FAILED", "Access token could not be issued.")
	ErrInternalError = NewBaseError(KindInternal, StatusInternalError,
		"INTERNAL_ERROR", "Internal server error, please try again later.")
)

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, e.details).Error()
}

// Unwrap exposes the driver error to errors.Is / errors.As.
func (e *DatabaseExecuteError) Unwrap() error {
	return e.err
}

func (e *DatabaseExecuteError) Kind() Kind {
	return KindInternal
}

func (e *DatabaseExecuteError) Status() Status {
	return StatusInternalError
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return StatusInternalError.HTTPCode()
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return ErrInternalError.Message()
}
