package errors

import (
	"net/http"

	"account/internal/errors"
)

// Status is the transport-independent outcome of an account operation.
type Status string

const (
	StatusSuccess       Status = "SUCCESS"
	StatusBadRequest    Status = "BAD_REQUEST"
	StatusUnauthorized  Status = "UNAUTHORIZED"
	StatusForbidden     Status = "FORBIDDEN"
	StatusInternalError Status = "INTERNAL_ERROR"
)

// HTTPCode maps the status onto an HTTP status code. Unknown values are treated as internal errors.
func (s Status) HTTPCode() int {
	switch s {
	case StatusSuccess:
		return http.StatusOK
	case StatusBadRequest:
		return http.StatusBadRequest
	case StatusUnauthorized:
		return http.StatusUnauthorized
	case StatusForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// StatusOf extracts the boundary status of err, defaulting to StatusInternalError.
func StatusOf(err error) Status {
	if err == nil {
		return StatusSuccess
	}

	var appErr AppError
	if errors.As(err, &appErr) {
		return appErr.Status()
	}

	return StatusInternalError
}
