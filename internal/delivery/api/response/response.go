package response

import (
	deliverycontext "account/internal/delivery/context"
	"account/internal/delivery/contract"
	"account/internal/domain/entity"
	domainerrors "account/internal/domain/errors"

	"github.com/labstack/echo/v4"
)

// Envelope is the body of every API response. Only the field relevant to the
// operation and outcome is populated.
type Envelope struct {
	Status      domainerrors.Status `json:"status"`
	Code        string              `json:"code,omitempty"`
	Message     string              `json:"message,omitempty"`
	AccessToken string              `json:"accessToken,omitempty"`
	User        *entity.Identity    `json:"user,omitempty"`
	Users       []entity.Identity   `json:"users,omitempty"`
	Meta        *MetaInfo           `json:"meta"`
}

// MetaInfo represents response metadata
type MetaInfo struct {
	RequestID string `json:"request_id"` // Request tracking ID
}

// Result writes a boundary result with the HTTP code mapped from its status.
func Result(c echo.Context, result contract.Result) error {
	return c.JSON(result.HTTPCode(), Envelope{
		Status:      result.Status,
		Code:        result.Code,
		Message:     result.Message,
		AccessToken: result.AccessToken,
		User:        result.Account,
		Users:       result.Accounts,
		Meta:        meta(c),
	})
}

// Error returns an error response for failures raised outside the boundary.
func Error(c echo.Context, statusCode int, status domainerrors.Status, errorCode, message string) error {
	return c.JSON(statusCode, Envelope{
		Status:  status,
		Code:    errorCode,
		Message: message,
		Meta:    meta(c),
	})
}

// AppError writes err using its own status, code and message.
func AppError(c echo.Context, err domainerrors.AppError) error {
	return Error(c, err.HTTPCode(), err.Status(), err.ErrorCode(), err.Message())
}

// Success returns a bare success response carrying only a message.
func Success(c echo.Context, message string) error {
	return c.JSON(domainerrors.StatusSuccess.HTTPCode(), Envelope{
		Status:  domainerrors.StatusSuccess,
		Message: message,
		Meta:    meta(c),
	})
}

func meta(c echo.Context) *MetaInfo {
	return &MetaInfo{RequestID: deliverycontext.GetRequestID(c)}
}
