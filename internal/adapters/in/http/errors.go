package http

import (
	"errors"
	"net/http"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/payment"
	"ordering/internal/core/domain/services"
	"ordering/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func writeJSONError(c echo.Context, code int, message string) error {
	return c.JSON(code, Error{Code: code, Message: message})
}

// unprocessable are the rule violations caused by the amounts or targets a
// request asked for rather than by the current state of an entity.
//
//nolint:gochecknoglobals // fixed lookup table
var unprocessable = []error{
	order.ErrAmountExceedsBalance,
	payment.ErrAmountExceedsPaymentBalance,
	services.ErrDuplicateTarget,
}

// statusFor maps an application error to an HTTP status.
func statusFor(err error) int {
	var rule *errs.RuleViolationError

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrAccessDenied):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrTransient), errors.Is(err, commands.ErrTrackingNumberExhausted):
		return http.StatusServiceUnavailable
	case errors.Is(err, errs.ErrInvalidTransition):
		return http.StatusConflict
	case errors.As(err, &rule):
		for _, target := range unprocessable {
			if errors.Is(err, target) {
				return http.StatusUnprocessableEntity
			}
		}
		return http.StatusConflict
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeError answers with the mapped status. Internal errors are logged and
// their text is not sent to the client.
func (s *Server) writeError(c echo.Context, err error) error {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		s.logger.Error("request failed",
			zap.String("method", c.Request().Method),
			zap.String("path", c.Path()),
			zap.Error(err))
		return writeJSONError(c, code, http.StatusText(code))
	}
	if code == http.StatusServiceUnavailable {
		c.Response().Header().Set("Retry-After", "1")
	}
	return writeJSONError(c, code, err.Error())
}
