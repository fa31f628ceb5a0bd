package http

import (
	"errors"
	"log/slog"
	"net/http"

	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/ports"
	"parceltrack/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// statusOf maps an application error to its HTTP status code.
func statusOf(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, errs.ErrVersionIsInvalid),
		errors.Is(err, ports.ErrEmailAlreadyRegistered):
		return http.StatusConflict
	case errors.Is(err, commands.ErrTrackingIDExhausted):
		return http.StatusServiceUnavailable
	case errors.Is(err, errs.ErrInvalidTransition),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// messageOf hides internal errors from clients.
func messageOf(status int, err error) string {
	switch status {
	case http.StatusInternalServerError:
		return "internal server error"
	case http.StatusUnauthorized:
		return "invalid credentials"
	default:
		return err.Error()
	}
}

// NewErrorHandler renders every error as the {"success": false} envelope.
// echo.HTTPError keeps its code; other errors are classified by statusOf.
func NewErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		if ctx.Response().Committed {
			return
		}

		var (
			status  int
			message string
			he      *echo.HTTPError
		)
		if errors.As(err, &he) {
			status = he.Code
			if m, ok := he.Message.(string); ok {
				message = m
			} else {
				message = http.StatusText(he.Code)
			}
		} else {
			status = statusOf(err)
			message = messageOf(status, err)
		}

		if status >= http.StatusInternalServerError {
			logger.ErrorContext(ctx.Request().Context(), "request failed",
				"method", ctx.Request().Method,
				"path", ctx.Path(),
				"error", err,
			)
		}

		var writeErr error
		if ctx.Request().Method == http.MethodHead {
			writeErr = ctx.NoContent(status)
		} else {
			writeErr = ctx.JSON(status, Error{Success: false, Message: message})
		}
		if writeErr != nil {
			logger.ErrorContext(ctx.Request().Context(), "write error response", "error", writeErr)
		}
	}
}
