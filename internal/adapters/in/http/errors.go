package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"orderflow/internal/generated/servers"
	"orderflow/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Generic reasons for errors that carry none of their own.
const (
	ReasonNotFound        = "not_found"
	ReasonForbidden       = "forbidden"
	ReasonValidation      = "validation_error"
	ReasonInvalidState    = "invalid_state"
	ReasonConflict        = "conflict"
	ReasonUnauthenticated = "unauthenticated"
	ReasonInternal        = "internal_error"
)

// classify maps err to an HTTP status and a machine-readable reason.
func classify(err error) (int, string) {
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code, httpReason(httpErr.Code)
	}

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound, ReasonNotFound
	case errors.Is(err, errs.ErrForbidden):
		return http.StatusForbidden, reasonOr(err, ReasonForbidden)
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest, ReasonValidation
	case errors.Is(err, errs.ErrInvalidState):
		return http.StatusConflict, reasonOr(err, ReasonInvalidState)
	case errors.Is(err, errs.ErrConflict):
		return http.StatusConflict, reasonOr(err, ReasonConflict)
	}
	return http.StatusInternalServerError, ReasonInternal
}

func httpReason(code int) string {
	switch code {
	case http.StatusBadRequest:
		return ReasonValidation
	case http.StatusUnauthorized:
		return ReasonUnauthenticated
	case http.StatusForbidden:
		return ReasonForbidden
	case http.StatusNotFound:
		return ReasonNotFound
	case http.StatusMethodNotAllowed:
		return "method_not_allowed"
	case http.StatusRequestEntityTooLarge:
		return "request_too_large"
	}
	if code >= http.StatusInternalServerError {
		return ReasonInternal
	}
	return "http_error"
}

func reasonOr(err error, fallback string) string {
	if reason := errs.ReasonOf(err); reason != "" {
		return reason
	}
	return fallback
}

// HTTPErrorHandler writes every error as a servers.Error body. Internal
// errors are logged and answered with a generic message.
func HTTPErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, reason := classify(err)
		message := err.Error()
		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			message = fmt.Sprint(httpErr.Message)
		}
		if status >= http.StatusInternalServerError {
			logger.ErrorContext(c.Request().Context(), "request failed",
				"method", c.Request().Method,
				"path", c.Path(),
				"error", err,
			)
			message = http.StatusText(status)
		}

		body := servers.Error{
			Code:       status,
			Reason:     reason,
			MessageKey: "errors." + reason,
			Message:    message,
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, body)
		}
		if writeErr != nil {
			logger.Error("failed to write error response", "error", writeErr)
		}
	}
}
