package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/devcamper/bootcamp-api/internal/api/handler"
	"github.com/devcamper/bootcamp-api/internal/core/domain"
	"github.com/devcamper/bootcamp-api/pkg/logger"
)

const internalMessage = "server error"

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps domain error kinds to their HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"success": false, "error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, logger.FromContext(c.Request().Context(), log), c)
		_ = c.JSON(code, handler.ErrorResponse{Success: false, Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	var de *domain.Error
	if errors.As(err, &de) {
		if code, ok := statusFor(de.Kind); ok {
			if code >= http.StatusInternalServerError {
				log.Error().Err(err).Str("path", c.Path()).Msg(de.Error())
			}
			return code, de.Error()
		}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, internalMessage
}

// statusFor reports the status for kinds whose message is safe to show.
// KindInternal falls through to the generic 500.
func statusFor(k domain.Kind) (int, bool) {
	switch k {
	case domain.KindInvalidInput, domain.KindInvalidToken:
		return http.StatusBadRequest, true
	case domain.KindUnauthenticated:
		return http.StatusUnauthorized, true
	case domain.KindForbidden:
		return http.StatusForbidden, true
	case domain.KindNotFound:
		return http.StatusNotFound, true
	case domain.KindConflict:
		return http.StatusConflict, true
	case domain.KindDeliveryFailed:
		return http.StatusInternalServerError, true
	}
	return 0, false
}
