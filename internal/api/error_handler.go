package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/admindash/console/internal/core/domain"
	"github.com/admindash/console/internal/core/service"
)

// errorResponse is the canonical error envelope for all console errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Sends the operator back to the auth screen when the API dropped the session.
//   - Maps other API failures to a status the browser can act on.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var apiErr *domain.APIError
		if errors.As(err, &apiErr) && apiErr.Unauthorized() {
			_ = c.Redirect(http.StatusFound, service.LoginPath)
			return
		}

		code, msg := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	var apiErr *domain.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Kind {
		case domain.KindNetwork:
			return http.StatusBadGateway, apiErr.Message
		case domain.KindServer:
			if apiErr.Status >= 400 && apiErr.Status <= 599 {
				return apiErr.Status, apiErr.Message
			}
			return http.StatusBadGateway, apiErr.Message
		}
		log.Error().
			Err(err).
			Str("method", c.Request().Method).
			Str("path", c.Path()).
			Msg("api request could not be built")
		return http.StatusInternalServerError, apiErr.Message
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
