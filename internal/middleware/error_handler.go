package middleware

import (
	"net/http"

	"dinesmart/pkg/logger"

	jsonres "dinesmart/pkg/response"

	"github.com/labstack/echo/v4"
)

// ErrorHandler is the echo-level catch-all for anything a handler did not
// translate itself. Internals never leak: unexpected errors get an opaque
// message and a log line.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	if he, ok := err.(*echo.HTTPError); ok {
		msg, _ := he.Message.(string)
		if msg == "" {
			msg = http.StatusText(he.Code)
		}
		_ = c.JSON(he.Code, jsonres.Error(codeFor(he.Code), msg, nil))
		return
	}

	logger.Error("Unhandled error", "path", c.Path(), "error", err)
	_ = c.JSON(http.StatusInternalServerError, jsonres.Error(
		"INTERNAL", "Something went wrong", nil,
	))
}

func codeFor(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "INVALID_INPUT"
	case http.StatusUnauthorized:
		return "UNAUTHENTICATED"
	case http.StatusForbidden:
		return "FORBIDDEN"
	case http.StatusNotFound:
		return "NOT_FOUND"
	case http.StatusConflict:
		return "CONFLICT"
	default:
		return "INTERNAL"
	}
}
