package rest

import (
	"errors"
	"net/http"

	"dinesmart/domain"
	"dinesmart/pkg/logger"

	jsonres "dinesmart/pkg/response"

	"github.com/labstack/echo/v4"
)

// ResponseError represent the response error struct
type ResponseError struct {
	Message string `json:"message"`
}

// writeError maps domain sentinels onto HTTP statuses with a stable error
// code. Anything unrecognized is an internal failure and stays opaque.
func writeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		return c.JSON(http.StatusUnauthorized, jsonres.Error("UNAUTHENTICATED", err.Error(), nil))
	case errors.Is(err, domain.ErrForbidden):
		return c.JSON(http.StatusForbidden, jsonres.Error("FORBIDDEN", err.Error(), nil))
	case errors.Is(err, domain.ErrNotFound):
		return c.JSON(http.StatusNotFound, jsonres.Error("NOT_FOUND", err.Error(), nil))
	case errors.Is(err, domain.ErrItemUnavailable):
		return c.JSON(http.StatusUnprocessableEntity, jsonres.Error("INVALID_ITEM", err.Error(), nil))
	case errors.Is(err, domain.ErrConflict):
		return c.JSON(http.StatusConflict, jsonres.Error("CONFLICT", err.Error(), nil))
	case errors.Is(err, domain.ErrInvalidInput):
		return c.JSON(http.StatusBadRequest, jsonres.Error("INVALID_INPUT", err.Error(), nil))
	default:
		logger.Error("Internal error", err)
		return c.JSON(http.StatusInternalServerError, jsonres.Error("INTERNAL", "Something went wrong", nil))
	}
}

func currentUserID(c echo.Context) (uint, bool) {
	id, ok := c.Get("user_id").(uint)
	return id, ok
}
