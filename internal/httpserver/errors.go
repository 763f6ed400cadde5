package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shopcore/checkout-backend/internal/service"
)

func errorJSON(c echo.Context, code int, msg string) error {
	return c.JSON(code, echo.Map{"error": msg})
}

// serviceError maps the service error taxonomy onto HTTP statuses: validation
// and business-rule violations are 400, unknown ids 404, gateway failures 502.
func serviceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return errorJSON(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrGateway):
		return errorJSON(c, http.StatusBadGateway, err.Error())
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrEmptyCart),
		errors.Is(err, service.ErrProductNotFound):
		return errorJSON(c, http.StatusBadRequest, err.Error())
	default:
		return errorJSON(c, http.StatusInternalServerError, "internal server error")
	}
}
