package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stockflow/dashboard/internal/api/middleware"
	"github.com/stockflow/dashboard/internal/core/domain"
)

// ctxUser returns the user published by the Guard or RequireSession
// middleware. A missing user means the route was wired without either of
// them, so the request is rejected rather than served anonymously.
func ctxUser(c echo.Context) (*domain.User, error) {
	user := middleware.UserFrom(c)
	if user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "not signed in")
	}
	return user, nil
}

// bindAndValidate decodes the JSON body into req and runs the validator.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if c.Echo().Validator != nil {
		if err := c.Validate(req); err != nil {
			return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
		}
	}
	return nil
}

// errorResponse mirrors the envelope rendered by the central error handler.
type errorResponse struct {
	Error string `json:"error"`
}
