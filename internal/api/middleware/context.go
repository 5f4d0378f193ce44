package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/stockflow/dashboard/internal/core/domain"
)

// Keys under which the middlewares publish request-scoped values.
const (
	ContextKeyUser      = "user"
	ContextKeyAdmission = "admission"
)

// UserFrom returns the user published by Guard or RequireSession, if any.
func UserFrom(c echo.Context) *domain.User {
	u, _ := c.Get(ContextKeyUser).(*domain.User)
	return u
}

// AdmissionFrom returns the admission published by Guard.
func AdmissionFrom(c echo.Context) (domain.Admission, bool) {
	a, ok := c.Get(ContextKeyAdmission).(domain.Admission)
	return a, ok
}
