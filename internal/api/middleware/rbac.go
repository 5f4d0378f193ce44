package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stockflow/dashboard/internal/core/domain"
)

// RBAC enforces role-based access control on top of RequireSession. The
// request passes when the user's role satisfies any of allowedRoles.
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := UserFrom(c)
			if user != nil {
				for _, r := range allowedRoles {
					if user.Role.Satisfies(r) {
						return next(c)
					}
				}
			}
			return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
		}
	}
}
