package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stockflow/dashboard/internal/api/metrics"
	"github.com/stockflow/dashboard/internal/core/domain"
	"github.com/stockflow/dashboard/internal/core/guard"
	"github.com/stockflow/dashboard/internal/core/ports"
	"github.com/stockflow/dashboard/internal/core/session"
)

// Provide attaches the session store to every request context so that page
// collaborators can reach it through session.FromContext.
func Provide(store *session.Store) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			c.SetRequest(req.WithContext(session.WithStore(req.Context(), store)))
			return next(c)
		}
	}
}

// Guard evaluates every page navigation against the current session.
// Admitted requests continue with the user and admission published on the
// context; everything else is redirected with 302 Found.
func Guard(g *guard.Guard, sessions ports.SessionStore) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := sessions.Current()
			adm := g.Evaluate(user, c.Request().URL.Path)

			route := "other"
			if adm.Kind == domain.Admit {
				route = adm.Target
			}
			metrics.AdmissionsTotal.WithLabelValues(adm.Kind.String(), route).Inc()

			if adm.Kind != domain.Admit {
				return c.Redirect(http.StatusFound, adm.Location())
			}

			c.Set(ContextKeyUser, user)
			c.Set(ContextKeyAdmission, adm)
			return next(c)
		}
	}
}

// RequireSession rejects API calls made without a signed-in user.
func RequireSession(sessions ports.SessionStore) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := sessions.Current()
			if user == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "not signed in")
			}
			c.Set(ContextKeyUser, user)
			return next(c)
		}
	}
}
