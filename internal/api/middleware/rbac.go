package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskhive/task-tracker/internal/core/domain"
)

// RBAC gates a route group on the session role. It runs after Auth and trusts
// the session it injected; denials surface as the forbidden sentinel so the
// central error handler renders them.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			session, ok := c.Get("session").(domain.Session)
			if !ok || session.UserID == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
			}
			if _, ok := allowed[session.Role]; !ok {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
