package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskhive/task-tracker/internal/core/domain"
)

// ctxSession extracts the session injected by the Auth middleware and
// fast-fails before any service call: a populated subject proves the
// middleware ran.
func ctxSession(c echo.Context) (domain.Session, error) {
	session, ok := c.Get("session").(domain.Session)
	if !ok || session.UserID == "" {
		return domain.Session{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return session, nil
}
