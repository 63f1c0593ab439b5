package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/recipebox/recipe-api/internal/api/middleware"
	"github.com/recipebox/recipe-api/internal/core/domain"
)

// ctxUserID returns the identity resolved by the Auth middleware. A missing
// identity means the route was mounted without Auth and is rejected with 401.
func ctxUserID(c echo.Context) (string, error) {
	userID := middleware.UserIDFrom(c.Request().Context())
	if userID == "" {
		return "", domain.ErrUnauthenticated
	}
	return userID, nil
}
