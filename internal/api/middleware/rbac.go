package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/werkbank/workshop-system/internal/core/domain"
)

// RequireAdmin lets the request through only for Admin users. It must run
// after Auth.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, _ := c.Get(UserKey).(*domain.AuthenticatedUser)
			if _, err := domain.RequireAdmin(user); err != nil {
				return err
			}
			return next(c)
		}
	}
}
